package addon

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/chat-tap/export"
	"github.com/onnwee/chat-tap/record"
	"github.com/onnwee/chat-tap/testutil"
	"github.com/onnwee/chat-tap/transcript"
)

var testTime = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

type deps struct {
	sink   *testutil.FakeSink
	view   *testutil.FakeView
	notify *testutil.RecordingNotifier
	hook   *testutil.FakeHook
	menu   *testutil.FakeMenu
}

func newTestAddon(t *testing.T, view *testutil.FakeView) (*Addon, *deps) {
	t.Helper()
	d := &deps{
		sink:   &testutil.FakeSink{},
		view:   view,
		notify: &testutil.RecordingNotifier{},
		hook:   testutil.NewFakeHook(),
		menu:   &testutil.FakeMenu{},
	}
	opts := Options{
		Clock:    testutil.FixedClock(testTime),
		Exporter: &export.Exporter{Sink: d.sink, ReleaseDelay: time.Millisecond},
		Notifier: d.notify,
	}
	if view != nil {
		opts.View = view
	}
	a := New(opts)
	return a, d
}

func attach(t *testing.T, a *Addon, d *deps) {
	t.Helper()
	if err := a.Attach(context.Background(), d.hook, d.menu, nil); err != nil {
		t.Fatalf("Attach() error: %v", err)
	}
}

func TestExportFromCaptureLog(t *testing.T) {
	a, d := newTestAddon(t, nil)
	attach(t, a, d)

	d.hook.Send(testutil.Name("Alice"), "hi", 0)
	d.hook.Send(testutil.Name("Bob"), "hey", record.CodeTeam)

	if err := a.Export(); err != nil {
		t.Fatalf("Export() error: %v", err)
	}

	offers := d.sink.Offers()
	if len(offers) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(offers))
	}
	want := "[2024-01-02 03:04:05] Alice: hi\n[2024-01-02 03:04:05] [TEAM] Bob: hey"
	if string(offers[0].Data) != want {
		t.Errorf("artifact = %q, want %q", offers[0].Data, want)
	}
	if offers[0].Name != "game-chat-log-2024-01-02T03-04-05.txt" {
		t.Errorf("artifact name = %q", offers[0].Name)
	}

	st := a.Status()
	if !st.CaptureEnabled || st.LogSize != 2 || st.LastExport != offers[0].Name {
		t.Errorf("status = %+v", st)
	}
}

func TestExportEmptyState(t *testing.T) {
	a, d := newTestAddon(t, &testutil.FakeView{})
	attach(t, a, d)

	err := a.Export()
	if !errors.Is(err, transcript.ErrNoMessages) {
		t.Fatalf("Export() = %v, want ErrNoMessages", err)
	}
	if len(d.sink.Offers()) != 0 {
		t.Errorf("artifact produced despite empty state")
	}
	notices := d.notify.Notices()
	if len(notices) != 1 || !strings.Contains(notices[0], "No chat messages") {
		t.Errorf("notices = %v, want a no-messages notice", notices)
	}
}

func TestExportMissingView(t *testing.T) {
	a, d := newTestAddon(t, nil)
	attach(t, a, d)

	err := a.Export()
	if !errors.Is(err, transcript.ErrNoView) {
		t.Fatalf("Export() = %v, want ErrNoView", err)
	}
	if len(d.sink.Offers()) != 0 {
		t.Errorf("artifact produced despite missing view")
	}
	notices := d.notify.Notices()
	if len(notices) != 1 || !strings.Contains(notices[0], "No chat window") {
		t.Errorf("notices = %v, want a missing-window notice", notices)
	}
}

func TestExportFallsBackToViewScrape(t *testing.T) {
	view := &testutil.FakeView{}
	view.Add("TEAM", "Bob", "hey")
	view.Add("", "Alice", "hi")
	a, d := newTestAddon(t, view)
	attach(t, a, d)

	if err := a.Export(); err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	offers := d.sink.Offers()
	if len(offers) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(offers))
	}
	want := "[2024-01-02 03:04:05] [TEAM] Bob: hey\n[2024-01-02 03:04:05] Alice: hi"
	if string(offers[0].Data) != want {
		t.Errorf("scraped artifact = %q, want %q", offers[0].Data, want)
	}
}

func TestClearAcknowledgesAndEmptiesView(t *testing.T) {
	view := &testutil.FakeView{}
	view.Add("", "Alice", "hi")
	a, d := newTestAddon(t, view)
	attach(t, a, d)

	d.hook.Send(testutil.Name("Alice"), "hi", 0)
	d.hook.Send(testutil.Name("Bob"), "hey", 0)

	a.Clear()

	if st := a.Status(); st.LogSize != 0 {
		t.Errorf("log size after clear = %d", st.LogSize)
	}
	if view.Emptied != 1 {
		t.Errorf("view emptied %d times, want 1", view.Emptied)
	}
	notices := d.notify.Notices()
	if len(notices) != 1 || !strings.Contains(notices[0], "2 messages") {
		t.Errorf("notices = %v, want a cleared acknowledgment naming 2 messages", notices)
	}
}

func TestAttachDegradesWithoutHook(t *testing.T) {
	a, d := newTestAddon(t, nil)
	if err := a.Attach(context.Background(), nil, d.menu, nil); err != nil {
		t.Fatalf("Attach without hook must not fail: %v", err)
	}
	if a.Status().CaptureEnabled {
		t.Errorf("capture reported enabled without a hook")
	}
	if d.menu.Title != PageTitle {
		t.Errorf("menu page title = %q, want %q", d.menu.Title, PageTitle)
	}
	if len(d.menu.Actions) != 2 {
		t.Fatalf("registered %d actions, want 2", len(d.menu.Actions))
	}
	if d.menu.Actions[0].ID != "export" || d.menu.Actions[1].ID != "clear" {
		t.Errorf("action ids = %q, %q", d.menu.Actions[0].ID, d.menu.Actions[1].ID)
	}
}

func TestAttachFailsWhenHostNeverReady(t *testing.T) {
	a, d := newTestAddon(t, nil)
	a.readyPoll = time.Millisecond
	a.readyTimeout = 10 * time.Millisecond
	err := a.Attach(context.Background(), d.hook, d.menu, func() bool { return false })
	if err == nil {
		t.Fatal("expected readiness error")
	}
}

func TestMenuActionsDriveFlows(t *testing.T) {
	a, d := newTestAddon(t, nil)
	attach(t, a, d)

	d.hook.Send(testutil.Name("Alice"), "hi", 0)
	d.menu.Actions[0].OnActivate()
	if len(d.sink.Offers()) != 1 {
		t.Fatalf("export action produced %d artifacts, want 1", len(d.sink.Offers()))
	}

	d.menu.Actions[1].OnActivate()
	if st := a.Status(); st.LogSize != 0 {
		t.Errorf("clear action left %d records", st.LogSize)
	}
}
