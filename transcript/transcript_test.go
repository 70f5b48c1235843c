package transcript_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/onnwee/chat-tap/record"
	"github.com/onnwee/chat-tap/testutil"
	"github.com/onnwee/chat-tap/transcript"
)

func TestRenderRoundTrip(t *testing.T) {
	records := []record.Record{
		{Timestamp: "2024-01-02 03:04:05", Sender: "Alice", Category: record.CategoryNone, Text: "hi"},
		{Timestamp: "2024-01-02 03:04:06", Sender: "Bob", Category: record.CategoryTeam, Text: "hey"},
	}
	want := "[2024-01-02 03:04:05] Alice: hi\n[2024-01-02 03:04:06] [TEAM] Bob: hey"
	if got := transcript.Render(records); got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRenderCategoryTags(t *testing.T) {
	cases := []struct {
		cat  record.Category
		want string
	}{
		{record.CategoryNone, "[t] S: m"},
		{record.CategoryWhisperTo, "[t] [WHISPER_TO] S: m"},
		{record.CategoryWhisperFrom, "[t] [WHISPER_FROM] S: m"},
		{record.CategoryTeam, "[t] [TEAM] S: m"},
	}
	for _, c := range cases {
		got := transcript.Render([]record.Record{{Timestamp: "t", Sender: "S", Category: c.cat, Text: "m"}})
		if got != c.want {
			t.Errorf("Render(%v) = %q, want %q", c.cat, got, c.want)
		}
	}
}

func TestRenderDeterministic(t *testing.T) {
	records := []record.Record{
		{Timestamp: "t1", Sender: "a", Text: "x"},
		{Timestamp: "t2", Sender: "b", Category: record.CategoryWhisperTo, Text: "y"},
	}
	first := transcript.Render(records)
	second := transcript.Render(records)
	if first != second {
		t.Errorf("Render not deterministic:\n%q\n%q", first, second)
	}
}

func TestRenderNoTrailingNewline(t *testing.T) {
	got := transcript.Render([]record.Record{{Timestamp: "t", Sender: "a", Text: "x"}})
	if strings.HasSuffix(got, "\n") {
		t.Errorf("unexpected trailing newline: %q", got)
	}
	if transcript.Render(nil) != "" {
		t.Errorf("Render(nil) should be empty")
	}
}

func TestFromViewMissingContainer(t *testing.T) {
	if _, err := transcript.FromView(nil, time.Now()); !errors.Is(err, transcript.ErrNoView) {
		t.Fatalf("FromView(nil) = %v, want ErrNoView", err)
	}
}

func TestFromViewEmptyContainer(t *testing.T) {
	if _, err := transcript.FromView(&testutil.FakeView{}, time.Now()); !errors.Is(err, transcript.ErrNoMessages) {
		t.Fatalf("FromView(empty) = %v, want ErrNoMessages", err)
	}
}

func TestFromViewStampsScrapeTime(t *testing.T) {
	view := &testutil.FakeView{}
	view.Add("TEAM", "Bob", "hey")
	view.Add("", "Alice", "hi")
	view.Add("", "", "orphan line")

	at := time.Date(2024, 6, 7, 8, 9, 10, 0, time.UTC)
	got, err := transcript.FromView(view, at)
	if err != nil {
		t.Fatalf("FromView() error: %v", err)
	}
	want := "[2024-06-07 08:09:10] [TEAM] Bob: hey\n" +
		"[2024-06-07 08:09:10] Alice: hi\n" +
		"[2024-06-07 08:09:10] : orphan line"
	if got != want {
		t.Errorf("FromView() = %q, want %q", got, want)
	}
}
