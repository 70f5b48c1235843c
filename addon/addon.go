// Package addon wires the capture pipeline together and implements the two
// user-facing flows: export the transcript and clear the log.
//
// It observes the host's chat feed through the interceptor, retains records
// in the capture log, and registers one menu page with two actions against
// the host UI. Every failure mode is recovered locally: a host without an
// emission hook degrades to the live-view export path, and an export with
// nothing to render surfaces a notice instead of an artifact.
package addon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/onnwee/chat-tap/capture"
	"github.com/onnwee/chat-tap/export"
	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
	"github.com/onnwee/chat-tap/telemetry"
	"github.com/onnwee/chat-tap/transcript"
)

// PageTitle names the menu page registered with the host UI.
const PageTitle = "Chat Log"

// Options configures a new Addon. Zero-value fields get working defaults;
// only Exporter needs a real sink to produce artifacts.
type Options struct {
	// Prefix names exported artifacts; defaults to "game-chat-log".
	Prefix string
	// Clock is the capture and export clock; defaults to time.Now.
	Clock func() time.Time
	// Exporter hands transcripts to the download mechanism.
	Exporter *export.Exporter
	// View is the host's rendered chat container; nil when the host offers
	// none, which disables the fallback export path.
	View host.ChatView
	// Notifier surfaces blocking notices; nil falls back to log lines.
	Notifier host.Notifier
	// ReadyPoll and ReadyTimeout bound the host readiness wait in Attach.
	ReadyPoll    time.Duration
	ReadyTimeout time.Duration
}

// Addon is the process-wide add-on instance: constructed once at startup,
// handed to collaborators explicitly, torn down with the process.
type Addon struct {
	log      *capture.Log
	norm     *record.Normalizer
	exporter *export.Exporter
	view     host.ChatView
	notify   host.Notifier
	prefix   string
	clock    func() time.Time

	readyPoll    time.Duration
	readyTimeout time.Duration

	mu         sync.Mutex
	captureOn  bool
	lastExport string
}

// New builds the addon and its capture log.
func New(opts Options) *Addon {
	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}
	prefix := opts.Prefix
	if prefix == "" {
		prefix = "game-chat-log"
	}
	exporter := opts.Exporter
	if exporter == nil {
		exporter = &export.Exporter{Sink: &export.DirSink{Dir: "data"}}
	}
	if exporter.Now == nil {
		exporter.Now = clock
	}
	readyPoll := opts.ReadyPoll
	if readyPoll <= 0 {
		readyPoll = 250 * time.Millisecond
	}
	readyTimeout := opts.ReadyTimeout
	if readyTimeout <= 0 {
		readyTimeout = 10 * time.Second
	}

	a := &Addon{
		log:          capture.NewLog(),
		norm:         &record.Normalizer{Now: clock},
		exporter:     exporter,
		view:         opts.View,
		notify:       opts.Notifier,
		prefix:       prefix,
		clock:        clock,
		readyPoll:    readyPoll,
		readyTimeout: readyTimeout,
	}
	if opts.View != nil {
		a.log.BindView(opts.View)
	}
	return a
}

// Attach waits for the host to become ready (when a probe is given), installs
// the chat interceptor, and registers the menu page. A missing emission hook
// disables capture but leaves the menu and the live-view export path in
// place; only a failed readiness wait or menu registration is returned as an
// error.
func (a *Addon) Attach(ctx context.Context, hook host.ChatHook, menu host.MenuRegistrar, ready func() bool) error {
	if ready != nil {
		if err := host.Await(ctx, ready, a.readyPoll, a.readyTimeout); err != nil {
			return fmt.Errorf("await host: %w", err)
		}
	}

	switch err := capture.Intercept(hook, a.norm, a.log); {
	case errors.Is(err, capture.ErrHookUnavailable):
		slog.Warn("chat capture disabled: emission hook unavailable")
		telemetry.SetCaptureEnabled(false)
	case err != nil:
		return fmt.Errorf("install interceptor: %w", err)
	default:
		a.mu.Lock()
		a.captureOn = true
		a.mu.Unlock()
		telemetry.SetCaptureEnabled(true)
		slog.Info("chat interceptor installed")
	}

	if menu != nil {
		actions := []host.Action{
			{
				ID:         "export",
				Icon:       "download",
				Label:      "Export chat log",
				Keybinding: "ctrl+shift+s",
				OnActivate: func() { _ = a.Export() },
			},
			{
				ID:         "clear",
				Icon:       "trash",
				Label:      "Clear chat log",
				OnActivate: a.Clear,
			},
		}
		if err := menu.RegisterPage(PageTitle, actions); err != nil {
			return fmt.Errorf("register menu page: %w", err)
		}
		slog.Info("menu page registered", slog.String("title", PageTitle), slog.Int("actions", len(actions)))
	}
	return nil
}

// Export renders the capture log, falling back to a scrape of the live chat
// view when the log is empty, and hands the transcript to the export sink.
// An empty result or a missing view surfaces as a user notice and produces no
// file; the log is left untouched on every path.
func (a *Addon) Export() error {
	records := a.log.Snapshot()
	var text string
	if len(records) > 0 {
		text = transcript.Render(records)
	} else {
		var err error
		text, err = transcript.FromView(a.view, a.clock())
		switch {
		case errors.Is(err, transcript.ErrNoView):
			a.notice("No chat window found; nothing to export.")
			return err
		case errors.Is(err, transcript.ErrNoMessages):
			a.notice("No chat messages to export.")
			return err
		case err != nil:
			return err
		}
	}

	name, err := a.exporter.Export(text, a.prefix)
	if err != nil {
		slog.Error("transcript export failed", slog.Any("err", err))
		return err
	}

	a.mu.Lock()
	a.lastExport = name
	a.mu.Unlock()
	slog.Info("chat transcript exported", slog.String("file", name), slog.Int("records", len(records)))
	return nil
}

// Clear drops every captured record, empties the bound chat view in the same
// step, and acknowledges completion to the user.
func (a *Addon) Clear() {
	n := a.log.Clear()
	a.notice(fmt.Sprintf("Chat log cleared (%d messages).", n))
	slog.Info("chat log cleared", slog.Int("removed", n))
}

// Status is the snapshot reported by the ops endpoints.
type Status struct {
	CaptureEnabled bool   `json:"capture_enabled"`
	LogSize        int    `json:"log_size"`
	LastExport     string `json:"last_export,omitempty"`
}

// Status reports the current capture state.
func (a *Addon) Status() Status {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Status{
		CaptureEnabled: a.captureOn,
		LogSize:        a.log.Len(),
		LastExport:     a.lastExport,
	}
}

func (a *Addon) notice(msg string) {
	if a.notify != nil {
		a.notify.Notice(msg)
		return
	}
	slog.Info("notice", slog.String("msg", msg))
}
