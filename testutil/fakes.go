// Package testutil provides fake host collaborators and a fake download sink
// for tests.
package testutil

import (
	"sync"
	"time"

	"github.com/onnwee/chat-tap/export"
	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
)

// Name is a minimal record.Sender.
type Name string

// DisplayName implements record.Sender.
func (n Name) DisplayName() string { return string(n) }

// Emission is one call observed on the host's own display path.
type Emission struct {
	Sender record.Sender
	Text   string
	Code   int
}

// FakeHook is a scripted host chat feed. Its initial emission function is the
// host's own display behavior, which records the call in Displayed; the
// interceptor under test wraps that function in place.
type FakeHook struct {
	mu        sync.Mutex
	emit      host.EmitFunc
	displayed []Emission
}

// NewFakeHook returns a hook whose emission function records host-visible
// display effects.
func NewFakeHook() *FakeHook {
	h := &FakeHook{}
	h.emit = func(sender record.Sender, text string, code int) {
		h.mu.Lock()
		h.displayed = append(h.displayed, Emission{Sender: sender, Text: text, Code: code})
		h.mu.Unlock()
	}
	return h
}

// NewNilHook returns a hook whose emission function is absent, modeling a
// host without an interception point.
func NewNilHook() *FakeHook { return &FakeHook{} }

// Emit implements host.ChatHook.
func (h *FakeHook) Emit() host.EmitFunc {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.emit
}

// SetEmit implements host.ChatHook.
func (h *FakeHook) SetEmit(fn host.EmitFunc) {
	h.mu.Lock()
	h.emit = fn
	h.mu.Unlock()
}

// Send drives a chat event through the current emission function, as the
// host would when displaying a message.
func (h *FakeHook) Send(sender record.Sender, text string, code int) {
	if fn := h.Emit(); fn != nil {
		fn(sender, text, code)
	}
}

// Displayed returns the host-visible display effects observed so far.
func (h *FakeHook) Displayed() []Emission {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Emission, len(h.displayed))
	copy(out, h.displayed)
	return out
}

// FakeView is an in-memory stand-in for the host's rendered chat container.
type FakeView struct {
	mu      sync.Mutex
	lines   []host.ChatLine
	Emptied int
}

// Add appends a rendered line. Pass empty strings for absent sub-elements.
func (v *FakeView) Add(tag, sender, text string) {
	v.mu.Lock()
	v.lines = append(v.lines, host.ChatLine{Tag: tag, Sender: sender, Text: text})
	v.mu.Unlock()
}

// Lines implements host.ChatView.
func (v *FakeView) Lines() []host.ChatLine {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]host.ChatLine, len(v.lines))
	copy(out, v.lines)
	return out
}

// Empty implements host.ChatView.
func (v *FakeView) Empty() {
	v.mu.Lock()
	v.lines = nil
	v.Emptied++
	v.mu.Unlock()
}

// RecordingNotifier captures user-facing notices.
type RecordingNotifier struct {
	mu      sync.Mutex
	notices []string
}

// Notice implements host.Notifier.
func (n *RecordingNotifier) Notice(msg string) {
	n.mu.Lock()
	n.notices = append(n.notices, msg)
	n.mu.Unlock()
}

// Notices returns every notice surfaced so far.
func (n *RecordingNotifier) Notices() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, len(n.notices))
	copy(out, n.notices)
	return out
}

// FakeMenu records the single page the add-on registers.
type FakeMenu struct {
	mu      sync.Mutex
	Title   string
	Actions []host.Action
	Err     error
}

// RegisterPage implements host.MenuRegistrar.
func (m *FakeMenu) RegisterPage(title string, actions []host.Action) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Err != nil {
		return m.Err
	}
	m.Title = title
	m.Actions = actions
	return nil
}

// Offer is one artifact handed to the FakeSink.
type Offer struct {
	Name   string
	MIME   string
	Data   []byte
	Handle *FakeHandle
}

// FakeHandle tracks release of a download artifact.
type FakeHandle struct {
	once     sync.Once
	Released chan struct{}
}

// Release implements export.Handle.
func (h *FakeHandle) Release() {
	h.once.Do(func() { close(h.Released) })
}

// FakeSink collects offered artifacts instead of starting downloads.
type FakeSink struct {
	mu     sync.Mutex
	offers []Offer
	Err    error
}

// Offer implements export.Sink.
func (s *FakeSink) Offer(name, mime string, data []byte) (export.Handle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	h := &FakeHandle{Released: make(chan struct{})}
	cp := make([]byte, len(data))
	copy(cp, data)
	s.offers = append(s.offers, Offer{Name: name, MIME: mime, Data: cp, Handle: h})
	return h, nil
}

// Offers returns the artifacts offered so far.
func (s *FakeSink) Offers() []Offer {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Offer, len(s.offers))
	copy(out, s.offers)
	return out
}

// FixedClock returns a clock function pinned to t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
