// Package capture holds the in-memory capture log and the interceptor that
// feeds it from the host's chat-emission hook.
//
// The log is append-only: records are never mutated or removed except by a
// full clear, so insertion order is also chronological order. It lives for
// the duration of the process and is constructed once at startup.
package capture

import (
	"sync"

	"github.com/onnwee/chat-tap/record"
	"github.com/onnwee/chat-tap/telemetry"
)

// View is a rendered surface bound to the log. Clear empties it in the same
// critical section that drops the records, so the log and its rendering never
// disagree.
type View interface {
	Empty()
}

// Log is the ordered record store.
type Log struct {
	mu      sync.Mutex
	records []record.Record
	view    View
}

// NewLog returns an empty capture log.
func NewLog() *Log {
	return &Log{}
}

// BindView attaches a rendered view that Clear will empty together with the
// records.
func (l *Log) BindView(v View) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.view = v
}

// Append adds a record at the end. It never rejects input.
func (l *Log) Append(r record.Record) {
	l.mu.Lock()
	l.records = append(l.records, r)
	n := len(l.records)
	l.mu.Unlock()
	telemetry.CountMessageCaptured()
	telemetry.SetLogSize(n)
}

// Snapshot returns all records in insertion order. The returned slice is a
// copy; callers cannot corrupt internal state through it.
func (l *Log) Snapshot() []record.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]record.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len reports the current record count.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.records)
}

// Clear removes all records and empties the bound view atomically with the
// removal. It returns the number of records removed as the completion signal
// for the caller's acknowledgment.
func (l *Log) Clear() int {
	l.mu.Lock()
	n := len(l.records)
	l.records = nil
	if l.view != nil {
		l.view.Empty()
	}
	l.mu.Unlock()
	telemetry.CountLogClear()
	telemetry.SetLogSize(0)
	return n
}
