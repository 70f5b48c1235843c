// Package transcript renders captured chat into a deterministic plain-text
// transcript, one line per message.
package transcript

import (
	"errors"
	"strings"
	"time"

	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
)

// ErrNoView reports that the host's rendered chat container could not be
// located for the fallback scrape.
var ErrNoView = errors.New("chat view unavailable")

// ErrNoMessages reports that there is nothing to render: the fallback view
// exists but holds no chat lines.
var ErrNoMessages = errors.New("no chat messages")

// Render formats records in insertion order:
//
//	[timestamp] [CATEGORY] sender: text
//
// with the category bracket omitted for the default category. Lines are
// joined with single newlines and there is no trailing newline. Output is
// byte-identical for identical input.
func Render(records []record.Record) string {
	var b strings.Builder
	for i, r := range records {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeLine(&b, r.Timestamp, r.Category.Label(), r.Sender, r.Text)
	}
	return b.String()
}

// FromView scrapes the host's currently rendered chat lines as a fallback
// when the capture log is empty. Each line contributes its tag, sender, and
// text sub-elements, any of which may be absent and read as empty strings.
//
// No historical capture time exists for scraped lines, so every line is
// stamped with now, the time of the scrape. That stamp is inaccurate for
// conversation that scrolled in earlier, which matches the recorded behavior
// of the capture path's predecessor.
func FromView(v host.ChatView, now time.Time) (string, error) {
	if v == nil {
		return "", ErrNoView
	}
	lines := v.Lines()
	if len(lines) == 0 {
		return "", ErrNoMessages
	}
	ts := now.Format(record.TimestampLayout)
	var b strings.Builder
	for i, ln := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		writeLine(&b, ts, ln.Tag, ln.Sender, ln.Text)
	}
	return b.String(), nil
}

func writeLine(b *strings.Builder, ts, tag, sender, text string) {
	b.WriteByte('[')
	b.WriteString(ts)
	b.WriteString("] ")
	if tag != "" {
		b.WriteByte('[')
		b.WriteString(tag)
		b.WriteString("] ")
	}
	b.WriteString(sender)
	b.WriteString(": ")
	b.WriteString(text)
}
