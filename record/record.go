// Package record defines the canonical chat record and the normalizer that
// turns a raw host chat event (sender, text, channel code) into one.
//
// Records are immutable once created: the capture pipeline appends them to
// the log and the transcript renderer reads them, nothing else.
package record

import "time"

// TimestampLayout is the second-resolution wall-clock format stamped on
// every record at capture time.
const TimestampLayout = "2006-01-02 15:04:05"

// UnknownSender is substituted when an event carries no identifiable sender.
const UnknownSender = "Unknown"

// Category classifies a chat message by its host channel code.
type Category int

const (
	CategoryNone Category = iota
	CategoryWhisperTo
	CategoryWhisperFrom
	CategoryTeam
)

// Host channel codes for the non-default categories.
const (
	CodeWhisperTo   = 1
	CodeWhisperFrom = 2
	CodeTeam        = 3
)

// CategoryFromCode maps a host channel code onto a Category. Any code outside
// {1,2,3}, including absent ones reported as zero, collapses to CategoryNone.
func CategoryFromCode(code int) Category {
	switch code {
	case CodeWhisperTo:
		return CategoryWhisperTo
	case CodeWhisperFrom:
		return CategoryWhisperFrom
	case CodeTeam:
		return CategoryTeam
	default:
		return CategoryNone
	}
}

// Label returns the transcript tag for the category. CategoryNone has no tag
// and returns the empty string.
func (c Category) Label() string {
	switch c {
	case CategoryWhisperTo:
		return "WHISPER_TO"
	case CategoryWhisperFrom:
		return "WHISPER_FROM"
	case CategoryTeam:
		return "TEAM"
	default:
		return ""
	}
}

// Sender is the host-side author of a chat event. A nil Sender means the
// event carried no author object at all.
type Sender interface {
	DisplayName() string
}

// Record is one captured chat message. Text is kept verbatim: no trimming,
// no escaping.
type Record struct {
	Timestamp string
	Sender    string
	Category  Category
	Text      string
}

// Normalizer builds Records from raw host chat events. Now is the capture
// clock; the zero value uses time.Now.
type Normalizer struct {
	Now func() time.Time
}

// Normalize converts a raw event tuple into a Record. It is total over its
// input domain: a nil sender (or one exposing no usable display name) becomes
// UnknownSender, and any out-of-range channel code becomes CategoryNone.
func (n *Normalizer) Normalize(sender Sender, text string, code int) Record {
	now := time.Now
	if n != nil && n.Now != nil {
		now = n.Now
	}
	name := UnknownSender
	if sender != nil {
		if dn := sender.DisplayName(); dn != "" {
			name = dn
		}
	}
	return Record{
		Timestamp: now().Format(TimestampLayout),
		Sender:    name,
		Category:  CategoryFromCode(code),
		Text:      text,
	}
}
