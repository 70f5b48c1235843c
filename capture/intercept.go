package capture

import (
	"errors"

	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
)

// ErrHookUnavailable reports that the host exposes no chat-emission hook.
// It is non-fatal: capture stays disabled while the rest of the add-on
// (menu, fallback export, clear) keeps working.
var ErrHookUnavailable = errors.New("chat emission hook unavailable")

// Intercept replaces the host's chat-emission function with a wrapper that
// invokes the original first, with identical arguments, then normalizes the
// event and appends the result to log. The host's own display behavior is
// unchanged in timing and effect, and every emitted message produces exactly
// one record.
//
// Install once at startup. The host function is not recursive, so the
// wrapper does not guard against re-entry.
func Intercept(h host.ChatHook, n *record.Normalizer, log *Log) error {
	if h == nil {
		return ErrHookUnavailable
	}
	orig := h.Emit()
	if orig == nil {
		return ErrHookUnavailable
	}
	h.SetEmit(func(sender record.Sender, text string, code int) {
		orig(sender, text, code)
		log.Append(n.Normalize(sender, text, code))
	})
	return nil
}
