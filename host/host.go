// Package host declares the capabilities this add-on consumes from its host
// application. The host's chat system, menu framework, rendered chat view,
// and notice surface are external collaborators; each is modeled as a small
// interface so the add-on never reaches into host internals.
package host

import "github.com/onnwee/chat-tap/record"

// EmitFunc is the host's single chat-emission entry point. The host invokes
// it whenever a chat message is displayed.
type EmitFunc func(sender record.Sender, text string, code int)

// ChatHook exposes the emission function as a capturable, reassignable
// reference. A nil ChatHook, or one whose Emit returns nil, means the host
// offers no interception point and capture must be disabled.
type ChatHook interface {
	// Emit returns the current emission function.
	Emit() EmitFunc
	// SetEmit replaces the emission function. Other host callers must observe
	// the replacement transparently: same signature, same return behavior.
	SetEmit(EmitFunc)
}

// Action describes one menu entry registered with the host UI.
type Action struct {
	ID         string
	Icon       string
	Label      string
	Keybinding string
	OnActivate func()
}

// MenuRegistrar registers a named page of actions with the host UI framework.
type MenuRegistrar interface {
	RegisterPage(title string, actions []Action) error
}

// ChatLine is one rendered chat line as exposed by the host view. Sub-elements
// absent from the underlying line read as empty strings, never as errors.
type ChatLine struct {
	Tag    string
	Sender string
	Text   string
}

// ChatView is a read-only adapter over the host's rendered chat container.
// A nil ChatView means the container could not be located. Empty wipes the
// rendered surface; the capture log calls it when the log is cleared so the
// two stay in sync.
type ChatView interface {
	Lines() []ChatLine
	Empty()
}

// Notifier surfaces blocking user-facing notices (clear acknowledgments,
// nothing-to-export warnings).
type Notifier interface {
	Notice(msg string)
}
