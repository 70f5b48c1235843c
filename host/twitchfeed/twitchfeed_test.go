package twitchfeed

import (
	"testing"

	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
)

var _ host.ChatHook = (*Feed)(nil)

func TestHookIsCapturableAndReassignable(t *testing.T) {
	f := New("somechannel", "bot", "oauth:token")

	orig := f.Emit()
	if orig == nil {
		t.Fatal("feed must expose an emission function before wrapping")
	}

	var got []string
	f.SetEmit(func(sender record.Sender, text string, code int) {
		orig(sender, text, code)
		got = append(got, text)
	})

	f.currentEmit()(user{name: "Alice"}, "hi", 0)
	f.currentEmit()(nil, "notice", 0)

	if len(got) != 2 || got[0] != "hi" || got[1] != "notice" {
		t.Errorf("wrapped emissions = %v", got)
	}
}

func TestNotReadyBeforeConnect(t *testing.T) {
	f := New("somechannel", "bot", "oauth:token")
	if f.Ready() {
		t.Error("feed reports ready before the IRC connection is up")
	}
}

func TestDisplayHandlesNilSender(t *testing.T) {
	f := New("somechannel", "bot", "oauth:token")
	// Must not panic; sender resolution mirrors the normalizer's fallback.
	f.display(nil, "orphan", 0)
	f.display(user{}, "empty name", 3)
}
