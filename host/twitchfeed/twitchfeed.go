// Package twitchfeed adapts a Twitch IRC connection into the host chat-feed
// capabilities the add-on consumes. It is the reference host for headless
// runs: each incoming IRC message is pushed through the reassignable
// emission hook, so an installed interceptor observes exactly what the feed
// displayed. Whispers carry the whisper-from channel code; plain channel
// messages carry the default code.
package twitchfeed

import (
	"context"
	"log/slog"
	"sync"

	twitch "github.com/gempir/go-twitch-irc/v4"

	"github.com/onnwee/chat-tap/host"
	"github.com/onnwee/chat-tap/record"
)

// user adapts a Twitch chat author to record.Sender.
type user struct {
	name string
}

func (u user) DisplayName() string { return u.name }

// Feed is a chat feed backed by a Twitch IRC connection. It implements
// host.ChatHook: its emission function starts as the feed's own display
// behavior and may be wrapped by the interceptor.
type Feed struct {
	client  *twitch.Client
	channel string

	mu        sync.RWMutex
	emit      host.EmitFunc
	connected bool
}

// New builds a feed for channel using the given bot credentials. The token
// needs chat:read scope (oauth: prefix included).
func New(channel, username, oauthToken string) *Feed {
	f := &Feed{channel: channel, client: twitch.NewClient(username, oauthToken)}
	f.emit = f.display

	f.client.OnPrivateMessage(func(msg twitch.PrivateMessage) {
		f.currentEmit()(user{name: msg.User.DisplayName}, msg.Message, 0)
	})
	f.client.OnWhisperMessage(func(msg twitch.WhisperMessage) {
		f.currentEmit()(user{name: msg.User.DisplayName}, msg.Message, record.CodeWhisperFrom)
	})
	f.client.OnConnect(func() {
		f.mu.Lock()
		f.connected = true
		f.mu.Unlock()
		slog.Info("twitch chat connected", slog.String("channel", channel))
	})
	return f
}

// display is the feed's own behavior for a chat line; the interceptor keeps
// it unchanged when wrapping the hook.
func (f *Feed) display(sender record.Sender, text string, code int) {
	name := record.UnknownSender
	if sender != nil {
		if dn := sender.DisplayName(); dn != "" {
			name = dn
		}
	}
	slog.Debug("chat", slog.String("channel", f.channel), slog.String("user", name), slog.String("text", text), slog.Int("code", code))
}

func (f *Feed) currentEmit() host.EmitFunc {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.emit != nil {
		return f.emit
	}
	return func(record.Sender, string, int) {}
}

// Emit implements host.ChatHook.
func (f *Feed) Emit() host.EmitFunc {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.emit
}

// SetEmit implements host.ChatHook.
func (f *Feed) SetEmit(fn host.EmitFunc) {
	f.mu.Lock()
	f.emit = fn
	f.mu.Unlock()
}

// Ready reports whether the IRC connection is up. Used as the bounded
// readiness probe when attaching the add-on.
func (f *Feed) Ready() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.connected
}

// Run joins the channel and blocks on the IRC connection until ctx is
// canceled.
func (f *Feed) Run(ctx context.Context) {
	// Handle context cancellation by closing the client
	done := make(chan struct{})
	go func() {
		<-ctx.Done()
		f.client.Disconnect()
		close(done)
	}()

	f.client.Join(f.channel)
	if err := f.client.Connect(); err != nil {
		slog.Error("twitch chat connect error", slog.Any("err", err))
	}
	<-done
}
