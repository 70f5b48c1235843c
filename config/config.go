// Package config loads environment variables and provides a typed Config used
// across the add-on. It applies sensible defaults so the binary can run
// locally with minimal setup. For required chat-feed credentials, use
// ValidateFeedReady.
package config

import (
	"fmt"
	"os"
	"time"
)

type Config struct {
	// Twitch chat feed (reference host adapter)
	TwitchChannel     string
	TwitchBotUsername string
	TwitchOAuthToken  string

	// Export
	TranscriptPrefix   string
	DataDir            string
	ExportReleaseDelay time.Duration

	// Host readiness
	HostReadyTimeout time.Duration
	HostReadyPoll    time.Duration

	// HTTP
	HTTPAddr string
}

// Load reads environment variables and applies defaults. It doesn't fail if
// Twitch creds are missing; use ValidateFeedReady() when you require the live
// chat feed. Without them the binary still serves the menu actions and the
// fallback export path.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.TwitchChannel = os.Getenv("TWITCH_CHANNEL")
	cfg.TwitchBotUsername = os.Getenv("TWITCH_BOT_USERNAME")
	cfg.TwitchOAuthToken = os.Getenv("TWITCH_OAUTH_TOKEN")

	cfg.TranscriptPrefix = os.Getenv("CHAT_TRANSCRIPT_PREFIX")
	if cfg.TranscriptPrefix == "" {
		cfg.TranscriptPrefix = "game-chat-log"
	}

	cfg.DataDir = os.Getenv("DATA_DIR")
	if cfg.DataDir == "" {
		cfg.DataDir = "data"
	}

	var err error
	cfg.ExportReleaseDelay, err = envDuration("EXPORT_RELEASE_DELAY", 250*time.Millisecond)
	if err != nil {
		return nil, err
	}
	cfg.HostReadyTimeout, err = envDuration("HOST_READY_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.HostReadyPoll, err = envDuration("HOST_READY_POLL", 250*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cfg.HTTPAddr = os.Getenv("HTTP_ADDR")
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	return cfg, nil
}

// ValidateFeedReady checks required fields for the live Twitch chat feed.
func (c *Config) ValidateFeedReady() error {
	if c.TwitchChannel == "" || c.TwitchBotUsername == "" || c.TwitchOAuthToken == "" {
		return fmt.Errorf("missing twitch env: require TWITCH_CHANNEL, TWITCH_BOT_USERNAME, TWITCH_OAUTH_TOKEN")
	}
	return nil
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", key, d)
	}
	return d, nil
}
