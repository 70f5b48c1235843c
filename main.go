// Command chat-tap runs the chat capture add-on against a reference Twitch
// chat feed. It:
//   - Loads configuration and initializes structured logging.
//   - Installs the chat interceptor on the feed's emission hook (capture
//     degrades gracefully when no feed is configured).
//   - Registers the export/clear menu page; for this headless host the
//     actions are mounted as POST routes on the ops server.
//   - Exposes a minimal HTTP server with /healthz, /status, and /metrics.
//
// Shutdown is graceful on SIGINT/SIGTERM.
package main

import (
	"context"
	"log/slog"
	"net/http"
	_ "net/http/pprof" //nolint:gosec // G108: pprof endpoints enabled only when ENABLE_PPROF=1
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/onnwee/chat-tap/addon"
	"github.com/onnwee/chat-tap/config"
	"github.com/onnwee/chat-tap/export"
	"github.com/onnwee/chat-tap/host/twitchfeed"
	"github.com/onnwee/chat-tap/server"
	"github.com/onnwee/chat-tap/telemetry"
)

// logNotifier surfaces user notices as log lines, the closest a headless run
// has to a blocking dialog.
type logNotifier struct{}

func (logNotifier) Notice(msg string) {
	slog.Info("notice", slog.String("msg", msg))
}

func main() {
	// Load .env file if present (local dev convenience only; production relies on real env)
	_ = godotenv.Load(".env")

	// Configure logging (level + format). Defaults: level=info, format=text.
	lvl := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	case "info", "":
		// keep default
	default:
		// unknown level -> keep info but note once using temporary logger
		tmp := slog.New(slog.NewTextHandler(os.Stdout, nil))
		tmp.Warn("unknown LOG_LEVEL, using info", slog.String("value", os.Getenv("LOG_LEVEL")))
	}
	format := strings.ToLower(os.Getenv("LOG_FORMAT")) // text | json
	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	default:
		handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	}
	slog.SetDefault(slog.New(handler))
	slog.Info("logger initialized", slog.String("level", lvl.String()), slog.String("format", map[bool]string{true: "json", false: "text"}[format == "json"]))

	// Config
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", slog.Any("err", err))
		os.Exit(1)
	}

	// Metrics / telemetry init
	telemetry.Init()

	// Initialize OpenTelemetry tracing (optional; requires OTEL_EXPORTER_OTLP_ENDPOINT)
	shutdown, err := telemetry.InitTracing("chat-tap", "1.0.0")
	if err != nil {
		slog.Error("tracing initialization failed", slog.Any("err", err))
		os.Exit(1)
	}
	defer shutdown()

	// Root context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The add-on instance lives for the whole session; collaborators receive
	// it explicitly rather than through a package-level global.
	ad := addon.New(addon.Options{
		Prefix: cfg.TranscriptPrefix,
		Exporter: &export.Exporter{
			Sink:         &export.DirSink{Dir: cfg.DataDir},
			ReleaseDelay: cfg.ExportReleaseDelay,
		},
		Notifier:     logNotifier{},
		ReadyPoll:    cfg.HostReadyPoll,
		ReadyTimeout: cfg.HostReadyTimeout,
	})

	// Ops server doubles as the menu registrar for this headless host.
	handlers := server.NewHandlers(ad)

	if err := cfg.ValidateFeedReady(); err != nil {
		slog.Info("chat feed disabled (missing twitch creds)", slog.Any("reason", err))
		// No emission hook: capture stays off, menu and fallback export remain.
		if err := ad.Attach(ctx, nil, handlers, nil); err != nil {
			slog.Error("addon attach failed", slog.Any("err", err))
			os.Exit(1)
		}
	} else {
		feed := twitchfeed.New(cfg.TwitchChannel, cfg.TwitchBotUsername, cfg.TwitchOAuthToken)
		go feed.Run(ctx)
		go func() {
			// Attach blocks on the bounded readiness wait for the IRC connection.
			if err := ad.Attach(ctx, feed, handlers, feed.Ready); err != nil {
				slog.Error("addon attach failed; chat capture unavailable", slog.Any("err", err))
			}
		}()
	}

	// Enable pprof profiling endpoints in debug mode (ENABLE_PPROF=1)
	if os.Getenv("ENABLE_PPROF") == "1" {
		pprofAddr := os.Getenv("PPROF_ADDR")
		if pprofAddr == "" {
			pprofAddr = "localhost:6060"
		}
		go func() {
			slog.Info("pprof profiling enabled", slog.String("addr", pprofAddr))
			// Use an http.Server with timeouts to satisfy G114 and avoid DoS risks
			srv := &http.Server{
				Addr:              pprofAddr,
				Handler:           nil, // default mux exposes /debug/pprof
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      10 * time.Second,
				IdleTimeout:       60 * time.Second,
			}
			if err := srv.ListenAndServe(); err != nil {
				slog.Error("pprof server error", slog.Any("err", err))
			}
		}()
	}

	// HTTP server (health/status/metrics/actions)
	go func() {
		if err := server.Start(ctx, handlers, cfg.HTTPAddr); err != nil {
			slog.Error("http server exited with error", slog.Any("err", err))
		}
	}()

	// Block until shutdown signal
	<-ctx.Done()
	slog.Info("shutting down")
}
