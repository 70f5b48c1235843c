// Package telemetry provides Prometheus metrics and correlation-id aware logging helpers.
package telemetry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once sync.Once

	// Counters
	MessagesCaptured prometheus.Counter
	ExportsSucceeded prometheus.Counter
	ExportsFailed    prometheus.Counter
	LogClears        prometheus.Counter

	// Histograms (seconds)
	ExportDuration prometheus.Observer

	// Gauges
	LogSizeGauge        prometheus.Gauge
	CaptureEnabledGauge prometheus.Gauge // 1=intercept installed,0=disabled
)

// Init registers metrics (idempotent).
func Init() {
	once.Do(func() {
		MessagesCaptured = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_messages_captured_total", Help: "Number of chat messages appended to the capture log"})
		ExportsSucceeded = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_exports_succeeded_total", Help: "Number of transcript exports handed to the download sink"})
		ExportsFailed = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_exports_failed_total", Help: "Number of transcript exports that produced no artifact"})
		LogClears = promauto.NewCounter(prometheus.CounterOpts{Name: "chat_log_clears_total", Help: "Number of capture log clears"})
		ExportDuration = promauto.NewHistogram(prometheus.HistogramOpts{Name: "chat_export_duration_seconds", Help: "Transcript export duration seconds", Buckets: prometheus.DefBuckets})
		LogSizeGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "chat_capture_log_size", Help: "Current number of records in the capture log"})
		CaptureEnabledGauge = promauto.NewGauge(prometheus.GaugeOpts{Name: "chat_capture_enabled", Help: "Chat interception installed=1 disabled=0"})
	})
}

// CountMessageCaptured increments the capture counter.
func CountMessageCaptured() {
	if MessagesCaptured != nil {
		MessagesCaptured.Inc()
	}
}

// CountExportSucceeded increments the export success counter.
func CountExportSucceeded() {
	if ExportsSucceeded != nil {
		ExportsSucceeded.Inc()
	}
}

// CountExportFailed increments the export failure counter.
func CountExportFailed() {
	if ExportsFailed != nil {
		ExportsFailed.Inc()
	}
}

// CountLogClear increments the clear counter.
func CountLogClear() {
	if LogClears != nil {
		LogClears.Inc()
	}
}

// SetLogSize records the current capture log length.
func SetLogSize(n int) {
	if LogSizeGauge != nil {
		LogSizeGauge.Set(float64(n))
	}
}

// SetCaptureEnabled sets the capture gauge to 1 if interception is installed else 0.
func SetCaptureEnabled(on bool) {
	if CaptureEnabledGauge != nil {
		if on {
			CaptureEnabledGauge.Set(1)
		} else {
			CaptureEnabledGauge.Set(0)
		}
	}
}

// TimeFunc measures the duration of fn and records in observer if non-nil.
func TimeFunc(obs prometheus.Observer, fn func()) time.Duration {
	start := time.Now()
	fn()
	d := time.Since(start)
	if obs != nil {
		obs.Observe(d.Seconds())
	}
	return d
}

// Correlation ID helpers ----------------------------------------------------
type corrKeyType struct{}

var corrKey corrKeyType

// WithCorrelation returns a new context embedding correlation id (if absent) and the id.
func WithCorrelation(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, corrKey, id)
}

// GetCorrelation returns correlation id or empty string.
func GetCorrelation(ctx context.Context) string {
	v := ctx.Value(corrKey)
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// LoggerWithCorr returns a logger with corr attribute if present.
func LoggerWithCorr(ctx context.Context) *slog.Logger {
	if id := GetCorrelation(ctx); id != "" {
		return slog.Default().With(slog.String("corr", id))
	}
	return slog.Default()
}
