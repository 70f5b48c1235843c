package telemetry

import (
	"context"
	"testing"
	"time"
)

func TestInitIdempotent(t *testing.T) {
	Init()
	first := MessagesCaptured
	Init()
	if MessagesCaptured != first {
		t.Error("Init re-registered metrics")
	}
	if ExportDuration == nil || LogSizeGauge == nil || CaptureEnabledGauge == nil {
		t.Error("metrics not initialized")
	}
}

func TestHelpersTolerateNilMetrics(t *testing.T) {
	// Helpers are called from packages that may run before Init in tests.
	saved := MessagesCaptured
	MessagesCaptured = nil
	defer func() { MessagesCaptured = saved }()
	CountMessageCaptured() // must not panic
}

func TestCountersMove(t *testing.T) {
	Init()
	CountMessageCaptured()
	CountExportSucceeded()
	CountExportFailed()
	CountLogClear()
	SetLogSize(3)
	SetCaptureEnabled(true)
	SetCaptureEnabled(false)
}

func TestTimeFunc(t *testing.T) {
	d := TimeFunc(nil, func() { time.Sleep(5 * time.Millisecond) })
	if d < 5*time.Millisecond {
		t.Errorf("TimeFunc duration = %v, want >= 5ms", d)
	}
}

func TestCorrelation(t *testing.T) {
	ctx := context.Background()
	if GetCorrelation(ctx) != "" {
		t.Error("expected empty correlation on fresh context")
	}
	ctx = WithCorrelation(ctx, "abc-123")
	if got := GetCorrelation(ctx); got != "abc-123" {
		t.Errorf("GetCorrelation = %q", got)
	}
	if LoggerWithCorr(ctx) == nil {
		t.Error("LoggerWithCorr returned nil")
	}
}
