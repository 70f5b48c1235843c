package host

import (
	"context"
	"errors"
	"time"
)

// ErrNotReady is returned when the host does not become ready within the
// maximum wait.
var ErrNotReady = errors.New("host not ready")

// Await polls probe every interval until it reports true. It fails with
// ErrNotReady once maxWait elapses and with the context error on
// cancellation, so callers never spin forever waiting for a host that will
// not appear.
func Await(ctx context.Context, probe func() bool, interval, maxWait time.Duration) error {
	if probe == nil {
		return ErrNotReady
	}
	if probe() {
		return nil
	}
	deadline := time.NewTimer(maxWait)
	defer deadline.Stop()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrNotReady
		case <-ticker.C:
			if probe() {
				return nil
			}
		}
	}
}
