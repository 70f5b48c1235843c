// Package export materializes transcript text as a downloadable file
// artifact with a timestamped name.
package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/onnwee/chat-tap/telemetry"
)

// FilenameLayout shapes the timestamp embedded in artifact names. Colons are
// not filename-safe, so the time-of-day separators are dashes.
const FilenameLayout = "2006-01-02T15-04-05"

// MIMEType is the content type of every exported transcript.
const MIMEType = "text/plain"

// DefaultReleaseDelay is the grace period between handing an artifact off and
// releasing its handle, long enough for the transfer to start.
const DefaultReleaseDelay = 250 * time.Millisecond

// Handle is a live download artifact. Release frees whatever temporary
// resource backs it and is safe to call once.
type Handle interface {
	Release()
}

// Sink hands a named artifact to the user-facing download mechanism.
type Sink interface {
	Offer(name, mime string, data []byte) (Handle, error)
}

// Exporter names artifacts and drives the sink. Now is the filename clock
// (defaults to time.Now); ReleaseDelay defaults to DefaultReleaseDelay.
type Exporter struct {
	Sink         Sink
	Now          func() time.Time
	ReleaseDelay time.Duration
}

// Filename returns <prefix>-<YYYY-MM-DDTHH-MM-SS>.txt for the given instant.
func Filename(prefix string, t time.Time) string {
	return prefix + "-" + t.Format(FilenameLayout) + ".txt"
}

// Export offers text to the sink under a timestamped name and schedules the
// handle release after the grace delay. The release fires on every successful
// path, whether the sink transfers synchronously or asynchronously; a sink
// error produces no handle and no file. Returns the artifact name.
func (e *Exporter) Export(text, prefix string) (string, error) {
	now := time.Now
	if e.Now != nil {
		now = e.Now
	}
	name := Filename(prefix, now())

	var (
		h   Handle
		err error
	)
	telemetry.TimeFunc(telemetry.ExportDuration, func() {
		h, err = e.Sink.Offer(name, MIMEType, []byte(text))
	})
	if err != nil {
		telemetry.CountExportFailed()
		return "", fmt.Errorf("offer artifact %s: %w", name, err)
	}

	delay := e.ReleaseDelay
	if delay <= 0 {
		delay = DefaultReleaseDelay
	}
	if h != nil {
		time.AfterFunc(delay, h.Release)
	}
	telemetry.CountExportSucceeded()
	return name, nil
}

// DirSink writes artifacts into a directory, the download surface for a
// headless host. Offer stages the payload under a temporary name and renames
// it into place so a failure mid-write never leaves a partial transcript
// visible.
type DirSink struct {
	Dir string
}

// Offer implements Sink.
func (s *DirSink) Offer(name, _ string, data []byte) (Handle, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return nil, err
	}
	tmp := filepath.Join(s.Dir, "."+uuid.NewString()+".tmp")
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return nil, err
	}
	final := filepath.Join(s.Dir, name)
	if err := os.Rename(tmp, final); err != nil {
		_ = os.Remove(tmp)
		return nil, err
	}
	return dirHandle{}, nil
}

// dirHandle has nothing left to free: the rename already moved the only copy
// into place.
type dirHandle struct{}

func (dirHandle) Release() {}
