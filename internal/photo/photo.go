package photo

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// EventKind names the clock event a photo belongs to.
type EventKind string

const (
	EventClockIn  EventKind = "clock_in"
	EventClockOut EventKind = "clock_out"
)

// Capture is the photo collaborator consumed by the lifecycle engine. An
// empty handle means "no photo" and is a legal outcome; implementations must
// not fail a clock operation just because no camera is available.
type Capture interface {
	Capture(ctx context.Context, employeeID int64, event EventKind) (handle string, err error)
}

// FrameSource produces one raw camera frame. A (nil, nil) frame signals that
// the camera is unavailable right now.
type FrameSource interface {
	Frame(ctx context.Context) ([]byte, error)
}

// FileCapture writes frames to a directory and returns the file name as the
// photo handle.
type FileCapture struct {
	dir    string
	source FrameSource
}

// NewFileCapture creates a FileCapture storing photos under dir.
func NewFileCapture(dir string, source FrameSource) (*FileCapture, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create photo dir %s: %w", dir, err)
	}
	return &FileCapture{dir: dir, source: source}, nil
}

func (f *FileCapture) Capture(ctx context.Context, employeeID int64, event EventKind) (string, error) {
	frame, err := f.source.Frame(ctx)
	if err != nil {
		log.Printf("Photo capture degraded for employee %d (%s): %v", employeeID, event, err)
		return "", nil
	}
	if len(frame) == 0 {
		return "", nil
	}

	name := fmt.Sprintf("%d_%s_%s.jpg", employeeID, event, uuid.NewString())
	if err := os.WriteFile(filepath.Join(f.dir, name), frame, 0o644); err != nil {
		log.Printf("Photo write failed for employee %d (%s): %v", employeeID, event, err)
		return "", nil
	}
	return name, nil
}

// SpoolSource reads the most recent frame dropped by the tablet camera app
// at a fixed path. A missing or empty spool file means no camera frame is
// available.
type SpoolSource struct {
	Path string
}

func (s SpoolSource) Frame(ctx context.Context) ([]byte, error) {
	frame, err := os.ReadFile(s.Path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return frame, nil
}

// Disabled is the no-camera implementation; every capture is a legal
// no-photo outcome.
type Disabled struct{}

func (Disabled) Capture(ctx context.Context, employeeID int64, event EventKind) (string, error) {
	return "", nil
}
