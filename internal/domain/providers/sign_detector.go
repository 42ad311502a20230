package providers

import (
	"context"
	"errors"

	"github.com/carebridge/backend/internal/domain/entities"
)

var (
	// ErrModelNotLoaded is returned by Detect before Load has completed
	ErrModelNotLoaded = errors.New("sign model not loaded")

	// ErrPermissionDenied is returned by Acquire when device access is refused
	ErrPermissionDenied = errors.New("camera permission denied")
)

// SignDetector recognizes sign language gestures in camera frames
type SignDetector interface {
	// Load prepares the model. It is safe to call repeatedly; only the first call loads.
	Load(ctx context.Context) error

	// Loaded reports whether Load has completed successfully
	Loaded() bool

	// Detect runs one inference on frame. It fails before Load has completed.
	Detect(ctx context.Context, frame entities.Frame) (*entities.SignDetection, error)

	// Vocabulary lists the gestures the model can emit
	Vocabulary() []entities.SignGesture
}

// FrameSource grants access to a capture device
type FrameSource interface {
	// Acquire opens the device. Permission denial is reported as an error.
	Acquire(ctx context.Context) (CaptureDevice, error)
}

// CaptureDevice is an acquired camera handle
type CaptureDevice interface {
	// ReadFrame returns the current frame; ok is false while no frame is ready
	ReadFrame(ctx context.Context) (frame entities.Frame, ok bool)

	// Release stops every track of the device
	Release() error
}
