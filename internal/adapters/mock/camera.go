package mock

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
)

// ErrPermissionDenied is returned when camera access is refused.
var ErrPermissionDenied = providers.ErrPermissionDenied

// Camera is a synthetic video source producing blank 640x480 frames
type Camera struct {
	denied   atomic.Bool
	acquired atomic.Int64
	released atomic.Int64
}

// NewCamera creates a synthetic camera that grants access
func NewCamera() *Camera {
	return &Camera{}
}

var _ providers.FrameSource = (*Camera)(nil)

// Deny makes subsequent Acquire calls fail with ErrPermissionDenied
func (c *Camera) Deny(denied bool) {
	c.denied.Store(denied)
}

// Active returns the number of acquired handles not yet released
func (c *Camera) Active() int64 {
	return c.acquired.Load() - c.released.Load()
}

// Acquire opens a new handle on the camera
func (c *Camera) Acquire(ctx context.Context) (providers.CaptureDevice, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if c.denied.Load() {
		return nil, ErrPermissionDenied
	}
	c.acquired.Add(1)
	return &cameraHandle{camera: c}, nil
}

type cameraHandle struct {
	camera  *Camera
	once    sync.Once
	stopped atomic.Bool
}

func (h *cameraHandle) ReadFrame(ctx context.Context) (entities.Frame, bool) {
	if h.stopped.Load() || ctx.Err() != nil {
		return entities.Frame{}, false
	}
	return entities.Frame{
		Width:      640,
		Height:     480,
		CapturedAt: time.Now(),
	}, true
}

func (h *cameraHandle) Release() error {
	h.once.Do(func() {
		h.stopped.Store(true)
		h.camera.released.Add(1)
		log.Debug().Msg("Camera tracks stopped")
	})
	return nil
}
