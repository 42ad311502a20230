package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/infrastructure/observability"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

// CameraPermissionMessage is shown when the capture device cannot be opened
const CameraPermissionMessage = "Unable to access webcam. Please ensure you have granted camera permissions."

// CaptureService runs camera sessions that feed frames to the sign detector.
// At most one inference per session is in flight; frames arriving meanwhile
// are dropped.
type CaptureService struct {
	source   providers.FrameSource
	detector providers.SignDetector
	interval time.Duration
	metrics  *observability.Metrics

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	sessions map[string]*captureSession
}

type captureSession struct {
	id        string
	startedAt time.Time
	device    providers.CaptureDevice
	cancel    context.CancelFunc
	done      chan struct{}
	inflight  sync.WaitGroup
	busy      atomic.Bool
	release   sync.Once
	processed atomic.Int64
	skipped   atomic.Int64

	mu        sync.Mutex
	detection *entities.SignDetection
}

// NewCaptureService creates a capture service reading a frame every interval
func NewCaptureService(source providers.FrameSource, detector providers.SignDetector, interval time.Duration, metrics *observability.Metrics) *CaptureService {
	ctx, cancel := context.WithCancel(context.Background())
	return &CaptureService{
		source:   source,
		detector: detector,
		interval: interval,
		metrics:  metrics,
		ctx:      ctx,
		cancel:   cancel,
		sessions: make(map[string]*captureSession),
	}
}

// Start opens the capture device and begins detection
func (s *CaptureService) Start(ctx context.Context) (*entities.CaptureSnapshot, error) {
	if s.ctx.Err() != nil {
		return nil, apperrors.NewConflictError("capture service is shut down")
	}

	device, err := s.source.Acquire(ctx)
	if err != nil {
		if errors.Is(err, providers.ErrPermissionDenied) {
			return nil, apperrors.NewForbiddenError(CameraPermissionMessage, err)
		}
		return nil, apperrors.NewInternalError("failed to open camera", err)
	}

	loopCtx, cancel := context.WithCancel(s.ctx)
	session := &captureSession{
		id:        uuid.New().String(),
		startedAt: time.Now(),
		device:    device,
		cancel:    cancel,
		done:      make(chan struct{}),
	}

	s.mu.Lock()
	if s.ctx.Err() != nil {
		s.mu.Unlock()
		cancel()
		session.releaseDevice()
		return nil, apperrors.NewConflictError("capture service is shut down")
	}
	s.sessions[session.id] = session
	s.mu.Unlock()

	go s.run(loopCtx, session)

	log.Info().Str("session_id", session.id).Dur("interval", s.interval).Msg("sign capture started")
	return session.snapshot(true), nil
}

// Snapshot returns the latest detection of a session
func (s *CaptureService) Snapshot(id string) (*entities.CaptureSnapshot, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("capture session not found")
	}
	return session.snapshot(true), nil
}

// Stop ends a session, waits for its loop to exit and releases the device
func (s *CaptureService) Stop(id string) (*entities.CaptureSnapshot, error) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return nil, apperrors.NewNotFoundError("capture session not found")
	}

	s.stop(session)
	log.Info().
		Str("session_id", id).
		Int64("frames_processed", session.processed.Load()).
		Int64("frames_skipped", session.skipped.Load()).
		Msg("sign capture stopped")
	return session.snapshot(false), nil
}

// Close stops every session and rejects new ones
func (s *CaptureService) Close() {
	s.mu.Lock()
	s.cancel()
	sessions := make([]*captureSession, 0, len(s.sessions))
	for id, session := range s.sessions {
		sessions = append(sessions, session)
		delete(s.sessions, id)
	}
	s.mu.Unlock()

	for _, session := range sessions {
		s.stop(session)
	}
}

func (s *CaptureService) stop(session *captureSession) {
	session.cancel()
	<-session.done
	session.releaseDevice()
}

func (s *CaptureService) run(ctx context.Context, session *captureSession) {
	defer close(session.done)
	defer session.releaseDevice()
	defer session.inflight.Wait()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.processFrame(ctx, session)
		}
	}
}

func (s *CaptureService) processFrame(ctx context.Context, session *captureSession) {
	if !s.detector.Loaded() {
		return
	}
	if !session.busy.CompareAndSwap(false, true) {
		session.skipped.Add(1)
		observability.RecordFramesSkipped(ctx, s.metrics, 1)
		return
	}

	frame, ok := session.device.ReadFrame(ctx)
	if !ok {
		session.busy.Store(false)
		return
	}

	session.inflight.Add(1)
	go func() {
		defer session.inflight.Done()
		defer session.busy.Store(false)

		detection, err := s.detector.Detect(ctx, frame)
		if ctx.Err() != nil {
			return
		}
		sign := ""
		if detection != nil {
			sign = detection.Sign
		}
		observability.RecordSignInference(ctx, s.metrics, sign, err)
		if err != nil {
			log.Warn().Err(err).Str("session_id", session.id).Msg("error detecting sign")
			return
		}

		session.processed.Add(1)
		session.mu.Lock()
		session.detection = detection
		session.mu.Unlock()
	}()
}

func (c *captureSession) releaseDevice() {
	c.release.Do(func() {
		if err := c.device.Release(); err != nil {
			log.Warn().Err(err).Str("session_id", c.id).Msg("failed to release camera")
		}
	})
}

func (c *captureSession) snapshot(active bool) *entities.CaptureSnapshot {
	snap := &entities.CaptureSnapshot{
		ID:              c.id,
		Active:          active,
		FramesProcessed: c.processed.Load(),
		FramesSkipped:   c.skipped.Load(),
		StartedAt:       c.startedAt,
	}
	if !active {
		// Stopping the camera clears the detection display.
		return snap
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.detection != nil {
		snap.DetectedSign = c.detection.Sign
		snap.Meaning = c.detection.Meaning
		snap.ConfidenceScore = c.detection.Percent()
	}
	return snap
}
