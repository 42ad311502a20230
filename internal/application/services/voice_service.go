package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	apperrors "github.com/carebridge/backend/pkg/errors"
	"github.com/carebridge/backend/pkg/mockstub"
)

const (
	// recordingRetention is how long a finished or stopped recording stays
	// readable after it is first seen done.
	recordingRetention  = 10 * time.Minute
	recordingSweepEvery = time.Minute
)

type recordingEntry struct {
	recording entities.Recording
	task      *mockstub.Task[string]
	doneAt    time.Time
}

// VoiceService simulates the record button of the translation and sign panels.
// A recording resolves to its recognizer's transcript unless it is stopped first.
type VoiceService struct {
	recognizers map[entities.VoiceProfile]providers.SpeechRecognizer

	mu         sync.Mutex
	recordings map[string]*recordingEntry
	now        func() time.Time
	lastSweep  time.Time
}

// NewVoiceService creates a voice service with one recognizer per profile
func NewVoiceService(recognizers map[entities.VoiceProfile]providers.SpeechRecognizer) *VoiceService {
	return &VoiceService{
		recognizers: recognizers,
		recordings:  make(map[string]*recordingEntry),
		now:         time.Now,
		lastSweep:   time.Now(),
	}
}

// Start begins a recording for profile
func (s *VoiceService) Start(profile entities.VoiceProfile) (*entities.Recording, error) {
	if profile == "" {
		profile = entities.VoiceProfileTranslation
	}
	recognizer, ok := s.recognizers[profile]
	if !ok {
		return nil, apperrors.NewValidationError("unknown voice profile: " + string(profile))
	}

	entry := &recordingEntry{
		recording: entities.Recording{
			ID:        uuid.New().String(),
			Profile:   profile,
			Status:    entities.RecordingStatusRecording,
			StartedAt: s.now(),
		},
		task: mockstub.Start(context.Background(), 0, recognizer.Recognize),
	}

	s.mu.Lock()
	s.sweepLocked(entry.recording.StartedAt)
	s.recordings[entry.recording.ID] = entry
	s.mu.Unlock()

	log.Debug().Str("recording_id", entry.recording.ID).Str("profile", string(profile)).Msg("recording started")

	rec := entry.recording
	return &rec, nil
}

// Stop cancels a recording. A stopped recording never yields a transcript;
// stopping a finished recording leaves its result untouched.
func (s *VoiceService) Stop(id string) (*entities.Recording, error) {
	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}
	entry.task.Cancel()
	<-entry.task.Done()
	return s.snapshot(entry), nil
}

// Status returns the current state of a recording without waiting
func (s *VoiceService) Status(id string) (*entities.Recording, error) {
	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}
	return s.snapshot(entry), nil
}

// Result waits for a recording to finish and returns it
func (s *VoiceService) Result(ctx context.Context, id string) (*entities.Recording, error) {
	entry, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if _, err := entry.task.Wait(ctx); err != nil && ctx.Err() != nil {
		return nil, apperrors.NewCancelledError("gave up waiting for recording", err)
	}
	return s.snapshot(entry), nil
}

// Close stops every pending recording
func (s *VoiceService) Close() {
	s.mu.Lock()
	entries := make([]*recordingEntry, 0, len(s.recordings))
	for _, entry := range s.recordings {
		entries = append(entries, entry)
	}
	s.mu.Unlock()

	for _, entry := range entries {
		entry.task.Cancel()
		<-entry.task.Done()
	}
}

// sweepLocked evicts recordings done for longer than recordingRetention.
// Callers hold mu.
func (s *VoiceService) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < recordingSweepEvery {
		return
	}
	s.lastSweep = now
	for id, entry := range s.recordings {
		select {
		case <-entry.task.Done():
		default:
			continue
		}
		if entry.doneAt.IsZero() {
			entry.doneAt = now
		} else if now.Sub(entry.doneAt) >= recordingRetention {
			delete(s.recordings, id)
		}
	}
}

func (s *VoiceService) get(id string) (*recordingEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.recordings[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("recording not found")
	}
	return entry, nil
}

func (s *VoiceService) snapshot(entry *recordingEntry) *entities.Recording {
	rec := entry.recording
	transcript, err := entry.task.Result()
	switch {
	case errors.Is(err, mockstub.ErrPending):
		rec.Status = entities.RecordingStatusRecording
	case errors.Is(err, mockstub.ErrCancelled):
		rec.Status = entities.RecordingStatusStopped
	case err != nil:
		rec.Status = entities.RecordingStatusFailed
	default:
		rec.Status = entities.RecordingStatusCompleted
		rec.Transcript = transcript
	}
	return &rec
}
