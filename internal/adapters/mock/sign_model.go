package mock

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/pkg/mockstub"
)

// ErrModelNotLoaded is returned by Detect before Load has completed.
var ErrModelNotLoaded = providers.ErrModelNotLoaded

// SignModelConfig is the explicit configuration of a SignModel.
type SignModelConfig struct {
	Vocabulary     []entities.SignGesture
	LoadDelay      time.Duration
	InferenceDelay time.Duration
	// Rand drives gesture and confidence picks. Nil uses a time-seeded source.
	Rand *rand.Rand
}

// SignModel is a stand-in detector that picks a random gesture per frame
type SignModel struct {
	vocabulary     []entities.SignGesture
	loadDelay      time.Duration
	inferenceDelay time.Duration

	rngMu sync.Mutex
	rng   *rand.Rand

	mu     sync.Mutex
	load   *mockstub.Task[struct{}]
	loaded bool
}

// NewSignModel creates an unloaded model
func NewSignModel(cfg SignModelConfig) providers.SignDetector {
	rng := cfg.Rand
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	vocabulary := make([]entities.SignGesture, len(cfg.Vocabulary))
	copy(vocabulary, cfg.Vocabulary)

	return &SignModel{
		vocabulary:     vocabulary,
		loadDelay:      cfg.LoadDelay,
		inferenceDelay: cfg.InferenceDelay,
		rng:            rng,
	}
}

// NewSeededRand returns a deterministic source for reproducible detections.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Load simulates fetching the model weights. Concurrent and repeated callers
// share a single load, which keeps running when a caller stops waiting.
func (m *SignModel) Load(ctx context.Context) error {
	m.mu.Lock()
	if m.loaded {
		m.mu.Unlock()
		return nil
	}
	if m.load == nil {
		m.load = mockstub.Resolve(context.Background(), m.loadDelay, struct{}{})
	}
	task := m.load
	m.mu.Unlock()

	_, err := task.Wait(ctx)
	if err != nil {
		return err
	}

	m.mu.Lock()
	if !m.loaded {
		m.loaded = true
		log.Info().Int("gestures", len(m.vocabulary)).Msg("Sign language model loaded")
	}
	m.mu.Unlock()
	return nil
}

// Loaded reports whether the model is ready
func (m *SignModel) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Detect simulates one inference: a uniform gesture pick with a confidence
// in [0.7, 1.0).
func (m *SignModel) Detect(ctx context.Context, frame entities.Frame) (*entities.SignDetection, error) {
	if !m.Loaded() {
		return nil, ErrModelNotLoaded
	}
	if len(m.vocabulary) == 0 {
		return nil, errors.New("sign model has an empty vocabulary")
	}

	return mockstub.Start(ctx, m.inferenceDelay, func(context.Context) (*entities.SignDetection, error) {
		gesture, confidence := m.pick()
		return &entities.SignDetection{
			Sign:       gesture.Sign,
			Meaning:    gesture.Meaning,
			Confidence: confidence,
		}, nil
	}).Wait(ctx)
}

func (m *SignModel) pick() (entities.SignGesture, float64) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	gesture := m.vocabulary[m.rng.IntN(len(m.vocabulary))]
	confidence := m.rng.Float64()*0.3 + 0.7
	if confidence >= 1 {
		confidence = math.Nextafter(1, 0)
	}
	return gesture, confidence
}

// Vocabulary lists the gestures the model can emit
func (m *SignModel) Vocabulary() []entities.SignGesture {
	out := make([]entities.SignGesture, len(m.vocabulary))
	copy(out, m.vocabulary)
	return out
}
