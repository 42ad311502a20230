package services

import (
	"context"
	"strings"

	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/domain/providers"
	"github.com/carebridge/backend/internal/infrastructure/observability"
	apperrors "github.com/carebridge/backend/pkg/errors"
)

const maxSymptomSuggestions = 50

// MLPredictionService fronts the external disease prediction services
type MLPredictionService struct {
	provider providers.DiseasePredictionProvider
	metrics  *observability.Metrics
}

// NewMLPredictionService creates a new ML prediction service
func NewMLPredictionService(provider providers.DiseasePredictionProvider, metrics *observability.Metrics) *MLPredictionService {
	return &MLPredictionService{
		provider: provider,
		metrics:  metrics,
	}
}

func (s *MLPredictionService) ModelInfo(ctx context.Context) (*entities.ModelInfo, error) {
	return s.provider.ModelInfo(ctx)
}

// SearchSymptoms returns at most 50 known symptoms containing term,
// case-insensitively. An empty term matches everything.
func (s *MLPredictionService) SearchSymptoms(ctx context.Context, term string) ([]string, error) {
	symptoms, err := s.provider.Symptoms(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.ToLower(term)
	out := make([]string, 0, min(len(symptoms), maxSymptomSuggestions))
	for _, symptom := range symptoms {
		if len(out) == maxSymptomSuggestions {
			break
		}
		if strings.Contains(strings.ToLower(symptom), term) {
			out = append(out, symptom)
		}
	}
	return out, nil
}

// Predict classifies the given symptoms with the remote model
func (s *MLPredictionService) Predict(ctx context.Context, symptoms []string) (*entities.MLPrediction, error) {
	cleaned := make([]string, 0, len(symptoms))
	for _, symptom := range symptoms {
		if symptom = strings.TrimSpace(symptom); symptom != "" {
			cleaned = append(cleaned, symptom)
		}
	}
	if len(cleaned) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one symptom")
	}

	prediction, err := s.provider.Predict(ctx, cleaned)
	observability.RecordPrediction(ctx, s.metrics, "ml", err)
	return prediction, err
}

// PredictLegacy classifies free-text symptoms with the age-aware model
func (s *MLPredictionService) PredictLegacy(ctx context.Context, req entities.LegacyPredictionRequest) (*entities.LegacyPrediction, error) {
	if req.Age <= 0 {
		return nil, apperrors.NewValidationError("age must be a positive number")
	}
	if strings.TrimSpace(req.Symptoms) == "" {
		return nil, apperrors.NewValidationError("symptoms are required")
	}

	prediction, err := s.provider.PredictLegacy(ctx, req)
	observability.RecordPrediction(ctx, s.metrics, "legacy", err)
	return prediction, err
}
