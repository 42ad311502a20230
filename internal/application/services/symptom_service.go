package services

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/carebridge/backend/internal/adapters/fixtures"
	"github.com/carebridge/backend/internal/domain/entities"
	"github.com/carebridge/backend/internal/infrastructure/observability"
	apperrors "github.com/carebridge/backend/pkg/errors"
	"github.com/carebridge/backend/pkg/mockstub"
)

// SymptomService runs the rule-based symptom checker
type SymptomService struct {
	analysisDelay time.Duration
	metrics       *observability.Metrics
}

// NewSymptomService creates a symptom service whose analyses take analysisDelay
func NewSymptomService(analysisDelay time.Duration, metrics *observability.Metrics) *SymptomService {
	return &SymptomService{
		analysisDelay: analysisDelay,
		metrics:       metrics,
	}
}

// Catalog returns a fresh copy of the symptom catalog with nothing selected
func (s *SymptomService) Catalog() []entities.Symptom {
	return fixtures.Symptoms()
}

// Toggle flips the selection of the symptom with the given id. It reports
// whether a symptom matched.
func (s *SymptomService) Toggle(symptoms []entities.Symptom, id string) bool {
	for i := range symptoms {
		if symptoms[i].ID == id {
			symptoms[i].Selected = !symptoms[i].Selected
			return true
		}
	}
	return false
}

// Predict evaluates the symptom rules after the simulated analysis delay.
// Cancelling ctx abandons the analysis.
func (s *SymptomService) Predict(ctx context.Context, req entities.PredictionRequest) ([]entities.ConditionPrediction, error) {
	if req.Age <= 0 {
		return nil, apperrors.NewValidationError("age must be a positive number")
	}
	if len(req.Symptoms) == 0 {
		return nil, apperrors.NewValidationError("Please select at least one symptom")
	}

	symptoms := append([]string(nil), req.Symptoms...)
	task := mockstub.Start(ctx, s.analysisDelay, func(context.Context) ([]entities.ConditionPrediction, error) {
		return EvaluateSymptoms(symptoms), nil
	})

	predictions, err := task.Wait(ctx)
	observability.RecordPrediction(ctx, s.metrics, "rules", err)
	if err != nil {
		task.Cancel()
		return nil, apperrors.NewCancelledError("symptom analysis was cancelled", err)
	}

	log.Debug().
		Int("age", req.Age).
		Strs("symptoms", symptoms).
		Int("predictions", len(predictions)).
		Msg("symptom analysis completed")
	return predictions, nil
}
