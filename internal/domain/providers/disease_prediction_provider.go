package providers

import (
	"context"

	"github.com/carebridge/backend/internal/domain/entities"
)

// DiseasePredictionProvider defines the external ML prediction services
type DiseasePredictionProvider interface {
	// ModelInfo describes the symptom classifier
	ModelInfo(ctx context.Context) (*entities.ModelInfo, error)

	// Symptoms lists every symptom the classifier knows
	Symptoms(ctx context.Context) ([]string, error)

	// Predict classifies a list of symptoms
	Predict(ctx context.Context, symptoms []string) (*entities.MLPrediction, error)

	// PredictLegacy classifies free-text symptoms for a patient age
	PredictLegacy(ctx context.Context, req entities.LegacyPredictionRequest) (*entities.LegacyPrediction, error)
}
