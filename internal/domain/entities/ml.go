package entities

// ModelInfo describes the remote disease prediction model.
type ModelInfo struct {
	TotalSymptoms     int      `json:"total_symptoms"`
	AvailableSymptoms []string `json:"available_symptoms"`
	ModelAccuracy     float64  `json:"model_accuracy"`
	IsTrained         bool     `json:"is_trained"`
}

// MLPrediction is the answer of the remote symptom classifier.
type MLPrediction struct {
	PredictedDisease  string   `json:"predicted_disease"`
	Confidence        float64  `json:"confidence"`
	MatchedSymptoms   []string `json:"matched_symptoms"`
	UnmatchedSymptoms []string `json:"unmatched_symptoms"`
}

// LegacyPredictionRequest is the body of the age-aware text predictor.
type LegacyPredictionRequest struct {
	Age      int    `json:"age"`
	Symptoms string `json:"symptoms"`
}

// LegacyPrediction is the answer of the age-aware text predictor.
type LegacyPrediction struct {
	Disease string `json:"disease"`
}
