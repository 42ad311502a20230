package services

import (
	"slices"

	"github.com/carebridge/backend/internal/domain/entities"
)

type symptomRule struct {
	requires   []string
	prediction entities.ConditionPrediction
}

var symptomRules = []symptomRule{
	{
		requires: []string{"Chest pain"},
		prediction: entities.ConditionPrediction{
			Condition:   "Angina Pectoris",
			Confidence:  78,
			Description: "Chest pain caused by reduced blood flow to the heart muscles.",
			Recommendations: []string{
				"Immediate medical attention required",
				"Avoid physical exertion",
				"Take prescribed nitrates if available",
			},
			Urgency: entities.UrgencyHigh,
		},
	},
	{
		requires: []string{"Headache", "Fever"},
		prediction: entities.ConditionPrediction{
			Condition:   "Viral Infection",
			Confidence:  65,
			Description: "Common viral infection causing systemic symptoms.",
			Recommendations: []string{
				"Rest and hydration",
				"Over-the-counter pain relievers",
				"Monitor temperature",
			},
			Urgency: entities.UrgencyMedium,
		},
	},
	{
		requires: []string{"Dizziness", "Confusion"},
		prediction: entities.ConditionPrediction{
			Condition:   "Neurological Concern",
			Confidence:  82,
			Description: "Potential neurological issue requiring evaluation.",
			Recommendations: []string{
				"Seek immediate medical evaluation",
				"Avoid driving or operating machinery",
				"Have someone accompany you",
			},
			Urgency: entities.UrgencyHigh,
		},
	},
}

var generalMalaise = entities.ConditionPrediction{
	Condition:   "General Malaise",
	Confidence:  45,
	Description: "Non-specific symptoms that may indicate minor illness.",
	Recommendations: []string{
		"Monitor symptoms",
		"Rest and proper nutrition",
		"Consult healthcare provider if symptoms persist",
	},
	Urgency: entities.UrgencyLow,
}

// EvaluateSymptoms applies the symptom rules in order to the selected symptom
// names. Names match exactly. The result is never empty: when no rule fires
// it holds the General Malaise fallback.
func EvaluateSymptoms(selected []string) []entities.ConditionPrediction {
	var predictions []entities.ConditionPrediction
	for _, rule := range symptomRules {
		if containsAll(selected, rule.requires) {
			predictions = append(predictions, clonePrediction(rule.prediction))
		}
	}

	if len(predictions) == 0 {
		predictions = append(predictions, clonePrediction(generalMalaise))
	}
	return predictions
}

func containsAll(selected, required []string) bool {
	for _, name := range required {
		if !slices.Contains(selected, name) {
			return false
		}
	}
	return true
}

func clonePrediction(p entities.ConditionPrediction) entities.ConditionPrediction {
	p.Recommendations = slices.Clone(p.Recommendations)
	return p
}
