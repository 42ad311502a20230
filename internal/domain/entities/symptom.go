package entities

// Symptom is one selectable entry of the symptom checker.
type Symptom struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// Urgency ranks how quickly a predicted condition needs attention.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ConditionPrediction is a condition emitted by the symptom rules.
type ConditionPrediction struct {
	Condition       string   `json:"condition"`
	Confidence      int      `json:"confidence"`
	Description     string   `json:"description"`
	Recommendations []string `json:"recommendations"`
	Urgency         Urgency  `json:"urgency"`
}

// PredictionRequest is the input of a symptom analysis.
type PredictionRequest struct {
	Age      int      `json:"age"`
	Symptoms []string `json:"symptoms"`
}

// SelectedNames returns the names of the selected symptoms, in order.
func SelectedNames(symptoms []Symptom) []string {
	names := make([]string, 0, len(symptoms))
	for _, s := range symptoms {
		if s.Selected {
			names = append(names, s.Name)
		}
	}
	return names
}
