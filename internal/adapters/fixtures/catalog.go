// Package fixtures holds the static sample data served by the API and the
// in-memory repositories built on it.
package fixtures

import "github.com/carebridge/backend/internal/domain/entities"

// Symptoms returns a fresh copy of the symptom checker catalog, all unselected.
func Symptoms() []entities.Symptom {
	return []entities.Symptom{
		{ID: "1", Name: "Chest pain"},
		{ID: "2", Name: "Shortness of breath"},
		{ID: "3", Name: "Headache"},
		{ID: "4", Name: "Fever"},
		{ID: "5", Name: "Nausea"},
		{ID: "6", Name: "Dizziness"},
		{ID: "7", Name: "Fatigue"},
		{ID: "8", Name: "Cough"},
		{ID: "9", Name: "Joint pain"},
		{ID: "10", Name: "Abdominal pain"},
		{ID: "11", Name: "Skin rash"},
		{ID: "12", Name: "Confusion"},
	}
}

// DirectoryOptions returns the specialty, location and language choices of
// the doctor directory.
func DirectoryOptions() entities.DirectoryOptions {
	return entities.DirectoryOptions{
		Specialties: []string{
			"Cardiology", "Neurology", "Pulmonology", "Gastroenterology",
			"Orthopedics", "Dermatology", "Ophthalmology", "Psychiatry",
			"Pediatrics", "Emergency Medicine", "Internal Medicine", "Family Medicine",
		},
		Locations: []string{
			"Downtown Medical Center", "Westside Hospital", "North Valley Clinic",
			"Southside Medical Plaza", "East End Healthcare", "Central Hospital",
		},
		Languages: []string{
			"English", "Spanish", "French", "Chinese", "Arabic", "Hindi", "Portuguese", "Russian",
		},
	}
}

// TranslationLanguages returns the languages offered by the conversation panel.
func TranslationLanguages() []entities.Language {
	return []entities.Language{
		{Code: "en", Name: "English"},
		{Code: "es", Name: "Spanish"},
		{Code: "fr", Name: "French"},
		{Code: "zh", Name: "Chinese"},
		{Code: "ar", Name: "Arabic"},
		{Code: "hi", Name: "Hindi"},
		{Code: "pt", Name: "Portuguese"},
		{Code: "ru", Name: "Russian"},
	}
}

// SignLanguages returns the sign languages offered by the sign panel.
func SignLanguages() []entities.SignLanguage {
	return []entities.SignLanguage{
		{Code: "asl", Name: "American Sign Language (ASL)"},
		{Code: "bsl", Name: "British Sign Language (BSL)"},
		{Code: "csl", Name: "Chinese Sign Language (CSL)"},
		{Code: "fsl", Name: "French Sign Language (LSF)"},
	}
}

// MedicalPhrases returns the quick phrases of the sign panel.
func MedicalPhrases() []string {
	return []string{
		"How are you feeling today?",
		"Where does it hurt?",
		"Can you describe the pain?",
		"When did the symptoms start?",
		"Do you have any allergies?",
		"Are you taking any medications?",
		"Please sit down",
		"Take a deep breath",
		"I need to examine you",
		"This might feel uncomfortable",
	}
}

// SignGestures returns the vocabulary of the mock sign model.
func SignGestures() []entities.SignGesture {
	return []entities.SignGesture{
		{Sign: "hello", Meaning: "Hello/Greeting"},
		{Sign: "thank_you", Meaning: "Thank you"},
		{Sign: "please", Meaning: "Please"},
		{Sign: "yes", Meaning: "Yes/Affirmative"},
		{Sign: "no", Meaning: "No/Negative"},
		{Sign: "help", Meaning: "Help/Assistance needed"},
		{Sign: "pain", Meaning: "Pain/Discomfort"},
		{Sign: "medicine", Meaning: "Medicine/Medication"},
		{Sign: "water", Meaning: "Water/Thirsty"},
		{Sign: "doctor", Meaning: "Doctor"},
		{Sign: "nurse", Meaning: "Nurse"},
		{Sign: "bathroom", Meaning: "Bathroom/Restroom"},
		{Sign: "emergency", Meaning: "Emergency/Urgent"},
	}
}
