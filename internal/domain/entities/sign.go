package entities

import "time"

// SignGesture is one entry of the sign detector vocabulary.
type SignGesture struct {
	Sign    string `json:"sign"`
	Meaning string `json:"meaning"`
}

// SignDetection is the output of one inference.
type SignDetection struct {
	Sign       string  `json:"sign"`
	Meaning    string  `json:"meaning"`
	Confidence float64 `json:"confidence"`
}

// Percent returns the confidence as a truncated integer percentage.
func (d *SignDetection) Percent() int {
	return int(d.Confidence * 100)
}

// SignLanguage is a supported sign language.
type SignLanguage struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// SignAnimation describes the rendering of a text in sign language.
type SignAnimation struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	Language    string `json:"language"`
	Description string `json:"description"`
	Duration    int    `json:"duration"`
}

// Frame is a captured camera image.
type Frame struct {
	Width      int       `json:"width"`
	Height     int       `json:"height"`
	Data       []byte    `json:"data,omitempty"`
	CapturedAt time.Time `json:"captured_at"`
}

// CaptureSnapshot is the observable state of a running capture session.
type CaptureSnapshot struct {
	ID              string    `json:"id"`
	Active          bool      `json:"active"`
	DetectedSign    string    `json:"detected_sign,omitempty"`
	Meaning         string    `json:"meaning,omitempty"`
	ConfidenceScore int       `json:"confidence_score"`
	FramesProcessed int64     `json:"frames_processed"`
	FramesSkipped   int64     `json:"frames_skipped"`
	StartedAt       time.Time `json:"started_at"`
}
