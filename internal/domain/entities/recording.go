package entities

import "time"

// RecordingStatus represents the state of a voice recording
type RecordingStatus string

const (
	RecordingStatusRecording RecordingStatus = "recording"
	RecordingStatusCompleted RecordingStatus = "completed"
	RecordingStatusStopped   RecordingStatus = "stopped"
	RecordingStatusFailed    RecordingStatus = "failed"
)

// VoiceProfile selects which panel's voice input is simulated.
type VoiceProfile string

const (
	VoiceProfileTranslation VoiceProfile = "translation"
	VoiceProfileSign        VoiceProfile = "sign"
)

// Recording is a voice capture awaiting transcription.
type Recording struct {
	ID         string          `json:"id"`
	Profile    VoiceProfile    `json:"profile"`
	Status     RecordingStatus `json:"status"`
	Transcript string          `json:"transcript,omitempty"`
	StartedAt  time.Time       `json:"started_at"`
}
