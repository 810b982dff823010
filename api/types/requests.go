package types

// AudioRequest asks for an audio asset for arbitrary text
type AudioRequest struct {
	Text     string `json:"text" binding:"required" example:"Django models map Python classes to database tables"`
	Language string `json:"language,omitempty" example:"en"`
}

// VoiceRequest carries a transcribed voice command
type VoiceRequest struct {
	Command string `json:"command" binding:"required" example:"kibena search models"`
}
