package dto

// SynthesizeRequest asks for spoken audio of a Korean text.
type SynthesizeRequest struct {
	Text string `json:"text"`
}
