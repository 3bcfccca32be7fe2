package service

import (
	"context"

	"hangeul-path/internal/domain"
)

// SpeechService defines the interface for pronunciation audio.
type SpeechService interface {
	// Pronounce returns MP3 audio of the given Korean text.
	Pronounce(ctx context.Context, text string) ([]byte, error)
}

type speechServiceImpl struct {
	speaker      domain.Speaker
	languageCode string
}

// NewSpeechService creates a new instance of SpeechService.
func NewSpeechService(speaker domain.Speaker, languageCode string) SpeechService {
	return &speechServiceImpl{speaker: speaker, languageCode: languageCode}
}

func (s *speechServiceImpl) Pronounce(ctx context.Context, text string) ([]byte, error) {
	if text == "" {
		return nil, domain.ValidationErrors{domain.NewMissingFieldError("text")}
	}
	return s.speaker.Synthesize(ctx, text, s.languageCode)
}
