package tts

import (
	"context"

	"hangeul-path/internal/domain"
)

// NoopSpeaker is used when speech synthesis is not configured. Requests
// fail with a speech error instead of breaking startup.
type NoopSpeaker struct{}

func (NoopSpeaker) Synthesize(ctx context.Context, text, languageTag string) ([]byte, error) {
	return nil, domain.NewError(domain.CodeSpeechError, "speech synthesis is not configured", nil)
}
