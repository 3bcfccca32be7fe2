package domain

import "context"

// Speaker defines the interface (port) for text-to-speech synthesis.
// Implementations report an unavailable or failing backend with a
// speech error; synthesis failures never touch lesson or quiz state,
// only the audio request itself.
type Speaker interface {
	// Synthesize renders text as MP3 audio for the given BCP-47 language
	// tag (e.g. "ko-KR", "en-US").
	Synthesize(ctx context.Context, text, languageTag string) ([]byte, error)
}
