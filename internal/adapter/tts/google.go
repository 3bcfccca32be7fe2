// Package tts provides speech synthesis for lesson example sentences.
package tts

import (
	"context"
	"fmt"

	"hangeul-path/internal/domain"

	texttospeech "cloud.google.com/go/texttospeech/apiv1"
	texttospeechpb "google.golang.org/genproto/googleapis/cloud/texttospeech/v1"
)

// GoogleSpeaker implements domain.Speaker on the Google Cloud
// Text-to-Speech API. The client picks up credentials from
// GOOGLE_APPLICATION_CREDENTIALS.
type GoogleSpeaker struct {
	client *texttospeech.Client
}

// NewGoogleSpeaker creates a connected speaker.
func NewGoogleSpeaker(ctx context.Context) (*GoogleSpeaker, error) {
	client, err := texttospeech.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create tts client: %w", err)
	}
	return &GoogleSpeaker{client: client}, nil
}

// Synthesize returns MP3 audio for the given text. languageTag selects
// the voice, e.g. "ko-KR" for Korean example sentences.
func (s *GoogleSpeaker) Synthesize(ctx context.Context, text, languageTag string) ([]byte, error) {
	req := &texttospeechpb.SynthesizeSpeechRequest{
		Input: &texttospeechpb.SynthesisInput{
			InputSource: &texttospeechpb.SynthesisInput_Text{Text: text},
		},
		Voice: &texttospeechpb.VoiceSelectionParams{
			LanguageCode: languageTag,
			SsmlGender:   texttospeechpb.SsmlVoiceGender_FEMALE,
		},
		AudioConfig: &texttospeechpb.AudioConfig{
			AudioEncoding: texttospeechpb.AudioEncoding_MP3,
		},
	}

	resp, err := s.client.SynthesizeSpeech(ctx, req)
	if err != nil {
		return nil, domain.NewSpeechError(err)
	}
	return resp.AudioContent, nil
}

// Close releases the underlying gRPC connection.
func (s *GoogleSpeaker) Close() error {
	return s.client.Close()
}
