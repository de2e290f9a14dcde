package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// DefaultSpeechModel is used by the Speak convenience method.
const DefaultSpeechModel = "playai-tts"

// SpeechRequest is the payload for the text-to-speech endpoint.
type SpeechRequest struct {
	Model          string   `json:"model"`
	Input          string   `json:"input"`
	Voice          string   `json:"voice"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Speed          *float64 `json:"speed,omitempty"`
}

// SpeechResponse is the text-to-speech response payload.
type SpeechResponse struct {
	Audio       []byte `json:"audio"`
	ContentType string `json:"content_type,omitempty"`
}

// TranscriptionRequest is the payload for the transcription endpoint.
type TranscriptionRequest struct {
	Model          string   `json:"model"`
	File           string   `json:"file"`
	Prompt         string   `json:"prompt,omitempty"`
	ResponseFormat string   `json:"response_format,omitempty"`
	Temperature    *float64 `json:"temperature,omitempty"`
	Language       string   `json:"language,omitempty"`
}

// Transcription is the transcription response payload.
type Transcription struct {
	Text string `json:"text"`
}

// AudioService performs speech synthesis and transcription.
type AudioService struct {
	client *core.Client
}

// CreateSpeech synthesizes speech from text. The model, input, and voice are
// required.
func (s *AudioService) CreateSpeech(ctx context.Context, req *SpeechRequest) (*core.Response[SpeechResponse], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: speech request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", core.ErrValidation)
	}
	if strings.TrimSpace(req.Input) == "" {
		return nil, fmt.Errorf("%w: input text cannot be empty", core.ErrValidation)
	}
	if strings.TrimSpace(req.Voice) == "" {
		return nil, fmt.Errorf("%w: voice cannot be empty", core.ErrValidation)
	}

	return core.Post[SpeechResponse](ctx, s.client, basePath+"/audio/speech", req, core.Call{})
}

// CreateTranscription transcribes audio referenced by the request. The model
// and file are required.
func (s *AudioService) CreateTranscription(ctx context.Context, req *TranscriptionRequest) (*core.Response[Transcription], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: transcription request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", core.ErrValidation)
	}
	if strings.TrimSpace(req.File) == "" {
		return nil, fmt.Errorf("%w: file cannot be empty", core.ErrValidation)
	}

	return core.Post[Transcription](ctx, s.client, basePath+"/audio/transcriptions", req, core.Call{})
}

// Speak synthesizes input with voice using DefaultSpeechModel.
func (s *AudioService) Speak(ctx context.Context, input, voice string) (*core.Response[SpeechResponse], error) {
	return s.CreateSpeech(ctx, &SpeechRequest{
		Model: DefaultSpeechModel,
		Input: input,
		Voice: voice,
	})
}
