package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// EmbeddingRequest is the payload for the embeddings endpoint.
type EmbeddingRequest struct {
	Model          string   `json:"model"`
	Input          []string `json:"input"`
	EncodingFormat string   `json:"encoding_format,omitempty"`
	User           string   `json:"user,omitempty"`
}

// EmbeddingData is one embedding vector in a response.
type EmbeddingData struct {
	Object    string    `json:"object"`
	Embedding []float64 `json:"embedding"`
	Index     int       `json:"index"`
}

// EmbeddingResponse is the embeddings response payload.
type EmbeddingResponse struct {
	Object string          `json:"object"`
	Data   []EmbeddingData `json:"data"`
	Model  string          `json:"model"`
	Usage  Usage           `json:"usage"`
}

// EmbeddingsService generates text embeddings.
type EmbeddingsService struct {
	client *core.Client
}

// Create generates embeddings for the request's inputs. The model and at
// least one non-empty input are required.
func (s *EmbeddingsService) Create(ctx context.Context, req *EmbeddingRequest) (*core.Response[EmbeddingResponse], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: embedding request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.Model) == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", core.ErrValidation)
	}
	if len(req.Input) == 0 {
		return nil, fmt.Errorf("%w: input cannot be empty", core.ErrValidation)
	}
	for _, input := range req.Input {
		if strings.TrimSpace(input) == "" {
			return nil, fmt.Errorf("%w: input text cannot be empty", core.ErrValidation)
		}
	}

	return core.Post[EmbeddingResponse](ctx, s.client, basePath+"/embeddings", req, core.Call{})
}

// CreateSingle generates an embedding for one input string.
func (s *EmbeddingsService) CreateSingle(ctx context.Context, model, input string) (*core.Response[EmbeddingResponse], error) {
	return s.Create(ctx, &EmbeddingRequest{Model: model, Input: []string{input}})
}
