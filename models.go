package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// Model describes an available model.
type Model struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Created int64  `json:"created"`
	OwnedBy string `json:"owned_by"`
}

// ModelList is the model listing response payload.
type ModelList struct {
	Object string  `json:"object"`
	Data   []Model `json:"data"`
}

// ModelService lists and retrieves available models.
type ModelService struct {
	client *core.Client
}

// List returns all available models.
func (s *ModelService) List(ctx context.Context) (*core.Response[ModelList], error) {
	return core.Get[ModelList](ctx, s.client, basePath+"/models", core.Call{})
}

// Retrieve fetches a model by ID.
func (s *ModelService) Retrieve(ctx context.Context, modelID string) (*core.Response[Model], error) {
	if strings.TrimSpace(modelID) == "" {
		return nil, fmt.Errorf("%w: model ID cannot be empty", core.ErrValidation)
	}

	return core.Get[Model](ctx, s.client, basePath+"/models/"+modelID, core.Call{})
}
