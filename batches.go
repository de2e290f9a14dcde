package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// BatchCreateRequest is the payload for creating a batch job.
type BatchCreateRequest struct {
	InputFileID      string         `json:"input_file_id"`
	Endpoint         string         `json:"endpoint"`
	CompletionWindow string         `json:"completion_window,omitempty"`
	Metadata         map[string]any `json:"metadata,omitempty"`
}

// BatchRequestCounts summarizes the per-request progress of a batch.
type BatchRequestCounts struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Failed    int `json:"failed"`
}

// Batch is a batch processing job.
type Batch struct {
	ID               string              `json:"id"`
	Object           string              `json:"object"`
	Endpoint         string              `json:"endpoint"`
	InputFileID      string              `json:"input_file_id"`
	CompletionWindow string              `json:"completion_window"`
	Status           string              `json:"status"`
	OutputFileID     string              `json:"output_file_id,omitempty"`
	ErrorFileID      string              `json:"error_file_id,omitempty"`
	CreatedAt        int64               `json:"created_at"`
	InProgressAt     int64               `json:"in_progress_at,omitempty"`
	ExpiresAt        int64               `json:"expires_at,omitempty"`
	FinalizingAt     int64               `json:"finalizing_at,omitempty"`
	CompletedAt      int64               `json:"completed_at,omitempty"`
	FailedAt         int64               `json:"failed_at,omitempty"`
	ExpiredAt        int64               `json:"expired_at,omitempty"`
	CancellingAt     int64               `json:"cancelling_at,omitempty"`
	CancelledAt      int64               `json:"cancelled_at,omitempty"`
	Metadata         map[string]any      `json:"metadata,omitempty"`
	RequestCounts    *BatchRequestCounts `json:"request_counts,omitempty"`
}

// BatchList is the batch listing response payload.
type BatchList struct {
	Object string  `json:"object"`
	Data   []Batch `json:"data"`
}

// BatchService manages batch processing jobs.
type BatchService struct {
	client *core.Client
}

// Create submits a new batch job. The input file ID and endpoint are
// required.
func (s *BatchService) Create(ctx context.Context, req *BatchCreateRequest) (*core.Response[Batch], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: batch create request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.InputFileID) == "" {
		return nil, fmt.Errorf("%w: input file ID cannot be empty", core.ErrValidation)
	}
	if strings.TrimSpace(req.Endpoint) == "" {
		return nil, fmt.Errorf("%w: endpoint cannot be empty", core.ErrValidation)
	}

	return core.Post[Batch](ctx, s.client, basePath+"/batches", req, core.Call{})
}

// Retrieve fetches a batch by ID.
func (s *BatchService) Retrieve(ctx context.Context, batchID string) (*core.Response[Batch], error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, fmt.Errorf("%w: batch ID cannot be empty", core.ErrValidation)
	}

	return core.Get[Batch](ctx, s.client, basePath+"/batches/"+batchID, core.Call{})
}

// List returns all batch jobs.
func (s *BatchService) List(ctx context.Context) (*core.Response[BatchList], error) {
	return core.Get[BatchList](ctx, s.client, basePath+"/batches", core.Call{})
}

// Cancel requests cancellation of a running batch.
func (s *BatchService) Cancel(ctx context.Context, batchID string) (*core.Response[Batch], error) {
	if strings.TrimSpace(batchID) == "" {
		return nil, fmt.Errorf("%w: batch ID cannot be empty", core.ErrValidation)
	}

	return core.Post[Batch](ctx, s.client, basePath+"/batches/"+batchID+"/cancel", nil, core.Call{})
}
