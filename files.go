package groq

import (
	"context"
	"fmt"
	"strings"

	"github.com/petal-labs/groq/core"
)

// FileObject describes an uploaded file.
type FileObject struct {
	ID            string `json:"id"`
	Object        string `json:"object"`
	Bytes         int64  `json:"bytes"`
	CreatedAt     int64  `json:"created_at"`
	Filename      string `json:"filename"`
	Purpose       string `json:"purpose"`
	Status        string `json:"status,omitempty"`
	StatusDetails string `json:"status_details,omitempty"`
}

// FileList is the file listing response payload.
type FileList struct {
	Object string       `json:"object"`
	Data   []FileObject `json:"data"`
}

// FileDeleteResponse confirms a file deletion.
type FileDeleteResponse struct {
	ID      string `json:"id"`
	Object  string `json:"object"`
	Deleted bool   `json:"deleted"`
}

// FileUploadRequest describes a multipart file upload. Content is sent as the
// "file" form field; MediaType is inferred from Filename when empty.
type FileUploadRequest struct {
	Filename  string
	Purpose   string
	Content   []byte
	MediaType string
}

// FileService manages uploaded files.
type FileService struct {
	client *core.Client
}

// List returns all uploaded files.
func (s *FileService) List(ctx context.Context) (*core.Response[FileList], error) {
	return core.Get[FileList](ctx, s.client, basePath+"/files", core.Call{})
}

// Upload sends a file as multipart/form-data. The purpose and filename are
// required; empty content is rejected during encoding, before any request is
// sent.
func (s *FileService) Upload(ctx context.Context, req *FileUploadRequest) (*core.Response[FileObject], error) {
	if req == nil {
		return nil, fmt.Errorf("%w: file upload request cannot be nil", core.ErrValidation)
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return nil, fmt.Errorf("%w: purpose cannot be empty", core.ErrValidation)
	}
	if strings.TrimSpace(req.Filename) == "" {
		return nil, fmt.Errorf("%w: filename cannot be empty", core.ErrValidation)
	}

	form := core.NewForm().
		AddField("purpose", req.Purpose).
		AddFile("file", core.FilePart{
			Filename:  req.Filename,
			Content:   req.Content,
			MediaType: req.MediaType,
		})

	return core.Upload[FileObject](ctx, s.client, basePath+"/files", form, core.Call{})
}

// UploadJSONL uploads JSON Lines content, appending the .jsonl suffix to the
// filename when missing. This is the expected format for batch input files.
func (s *FileService) UploadJSONL(ctx context.Context, filename, purpose string, content []byte) (*core.Response[FileObject], error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".jsonl") {
		filename += ".jsonl"
	}
	return s.Upload(ctx, &FileUploadRequest{
		Filename: filename,
		Purpose:  purpose,
		Content:  content,
	})
}

// Retrieve fetches file metadata by ID.
func (s *FileService) Retrieve(ctx context.Context, fileID string) (*core.Response[FileObject], error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("%w: file ID cannot be empty", core.ErrValidation)
	}

	return core.Get[FileObject](ctx, s.client, basePath+"/files/"+fileID, core.Call{})
}

// Delete removes a file by ID.
func (s *FileService) Delete(ctx context.Context, fileID string) (*core.Response[FileDeleteResponse], error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("%w: file ID cannot be empty", core.ErrValidation)
	}

	return core.Delete[FileDeleteResponse](ctx, s.client, basePath+"/files/"+fileID, core.Call{})
}

// Content downloads a file's raw content as text.
func (s *FileService) Content(ctx context.Context, fileID string) (*core.Response[string], error) {
	if strings.TrimSpace(fileID) == "" {
		return nil, fmt.Errorf("%w: file ID cannot be empty", core.ErrValidation)
	}

	return core.Get[string](ctx, s.client, basePath+"/files/"+fileID+"/content", core.Call{})
}
