package ingest

import (
	"context"
	"time"
)

// UploadStatus tracks the lifecycle of an ingested document.
type UploadStatus string

// Upload lifecycle states.
const (
	UploadUploaded   UploadStatus = "uploaded"
	UploadProcessing UploadStatus = "processing"
	UploadCompleted  UploadStatus = "completed"
	UploadFailed     UploadStatus = "failed"
)

// Upload represents one ingested document or URL and its processing state.
type Upload struct {
	ID         string     `json:"id"`
	PlaybookID string     `json:"playbookId"`
	Name       string     `json:"name"`
	Source     SourceKind `json:"source"`

	Status UploadStatus `json:"status"`

	// Error holds the raw failure message when Status is failed.
	Error string `json:"error,omitempty"`

	// Content is the normalized text retained for the upload (markdown
	// for fetched HTML), informational only.
	Content string `json:"content,omitempty"`

	// ContentHash is a hash of the original payload.
	ContentHash string `json:"contentHash"`

	// BlockCount is the number of stored blocks once processing completes.
	BlockCount int `json:"blockCount"`

	CreatedAt   time.Time  `json:"createdAt"`
	ProcessedAt *time.Time `json:"processedAt,omitempty"`
}

// Validate returns an error if the upload contains invalid fields.
func (u *Upload) Validate() error {
	if u.Name == "" {
		return Errorf(EINVALID, "upload name required")
	}
	if !u.Source.Valid() {
		return Errorf(EINVALID, "unsupported source kind %q", u.Source)
	}
	return nil
}

// UploadService represents a service for managing upload records.
type UploadService interface {
	// CreateUpload creates a new upload in the uploaded state.
	CreateUpload(ctx context.Context, upload *Upload) error

	// FindUploadByID retrieves an upload by ID.
	// Returns ENOTFOUND if the upload does not exist.
	FindUploadByID(ctx context.Context, id string) (*Upload, error)

	// FindUploads retrieves uploads matching the filter.
	FindUploads(ctx context.Context, filter UploadFilter) ([]*Upload, error)

	// UpdateUpload updates an existing upload.
	// Returns ENOTFOUND if the upload does not exist.
	UpdateUpload(ctx context.Context, id string, upd UploadUpdate) (*Upload, error)

	// DeleteUpload permanently removes an upload and all associated blocks.
	// Returns ENOTFOUND if the upload does not exist.
	DeleteUpload(ctx context.Context, id string) error
}

// UploadFilter represents a filter for FindUploads.
type UploadFilter struct {
	ID         *string       `json:"id"`
	PlaybookID *string       `json:"playbookId"`
	Status     *UploadStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// UploadUpdate represents fields that can be updated on an upload.
type UploadUpdate struct {
	Status     *UploadStatus `json:"status"`
	Error      *string       `json:"error"`
	Content    *string       `json:"content"`
	BlockCount *int          `json:"blockCount"`
}
