package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.UploadService = (*UploadService)(nil)

// UploadService is a mock implementation of ingest.UploadService.
type UploadService struct {
	CreateUploadFn   func(ctx context.Context, upload *ingest.Upload) error
	FindUploadByIDFn func(ctx context.Context, id string) (*ingest.Upload, error)
	FindUploadsFn    func(ctx context.Context, filter ingest.UploadFilter) ([]*ingest.Upload, error)
	UpdateUploadFn   func(ctx context.Context, id string, upd ingest.UploadUpdate) (*ingest.Upload, error)
	DeleteUploadFn   func(ctx context.Context, id string) error
}

func (s *UploadService) CreateUpload(ctx context.Context, upload *ingest.Upload) error {
	return s.CreateUploadFn(ctx, upload)
}

func (s *UploadService) FindUploadByID(ctx context.Context, id string) (*ingest.Upload, error) {
	return s.FindUploadByIDFn(ctx, id)
}

func (s *UploadService) FindUploads(ctx context.Context, filter ingest.UploadFilter) ([]*ingest.Upload, error) {
	return s.FindUploadsFn(ctx, filter)
}

func (s *UploadService) UpdateUpload(ctx context.Context, id string, upd ingest.UploadUpdate) (*ingest.Upload, error) {
	return s.UpdateUploadFn(ctx, id, upd)
}

func (s *UploadService) DeleteUpload(ctx context.Context, id string) error {
	return s.DeleteUploadFn(ctx, id)
}
