package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.BlockService = (*BlockService)(nil)

// BlockService is a mock implementation of ingest.BlockService.
type BlockService struct {
	CreateBlocksFn         func(ctx context.Context, blocks []*ingest.ContentBlock) error
	FindBlocksByUploadFn   func(ctx context.Context, uploadID string) ([]*ingest.ContentBlock, error)
	DeleteBlocksByUploadFn func(ctx context.Context, uploadID string) error
}

func (s *BlockService) CreateBlocks(ctx context.Context, blocks []*ingest.ContentBlock) error {
	return s.CreateBlocksFn(ctx, blocks)
}

func (s *BlockService) FindBlocksByUpload(ctx context.Context, uploadID string) ([]*ingest.ContentBlock, error) {
	return s.FindBlocksByUploadFn(ctx, uploadID)
}

func (s *BlockService) DeleteBlocksByUpload(ctx context.Context, uploadID string) error {
	return s.DeleteBlocksByUploadFn(ctx, uploadID)
}
