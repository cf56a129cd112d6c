package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.PlaybookService = (*PlaybookService)(nil)

// PlaybookService is a mock implementation of ingest.PlaybookService.
type PlaybookService struct {
	CreatePlaybookFn     func(ctx context.Context, playbook *ingest.Playbook) error
	FindPlaybookByIDFn   func(ctx context.Context, id string) (*ingest.Playbook, error)
	UpdatePlaybookTagsFn func(ctx context.Context, id string, tags []string) error
	DeletePlaybookFn     func(ctx context.Context, id string) error
}

func (s *PlaybookService) CreatePlaybook(ctx context.Context, playbook *ingest.Playbook) error {
	return s.CreatePlaybookFn(ctx, playbook)
}

func (s *PlaybookService) FindPlaybookByID(ctx context.Context, id string) (*ingest.Playbook, error) {
	return s.FindPlaybookByIDFn(ctx, id)
}

func (s *PlaybookService) UpdatePlaybookTags(ctx context.Context, id string, tags []string) error {
	return s.UpdatePlaybookTagsFn(ctx, id, tags)
}

func (s *PlaybookService) DeletePlaybook(ctx context.Context, id string) error {
	return s.DeletePlaybookFn(ctx, id)
}
