package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of ingest.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error)
}

func (e *Extractor) Extract(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	return e.ExtractFn(ctx, doc)
}
