package mock

import (
	"context"

	"github.com/playbookos/ingest"
)

var _ ingest.Embedder = (*Embedder)(nil)

// Embedder is a mock implementation of ingest.Embedder.
type Embedder struct {
	EmbedFn      func(ctx context.Context, text string) ([]float32, error)
	DimensionsFn func() int
}

func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return e.EmbedFn(ctx, text)
}

func (e *Embedder) Dimensions() int {
	return e.DimensionsFn()
}
