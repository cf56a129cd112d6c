// Package gemini implements embedding generation using Google Gemini.
package gemini

import (
	"context"

	"google.golang.org/genai"

	"github.com/playbookos/ingest"
)

const embeddingModel = "gemini-embedding-001"

// Ensure Embedder implements ingest.Embedder at compile time.
var _ ingest.Embedder = (*Embedder)(nil)

// Embedder implements ingest.Embedder using the Gemini embedding API.
// Vectors returned by the provider are padded or truncated to the
// configured dimensionality before being returned to callers.
type Embedder struct {
	client *genai.Client
	dims   int
}

// EmbedderOption configures an Embedder.
type EmbedderOption func(*Embedder)

// WithDimensions overrides the target vector length.
func WithDimensions(dims int) EmbedderOption {
	return func(e *Embedder) {
		e.dims = dims
	}
}

// NewEmbedder creates a new Embedder backed by the given client.
func NewEmbedder(client *genai.Client, opts ...EmbedderOption) *Embedder {
	e := &Embedder{
		client: client,
		dims:   ingest.DefaultEmbeddingDimensions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Dimensions returns the target vector length.
func (e *Embedder) Dimensions() int {
	return e.dims
}

// Embed generates an embedding vector for the text. Input longer than
// ingest.MaxEmbedInput characters is truncated before the provider call.
func (e *Embedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if text == "" {
		return nil, ingest.Errorf(ingest.EINVALID, "embedding input required")
	}

	input := ingest.TruncateInput(text, ingest.MaxEmbedInput)

	result, err := e.client.Models.EmbedContent(ctx, embeddingModel,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: input}},
		}},
		nil,
	)
	if err != nil {
		return nil, ingest.Errorf(ingest.EEMBEDDING, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, ingest.Errorf(ingest.EEMBEDDING, "gemini returned no embeddings")
	}

	values := result.Embeddings[0].Values
	if len(values) == 0 {
		return nil, ingest.Errorf(ingest.EEMBEDDING, "gemini returned an empty vector")
	}

	return ingest.FitDimensions(values, e.dims), nil
}
