package ingest

import "context"

// DefaultEmbeddingDimensions is the target vector length blocks are stored
// with. Provider vectors are padded or truncated to match.
const DefaultEmbeddingDimensions = 1536

// MaxEmbedInput is the character bound applied to text before an embedding
// call.
const MaxEmbedInput = 2000

// Embedder computes a fixed-length semantic vector for a piece of text.
// Implementations call an external provider once per input; they perform no
// retries and never substitute fallback vectors.
type Embedder interface {
	// Embed returns a vector of exactly Dimensions() floats for the text.
	// Any provider error or malformed response is an EEMBEDDING error.
	Embed(ctx context.Context, text string) ([]float32, error)

	// Dimensions returns the configured target vector length.
	Dimensions() int
}

// FitDimensions pads a vector with trailing zeros, or truncates it, so its
// length is exactly dims.
func FitDimensions(vec []float32, dims int) []float32 {
	if dims <= 0 || len(vec) == dims {
		return vec
	}
	if len(vec) > dims {
		return vec[:dims]
	}
	out := make([]float32, dims)
	copy(out, vec)
	return out
}

// TruncateInput bounds text to at most max bytes for provider calls,
// respecting rune boundaries.
func TruncateInput(text string, max int) string {
	if max <= 0 || len(text) <= max {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max])
}
