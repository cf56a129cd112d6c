package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/playbookos/ingest"
)

// Ensure LoggingEmbedder implements ingest.Embedder.
var _ ingest.Embedder = (*LoggingEmbedder)(nil)

// LoggingEmbedder wraps an Embedder with call logging.
type LoggingEmbedder struct {
	next   ingest.Embedder
	logger *slog.Logger
}

// NewLoggingEmbedder creates a new LoggingEmbedder.
func NewLoggingEmbedder(next ingest.Embedder, logger *slog.Logger) *LoggingEmbedder {
	return &LoggingEmbedder{next: next, logger: logger}
}

// Embed logs the input size and call duration and delegates to the
// wrapped embedder.
func (e *LoggingEmbedder) Embed(ctx context.Context, text string) (vec []float32, err error) {
	defer func(begin time.Time) {
		e.logger.Info("embed",
			"chars", len(text),
			"dims", len(vec),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return e.next.Embed(ctx, text)
}

// Dimensions delegates to the wrapped embedder.
func (e *LoggingEmbedder) Dimensions() int {
	return e.next.Dimensions()
}
