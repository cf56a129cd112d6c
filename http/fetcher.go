// Package http provides an HTTP-based implementation of ingest.Fetcher
// for retrieving pages to ingest from URLs.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/playbookos/ingest"
)

// DefaultFetchTimeout bounds one URL retrieval, including body read.
const DefaultFetchTimeout = 30 * time.Second

// Ensure Fetcher implements ingest.Fetcher at compile time.
var _ ingest.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves page content from URLs using plain HTTP requests.
// It does not execute JavaScript; see the rod package for pages that
// require rendering.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the body of the given URL.
// Timeouts, connection failures, and non-2xx responses are EFETCH errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", ingest.Errorf(ingest.EINVALID, "invalid URL %q: %v", url, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", ingest.Errorf(ingest.EFETCH, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", ingest.Errorf(ingest.EFETCH, "fetch %s: HTTP %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ingest.Errorf(ingest.EFETCH, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
