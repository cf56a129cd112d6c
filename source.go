package ingest

import (
	"context"
	"path/filepath"
	"strings"
)

// SourceKind identifies the format of a raw document. The set is closed:
// dispatching on an unrecognized kind is an EINVALID error, never a silent
// fallback.
type SourceKind string

// Supported source kinds.
const (
	SourcePDF      SourceKind = "pdf"
	SourceText     SourceKind = "text"
	SourceMarkdown SourceKind = "markdown"
	SourceDOCX     SourceKind = "docx"
	SourceHTML     SourceKind = "html"
	SourceURL      SourceKind = "url"
)

// Valid reports whether k is one of the supported source kinds.
func (k SourceKind) Valid() bool {
	switch k {
	case SourcePDF, SourceText, SourceMarkdown, SourceDOCX, SourceHTML, SourceURL:
		return true
	}
	return false
}

// KindForPath maps a file extension to a SourceKind.
// Unrecognized extensions are treated as plain text, mirroring the
// upload layer's fallback behavior.
func KindForPath(path string) SourceKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return SourcePDF
	case ".md", ".markdown":
		return SourceMarkdown
	case ".docx":
		return SourceDOCX
	case ".html", ".htm":
		return SourceHTML
	default:
		return SourceText
	}
}

// RawDocument is an opaque document payload plus its source kind.
// A RawDocument is consumed exactly once by the pipeline and not retained.
type RawDocument struct {
	Kind SourceKind

	// Name is the caller-supplied display name (usually a file name).
	Name string

	// Data holds the document bytes for file-based kinds.
	Data []byte

	// URL is set for SourceURL documents. The pipeline fetches the page
	// and fills Data with its body before extraction.
	URL string
}

// Validate returns an error if the document cannot be processed.
func (d *RawDocument) Validate() error {
	if !d.Kind.Valid() {
		return Errorf(EINVALID, "unsupported source kind %q", d.Kind)
	}
	if d.Kind == SourceURL {
		if d.URL == "" {
			return Errorf(EINVALID, "URL required for url documents")
		}
		return nil
	}
	if len(d.Data) == 0 {
		return Errorf(EINVALID, "document payload required")
	}
	return nil
}

// Section is an ordered, contiguous span of normalized text extracted from
// a RawDocument. Sections are non-overlapping and preserve original
// document order; each is consumed exactly once by the classifier.
type Section struct {
	// Text is the section content, trimmed of surrounding whitespace.
	Text string

	// BlockType is the structural hint assigned by the extractor
	// (heading, paragraph, list). Empty when the extractor has no
	// structural information; the classifier then detects it.
	BlockType BlockType

	// Level is the heading level (1-6) for heading sections, 0 otherwise.
	Level int

	// Page is the 1-based source page for PDF sections, 0 otherwise.
	Page int

	// Style is the originating paragraph style name for DOCX sections.
	Style string

	// Confidence is the extraction-method confidence constant carried
	// through to the resulting block.
	Confidence float64
}

// Extractor converts a raw document into an ordered list of sections.
// Implementations exist per source kind; dispatch over kinds is owned by
// the pipeline.
type Extractor interface {
	// Extract produces sections in original document order.
	// A format-level parse failure returns an EEXTRACTION error and no
	// partial result.
	Extract(ctx context.Context, doc *RawDocument) ([]Section, error)
}

// Fetcher retrieves HTML from URLs.
// Implementations may use plain HTTP or browser automation for
// JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the page body for the URL.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	Convert(html string) (string, error)
}

// DomainLimiter rate limits requests per domain.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled before the wait
	// completes.
	Wait(ctx context.Context, domain string) error
}
