// Package trafilatura extracts main content from fetched web pages.
//
// Raw pages carry navigation, footers, and other boilerplate around the
// article body. This extractor runs go-trafilatura first to isolate the
// main content, then parses the cleaned fragment into sections.
package trafilatura

import (
	"bytes"
	"context"
	"net/url"
	"strings"

	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/goquery"
)

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Extractor extracts sections from web pages using go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract isolates the page's main content and returns its sections.
// Paragraphs from web pages carry a lower confidence than paragraphs
// from structured documents since boilerplate detection is heuristic.
func (e *Extractor) Extract(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(doc.Data) == 0 {
		return nil, ingest.Errorf(ingest.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}
	if doc.URL != "" {
		if u, err := url.Parse(doc.URL); err == nil {
			opts.OriginalURL = u
		}
	}

	result, err := trafilatura.Extract(bytes.NewReader(doc.Data), opts)
	if err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "content extraction failed: %v", err)
	}
	if result.ContentNode == nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "no main content found in page")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "render content: %v", err)
	}

	sections, err := goquery.ParseSections(contentHTML)
	if err != nil {
		return nil, err
	}
	if len(sections) == 0 && strings.TrimSpace(result.ContentText) != "" {
		// Fallback for pages whose cleaned fragment has no recognizable
		// structure but still yielded text.
		sections = sectionsFromText(result.ContentText)
	}
	if len(sections) == 0 {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "no text content found in page")
	}

	for i := range sections {
		if sections[i].BlockType == ingest.BlockParagraph {
			sections[i].Confidence = ingest.ConfidenceURLText
		}
	}
	return sections, nil
}

// sectionsFromText splits plain extracted text into paragraph sections.
func sectionsFromText(text string) []ingest.Section {
	var sections []ingest.Section
	for _, p := range ingest.SplitParagraphs(text) {
		sections = append(sections, ingest.Section{
			Text:       p,
			BlockType:  ingest.BlockParagraph,
			Confidence: ingest.ConfidenceURLText,
		})
	}
	return sections
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
