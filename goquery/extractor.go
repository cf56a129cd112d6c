// Package goquery provides an HTML implementation of ingest.Extractor.
// It parses page structure directly; see the trafilatura package for a
// variant that strips boilerplate from noisy pages first.
package goquery

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playbookos/ingest"
)

// minParagraphLen filters out very short paragraph elements (buttons,
// labels, cookie banners).
const minParagraphLen = 20

// boilerplateSelector matches elements removed before section extraction.
const boilerplateSelector = "script, style, nav, footer, header"

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Extractor extracts ordered sections from HTML documents.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the document's HTML payload into sections.
func (e *Extractor) Extract(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	return ParseSections(string(doc.Data))
}

// ParseSections extracts heading, paragraph, and list sections from HTML
// in document order. Headings retain their level; ul/ol elements become a
// single list section with one bullet line per item.
func ParseSections(html string) ([]ingest.Section, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "parse HTML: %v", err)
	}

	doc.Find(boilerplateSelector).Remove()

	var sections []ingest.Section
	doc.Find("h1, h2, h3, h4, h5, h6, p, ul, ol").Each(func(_ int, sel *goquery.Selection) {
		switch name := goquery.NodeName(sel); name {
		case "p":
			// Paragraphs inside list items are covered by the list section.
			if sel.Closest("ul, ol").Length() > 0 {
				return
			}
			text := strings.TrimSpace(sel.Text())
			if len(text) <= minParagraphLen {
				return
			}
			sections = append(sections, ingest.Section{
				Text:       text,
				BlockType:  ingest.BlockParagraph,
				Confidence: ingest.ConfidenceHTMLBody,
			})

		case "ul", "ol":
			// Nested lists are flattened into their outermost list.
			if sel.ParentsFiltered("ul, ol").Length() > 0 {
				return
			}
			var items []string
			sel.Find("li").Each(func(_ int, li *goquery.Selection) {
				if text := strings.TrimSpace(li.Text()); text != "" {
					items = append(items, "- "+text)
				}
			})
			if len(items) == 0 {
				return
			}
			sections = append(sections, ingest.Section{
				Text:       strings.Join(items, "\n"),
				BlockType:  ingest.BlockList,
				Confidence: ingest.ConfidenceStyled,
			})

		default: // h1-h6
			text := strings.TrimSpace(sel.Text())
			if text == "" {
				return
			}
			sections = append(sections, ingest.Section{
				Text:       text,
				BlockType:  ingest.BlockHeading,
				Level:      int(name[1] - '0'),
				Confidence: ingest.ConfidenceStyled,
			})
		}
	})

	return sections, nil
}
