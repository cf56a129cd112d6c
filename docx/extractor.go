// Package docx extracts content sections from Word documents.
//
// A .docx file is a ZIP archive whose main body lives in
// word/document.xml. The extractor walks the body paragraphs, reads
// their text runs, and uses paragraph styles to distinguish headings
// from regular text.
package docx

import (
	"archive/zip"
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/beevik/etree"

	"github.com/playbookos/ingest"
)

// Extractor extracts sections from DOCX documents.
type Extractor struct{}

// NewExtractor returns a new DOCX extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the document body and returns one section per
// non-empty paragraph. Paragraphs with a heading style become heading
// sections carrying the detected level.
func (e *Extractor) Extract(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	body, err := readDocumentXML(doc.Data)
	if err != nil {
		return nil, err
	}

	xmlDoc := etree.NewDocument()
	if err := xmlDoc.ReadFromBytes(body); err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "unable to parse document XML: %v", err)
	}

	root := xmlDoc.Root()
	if root == nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "document XML has no root element")
	}
	docBody := root.SelectElement("body")
	if docBody == nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "document XML has no body element")
	}

	var sections []ingest.Section
	for _, p := range docBody.SelectElements("p") {
		text := strings.TrimSpace(paragraphText(p))
		if text == "" {
			continue
		}

		style := paragraphStyle(p)
		section := ingest.Section{
			Text:       text,
			BlockType:  ingest.BlockParagraph,
			Style:      style,
			Confidence: ingest.ConfidenceStyled,
		}
		if level := headingLevel(style); level > 0 {
			section.BlockType = ingest.BlockHeading
			section.Level = level
		}
		sections = append(sections, section)
	}

	if len(sections) == 0 {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "no text content found in document")
	}
	return sections, nil
}

// readDocumentXML locates word/document.xml inside the DOCX archive.
func readDocumentXML(data []byte) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "unable to read DOCX archive: %v", err)
	}

	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, ingest.Errorf(ingest.EEXTRACTION, "unable to open document XML: %v", err)
		}
		defer rc.Close()

		body, err := io.ReadAll(rc)
		if err != nil {
			return nil, ingest.Errorf(ingest.EEXTRACTION, "unable to read document XML: %v", err)
		}
		return body, nil
	}
	return nil, ingest.Errorf(ingest.EEXTRACTION, "word/document.xml not found in archive")
}

// paragraphText concatenates the text runs of a paragraph element.
func paragraphText(p *etree.Element) string {
	var sb strings.Builder
	for _, t := range p.FindElements(".//t") {
		sb.WriteString(t.Text())
	}
	return sb.String()
}

// paragraphStyle returns the paragraph style name, if any.
func paragraphStyle(p *etree.Element) string {
	pPr := p.SelectElement("pPr")
	if pPr == nil {
		return ""
	}
	pStyle := pPr.SelectElement("pStyle")
	if pStyle == nil {
		return ""
	}
	return pStyle.SelectAttrValue("val", "")
}

// headingLevel maps a paragraph style name to a heading level, or 0
// when the style does not denote a heading. Localized style names used
// by common Word locales are recognized alongside the English ones.
func headingLevel(style string) int {
	lower := strings.ToLower(style)
	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}
	for _, prefix := range []string{"heading", "titre", "überschrift"} {
		rest, ok := strings.CutPrefix(lower, prefix)
		if ok && len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
			return int(rest[0] - '0')
		}
	}
	return 0
}
