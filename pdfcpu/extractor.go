// Package pdfcpu provides a PDF implementation of ingest.Extractor built
// on the pdfcpu content-stream parser.
package pdfcpu

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/playbookos/ingest"
)

// Ensure Extractor implements ingest.Extractor at compile time.
var _ ingest.Extractor = (*Extractor)(nil)

// Extractor extracts per-page text sections from PDF documents.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract reads the PDF payload and produces sections in page order, one
// per paragraph-separated chunk of page text. A document that cannot be
// read, or that yields no text at all, is an EEXTRACTION error; partial
// results are never returned.
func (e *Extractor) Extract(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(doc.Data), conf)
	if err != nil {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "read PDF: %v", err)
	}

	var sections []ingest.Section
	for pageNr := 1; pageNr <= pdfCtx.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageText := extractPageText(pdfCtx, pageNr)
		if pageText == "" {
			continue
		}

		for _, chunk := range ingest.SplitParagraphs(pageText) {
			sections = append(sections, ingest.Section{
				Text:       chunk,
				BlockType:  ingest.BlockParagraph,
				Page:       pageNr,
				Confidence: ingest.ConfidenceStyled,
			})
		}
	}

	if len(sections) == 0 {
		return nil, ingest.Errorf(ingest.EEXTRACTION, "no text content found in PDF")
	}

	return sections, nil
}

// extractPageText extracts text from a single PDF page via its content
// stream.
func extractPageText(ctx *model.Context, pageNr int) string {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		return ""
	}
	data, err := io.ReadAll(r)
	if err != nil || len(data) == 0 {
		return ""
	}
	return parseContentStream(data)
}

// pdfStringRe matches PDF string literals in parentheses: (text here)
var pdfStringRe = regexp.MustCompile(`\(([^)]*)\)`)

// parseContentStream walks PDF text-showing operators and reassembles the
// page text. Positioning operators become whitespace so that paragraph
// boundaries survive.
func parseContentStream(data []byte) string {
	var sb strings.Builder

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		switch {
		// Tj and TJ show text: (text) Tj, [(text) -100 (more)] TJ
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteString(decodeString(m[1]))
			}

		// ' moves to the next line and shows text.
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
				sb.WriteByte('\n')
				sb.WriteString(decodeString(m[1]))
			}

		// Td/TD reposition the text cursor.
		case bytes.HasSuffix(line, []byte("Td")), bytes.HasSuffix(line, []byte("TD")):
			if sb.Len() > 0 {
				sb.WriteByte(' ')
			}

		// T* moves to the start of the next line.
		case bytes.Equal(line, []byte("T*")):
			sb.WriteByte('\n')
		}
	}

	return cleanText(sb.String())
}

// decodeString handles basic PDF escape sequences, including octal escapes.
func decodeString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			sb.WriteByte(raw[i])
			continue
		}
		i++
		switch raw[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case '\\', '(', ')':
			sb.WriteByte(raw[i])
		default:
			if raw[i] >= '0' && raw[i] <= '7' {
				val := int(raw[i] - '0')
				for j := 0; j < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; j++ {
					i++
					val = val*8 + int(raw[i]-'0')
				}
				sb.WriteByte(byte(val))
			} else {
				sb.WriteByte(raw[i])
			}
		}
	}
	return sb.String()
}

// cleanText collapses runs of spaces and drops non-printable runes while
// preserving newlines, so paragraph boundaries remain detectable.
func cleanText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		switch {
		case r == '\n':
			sb.WriteByte('\n')
			prevSpace = false
		case unicode.IsSpace(r):
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		case unicode.IsPrint(r):
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
