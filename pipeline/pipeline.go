// Package pipeline orchestrates document ingestion. It coordinates
// fetching, extraction, segmentation, classification, embedding, and
// storage of content blocks, and maintains the upload record's status
// through the run.
package pipeline

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/playbookos/ingest"
)

// Pipeline processes raw documents into classified content blocks.
// Each invocation is independent; the struct holds no per-run state and
// is safe for concurrent use.
type Pipeline struct {
	// Extractors maps source kinds to their format extractor. Text and
	// markdown documents are segmented directly and need no entry.
	Extractors map[ingest.SourceKind]ingest.Extractor

	// Fetcher retrieves page bodies for URL documents.
	Fetcher ingest.Fetcher

	// Converter produces the Markdown rendition stored on uploads of
	// fetched pages. Optional.
	Converter ingest.Converter

	// Embedder computes block embeddings. Optional; when nil blocks are
	// stored without vectors.
	Embedder ingest.Embedder

	// RateLimiter throttles URL fetches per domain. Optional.
	RateLimiter ingest.DomainLimiter

	Uploads   ingest.UploadService
	Blocks    ingest.BlockService
	Playbooks ingest.PlaybookService
}

// Result holds the outcome of processing one document.
type Result struct {
	Upload  *ingest.Upload
	Blocks  []*ingest.ContentBlock
	Outline *ingest.PlaybookOutline
}

// Process runs the full ingestion pipeline for one document. It creates
// the upload record, extracts and classifies content, stores the block
// set atomically, and updates the playbook's displayed tags from the
// resulting outline.
//
// A failure at any stage marks the upload failed with the error message
// and returns the error; no partial block set is ever stored.
func (p *Pipeline) Process(ctx context.Context, playbookID string, doc *ingest.RawDocument) (*Result, error) {
	if err := doc.Validate(); err != nil {
		return nil, err
	}

	upload := &ingest.Upload{
		PlaybookID:  playbookID,
		Name:        displayName(doc),
		Source:      doc.Kind,
		ContentHash: contentHash(doc),
	}
	if err := p.Uploads.CreateUpload(ctx, upload); err != nil {
		return nil, err
	}

	if err := p.setStatus(ctx, upload.ID, ingest.UploadProcessing); err != nil {
		return nil, err
	}

	blocks, content, err := p.run(ctx, doc)
	if err != nil {
		return nil, p.fail(ctx, upload.ID, err)
	}

	for _, block := range blocks {
		block.UploadID = upload.ID
	}
	if err := p.Blocks.CreateBlocks(ctx, blocks); err != nil {
		return nil, p.fail(ctx, upload.ID, err)
	}

	outline := ingest.BuildOutline(blocks)

	if p.Playbooks != nil {
		if err := p.Playbooks.UpdatePlaybookTags(ctx, playbookID, outline.Themes); err != nil {
			return nil, p.fail(ctx, upload.ID, err)
		}
	}

	completed := ingest.UploadCompleted
	count := len(blocks)
	upload, err = p.Uploads.UpdateUpload(ctx, upload.ID, ingest.UploadUpdate{
		Status:     &completed,
		Content:    &content,
		BlockCount: &count,
	})
	if err != nil {
		return nil, err
	}

	return &Result{
		Upload:  upload,
		Blocks:  blocks,
		Outline: outline,
	}, nil
}

// run produces the classified block set and the retained content text.
func (p *Pipeline) run(ctx context.Context, doc *ingest.RawDocument) ([]*ingest.ContentBlock, string, error) {
	if doc.Kind == ingest.SourceURL {
		if err := p.fetch(ctx, doc); err != nil {
			return nil, "", err
		}
	}

	sections, err := p.sections(ctx, doc)
	if err != nil {
		return nil, "", err
	}
	if len(sections) == 0 {
		return nil, "", ingest.Errorf(ingest.EEXTRACTION, "no content could be extracted")
	}

	blocks := make([]*ingest.ContentBlock, 0, len(sections))
	for i, section := range sections {
		block := ingest.Classify(section, i)

		if p.Embedder != nil {
			vec, err := p.Embedder.Embed(ctx, block.Content)
			if err != nil {
				return nil, "", err
			}
			block.Embedding = vec
		}

		blocks = append(blocks, &block)
	}

	content, err := p.retainedContent(doc, blocks)
	if err != nil {
		return nil, "", err
	}

	return blocks, content, nil
}

// fetch retrieves the page body for a URL document into doc.Data.
func (p *Pipeline) fetch(ctx context.Context, doc *ingest.RawDocument) error {
	if p.Fetcher == nil {
		return ingest.Errorf(ingest.EINVALID, "no fetcher configured for url documents")
	}

	if p.RateLimiter != nil {
		u, err := url.Parse(doc.URL)
		if err != nil {
			return ingest.Errorf(ingest.EINVALID, "invalid URL %q", doc.URL)
		}
		if err := p.RateLimiter.Wait(ctx, u.Host); err != nil {
			return err
		}
	}

	html, err := p.Fetcher.Fetch(ctx, doc.URL)
	if err != nil {
		return err
	}
	doc.Data = []byte(html)
	return nil
}

// sections dispatches extraction by source kind. Plain text and markdown
// are segmented directly; every other kind goes through its registered
// extractor.
func (p *Pipeline) sections(ctx context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
	switch doc.Kind {
	case ingest.SourceText:
		return ingest.SegmentText(string(doc.Data)), nil
	case ingest.SourceMarkdown:
		return ingest.SegmentMarkdown(string(doc.Data)), nil
	default:
		extractor, ok := p.Extractors[doc.Kind]
		if !ok {
			return nil, ingest.Errorf(ingest.EINVALID, "no extractor registered for %q documents", doc.Kind)
		}
		return extractor.Extract(ctx, doc)
	}
}

// retainedContent returns the text stored on the upload record. Fetched
// pages keep a Markdown rendition when a converter is configured; text
// formats keep the original; binary formats keep the extracted text.
func (p *Pipeline) retainedContent(doc *ingest.RawDocument, blocks []*ingest.ContentBlock) (string, error) {
	switch doc.Kind {
	case ingest.SourceText, ingest.SourceMarkdown:
		return string(doc.Data), nil
	case ingest.SourceURL, ingest.SourceHTML:
		if p.Converter == nil {
			return "", nil
		}
		return p.Converter.Convert(string(doc.Data))
	default:
		var texts []string
		for _, block := range blocks {
			texts = append(texts, block.Content)
		}
		return strings.Join(texts, "\n\n"), nil
	}
}

// setStatus updates the upload status.
func (p *Pipeline) setStatus(ctx context.Context, uploadID string, status ingest.UploadStatus) error {
	_, err := p.Uploads.UpdateUpload(ctx, uploadID, ingest.UploadUpdate{Status: &status})
	return err
}

// fail marks the upload failed with the error's message and returns the
// original error. A failure while recording the failure is secondary and
// discarded.
func (p *Pipeline) fail(ctx context.Context, uploadID string, cause error) error {
	failed := ingest.UploadFailed
	msg := ingest.ErrorMessage(cause)
	_, _ = p.Uploads.UpdateUpload(ctx, uploadID, ingest.UploadUpdate{
		Status: &failed,
		Error:  &msg,
	})
	return cause
}

// displayName picks the upload's display name: the document name when
// given, otherwise the URL.
func displayName(doc *ingest.RawDocument) string {
	if doc.Name != "" {
		return doc.Name
	}
	return doc.URL
}

// contentHash hashes the original payload for re-upload detection. URL
// documents are identified by their address since the body is not known
// until fetch time.
func contentHash(doc *ingest.RawDocument) string {
	if doc.Kind == ingest.SourceURL {
		return fmt.Sprintf("%x", xxhash.Sum64String(doc.URL))
	}
	return fmt.Sprintf("%x", xxhash.Sum64(doc.Data))
}
