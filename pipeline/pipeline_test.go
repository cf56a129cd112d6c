package pipeline_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/mock"
	"github.com/playbookos/ingest/pipeline"
)

// uploadRecorder is an in-memory UploadService that tracks the sequence
// of status transitions a pipeline run produces.
type uploadRecorder struct {
	upload   ingest.Upload
	statuses []ingest.UploadStatus
}

func (r *uploadRecorder) service() *mock.UploadService {
	return &mock.UploadService{
		CreateUploadFn: func(_ context.Context, upload *ingest.Upload) error {
			if err := upload.Validate(); err != nil {
				return err
			}
			upload.ID = "upload-1"
			upload.Status = ingest.UploadUploaded
			r.upload = *upload
			r.statuses = append(r.statuses, ingest.UploadUploaded)
			return nil
		},
		UpdateUploadFn: func(_ context.Context, id string, upd ingest.UploadUpdate) (*ingest.Upload, error) {
			if upd.Status != nil {
				r.upload.Status = *upd.Status
				r.statuses = append(r.statuses, *upd.Status)
			}
			if upd.Error != nil {
				r.upload.Error = *upd.Error
			}
			if upd.Content != nil {
				r.upload.Content = *upd.Content
			}
			if upd.BlockCount != nil {
				r.upload.BlockCount = *upd.BlockCount
			}
			u := r.upload
			return &u, nil
		},
	}
}

func TestPipeline_Process(t *testing.T) {
	t.Parallel()

	t.Run("processes markdown document end to end", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}
		var storedBlocks []*ingest.ContentBlock
		var playbookTags []string

		p := &pipeline.Pipeline{
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, blocks []*ingest.ContentBlock) error {
					storedBlocks = blocks
					return nil
				},
			},
			Playbooks: &mock.PlaybookService{
				UpdatePlaybookTagsFn: func(_ context.Context, id string, tags []string) error {
					playbookTags = tags
					return nil
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceMarkdown,
			Name: "growth.md",
			Data: []byte("# Growth Goals\n\nOur strategy targets organic growth channels.\n\n- [ ] set up analytics\n- [ ] launch campaign\n"),
		}

		result, err := p.Process(context.Background(), "playbook-1", doc)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, []ingest.UploadStatus{
			ingest.UploadUploaded,
			ingest.UploadProcessing,
			ingest.UploadCompleted,
		}, recorder.statuses)

		require.Len(t, storedBlocks, 3)
		assert.Equal(t, ingest.BlockHeading, storedBlocks[0].BlockType)
		assert.Equal(t, ingest.AssetGoal, storedBlocks[0].AssetType)
		assert.Equal(t, ingest.BlockList, storedBlocks[2].BlockType)
		assert.Equal(t, ingest.AssetChecklist, storedBlocks[2].AssetType)
		for i, block := range storedBlocks {
			assert.Equal(t, "upload-1", block.UploadID)
			assert.Equal(t, i, block.Position)
			assert.Nil(t, block.Embedding, "no embedder configured")
		}

		require.NotNil(t, result.Outline)
		assert.Equal(t, 3, result.Outline.TotalBlocks)
		assert.Equal(t, result.Outline.Themes, playbookTags)

		assert.Equal(t, ingest.UploadCompleted, result.Upload.Status)
		assert.Equal(t, 3, result.Upload.BlockCount)
		assert.Equal(t, string(doc.Data), result.Upload.Content)
		assert.NotEmpty(t, recorder.upload.ContentHash)
	})

	t.Run("fetches and converts url documents", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}
		var fetchedURL, waitedDomain string

		p := &pipeline.Pipeline{
			Extractors: map[ingest.SourceKind]ingest.Extractor{
				ingest.SourceURL: &mock.Extractor{
					ExtractFn: func(_ context.Context, doc *ingest.RawDocument) ([]ingest.Section, error) {
						assert.NotEmpty(t, doc.Data, "fetched body should be attached")
						return []ingest.Section{{
							Text:       "Track conversion rate weekly.",
							BlockType:  ingest.BlockParagraph,
							Confidence: ingest.ConfidenceURLText,
						}}, nil
					},
				},
			},
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					fetchedURL = url
					return "<html><body><p>Track conversion rate weekly.</p></body></html>", nil
				},
			},
			Converter: &mock.Converter{
				ConvertFn: func(_ string) (string, error) {
					return "Track conversion rate weekly.", nil
				},
			},
			RateLimiter: &mock.DomainLimiter{
				WaitFn: func(_ context.Context, domain string) error {
					waitedDomain = domain
					return nil
				},
			},
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, _ []*ingest.ContentBlock) error { return nil },
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceURL,
			URL:  "https://example.com/metrics",
		}

		result, err := p.Process(context.Background(), "playbook-1", doc)
		require.NoError(t, err)

		assert.Equal(t, "https://example.com/metrics", fetchedURL)
		assert.Equal(t, "example.com", waitedDomain)
		assert.Equal(t, "https://example.com/metrics", result.Upload.Name)
		assert.Equal(t, "Track conversion rate weekly.", result.Upload.Content)
		require.Len(t, result.Blocks, 1)
		assert.InDelta(t, ingest.ConfidenceURLText, result.Blocks[0].ConfidenceScore, 0.001)
	})

	t.Run("attaches embeddings when embedder configured", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}

		p := &pipeline.Pipeline{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, text string) ([]float32, error) {
					return []float32{0.5, 0.5}, nil
				},
				DimensionsFn: func() int { return 2 },
			},
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, _ []*ingest.ContentBlock) error { return nil },
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceText,
			Name: "notes.txt",
			Data: []byte("Focus on improving customer retention."),
		}

		result, err := p.Process(context.Background(), "playbook-1", doc)
		require.NoError(t, err)
		require.Len(t, result.Blocks, 1)
		assert.Equal(t, []float32{0.5, 0.5}, result.Blocks[0].Embedding)
	})

	t.Run("fetch failure marks upload failed", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}

		p := &pipeline.Pipeline{
			Fetcher: &mock.Fetcher{
				FetchFn: func(_ context.Context, url string) (string, error) {
					return "", ingest.Errorf(ingest.EFETCH, "unable to fetch %s: connection refused", url)
				},
			},
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, _ []*ingest.ContentBlock) error {
					t.Error("no blocks should be stored")
					return nil
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceURL,
			URL:  "https://unreachable.example.com",
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.EFETCH, ingest.ErrorCode(err))

		assert.Equal(t, ingest.UploadFailed, recorder.upload.Status)
		assert.Contains(t, recorder.upload.Error, "connection refused")
	})

	t.Run("embedding failure aborts the document", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}
		var created bool

		p := &pipeline.Pipeline{
			Embedder: &mock.Embedder{
				EmbedFn: func(_ context.Context, _ string) ([]float32, error) {
					return nil, ingest.Errorf(ingest.EEMBEDDING, "embedding request failed: quota exceeded")
				},
				DimensionsFn: func() int { return 2 },
			},
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, _ []*ingest.ContentBlock) error {
					created = true
					return nil
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceText,
			Name: "notes.txt",
			Data: []byte("Focus on improving customer retention."),
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.EEMBEDDING, ingest.ErrorCode(err))
		assert.False(t, created, "no partial block set")
		assert.Equal(t, ingest.UploadFailed, recorder.upload.Status)
	})

	t.Run("empty document fails with extraction error", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}

		p := &pipeline.Pipeline{
			Uploads: recorder.service(),
			Blocks:  &mock.BlockService{},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceText,
			Name: "blank.txt",
			Data: []byte("   \n\n   "),
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.EEXTRACTION, ingest.ErrorCode(err))
		assert.Equal(t, ingest.UploadFailed, recorder.upload.Status)
	})

	t.Run("missing extractor is an invalid request", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}

		p := &pipeline.Pipeline{
			Uploads: recorder.service(),
			Blocks:  &mock.BlockService{},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourcePDF,
			Name: "report.pdf",
			Data: []byte("%PDF-1.4"),
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.EINVALID, ingest.ErrorCode(err))
	})

	t.Run("invalid document creates no upload", func(t *testing.T) {
		t.Parallel()

		p := &pipeline.Pipeline{
			Uploads: &mock.UploadService{
				CreateUploadFn: func(_ context.Context, _ *ingest.Upload) error {
					t.Error("upload should not be created")
					return nil
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceKind("spreadsheet"),
			Name: "sheet.xlsx",
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.EINVALID, ingest.ErrorCode(err))
	})

	t.Run("block storage failure marks upload failed", func(t *testing.T) {
		t.Parallel()

		recorder := &uploadRecorder{}

		p := &pipeline.Pipeline{
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, _ []*ingest.ContentBlock) error {
					return ingest.Errorf(ingest.EINTERNAL, "database error")
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceText,
			Name: "notes.txt",
			Data: []byte("Focus on improving customer retention."),
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.Error(t, err)
		assert.Equal(t, ingest.UploadFailed, recorder.upload.Status)
	})
}

func TestPipeline_Process_Idempotent(t *testing.T) {
	t.Parallel()

	// Running the keyword path twice over identical input yields
	// identical classification sequences.
	run := func() []*ingest.ContentBlock {
		recorder := &uploadRecorder{}
		var stored []*ingest.ContentBlock

		p := &pipeline.Pipeline{
			Uploads: recorder.service(),
			Blocks: &mock.BlockService{
				CreateBlocksFn: func(_ context.Context, blocks []*ingest.ContentBlock) error {
					stored = blocks
					return nil
				},
			},
		}

		doc := &ingest.RawDocument{
			Kind: ingest.SourceMarkdown,
			Name: "plan.md",
			Data: []byte("# Objectives\n\nOur strategy is organic growth.\n\n- measure conversion\n- track revenue\n"),
		}

		_, err := p.Process(context.Background(), "playbook-1", doc)
		require.NoError(t, err)
		return stored
	}

	first := run()
	second := run()

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].BlockType, second[i].BlockType)
		assert.Equal(t, first[i].AssetType, second[i].AssetType)
		assert.Equal(t, first[i].Tags, second[i].Tags)
	}
}
