package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/sqlite"
)

// BenchmarkBlockInserts simulates an ingestion workload: one upload
// followed by a batch of classified blocks stored in a single call.
func BenchmarkBlockInserts(b *testing.B) {
	const blocksPerUpload = 100

	b.Run("batched", func(b *testing.B) {
		benchmarkBlockInserts(b, blocksPerUpload, true)
	})

	b.Run("one_by_one", func(b *testing.B) {
		benchmarkBlockInserts(b, blocksPerUpload, false)
	})
}

func benchmarkBlockInserts(b *testing.B, blocksPerUpload int, batched bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())
	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	ctx := context.Background()
	playbooks := sqlite.NewPlaybookService(db)
	playbook := &ingest.Playbook{Name: "benchmark-playbook"}
	require.NoError(b, playbooks.CreatePlaybook(ctx, playbook))

	uploads := sqlite.NewUploadService(db)
	blockSvc := sqlite.NewBlockService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		b.StopTimer()
		upload := &ingest.Upload{
			PlaybookID: playbook.ID,
			Name:       fmt.Sprintf("doc%d.md", i),
			Source:     ingest.SourceMarkdown,
		}
		require.NoError(b, uploads.CreateUpload(ctx, upload))

		blocks := make([]*ingest.ContentBlock, 0, blocksPerUpload)
		for j := 0; j < blocksPerUpload; j++ {
			blocks = append(blocks, &ingest.ContentBlock{
				UploadID:  upload.ID,
				BlockType: ingest.BlockParagraph,
				AssetType: ingest.AssetStrategy,
				Content:   fmt.Sprintf("Block %d with enough text to look like a real paragraph of playbook content.", j),
				Position:  j,
			})
		}
		b.StartTimer()

		if batched {
			if err := blockSvc.CreateBlocks(ctx, blocks); err != nil {
				b.Fatal(err)
			}
		} else {
			for _, block := range blocks {
				if err := blockSvc.CreateBlocks(ctx, []*ingest.ContentBlock{block}); err != nil {
					b.Fatal(err)
				}
			}
		}
	}
}
