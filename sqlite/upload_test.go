package sqlite_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/sqlite"
)

func createTestUpload(t *testing.T, db *sqlite.DB, playbookID string) *ingest.Upload {
	t.Helper()
	svc := sqlite.NewUploadService(db)
	upload := &ingest.Upload{
		PlaybookID:  playbookID,
		Name:        "strategy.md",
		Source:      ingest.SourceMarkdown,
		ContentHash: sqlite.HashContent([]byte("# Strategy")),
	}
	require.NoError(t, svc.CreateUpload(context.Background(), upload))
	return upload
}

func TestHashContent(t *testing.T) {
	t.Parallel()

	a := sqlite.HashContent([]byte("same content"))
	b := sqlite.HashContent([]byte("same content"))
	c := sqlite.HashContent([]byte("different content"))

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16, "hex-encoded 64-bit hash")
}

func TestUploadService_CreateUpload(t *testing.T) {
	t.Parallel()

	t.Run("creates upload in uploaded state", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := &ingest.Upload{
			PlaybookID: playbook.ID,
			Name:       "report.pdf",
			Source:     ingest.SourcePDF,
		}

		err := svc.CreateUpload(ctx, upload)
		require.NoError(t, err)

		assert.NotEmpty(t, upload.ID, "ID should be generated")
		assert.Equal(t, ingest.UploadUploaded, upload.Status)
		assert.False(t, upload.CreatedAt.IsZero(), "CreatedAt should be set")
		assert.Nil(t, upload.ProcessedAt)
	})

	t.Run("returns error for invalid upload", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUploadService(db)

		err := svc.CreateUpload(context.Background(), &ingest.Upload{})
		require.Error(t, err)
		assert.Equal(t, ingest.EINVALID, ingest.ErrorCode(err))
	})

	t.Run("returns error for unknown source kind", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUploadService(db)

		err := svc.CreateUpload(context.Background(), &ingest.Upload{
			Name:   "doc.xyz",
			Source: ingest.SourceKind("spreadsheet"),
		})
		require.Error(t, err)
		assert.Equal(t, ingest.EINVALID, ingest.ErrorCode(err))
	})
}

func TestUploadService_FindUploadByID(t *testing.T) {
	t.Parallel()

	t.Run("returns upload when found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)

		found, err := svc.FindUploadByID(ctx, upload.ID)
		require.NoError(t, err)
		assert.Equal(t, upload.ID, found.ID)
		assert.Equal(t, upload.PlaybookID, found.PlaybookID)
		assert.Equal(t, upload.Name, found.Name)
		assert.Equal(t, ingest.SourceMarkdown, found.Source)
		assert.Equal(t, upload.ContentHash, found.ContentHash)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUploadService(db)

		_, err := svc.FindUploadByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, ingest.ENOTFOUND, ingest.ErrorCode(err))
	})
}

func TestUploadService_FindUploads(t *testing.T) {
	t.Parallel()

	t.Run("filters by playbook", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbooks := sqlite.NewPlaybookService(db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		first := &ingest.Playbook{Name: "first"}
		second := &ingest.Playbook{Name: "second"}
		require.NoError(t, playbooks.CreatePlaybook(ctx, first))
		require.NoError(t, playbooks.CreatePlaybook(ctx, second))

		createTestUpload(t, db, first.ID)
		createTestUpload(t, db, first.ID)
		createTestUpload(t, db, second.ID)

		uploads, err := svc.FindUploads(ctx, ingest.UploadFilter{PlaybookID: &first.ID})
		require.NoError(t, err)
		assert.Len(t, uploads, 2)
	})

	t.Run("filters by status", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)
		createTestUpload(t, db, playbook.ID)

		completed := ingest.UploadCompleted
		_, err := svc.UpdateUpload(ctx, upload.ID, ingest.UploadUpdate{Status: &completed})
		require.NoError(t, err)

		uploads, err := svc.FindUploads(ctx, ingest.UploadFilter{Status: &completed})
		require.NoError(t, err)
		require.Len(t, uploads, 1)
		assert.Equal(t, upload.ID, uploads[0].ID)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		for range 3 {
			createTestUpload(t, db, playbook.ID)
		}

		uploads, err := svc.FindUploads(ctx, ingest.UploadFilter{Limit: 2})
		require.NoError(t, err)
		assert.Len(t, uploads, 2)

		uploads, err = svc.FindUploads(ctx, ingest.UploadFilter{Limit: 2, Offset: 2})
		require.NoError(t, err)
		assert.Len(t, uploads, 1)
	})
}

func TestUploadService_UpdateUpload(t *testing.T) {
	t.Parallel()

	t.Run("terminal status stamps processed_at", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)

		completed := ingest.UploadCompleted
		count := 7
		updated, err := svc.UpdateUpload(ctx, upload.ID, ingest.UploadUpdate{
			Status:     &completed,
			BlockCount: &count,
		})
		require.NoError(t, err)
		assert.Equal(t, ingest.UploadCompleted, updated.Status)
		assert.Equal(t, 7, updated.BlockCount)
		require.NotNil(t, updated.ProcessedAt)

		found, err := svc.FindUploadByID(ctx, upload.ID)
		require.NoError(t, err)
		assert.Equal(t, ingest.UploadCompleted, found.Status)
		require.NotNil(t, found.ProcessedAt)
	})

	t.Run("failed status records error message", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)

		failed := ingest.UploadFailed
		msg := "no text content found in PDF"
		updated, err := svc.UpdateUpload(ctx, upload.ID, ingest.UploadUpdate{
			Status: &failed,
			Error:  &msg,
		})
		require.NoError(t, err)
		assert.Equal(t, ingest.UploadFailed, updated.Status)
		assert.Equal(t, msg, updated.Error)
		require.NotNil(t, updated.ProcessedAt)
	})

	t.Run("intermediate status leaves processed_at unset", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		svc := sqlite.NewUploadService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)

		processing := ingest.UploadProcessing
		updated, err := svc.UpdateUpload(ctx, upload.ID, ingest.UploadUpdate{Status: &processing})
		require.NoError(t, err)
		assert.Nil(t, updated.ProcessedAt)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUploadService(db)

		_, err := svc.UpdateUpload(context.Background(), "missing", ingest.UploadUpdate{})
		require.Error(t, err)
		assert.Equal(t, ingest.ENOTFOUND, ingest.ErrorCode(err))
	})
}

func TestUploadService_DeleteUpload(t *testing.T) {
	t.Parallel()

	t.Run("deletes upload and cascades to blocks", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		playbook := createTestPlaybook(t, db)
		uploads := sqlite.NewUploadService(db)
		blocks := sqlite.NewBlockService(db)
		ctx := context.Background()

		upload := createTestUpload(t, db, playbook.ID)
		require.NoError(t, blocks.CreateBlocks(ctx, []*ingest.ContentBlock{{
			UploadID:  upload.ID,
			BlockType: ingest.BlockText,
			AssetType: ingest.AssetStrategy,
			Content:   "Focus on organic growth.",
		}}))

		require.NoError(t, uploads.DeleteUpload(ctx, upload.ID))

		_, err := uploads.FindUploadByID(ctx, upload.ID)
		assert.Equal(t, ingest.ENOTFOUND, ingest.ErrorCode(err))

		remaining, err := blocks.FindBlocksByUpload(ctx, upload.ID)
		require.NoError(t, err)
		assert.Empty(t, remaining)
	})

	t.Run("returns ENOTFOUND when not found", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewUploadService(db)

		err := svc.DeleteUpload(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, ingest.ENOTFOUND, ingest.ErrorCode(err))
	})
}
