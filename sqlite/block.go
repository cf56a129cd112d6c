package sqlite

import (
	"context"

	"github.com/google/uuid"

	"github.com/playbookos/ingest"
)

// Compile-time interface verification.
var _ ingest.BlockService = (*BlockService)(nil)

// BlockService implements ingest.BlockService using SQLite.
type BlockService struct {
	db *DB
}

// NewBlockService creates a new BlockService.
func NewBlockService(db *DB) *BlockService {
	return &BlockService{db: db}
}

// CreateBlocks stores a complete block set for one upload. The insert
// runs in a transaction so the set is stored atomically.
func (s *BlockService) CreateBlocks(ctx context.Context, blocks []*ingest.ContentBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	for _, block := range blocks {
		if err := block.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO blocks (id, upload_id, block_type, asset_type, content, confidence_score, tags, summary, position, embedding)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, block := range blocks {
		if block.ID == "" {
			block.ID = uuid.New().String()
		}

		tags, err := encodeStrings(block.Tags)
		if err != nil {
			return err
		}
		embedding, err := encodeVector(block.Embedding)
		if err != nil {
			return err
		}

		_, err = stmt.ExecContext(ctx, block.ID, block.UploadID, string(block.BlockType),
			string(block.AssetType), block.Content, block.ConfidenceScore, tags,
			block.Summary, block.Position, embedding)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindBlocksByUpload retrieves an upload's blocks ordered by position.
func (s *BlockService) FindBlocksByUpload(ctx context.Context, uploadID string) ([]*ingest.ContentBlock, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, upload_id, block_type, asset_type, content, confidence_score, tags, summary, position, embedding
		FROM blocks
		WHERE upload_id = ?
		ORDER BY position ASC
	`, uploadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blocks []*ingest.ContentBlock
	for rows.Next() {
		var block ingest.ContentBlock
		var blockType, assetType, tags string
		var embedding *string

		if err := rows.Scan(&block.ID, &block.UploadID, &blockType, &assetType,
			&block.Content, &block.ConfidenceScore, &tags, &block.Summary,
			&block.Position, &embedding); err != nil {
			return nil, err
		}

		block.BlockType = ingest.BlockType(blockType)
		block.AssetType = ingest.AssetType(assetType)
		if block.Tags, err = decodeStrings(tags, "tags"); err != nil {
			return nil, err
		}
		if block.Embedding, err = decodeVector(embedding); err != nil {
			return nil, err
		}

		blocks = append(blocks, &block)
	}

	return blocks, rows.Err()
}

// DeleteBlocksByUpload removes all blocks for an upload.
func (s *BlockService) DeleteBlocksByUpload(ctx context.Context, uploadID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM blocks WHERE upload_id = ?", uploadID)
	return err
}
