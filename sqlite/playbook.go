package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/playbookos/ingest"
)

// Compile-time interface verification.
var _ ingest.PlaybookService = (*PlaybookService)(nil)

// PlaybookService implements ingest.PlaybookService using SQLite.
type PlaybookService struct {
	db *DB
}

// NewPlaybookService creates a new PlaybookService.
func NewPlaybookService(db *DB) *PlaybookService {
	return &PlaybookService{db: db}
}

// CreatePlaybook creates a new playbook.
func (s *PlaybookService) CreatePlaybook(ctx context.Context, playbook *ingest.Playbook) error {
	if err := playbook.Validate(); err != nil {
		return err
	}

	playbook.ID = uuid.New().String()
	now := time.Now().UTC()
	playbook.CreatedAt = now
	playbook.UpdatedAt = now

	tags, err := encodeStrings(playbook.Tags)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO playbooks (id, name, tags, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, playbook.ID, playbook.Name, tags,
		playbook.CreatedAt.Format(time.RFC3339), playbook.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindPlaybookByID retrieves a playbook by ID.
func (s *PlaybookService) FindPlaybookByID(ctx context.Context, id string) (*ingest.Playbook, error) {
	var playbook ingest.Playbook
	var tags, createdAt, updatedAt string

	err := s.db.QueryRowContext(ctx, `
		SELECT id, name, tags, created_at, updated_at
		FROM playbooks
		WHERE id = ?
	`, id).Scan(&playbook.ID, &playbook.Name, &tags, &createdAt, &updatedAt)

	if err == sql.ErrNoRows {
		return nil, ingest.Errorf(ingest.ENOTFOUND, "playbook not found")
	}
	if err != nil {
		return nil, err
	}

	if playbook.Tags, err = decodeStrings(tags, "tags"); err != nil {
		return nil, err
	}
	if playbook.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if playbook.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &playbook, nil
}

// UpdatePlaybookTags replaces the playbook's displayed tags.
func (s *PlaybookService) UpdatePlaybookTags(ctx context.Context, id string, tags []string) error {
	encoded, err := encodeStrings(tags)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE playbooks
		SET tags = ?, updated_at = ?
		WHERE id = ?
	`, encoded, time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ingest.Errorf(ingest.ENOTFOUND, "playbook not found")
	}

	return nil
}

// DeletePlaybook permanently removes a playbook.
func (s *PlaybookService) DeletePlaybook(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM playbooks WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ingest.Errorf(ingest.ENOTFOUND, "playbook not found")
	}

	return nil
}
