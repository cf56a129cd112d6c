package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"github.com/playbookos/ingest"
)

// Compile-time interface verification.
var _ ingest.UploadService = (*UploadService)(nil)

// UploadService implements ingest.UploadService using SQLite.
type UploadService struct {
	db *DB
}

// NewUploadService creates a new UploadService.
func NewUploadService(db *DB) *UploadService {
	return &UploadService{db: db}
}

// HashContent computes the xxHash of a payload and returns a hex string.
// Used to detect re-uploads of identical documents.
func HashContent(data []byte) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64(data))
	return hex.EncodeToString(b[:])
}

// CreateUpload creates a new upload in the uploaded state.
func (s *UploadService) CreateUpload(ctx context.Context, upload *ingest.Upload) error {
	if err := upload.Validate(); err != nil {
		return err
	}

	upload.ID = uuid.New().String()
	upload.Status = ingest.UploadUploaded
	upload.CreatedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO uploads (id, playbook_id, name, source, status, error, content, content_hash, block_count, created_at, processed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NULL)
	`, upload.ID, upload.PlaybookID, upload.Name, string(upload.Source), string(upload.Status),
		upload.Error, upload.Content, upload.ContentHash, upload.BlockCount,
		upload.CreatedAt.Format(time.RFC3339))

	return err
}

// FindUploadByID retrieves an upload by ID.
func (s *UploadService) FindUploadByID(ctx context.Context, id string) (*ingest.Upload, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, playbook_id, name, source, status, error, content, content_hash, block_count, created_at, processed_at
		FROM uploads
		WHERE id = ?
	`, id)

	upload, err := scanUpload(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ingest.Errorf(ingest.ENOTFOUND, "upload not found")
	}
	if err != nil {
		return nil, err
	}
	return upload, nil
}

// FindUploads retrieves uploads matching the filter, newest first.
func (s *UploadService) FindUploads(ctx context.Context, filter ingest.UploadFilter) ([]*ingest.Upload, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, playbook_id, name, source, status, error, content, content_hash, block_count, created_at, processed_at FROM uploads WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.PlaybookID != nil {
		query.WriteString(" AND playbook_id = ?")
		args = append(args, *filter.PlaybookID)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY created_at DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var uploads []*ingest.Upload
	for rows.Next() {
		upload, err := scanUpload(rows.Scan)
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, upload)
	}

	return uploads, rows.Err()
}

// UpdateUpload updates an existing upload. Setting a terminal status
// stamps the processing time.
func (s *UploadService) UpdateUpload(ctx context.Context, id string, upd ingest.UploadUpdate) (*ingest.Upload, error) {
	upload, err := s.FindUploadByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Status != nil {
		upload.Status = *upd.Status
		if upload.Status == ingest.UploadCompleted || upload.Status == ingest.UploadFailed {
			now := time.Now().UTC()
			upload.ProcessedAt = &now
		}
	}
	if upd.Error != nil {
		upload.Error = *upd.Error
	}
	if upd.Content != nil {
		upload.Content = *upd.Content
	}
	if upd.BlockCount != nil {
		upload.BlockCount = *upd.BlockCount
	}

	var processedAt any
	if upload.ProcessedAt != nil {
		processedAt = upload.ProcessedAt.Format(time.RFC3339)
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE uploads
		SET status = ?, error = ?, content = ?, block_count = ?, processed_at = ?
		WHERE id = ?
	`, string(upload.Status), upload.Error, upload.Content, upload.BlockCount, processedAt, id)
	if err != nil {
		return nil, err
	}

	return upload, nil
}

// DeleteUpload permanently removes an upload. Associated blocks are
// removed by the foreign key cascade.
func (s *UploadService) DeleteUpload(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM uploads WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ingest.Errorf(ingest.ENOTFOUND, "upload not found")
	}

	return nil
}

// scanUpload reads one uploads row using the given scan function.
func scanUpload(scan func(dest ...any) error) (*ingest.Upload, error) {
	var upload ingest.Upload
	var source, status, createdAt string
	var processedAt *string

	err := scan(&upload.ID, &upload.PlaybookID, &upload.Name, &source, &status,
		&upload.Error, &upload.Content, &upload.ContentHash, &upload.BlockCount,
		&createdAt, &processedAt)
	if err != nil {
		return nil, err
	}

	upload.Source = ingest.SourceKind(source)
	upload.Status = ingest.UploadStatus(status)

	if upload.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if processedAt != nil {
		t, err := parseRFC3339(*processedAt, "processed_at")
		if err != nil {
			return nil, err
		}
		upload.ProcessedAt = &t
	}

	return &upload, nil
}
