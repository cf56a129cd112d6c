package ingest

import (
	"context"
	"time"
)

// Playbook represents the structured document uploads feed into. The
// pipeline only touches its displayed tags; authoring and publication are
// owned elsewhere.
type Playbook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Validate returns an error if the playbook contains invalid fields.
func (p *Playbook) Validate() error {
	if p.Name == "" {
		return Errorf(EINVALID, "playbook name required")
	}
	return nil
}

// PlaybookService represents a service for managing playbooks.
type PlaybookService interface {
	// CreatePlaybook creates a new playbook.
	CreatePlaybook(ctx context.Context, playbook *Playbook) error

	// FindPlaybookByID retrieves a playbook by ID.
	// Returns ENOTFOUND if the playbook does not exist.
	FindPlaybookByID(ctx context.Context, id string) (*Playbook, error)

	// UpdatePlaybookTags replaces the playbook's displayed tags.
	// Returns ENOTFOUND if the playbook does not exist.
	UpdatePlaybookTags(ctx context.Context, id string, tags []string) error

	// DeletePlaybook permanently removes a playbook.
	// Returns ENOTFOUND if the playbook does not exist.
	DeletePlaybook(ctx context.Context, id string) error
}
