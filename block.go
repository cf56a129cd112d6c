package ingest

import "context"

// BlockType identifies the structural shape of a content block.
type BlockType string

// Recognized block types.
const (
	BlockHeading   BlockType = "heading"
	BlockParagraph BlockType = "paragraph"
	BlockList      BlockType = "list"
	BlockCode      BlockType = "code"
	BlockTable     BlockType = "table"
	BlockQuote     BlockType = "quote"
	BlockFAQ       BlockType = "faq"
	BlockText      BlockType = "text"
)

// AssetType is one of the ten canonical playbook categories a block is
// mapped to.
type AssetType string

// The canonical asset taxonomy.
const (
	AssetGoal      AssetType = "goal"
	AssetStrategy  AssetType = "strategy"
	AssetTimeline  AssetType = "timeline"
	AssetFAQ       AssetType = "faq"
	AssetTask      AssetType = "task"
	AssetMetric    AssetType = "metric"
	AssetResource  AssetType = "resource"
	AssetExample   AssetType = "example"
	AssetTemplate  AssetType = "template"
	AssetChecklist AssetType = "checklist"
)

// AssetTypes lists all recognized asset types.
var AssetTypes = []AssetType{
	AssetGoal, AssetStrategy, AssetTimeline, AssetFAQ, AssetTask,
	AssetMetric, AssetResource, AssetExample, AssetTemplate, AssetChecklist,
}

// Valid reports whether a is one of the ten canonical asset types.
func (a AssetType) Valid() bool {
	for _, t := range AssetTypes {
		if a == t {
			return true
		}
	}
	return false
}

// summaryLimit is the number of content characters kept in a block summary
// before the ellipsis is appended.
const summaryLimit = 100

// ContentBlock is the canonical output unit of the pipeline: one classified,
// ordered unit of extracted content.
type ContentBlock struct {
	ID       string `json:"id"`
	UploadID string `json:"uploadId"`

	BlockType BlockType `json:"blockType"`
	AssetType AssetType `json:"assetType"`
	Content   string    `json:"content"`

	// ConfidenceScore is a constant per extraction method, not a
	// calibrated probability.
	ConfidenceScore float64 `json:"confidenceScore"`

	// Tags holds at most 5 topic labels in first-matched order.
	Tags []string `json:"tags"`

	// Summary is a truncated preview of Content (at most 103 characters).
	Summary string `json:"summary"`

	// Position is the block's 0-based index in the original document.
	Position int `json:"position"`

	// Embedding is the optional fixed-length semantic vector.
	Embedding []float32 `json:"embedding,omitempty"`
}

// Validate returns an error if the block contains invalid fields.
func (b *ContentBlock) Validate() error {
	if b.UploadID == "" {
		return Errorf(EINVALID, "block upload ID required")
	}
	if b.Content == "" {
		return Errorf(EINVALID, "block content required")
	}
	if !b.AssetType.Valid() {
		return Errorf(EINVALID, "unrecognized asset type %q", b.AssetType)
	}
	if len(b.Tags) > MaxTags {
		return Errorf(EINVALID, "at most %d tags allowed", MaxTags)
	}
	return nil
}

// Summarize returns a preview of content truncated to 100 characters with
// a trailing ellipsis. Content at or under the limit is returned unchanged.
func Summarize(content string) string {
	runes := []rune(content)
	if len(runes) <= summaryLimit {
		return content
	}
	return string(runes[:summaryLimit]) + "..."
}

// BlockService represents a service for persisting and querying content
// blocks. Durability is owned by implementations; the pipeline itself
// retains nothing across calls.
type BlockService interface {
	// CreateBlocks stores a complete block set for one upload.
	// The set is stored atomically: either all blocks or none.
	CreateBlocks(ctx context.Context, blocks []*ContentBlock) error

	// FindBlocksByUpload retrieves an upload's blocks ordered by position.
	FindBlocksByUpload(ctx context.Context, uploadID string) ([]*ContentBlock, error)

	// DeleteBlocksByUpload removes all blocks for an upload.
	DeleteBlocksByUpload(ctx context.Context, uploadID string) error
}
