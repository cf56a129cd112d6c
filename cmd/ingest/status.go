package main

import (
	"fmt"

	"github.com/playbookos/ingest"
)

// Run executes the status command.
func (c *StatusCmd) Run(deps *Dependencies) error {
	upload, err := deps.Uploads.FindUploadByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "%s  %s\n", upload.ID, upload.Name)
	fmt.Fprintf(deps.Stdout, "  status: %s\n", upload.Status)
	fmt.Fprintf(deps.Stdout, "  source: %s\n", upload.Source)
	fmt.Fprintf(deps.Stdout, "  uploaded: %s\n", upload.CreatedAt.Format("2006-01-02 15:04:05"))
	if upload.ProcessedAt != nil {
		fmt.Fprintf(deps.Stdout, "  processed: %s\n", upload.ProcessedAt.Format("2006-01-02 15:04:05"))
	}
	if upload.Status == ingest.UploadCompleted {
		fmt.Fprintf(deps.Stdout, "  blocks: %d\n", upload.BlockCount)
	}
	if upload.Status == ingest.UploadFailed && upload.Error != "" {
		fmt.Fprintf(deps.Stdout, "  error: %s\n", upload.Error)
	}

	return nil
}
