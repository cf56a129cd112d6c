package main

import (
	"fmt"

	"github.com/playbookos/ingest"
)

// Run executes the uploads command.
func (c *UploadsCmd) Run(deps *Dependencies) error {
	filter := ingest.UploadFilter{
		PlaybookID: &c.Playbook,
		Offset:     c.Offset,
		Limit:      c.Limit,
	}
	if c.Status != "" {
		status := ingest.UploadStatus(c.Status)
		filter.Status = &status
	}

	uploads, err := deps.Uploads.FindUploads(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	if len(uploads) == 0 {
		fmt.Fprintln(deps.Stdout, "No uploads found. Use 'ingest file' or 'ingest url' to add one.")
		return nil
	}

	for _, u := range uploads {
		fmt.Fprintf(deps.Stdout, "%s  %-10s  %-10s  %3d blocks  %s\n",
			u.ID, u.Status, u.Source, u.BlockCount, u.Name)
	}

	return nil
}
