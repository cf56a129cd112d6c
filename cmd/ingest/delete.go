package main

import (
	"fmt"

	"github.com/playbookos/ingest"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return ingest.Errorf(ingest.EINVALID, "use --force to confirm deletion")
	}

	upload, err := deps.Uploads.FindUploadByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	if err := deps.Uploads.DeleteUpload(deps.Ctx, upload.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted upload %q\n", upload.Name)
	return nil
}
