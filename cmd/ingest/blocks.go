package main

import (
	"fmt"
	"strings"

	"github.com/playbookos/ingest"
)

// Run executes the blocks command.
func (c *BlocksCmd) Run(deps *Dependencies) error {
	upload, err := deps.Uploads.FindUploadByID(deps.Ctx, c.Upload)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	blocks, err := deps.Blocks.FindBlocksByUpload(deps.Ctx, upload.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	if len(blocks) == 0 {
		fmt.Fprintf(deps.Stdout, "No blocks stored for upload %q (status: %s).\n", upload.Name, upload.Status)
		return nil
	}

	fmt.Fprintf(deps.Stdout, "Blocks for %s (%d total):\n\n", upload.Name, len(blocks))
	for _, b := range blocks {
		fmt.Fprintf(deps.Stdout, "  %d. [%s/%s] %s\n", b.Position+1, b.BlockType, b.AssetType, b.Summary)
		if len(b.Tags) > 0 {
			fmt.Fprintf(deps.Stdout, "     tags: %s\n", strings.Join(b.Tags, ", "))
		}
		if c.Full {
			fmt.Fprintf(deps.Stdout, "     %s\n", strings.ReplaceAll(b.Content, "\n", "\n     "))
		}
	}

	return nil
}
