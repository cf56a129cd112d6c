package main

import (
	"fmt"
	"strings"

	"github.com/playbookos/ingest"
)

// Run executes the url command.
func (c *URLCmd) Run(deps *Dependencies) error {
	if deps.Pipeline == nil {
		fmt.Fprintf(deps.Stderr, "error: ingestion pipeline not configured\n")
		return ingest.Errorf(ingest.EINTERNAL, "ingestion pipeline not configured")
	}

	if _, err := deps.Playbooks.FindPlaybookByID(deps.Ctx, c.Playbook); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	doc := &ingest.RawDocument{
		Kind: ingest.SourceURL,
		Name: c.Name,
		URL:  c.URL,
	}

	result, err := deps.Pipeline.Process(deps.Ctx, c.Playbook, doc)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %s (%s)\n", c.URL, result.Upload.ID)
	fmt.Fprintf(deps.Stdout, "  %d blocks\n", result.Upload.BlockCount)
	if len(result.Outline.Themes) > 0 {
		fmt.Fprintf(deps.Stdout, "  themes: %s\n", strings.Join(result.Outline.Themes, ", "))
	}
	return nil
}
