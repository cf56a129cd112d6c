package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/playbookos/ingest"
)

// Run executes the file command. Files are ingested concurrently; a
// failure in one file is reported and does not stop the others.
func (c *FileCmd) Run(deps *Dependencies) error {
	if deps.Pipeline == nil {
		fmt.Fprintf(deps.Stderr, "error: ingestion pipeline not configured\n")
		return ingest.Errorf(ingest.EINTERNAL, "ingestion pipeline not configured")
	}

	if _, err := deps.Playbooks.FindPlaybookByID(deps.Ctx, c.Playbook); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.SetLimit(concurrency)

	var mu sync.Mutex
	var failed int

	for _, path := range c.Paths {
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				mu.Lock()
				failed++
				fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", path, err)
				mu.Unlock()
				return nil
			}

			doc := &ingest.RawDocument{
				Kind: ingest.KindForPath(path),
				Name: filepath.Base(path),
				Data: data,
			}

			result, err := deps.Pipeline.Process(ctx, c.Playbook, doc)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				fmt.Fprintf(deps.Stderr, "  skip %s: %s\n", path, ingest.ErrorMessage(err))
				return nil
			}
			fmt.Fprintf(deps.Stdout, "  %s  %s  %d blocks\n",
				result.Upload.ID, path, result.Upload.BlockCount)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", ingest.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Ingested %d of %d files\n", len(c.Paths)-failed, len(c.Paths))

	if failed > 0 {
		return ingest.Errorf(ingest.EINTERNAL, "%d of %d files failed", failed, len(c.Paths))
	}
	return nil
}
