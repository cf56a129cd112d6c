package main

import (
	"context"
	"io"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/pipeline"
	"github.com/playbookos/ingest/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	DB        *sqlite.DB
	Playbooks ingest.PlaybookService
	Uploads   ingest.UploadService
	Blocks    ingest.BlockService
	Pipeline  *pipeline.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Playbook PlaybookCmd `cmd:"" help:"Manage playbooks"`
	File     FileCmd     `cmd:"" help:"Ingest local files into a playbook"`
	URL      URLCmd      `cmd:"" name:"url" help:"Fetch and ingest a web page into a playbook"`
	Uploads  UploadsCmd  `cmd:"" help:"List uploads for a playbook"`
	Status   StatusCmd   `cmd:"" help:"Show processing status for an upload"`
	Blocks   BlocksCmd   `cmd:"" help:"List stored blocks for an upload"`
	Delete   DeleteCmd   `cmd:"" help:"Delete an upload and its blocks"`
}

// PlaybookCmd groups the playbook subcommands.
type PlaybookCmd struct {
	Create PlaybookCreateCmd `cmd:"" help:"Create a playbook"`
	Show   PlaybookShowCmd   `cmd:"" help:"Show a playbook"`
	Delete PlaybookDeleteCmd `cmd:"" help:"Delete a playbook and everything ingested into it"`
}

// PlaybookCreateCmd is the "playbook create" subcommand.
type PlaybookCreateCmd struct {
	Name string   `arg:"" help:"Playbook name"`
	Tag  []string `short:"t" help:"Initial tag (repeatable)"`
}

// PlaybookShowCmd is the "playbook show" subcommand.
type PlaybookShowCmd struct {
	ID string `arg:"" help:"Playbook ID"`
}

// PlaybookDeleteCmd is the "playbook delete" subcommand.
type PlaybookDeleteCmd struct {
	ID    string `arg:"" help:"Playbook ID"`
	Force bool   `help:"Confirm deletion"`
}

// FileCmd is the "file" subcommand.
type FileCmd struct {
	Playbook    string   `arg:"" help:"Playbook ID"`
	Paths       []string `arg:"" help:"Files to ingest"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent ingestion limit"`
	Embed       bool     `help:"Compute block embeddings (requires GEMINI_API_KEY)"`
	Verbose     bool     `short:"v" help:"Log embedding calls"`
}

// URLCmd is the "url" subcommand.
type URLCmd struct {
	Playbook string `arg:"" help:"Playbook ID"`
	URL      string `arg:"" help:"Page URL"`
	Name     string `help:"Display name for the upload (defaults to the URL)"`
	Render   bool   `short:"r" help:"Render the page in a headless browser before extraction"`
	Embed    bool   `help:"Compute block embeddings (requires GEMINI_API_KEY)"`
	Verbose  bool   `short:"v" help:"Log fetch and embedding calls"`
}

// UploadsCmd is the "uploads" subcommand.
type UploadsCmd struct {
	Playbook string `arg:"" help:"Playbook ID"`
	Status   string `help:"Filter by status (uploaded, processing, completed, failed)"`
	Limit    int    `help:"Maximum number of uploads to show"`
	Offset   int    `help:"Number of uploads to skip"`
}

// StatusCmd is the "status" subcommand.
type StatusCmd struct {
	ID string `arg:"" help:"Upload ID"`
}

// BlocksCmd is the "blocks" subcommand.
type BlocksCmd struct {
	Upload string `arg:"" help:"Upload ID"`
	Full   bool   `help:"Show full block content"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Upload ID"`
	Force bool   `help:"Confirm deletion"`
}
