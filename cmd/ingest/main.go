package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"google.golang.org/genai"

	"github.com/playbookos/ingest"
	"github.com/playbookos/ingest/docx"
	"github.com/playbookos/ingest/gemini"
	"github.com/playbookos/ingest/goquery"
	"github.com/playbookos/ingest/htmltomarkdown"
	ingesthttp "github.com/playbookos/ingest/http"
	"github.com/playbookos/ingest/pdfcpu"
	"github.com/playbookos/ingest/pipeline"
	"github.com/playbookos/ingest/rod"
	ingestslog "github.com/playbookos/ingest/slog"
	"github.com/playbookos/ingest/sqlite"
	"github.com/playbookos/ingest/trafilatura"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	PlaybookService ingest.PlaybookService
	UploadService   ingest.UploadService
	BlockService    ingest.BlockService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("ingest"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'ingest --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	// Parse arguments first to know which command and its flags
	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	// Open database
	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set INGEST_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	// Wire core services into dependencies
	m.PlaybookService = sqlite.NewPlaybookService(m.DB)
	m.UploadService = sqlite.NewUploadService(m.DB)
	m.BlockService = sqlite.NewBlockService(m.DB)
	deps.DB = m.DB
	deps.Playbooks = m.PlaybookService
	deps.Uploads = m.UploadService
	deps.Blocks = m.BlockService

	// Wire the processing pipeline for ingestion commands
	if cmd == "file" || cmd == "url" {
		logger := slog.New(slog.NewTextHandler(stderr, nil))

		p := &pipeline.Pipeline{
			Extractors: map[ingest.SourceKind]ingest.Extractor{
				ingest.SourcePDF:  pdfcpu.NewExtractor(),
				ingest.SourceDOCX: docx.NewExtractor(),
				ingest.SourceHTML: goquery.NewExtractor(),
				ingest.SourceURL:  trafilatura.NewExtractor(),
			},
			Converter: htmltomarkdown.NewConverter(),
			Uploads:   m.UploadService,
			Blocks:    m.BlockService,
			Playbooks: m.PlaybookService,
		}

		if cmd == "url" {
			var fetcher ingest.Fetcher
			if cli.URL.Render {
				f, err := rod.NewFetcher()
				if err != nil {
					fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed for --render")
					return fmt.Errorf("failed to start browser: %w", err)
				}
				fetcher = f
			} else {
				fetcher = ingesthttp.NewFetcher()
			}
			defer fetcher.Close()

			if cli.URL.Verbose {
				fetcher = ingestslog.NewLoggingFetcher(fetcher, logger)
			}
			p.Fetcher = fetcher
			p.RateLimiter = pipeline.NewDomainLimiter(1.0)
		}

		embed := (cmd == "file" && cli.File.Embed) || (cmd == "url" && cli.URL.Embed)
		if embed {
			apiKey := os.Getenv("GEMINI_API_KEY")
			if apiKey == "" {
				fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
				return fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
			}

			client, err := genai.NewClient(ctx, &genai.ClientConfig{
				APIKey:  apiKey,
				Backend: genai.BackendGeminiAPI,
			})
			if err != nil {
				fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
				return fmt.Errorf("failed to connect to Gemini API: %w", err)
			}

			var embedder ingest.Embedder = gemini.NewEmbedder(client)
			verbose := (cmd == "file" && cli.File.Verbose) || (cmd == "url" && cli.URL.Verbose)
			if verbose {
				embedder = ingestslog.NewLoggingEmbedder(embedder, logger)
			}
			p.Embedder = embedder
		}

		deps.Pipeline = p
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("INGEST_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "ingest.db"
	}
	dir := filepath.Join(home, ".ingest")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "ingest.db")
}
