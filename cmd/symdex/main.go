package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/symdex"
	"github.com/fwojciec/symdex/fetch"
	"github.com/fwojciec/symdex/fs"
	"github.com/fwojciec/symdex/glamour"
	"github.com/fwojciec/symdex/goquery"
	"github.com/fwojciec/symdex/htmltomarkdown"
	symdexhttp "github.com/fwojciec/symdex/http"
	symslog "github.com/fwojciec/symdex/slog"
	"github.com/fwojciec/symdex/sqlite"
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

	// Fetcher overrides the default HTTP and filesystem fetcher.
	Fetcher symdex.Fetcher
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
		kong.Name("symdex"),
		kong.Description("Load, store and query Doxygen search indexes."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'symdex --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	// check works on a file alone.
	if cmd != "check" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set SYMDEX_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		deps.DB = m.DB
		deps.Sets = sqlite.NewSetService(m.DB)
		deps.Entries = sqlite.NewEntryService(m.DB)
	}

	var logger *slog.Logger
	if cli.Verbose {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = &sourceFetcher{
			remote: symdexhttp.NewFetcher(),
			local:  fs.NewFetcher(""),
		}
		defer fetcher.Close()
	}
	var detector symdex.SiteDetector = goquery.NewDetector()
	if logger != nil {
		fetcher = symslog.NewLoggingFetcher(fetcher, logger)
		detector = symslog.NewLoggingSiteDetector(detector, logger)
	}
	deps.Fetcher = fetcher
	deps.Detector = detector
	deps.Members = goquery.NewMemberExtractor()
	deps.NewConverter = func(baseURL string) symdex.Converter {
		return htmltomarkdown.NewConverter(htmltomarkdown.WithBaseURL(baseURL))
	}

	if cmd == "show" && cli.Show.Render {
		r, err := glamour.NewRenderer(glamour.WithStyle(cli.Show.Style))
		if err != nil {
			return err
		}
		deps.Renderer = r
	}

	if cmd == "import" {
		var importer symdex.Importer = &fetch.Importer{
			Fetcher:     fetcher,
			Sets:        deps.Sets,
			Entries:     deps.Entries,
			RateLimiter: fetch.NewDomainLimiter(cli.Import.RPS),
			Concurrency: cli.Import.Concurrency,
			Progress:    importProgress(stdout, stderr),
			OnRetry: func(url string, attempt int, err error) {
				fmt.Fprintf(stderr, "  retry %s (attempt %d): %v\n", url, attempt, err)
			},
		}
		if logger != nil {
			importer = symslog.NewLoggingImporter(importer, logger)
		}
		deps.Importer = importer
	}

	return kongCtx.Run(deps)
}

func importProgress(stdout, stderr io.Writer) fetch.ProgressFunc {
	return func(event fetch.ProgressEvent) {
		switch event.Type {
		case fetch.ProgressStarted:
			fmt.Fprintf(stdout, "  Found %d data files\n", event.Total)
		case fetch.ProgressFailed:
			fmt.Fprintf(stderr, "  failed %s: %v\n", event.URL, event.Error)
		}
	}
}

func defaultDBPath() string {
	if path := os.Getenv("SYMDEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "symdex.db"
	}
	dir := filepath.Join(home, ".symdex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "symdex.db")
}
