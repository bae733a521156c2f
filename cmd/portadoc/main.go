package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/awrzos/portadoc"
	"github.com/awrzos/portadoc/fs"
	"github.com/awrzos/portadoc/goquery"
	"github.com/awrzos/portadoc/htmltomarkdown"
	portahttp "github.com/awrzos/portadoc/http"
	"github.com/awrzos/portadoc/imgmeta"
	"github.com/awrzos/portadoc/readability"
	portaslog "github.com/awrzos/portadoc/slog"
	"github.com/awrzos/portadoc/sqlite"
	"github.com/awrzos/portadoc/trafilatura"
	"github.com/awrzos/portadoc/verify"
	"github.com/awrzos/portadoc/wphtml"
	"github.com/google/uuid"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var ee *exitError
		if errors.As(err, &ee) {
			os.Exit(ee.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// exitError carries a specific process exit code out of a command.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Exit codes reported by the verify command.
const (
	exitPass         = 0
	exitIssues       = 1
	exitWarningsOnly = 2
)

// Main represents the program.
type Main struct {
	// History database path. Set before calling Run().
	DBPath string

	// SQLite database backing the history service.
	DB *sqlite.DB

	// History service for end-to-end testing.
	History portadoc.HistoryService
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
		kong.Name("portadoc"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'portadoc --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Tag every log line of a verification run so batch output from
	// concurrent runs can be told apart.
	if cmd == "verify" {
		deps.Logger = deps.Logger.With("run", uuid.NewString())
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	// Wire the pipeline. Every command gets the full set; commands use
	// what they need.
	deps.Metadata = goquery.NewMetadataExtractor()
	deps.Regions = portaslog.NewLoggingRegionExtractor(regionExtractor(cli.Convert.Engine), deps.Logger)
	deps.Transcoder = htmltomarkdown.NewTranscoder()
	deps.Exporter = wphtml.NewExporter(imgmeta.NewSniffer(), exportOptions(cli.Export)...)
	deps.Verifier = portaslog.NewLoggingVerifier(verify.NewVerifier(), deps.Logger)
	deps.Store = fs.NewStore()

	// History needs the database; only convert and history touch it.
	if cmd == "convert" || cmd == "history" {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set PORTADOC_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.History = sqlite.NewHistoryService(m.DB)
		deps.History = m.History
	}

	if cmd == "convert" {
		fetcher := portahttp.NewFetcher()
		defer fetcher.Close()
		deps.Fetcher = fetcher
	}

	return kongCtx.Run(deps)
}

// regionExtractor selects the extraction engine for convert.
func regionExtractor(engine string) portadoc.RegionExtractor {
	switch engine {
	case "readability":
		return readability.NewExtractor()
	case "trafilatura":
		return trafilatura.NewExtractor()
	default:
		return goquery.NewRegionExtractor()
	}
}

func exportOptions(cmd ExportCmd) []wphtml.Option {
	var opts []wphtml.Option
	if cmd.IncludeWrapper {
		opts = append(opts, wphtml.WithBlockAnnotations())
	}
	return opts
}

func defaultDBPath() string {
	if path := os.Getenv("PORTADOC_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "portadoc.db"
	}
	dir := filepath.Join(home, ".portadoc")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "portadoc.db")
}
