package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/placefinder"
	pffs "github.com/fwojciec/placefinder/fs"
	"github.com/fwojciec/placefinder/gemini"
	"github.com/fwojciec/placefinder/places"
	pfprom "github.com/fwojciec/placefinder/prometheus"
	pfslog "github.com/fwojciec/placefinder/slog"
	"github.com/fwojciec/placefinder/sqlite"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintln(os.Stderr, "warning: failed to load .env:", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the sqlite store.
	DB *sqlite.DB

	// Services for end-to-end testing. When set they replace the store and
	// the Gemini connector built from flags.
	Store     placefinder.Store
	Connector placefinder.Connector
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
func (m *Main) Run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("placefinder"),
		kong.Description("Find places with Gemini and keep a local list of the ones you like."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'placefinder --help' to see available commands")
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
	if cli.DB != "" {
		m.DBPath = cli.DB
	}

	logger := newLogger(stderr, cli.LogLevel, cli.LogFormat)
	deps.Logger = logger

	store := m.Store
	if store == nil {
		store, err = m.openStore(cli, stderr)
		if err != nil {
			return err
		}
		defer m.Close()
	}
	store = pfslog.NewLoggingStore(store, logger.With("component", "store"))

	connector := m.Connector
	if connector == nil {
		opts := []gemini.Option{
			gemini.WithModel(cli.Model),
			gemini.WithLogger(logger.With("component", "gemini")),
		}
		if cli.Rate > 0 {
			opts = append(opts, gemini.WithLimiter(rate.NewLimiter(rate.Limit(cli.Rate), 1)))
		}
		connector = gemini.NewConnector(opts...)
	}

	var container *places.Container
	registry := prometheus.NewRegistry()
	metrics := pfprom.NewMetrics(registry, func() int { return len(container.Places()) })
	connector = pfprom.NewInstrumentedConnector(connector, metrics)
	connector = pfslog.NewLoggingConnector(connector, logger.With("component", "finder"))

	container = places.NewContainer(places.NewPersistence(store, logger), connector, logger)
	container.Open(ctx)

	deps.Container = container
	deps.Registry = registry
	deps.Metrics = metrics

	return kongCtx.Run(deps)
}

func (m *Main) openStore(cli *CLI, stderr io.Writer) (placefinder.Store, error) {
	if cli.Storage == "fs" {
		dir := cli.DataDir
		if dir == "" {
			dir = defaultDataDir()
		}
		return pffs.NewFileStore(dir), nil
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set PLACEFINDER_DB to use a different database path\n")
		return nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	return sqlite.NewStore(m.DB), nil
}

func newLogger(w io.Writer, level, format string) *slog.Logger {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func defaultDBPath() string {
	if path := os.Getenv("PLACEFINDER_DB"); path != "" {
		return path
	}
	dir := homeDir()
	if dir == "" {
		return "placefinder.db"
	}
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "placefinder.db")
}

func defaultDataDir() string {
	dir := homeDir()
	if dir == "" {
		return "placefinder-data"
	}
	return filepath.Join(dir, "data")
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".placefinder")
}
