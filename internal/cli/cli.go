package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tommie03/NTTBot/internal/api"
	"github.com/Tommie03/NTTBot/internal/config"
	"github.com/Tommie03/NTTBot/internal/logger"
	"github.com/Tommie03/NTTBot/internal/schedule"
	"github.com/Tommie03/NTTBot/internal/scraper"
	"github.com/Tommie03/NTTBot/internal/store"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

const (
	ModeScrape = "scrape"
	ModeTest   = "test"
	ModeServe  = "serve"
	ModeSweep  = "sweep"
)

var (
	flagMode   string
	flagConfig string
	flagData   string
	flagFormat string
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nttbot",
		Short: "Scrape and track NTTB table-tennis tournaments",
		Long: `Scrapes the NTTB tournament calendar into a local database.
Repeated runs keep the database in sync; records are retired by a
retention sweep rather than on disappearance from a single page load.`,
		RunE: run,
	}

	cmd.Flags().StringVar(&flagMode, "mode", ModeScrape, "Run mode: scrape, test, serve or sweep")
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to YAML config file")
	cmd.Flags().StringVar(&flagData, "data", "", "Database path override (sqlite file)")
	cmd.Flags().StringVar(&flagFormat, "format", "text", "Output format: text or json")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	format := OutputFormat(strings.ToLower(flagFormat))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", flagFormat)
	}

	cfg, err := config.Load(flagConfig)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if flagData != "" {
		cfg.DatabasePath = flagData
	}

	logger.SetDefault(logger.New(logLevel(cfg.LogLevel), os.Stderr))

	switch strings.ToLower(flagMode) {
	case ModeScrape:
		return runScrape(cmd.Context(), cfg, format)
	case ModeTest:
		return runTest(cmd.Context(), cfg, format)
	case ModeServe:
		return runServe(cmd.Context(), cfg)
	case ModeSweep:
		return runSweep(cfg, format)
	default:
		return fmt.Errorf("invalid mode: %s (must be 'scrape', 'test', 'serve' or 'sweep')", flagMode)
	}
}

// runScrape executes one full pass against the live site and persists the
// result. A pass that completes with zero records is still a success: the
// attempt is recorded in the scrape log and the run exits cleanly.
func runScrape(ctx context.Context, cfg config.Config, format OutputFormat) error {
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	runner := schedule.NewRunner(cfg, scraper.New(cfg), st)
	result, err := runner.RunPass(ctx)
	if err != nil {
		return fmt.Errorf("scrape pass: %w", err)
	}

	return WriteSummary(os.Stdout, &Summary{
		CheckedAt: time.Now().UTC(),
		Mode:      ModeScrape,
		Found:     result.Found,
		Inserted:  result.Inserted,
	}, format)
}

// runTest scrapes and parses but never touches the database. It prints a
// preview of the first few candidates so selector changes on the site can
// be diagnosed without polluting the scrape log.
func runTest(ctx context.Context, cfg config.Config, format OutputFormat) error {
	candidates, err := scraper.New(cfg).Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape pass: %w", err)
	}

	summary := &Summary{
		CheckedAt: time.Now().UTC(),
		Mode:      ModeTest,
		Found:     len(candidates),
	}
	for i, c := range candidates {
		if i >= previewLimit {
			break
		}
		summary.Preview = append(summary.Preview, c)
	}

	return WriteSummary(os.Stdout, summary, format)
}

// runServe starts the HTTP API and the background scheduler, then blocks
// until SIGINT or SIGTERM.
func runServe(ctx context.Context, cfg config.Config) error {
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	runner := schedule.NewRunner(cfg, scraper.New(cfg), st)
	go runner.Start(ctx)

	srv := api.New(st)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen(cfg.ListenAddr)
	}()

	logger.Info("Serving", logger.Fields{"addr": cfg.ListenAddr})

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		logger.Info("Shutting down", nil)
		return srv.Shutdown()
	}
}

// runSweep retires stale and long-past records in one shot.
func runSweep(cfg config.Config, format OutputFormat) error {
	st, err := store.Open(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}

	retired, err := st.Sweep(time.Now().UTC())
	if err != nil {
		return fmt.Errorf("retention sweep: %w", err)
	}

	return WriteSummary(os.Stdout, &Summary{
		CheckedAt: time.Now().UTC(),
		Mode:      ModeSweep,
		Retired:   retired,
	}, format)
}

func logLevel(s string) logger.Level {
	switch strings.ToLower(s) {
	case "debug":
		return logger.LevelDebug
	case "warn":
		return logger.LevelWarn
	case "error":
		return logger.LevelError
	default:
		return logger.LevelInfo
	}
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
