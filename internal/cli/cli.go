package cli

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pfrederiksen/wnba-box-scores/internal/config"
	"github.com/pfrederiksen/wnba-box-scores/internal/logger"
	"github.com/pfrederiksen/wnba-box-scores/internal/pipeline"
	"github.com/pfrederiksen/wnba-box-scores/internal/scraper"
	"github.com/pfrederiksen/wnba-box-scores/internal/sink"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

type options struct {
	dryRun  bool
	format  string
	verbose bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "box-scores",
		Short: "Append yesterday's WNBA box scores to Google Sheets",
		Long: `Scrapes the ESPN WNBA scoreboard for yesterday's games, extracts each
game's quarter-by-quarter line score and appends one row per game to the
configured Google Sheets worksheet.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print rows as CSV instead of appending them")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Also write log entries to stderr")

	return cmd
}

// run performs one ingestion run
func run(cmd *cobra.Command, opts *options) error {
	format := OutputFormat(strings.ToLower(opts.format))
	if format != FormatText && format != FormatJSON {
		return fmt.Errorf("invalid format: %s (must be 'text' or 'json')", opts.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logFile, err := logger.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()

	var logOut io.Writer = logFile
	level := logger.ParseLevel(cfg.LogLevel)
	if opts.verbose {
		logOut = io.MultiWriter(logFile, cmd.ErrOrStderr())
		level = logger.LevelDebug
	}
	log := logger.New(level, logOut)

	log.Debug("Configuration loaded", logger.Fields{
		"scoreboard_url": cfg.ScoreboardURL,
		"boxscore_url":   cfg.BoxScoreURL,
		"spreadsheet_id": cfg.SpreadsheetID,
		"worksheet":      cfg.Worksheet,
		"location":       cfg.Location.String(),
		"dry_run":        opts.dryRun,
	})

	sc := scraper.New(scraper.Config{
		ScoreboardURL: cfg.ScoreboardURL,
		BoxScoreURL:   cfg.BoxScoreURL,
		UserAgent:     cfg.UserAgent,
		Timeout:       cfg.HTTPTimeout,
	})

	out, err := newSink(cmd, cfg, opts, format, log)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, runErr := pipeline.New(sc, out, log, pipeline.Options{Location: cfg.Location}).Run(ctx)

	result := NewOutputResult(report, runErr)
	result.CheckedAt = time.Now().UTC()
	if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
		return fmt.Errorf("writing output: %w", err)
	}

	return runErr
}

// newSink picks the Sheets sink or, with --dry-run, a CSV writer. JSON output
// already carries the rows, so a JSON dry run prints no CSV.
func newSink(cmd *cobra.Command, cfg config.Config, opts *options, format OutputFormat, log *logger.Logger) (sink.Sink, error) {
	if opts.dryRun {
		if format == FormatJSON {
			return sink.NewDryRun(io.Discard), nil
		}
		return sink.NewDryRun(cmd.OutOrStdout()), nil
	}

	s, err := sink.NewSheets(sink.SheetsConfig{
		SpreadsheetID:   cfg.SpreadsheetID,
		Worksheet:       cfg.Worksheet,
		CredentialPaths: cfg.CredentialPaths,
	}, log)
	if err != nil {
		return nil, fmt.Errorf("initializing sheets sink: %w", err)
	}
	return s, nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
