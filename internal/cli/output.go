package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
	"github.com/pfrederiksen/wnba-box-scores/internal/logger"
	"github.com/pfrederiksen/wnba-box-scores/internal/pipeline"
	"github.com/pfrederiksen/wnba-box-scores/internal/sink"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt time.Time                   `json:"checked_at"`
	Date      boxscore.ReportDate         `json:"date"`
	GameIDs   []boxscore.GameID           `json:"game_ids"`
	Rows      []boxscore.Row              `json:"rows"`
	Failures  []*pipeline.ExtractionError `json:"failures"`
	Ack       sink.Ack                    `json:"ack"`
	Metrics   logger.Snapshot             `json:"metrics"`
	Error     string                      `json:"error,omitempty"`
}

// NewOutputResult builds the summary of a run. report may be nil.
func NewOutputResult(report *pipeline.Report, runErr error) *OutputResult {
	result := &OutputResult{
		GameIDs:  make([]boxscore.GameID, 0),
		Rows:     make([]boxscore.Row, 0),
		Failures: make([]*pipeline.ExtractionError, 0),
	}
	if report != nil {
		result.Date = report.Date
		result.GameIDs = report.GameIDs
		result.Failures = report.Failures
		result.Ack = report.Ack
		result.Metrics = report.Metrics
		if report.Result != nil {
			result.Rows = report.Result.Rows
		}
	}
	if runErr != nil {
		result.Error = runErr.Error()
	}
	return result
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	fmt.Fprintf(w, "Box scores for %s\n", result.Date)

	if len(result.GameIDs) == 0 {
		fmt.Fprintln(w, "No games found.")
	}

	for _, row := range result.Rows {
		fmt.Fprintf(w, "  %s: %s @ %s\n", row.GameID, row.Away.Team, row.Home.Team)
		if verbose {
			fmt.Fprintf(w, "       %-4s %s\n", "Q", "1    2    3    4")
			fmt.Fprintf(w, "       %-4s %s\n", "Away", quarterLine(row.Away))
			fmt.Fprintf(w, "       %-4s %s\n", "Home", quarterLine(row.Home))
		}
	}

	for _, f := range result.Failures {
		fmt.Fprintf(w, "  %s: FAILED (%v)\n", f.GameID, f.Err)
	}

	fmt.Fprintf(w, "\nGames: %d, extracted: %d, failed: %d\n",
		len(result.GameIDs), len(result.Rows), len(result.Failures))

	switch {
	case result.Error != "":
		fmt.Fprintf(w, "Run failed: %s\n", result.Error)
	case result.Ack.DryRun:
		fmt.Fprintf(w, "Dry run: %d rows not appended\n", result.Ack.Rows)
	case result.Ack.UpdatedRange != "":
		fmt.Fprintf(w, "Appended %d rows to %s\n", result.Ack.Rows, result.Ack.UpdatedRange)
	default:
		fmt.Fprintf(w, "Appended %d rows\n", result.Ack.Rows)
	}

	return nil
}

func quarterLine(side boxscore.Side) string {
	cells := make([]string, len(side.Quarters))
	for i, q := range side.Quarters {
		cells[i] = fmt.Sprintf("%-4s", q)
	}
	return strings.TrimRight(strings.Join(cells, " "), " ")
}
