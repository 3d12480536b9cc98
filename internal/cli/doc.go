// Package cli implements the command-line interface for box-scores.
//
// The root command performs one ingestion run for yesterday's WNBA games:
// it loads the configuration, opens the run log, wires the ESPN scraper to
// the Google Sheets sink (or a CSV dry-run sink) and prints a summary of the
// run as text or JSON. Any terminal error exits with status 1.
package cli
