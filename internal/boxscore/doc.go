// Package boxscore provides the record types produced by one ingestion run.
//
// A run discovers GameIDs for a single ReportDate, extracts one Row per game
// from its line score, and collects the rows into a RunResult in extraction
// order. Rows serialize to a fixed column order shared with the spreadsheet
// that stores them.
package boxscore
