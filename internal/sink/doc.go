// Package sink delivers a run's box score rows to their destination.
//
// The Sheets sink appends every row of a run to a Google Sheets worksheet in a
// single request, authenticating with a service account key found on one of
// several candidate paths. The DryRun sink writes the same rows as CSV for
// inspection without touching the sheet.
package sink
