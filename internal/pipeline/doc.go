// Package pipeline runs one day's ingestion: discover game IDs, extract each
// game's line score, collect the rows and hand them to a sink.
//
// Games are processed one at a time in discovery order. A game that cannot be
// fetched or parsed is logged and left out; the rest of the run continues. A
// sink failure ends the run with an error.
package pipeline
