package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
)

// DryRun writes rows as CSV instead of appending them anywhere
type DryRun struct {
	w io.Writer
}

// NewDryRun creates a dry-run sink writing to w.
func NewDryRun(w io.Writer) *DryRun {
	return &DryRun{w: w}
}

// Append prints a header and one CSV line per row.
func (d *DryRun) Append(ctx context.Context, result *boxscore.RunResult) (Ack, error) {
	if result.IsEmpty() {
		return Ack{DryRun: true}, nil
	}

	cw := csv.NewWriter(d.w)
	if err := cw.Write(boxscore.Columns); err != nil {
		return Ack{}, fmt.Errorf("writing header: %w", err)
	}
	if err := cw.WriteAll(result.Values()); err != nil {
		return Ack{}, fmt.Errorf("writing rows: %w", err)
	}

	return Ack{Rows: result.Len(), DryRun: true}, nil
}
