package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
)

// Sink defines how a run's rows are stored
type Sink interface {
	// Append stores every row of result as one batch. An empty result is a
	// successful no-op.
	Append(ctx context.Context, result *boxscore.RunResult) (Ack, error)
}

// Ack describes a successful append.
type Ack struct {
	Rows         int    `json:"rows"`
	UpdatedRange string `json:"updated_range,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`
}

// SinkError reports that a batch could not be stored. Op is the failing step:
// "credentials", "auth" or "append".
type SinkError struct {
	Op  string
	Err error
}

func (e *SinkError) Error() string {
	return fmt.Sprintf("sink %s: %v", e.Op, e.Err)
}

func (e *SinkError) Unwrap() error {
	return e.Err
}

// AsSinkError unwraps err into a SinkError.
func AsSinkError(err error) (*SinkError, bool) {
	var sErr *SinkError
	if errors.As(err, &sErr) {
		return sErr, true
	}
	return nil, false
}
