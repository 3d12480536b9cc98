package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
)

// ExtractionError records why one game produced no row.
type ExtractionError struct {
	GameID boxscore.GameID
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting box score for game %s: %v", e.GameID, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// MarshalJSON renders the failure for run summaries.
func (e *ExtractionError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		GameID boxscore.GameID `json:"game_id"`
		Error  string          `json:"error"`
	}{
		GameID: e.GameID,
		Error:  e.Err.Error(),
	})
}

// AsExtractionError unwraps err into an ExtractionError.
func AsExtractionError(err error) (*ExtractionError, bool) {
	var eErr *ExtractionError
	if errors.As(err, &eErr) {
		return eErr, true
	}
	return nil, false
}
