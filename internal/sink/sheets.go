package sink

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
	"github.com/pfrederiksen/wnba-box-scores/internal/logger"
)

const (
	ScopeSpreadsheets = "https://www.googleapis.com/auth/spreadsheets"
	ScopeDrive        = "https://www.googleapis.com/auth/drive"

	valueInputRaw     = "RAW"
	insertDataNewRows = "INSERT_ROWS"
)

// Scopes are requested for the service account token.
var Scopes = []string{ScopeSpreadsheets, ScopeDrive}

// SheetsConfig identifies the worksheet and the credential candidates.
type SheetsConfig struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialPaths []string
	// ClientOptions are appended after the credentials option.
	ClientOptions []option.ClientOption
}

type serviceFactory func(ctx context.Context, credentialsJSON []byte) (*sheets.Service, error)

// Sheets appends rows to a Google Sheets worksheet
type Sheets struct {
	cfg        SheetsConfig
	log        *logger.Logger
	newService serviceFactory
}

// NewSheets creates a Sheets sink. Credentials are resolved on the first
// non-empty Append, so a run without games never needs them.
func NewSheets(cfg SheetsConfig, log *logger.Logger) (*Sheets, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("spreadsheet ID is required")
	}
	if cfg.Worksheet == "" {
		return nil, fmt.Errorf("worksheet name is required")
	}
	if log == nil {
		log = logger.Discard()
	}

	s := &Sheets{cfg: cfg, log: log}
	s.newService = s.serviceFromJSON
	return s, nil
}

// Append writes all rows of result after the worksheet's existing data.
func (s *Sheets) Append(ctx context.Context, result *boxscore.RunResult) (Ack, error) {
	if result.IsEmpty() {
		s.log.Info("No rows to append", logger.Fields{"worksheet": s.cfg.Worksheet})
		return Ack{}, nil
	}

	path, err := ResolveCredentials(s.cfg.CredentialPaths)
	if err != nil {
		return Ack{}, &SinkError{Op: "credentials", Err: err}
	}
	fields := logger.Fields{"path": path}
	if len(s.cfg.CredentialPaths) > 0 && path != s.cfg.CredentialPaths[0] {
		fields["fallback"] = true
	}
	s.log.Info("Using credentials", fields)

	data, err := os.ReadFile(path)
	if err != nil {
		return Ack{}, &SinkError{Op: "credentials", Err: fmt.Errorf("reading %s: %w", path, err)}
	}

	srv, err := s.newService(ctx, data)
	if err != nil {
		return Ack{}, &SinkError{Op: "auth", Err: err}
	}

	body := &sheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         cellValues(result),
	}

	resp, err := srv.Spreadsheets.Values.
		Append(s.cfg.SpreadsheetID, sheetRange(s.cfg.Worksheet), body).
		ValueInputOption(valueInputRaw).
		InsertDataOption(insertDataNewRows).
		Context(ctx).
		Do()
	if err != nil {
		return Ack{}, &SinkError{Op: "append", Err: err}
	}

	ack := Ack{Rows: result.Len()}
	if resp != nil && resp.Updates != nil {
		ack.UpdatedRange = resp.Updates.UpdatedRange
	}
	return ack, nil
}

func (s *Sheets) serviceFromJSON(ctx context.Context, credentialsJSON []byte) (*sheets.Service, error) {
	creds, err := google.CredentialsFromJSON(ctx, credentialsJSON, Scopes...)
	if err != nil {
		return nil, fmt.Errorf("parsing service account credentials: %w", err)
	}

	opts := append([]option.ClientOption{option.WithCredentials(creds)}, s.cfg.ClientOptions...)
	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating sheets service: %w", err)
	}
	return srv, nil
}

// cellValues converts rows for the API. Quarter scores that are whole numbers
// are sent as numbers so the sheet can sum them; the date, game ID and team
// names stay text.
func cellValues(result *boxscore.RunResult) [][]interface{} {
	const firstScoreColumn = 4

	out := make([][]interface{}, 0, result.Len())
	for _, values := range result.Values() {
		row := make([]interface{}, len(values))
		for i, v := range values {
			row[i] = v
			if i < firstScoreColumn {
				continue
			}
			if n, err := strconv.Atoi(v); err == nil {
				row[i] = n
			}
		}
		out = append(out, row)
	}
	return out
}

// sheetRange quotes a worksheet name for A1 notation when it needs it.
func sheetRange(worksheet string) string {
	for _, r := range worksheet {
		if !(r == '_' || r >= '0' && r <= '9' || r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z') {
			return "'" + strings.ReplaceAll(worksheet, "'", "''") + "'"
		}
	}
	return worksheet
}
