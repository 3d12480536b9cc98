package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
	"github.com/pfrederiksen/wnba-box-scores/internal/logger"
	"github.com/pfrederiksen/wnba-box-scores/internal/scraper"
	"github.com/pfrederiksen/wnba-box-scores/internal/sink"
)

type fakeSource struct {
	ids         []boxscore.GameID
	discoverErr error
	failures    map[boxscore.GameID]error
	calls       []boxscore.GameID
}

func (f *fakeSource) GameIDs(ctx context.Context, date boxscore.ReportDate) ([]boxscore.GameID, error) {
	if f.discoverErr != nil {
		return nil, f.discoverErr
	}
	return f.ids, nil
}

func (f *fakeSource) BoxScore(ctx context.Context, id boxscore.GameID, date boxscore.ReportDate) (boxscore.Row, error) {
	f.calls = append(f.calls, id)
	if err := f.failures[id]; err != nil {
		return boxscore.Row{}, err
	}
	return boxscore.NewRow(date, id,
		boxscore.Side{Team: "Away " + string(id), Quarters: [4]string{"1", "2", "3", "4"}},
		boxscore.Side{Team: "Home " + string(id), Quarters: [4]string{"5", "6", "7", "8"}},
	), nil
}

type recordingSink struct {
	results []*boxscore.RunResult
	err     error
}

func (s *recordingSink) Append(ctx context.Context, result *boxscore.RunResult) (sink.Ack, error) {
	s.results = append(s.results, result)
	if s.err != nil {
		return sink.Ack{}, s.err
	}
	return sink.Ack{Rows: result.Len()}, nil
}

func fixedClock() func() time.Time {
	return func() time.Time { return time.Date(2024, 6, 16, 9, 0, 0, 0, time.UTC) }
}

func TestRun_PerGameFailuresAreIsolated(t *testing.T) {
	tests := []struct {
		name     string
		ids      []boxscore.GameID
		failures map[boxscore.GameID]error
		wantRows []boxscore.GameID
	}{
		{
			name:     "all succeed",
			ids:      []boxscore.GameID{"1", "2", "3"},
			wantRows: []boxscore.GameID{"1", "2", "3"},
		},
		{
			name:     "middle game fails",
			ids:      []boxscore.GameID{"1", "2", "3"},
			failures: map[boxscore.GameID]error{"2": &scraper.ParseError{Page: "boxscore", Reason: "no table found"}},
			wantRows: []boxscore.GameID{"1", "3"},
		},
		{
			name: "first and last fail",
			ids:  []boxscore.GameID{"9", "4", "7", "5"},
			failures: map[boxscore.GameID]error{
				"9": &scraper.TransportError{URL: "x", StatusCode: 500},
				"5": errors.New("boom"),
			},
			wantRows: []boxscore.GameID{"4", "7"},
		},
		{
			name:     "all fail",
			ids:      []boxscore.GameID{"1", "2"},
			failures: map[boxscore.GameID]error{"1": errors.New("a"), "2": errors.New("b")},
			wantRows: []boxscore.GameID{},
		},
		{
			name:     "no games",
			ids:      []boxscore.GameID{},
			wantRows: []boxscore.GameID{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSource{ids: tt.ids, failures: tt.failures}
			out := &recordingSink{}
			p := New(src, out, nil, Options{Now: fixedClock(), Location: time.UTC})

			report, err := p.Run(context.Background())
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			if len(src.calls) != len(tt.ids) {
				t.Errorf("extracted %d games, want every discovered game (%d)", len(src.calls), len(tt.ids))
			}

			got := report.Result.GameIDs()
			if len(got) != len(tt.wantRows) {
				t.Fatalf("rows = %v, want %v", got, tt.wantRows)
			}
			for i := range tt.wantRows {
				if got[i] != tt.wantRows[i] {
					t.Errorf("row %d = %s, want %s", i, got[i], tt.wantRows[i])
				}
			}

			if want := len(tt.ids) - len(tt.wantRows); len(report.Failures) != want {
				t.Errorf("failures = %d, want %d", len(report.Failures), want)
			}
			for _, f := range report.Failures {
				if tt.failures[f.GameID] == nil {
					t.Errorf("unexpected failure for game %s", f.GameID)
				}
				if !errors.Is(f, tt.failures[f.GameID]) {
					t.Errorf("failure for %s does not wrap its cause", f.GameID)
				}
			}

			if len(out.results) != 1 {
				t.Fatalf("sink called %d times, want 1", len(out.results))
			}
			if out.results[0].Len() != len(tt.wantRows) {
				t.Errorf("sink got %d rows, want %d", out.results[0].Len(), len(tt.wantRows))
			}
			if report.Ack.Rows != len(tt.wantRows) {
				t.Errorf("Ack.Rows = %d, want %d", report.Ack.Rows, len(tt.wantRows))
			}

			counters := report.Metrics.Counters
			if counters[MetricGamesDiscovered] != int64(len(tt.ids)) {
				t.Errorf("%s = %d", MetricGamesDiscovered, counters[MetricGamesDiscovered])
			}
			if counters[MetricGamesExtracted] != int64(len(tt.wantRows)) {
				t.Errorf("%s = %d", MetricGamesExtracted, counters[MetricGamesExtracted])
			}
		})
	}
}

func TestRun_UsesYesterday(t *testing.T) {
	out := &recordingSink{}
	p := New(&fakeSource{ids: []boxscore.GameID{"1"}}, out, nil, Options{Now: fixedClock(), Location: time.UTC})

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if report.Date.String() != "2024-06-15" {
		t.Errorf("Date = %s, want 2024-06-15", report.Date)
	}
	if report.Result.Rows[0].Date.String() != "2024-06-15" {
		t.Errorf("row date = %s, want 2024-06-15", report.Result.Rows[0].Date)
	}
}

func TestRun_DiscoveryFailureIsFatal(t *testing.T) {
	cause := &scraper.TransportError{URL: "https://www.espn.com/wnba/scoreboard/_/date/20240615", StatusCode: 403}
	out := &recordingSink{}
	p := New(&fakeSource{discoverErr: cause}, out, nil, Options{Now: fixedClock(), Location: time.UTC})

	report, err := p.Run(context.Background())
	if err == nil {
		t.Fatal("Run() expected error")
	}
	if tErr, ok := scraper.AsTransportError(err); !ok || tErr.StatusCode != 403 {
		t.Errorf("Run() error = %v, want wrapped TransportError", err)
	}
	if report == nil {
		t.Fatal("report should be returned with the error")
	}
	if len(out.results) != 0 {
		t.Error("sink should not be called when discovery fails")
	}
}

func TestRun_SinkFailureIsFatal(t *testing.T) {
	var logBuf bytes.Buffer
	out := &recordingSink{err: &sink.SinkError{Op: "append", Err: errors.New("quota exceeded")}}
	p := New(&fakeSource{ids: []boxscore.GameID{"1", "2"}}, out,
		logger.New(logger.LevelInfo, &logBuf), Options{Now: fixedClock(), Location: time.UTC})

	report, err := p.Run(context.Background())

	sErr, ok := sink.AsSinkError(err)
	if !ok || sErr.Op != "append" {
		t.Fatalf("Run() error = %v, want SinkError", err)
	}
	if report.Result.Len() != 2 {
		t.Errorf("report should keep extracted rows, got %d", report.Result.Len())
	}
	if report.Ack.Rows != 0 {
		t.Errorf("Ack.Rows = %d, want 0 on failure", report.Ack.Rows)
	}
	if !strings.Contains(logBuf.String(), "Appending rows failed") {
		t.Errorf("sink failure not logged:\n%s", logBuf.String())
	}
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := &recordingSink{}
	p := New(&fakeSource{ids: []boxscore.GameID{"1"}}, out, nil, Options{Now: fixedClock(), Location: time.UTC})

	_, err := p.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
	if len(out.results) != 0 {
		t.Error("sink should not be called after cancellation")
	}
}

func TestRun_LogsMilestones(t *testing.T) {
	var logBuf bytes.Buffer
	src := &fakeSource{
		ids:      []boxscore.GameID{"1", "2"},
		failures: map[boxscore.GameID]error{"2": errors.New("no table found")},
	}
	p := New(src, &recordingSink{}, logger.New(logger.LevelInfo, &logBuf), Options{Now: fixedClock(), Location: time.UTC})

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	for _, want := range []string{
		"Run started",
		"Game IDs discovered",
		"Box score extracted",
		"Box score extraction failed",
		"Rows appended",
		"Run finished",
	} {
		if !strings.Contains(logBuf.String(), want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestReport_JSON(t *testing.T) {
	src := &fakeSource{
		ids:      []boxscore.GameID{"1", "2"},
		failures: map[boxscore.GameID]error{"2": errors.New("no table found")},
	}
	p := New(src, &recordingSink{}, nil, Options{Now: fixedClock(), Location: time.UTC})

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	data, err := json.Marshal(report)
	if err != nil {
		t.Fatalf("json.Marshal(report) error: %v", err)
	}
	for _, want := range []string{`"date":"2024-06-15"`, `"game_id":"2"`, `"error":"no table found"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("report JSON missing %s: %s", want, data)
		}
	}
}

// End to end: real scraper against a local site, dry-run sink.
func TestRun_EndToEnd(t *testing.T) {
	link := `<a class="` + scraper.GameLinkClass + `" href="https://www.espn.com/wnba/game/_/gameId/401600000/a-b">Box Score</a>`
	table := `<table>
		<thead><tr><th></th><th>1</th><th>2</th><th>3</th><th>4</th><th>T</th></tr></thead>
		<tbody>
			<tr><td>Team A</td><td>22</td><td>25</td><td>20</td><td>18</td><td>85</td></tr>
			<tr><td>Team B</td><td>24</td><td>23</td><td>19</td><td>21</td><td>87</td></tr>
		</tbody>
	</table>`

	mux := http.NewServeMux()
	mux.HandleFunc("/scoreboard/20240615", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + link + link + "</body></html>"))
	})
	mux.HandleFunc("/boxscore", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("gameId") != "401600000" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(table))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	src := scraper.New(scraper.Config{
		ScoreboardURL: server.URL + "/scoreboard/%s",
		BoxScoreURL:   server.URL + "/boxscore?gameId=%s",
	})

	var csvOut bytes.Buffer
	p := New(src, sink.NewDryRun(&csvOut), nil, Options{Now: fixedClock(), Location: time.UTC})

	report, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if len(report.GameIDs) != 1 || report.GameIDs[0] != "401600000" {
		t.Errorf("GameIDs = %v, want [401600000]", report.GameIDs)
	}

	want := map[string]string{
		"date": "2024-06-15", "game_id": "401600000",
		"away_team": "Team A", "home_team": "Team B",
		"away_1q": "22", "home_1q": "24",
		"away_2q": "25", "home_2q": "23",
		"away_3q": "20", "home_3q": "19",
		"away_4q": "18", "home_4q": "21",
	}
	if report.Result.Len() != 1 {
		t.Fatalf("rows = %d, want 1", report.Result.Len())
	}
	got := report.Result.Rows[0].Record()
	for k, v := range want {
		if got[k] != v {
			t.Errorf("row[%s] = %q, want %q", k, got[k], v)
		}
	}

	if !strings.Contains(csvOut.String(), "2024-06-15,401600000,Team A,Team B,22,24,25,23,20,19,18,21") {
		t.Errorf("dry-run output = %q", csvOut.String())
	}
	if !report.Ack.DryRun || report.Ack.Rows != 1 {
		t.Errorf("Ack = %+v", report.Ack)
	}
}
