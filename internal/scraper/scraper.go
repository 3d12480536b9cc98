package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
)

const (
	ScoreboardURL = "https://www.espn.com/wnba/scoreboard/_/date/%s"
	BoxScoreURL   = "https://www.espn.com/wnba/boxscore?gameId=%s"
)

// Config controls where and how pages are fetched.
// Empty fields fall back to the ESPN defaults.
type Config struct {
	ScoreboardURL string
	BoxScoreURL   string
	UserAgent     string
	Timeout       time.Duration
	HTTPClient    *http.Client
	Layout        Layout
}

// Scraper discovers games and extracts their line scores
type Scraper struct {
	fetcher       *Fetcher
	layout        Layout
	scoreboardURL string
	boxScoreURL   string
}

// New creates a Scraper from cfg.
func New(cfg Config) *Scraper {
	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = Timeout
		}
		client = &http.Client{Timeout: timeout}
	}

	headers := map[string]string{}
	if cfg.UserAgent != "" {
		headers["User-Agent"] = cfg.UserAgent
	}

	s := &Scraper{
		fetcher:       NewFetcher(client, headers),
		layout:        cfg.Layout,
		scoreboardURL: cfg.ScoreboardURL,
		boxScoreURL:   cfg.BoxScoreURL,
	}
	if s.layout == nil {
		s.layout = NewESPNLayout()
	}
	if s.scoreboardURL == "" {
		s.scoreboardURL = ScoreboardURL
	}
	if s.boxScoreURL == "" {
		s.boxScoreURL = BoxScoreURL
	}
	return s
}

// ScoreboardURLFor returns the scoreboard page for date.
func (s *Scraper) ScoreboardURLFor(date boxscore.ReportDate) string {
	return fmt.Sprintf(s.scoreboardURL, date.Compact())
}

// BoxScoreURLFor returns the box score page for a game.
func (s *Scraper) BoxScoreURLFor(id boxscore.GameID) string {
	return fmt.Sprintf(s.boxScoreURL, string(id))
}

// GameIDs fetches the scoreboard for date and returns its game IDs.
// A scoreboard without game links returns an empty slice.
func (s *Scraper) GameIDs(ctx context.Context, date boxscore.ReportDate) ([]boxscore.GameID, error) {
	body, err := s.fetcher.Fetch(ctx, s.ScoreboardURLFor(date))
	if err != nil {
		return nil, err
	}

	ids, err := s.layout.ParseGameIDs(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing scoreboard: %w", err)
	}
	return ids, nil
}

// BoxScore fetches a game's box score page and normalizes it into a row.
func (s *Scraper) BoxScore(ctx context.Context, id boxscore.GameID, date boxscore.ReportDate) (boxscore.Row, error) {
	body, err := s.fetcher.Fetch(ctx, s.BoxScoreURLFor(id))
	if err != nil {
		return boxscore.Row{}, err
	}

	line, err := s.layout.ParseLineScore(bytes.NewReader(body))
	if err != nil {
		return boxscore.Row{}, err
	}

	return boxscore.NewRow(date, id, line.Away, line.Home), nil
}
