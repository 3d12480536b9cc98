package scraper

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/wnba-box-scores/internal/boxscore"
)

// GameLinkClass is the exact class attribute of the scoreboard's box score links.
const GameLinkClass = "AnchorLink Button Button--sm Button--anchorLink Button--alt mb4 w-100 mr2"

var gameIDPattern = regexp.MustCompile(`gameId/(\d+)`)

// LineScore holds both sides of a game's quarter-by-quarter table.
type LineScore struct {
	Away boxscore.Side
	Home boxscore.Side
}

// Layout describes where a site keeps game links and line scores.
type Layout interface {
	// ParseGameIDs returns the distinct game IDs linked from a scoreboard page.
	// A page with no matching links yields an empty slice and no error.
	ParseGameIDs(r io.Reader) ([]boxscore.GameID, error)

	// ParseLineScore reads the away and home sides from a box score page.
	ParseLineScore(r io.Reader) (LineScore, error)
}

// ESPNLayout matches the ESPN scoreboard and box score markup.
type ESPNLayout struct {
	LinkClass string
}

// NewESPNLayout returns the layout for the current ESPN markup.
func NewESPNLayout() *ESPNLayout {
	return &ESPNLayout{LinkClass: GameLinkClass}
}

// ParseGameIDs collects IDs from anchors whose class equals LinkClass exactly.
// IDs keep the order they first appear in.
func (l *ESPNLayout) ParseGameIDs(r io.Reader) ([]boxscore.GameID, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	ids := make([]boxscore.GameID, 0)
	seen := make(map[boxscore.GameID]bool)

	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		class, ok := sel.Attr("class")
		if !ok || class != l.LinkClass {
			return
		}

		href, ok := sel.Attr("href")
		if !ok {
			return
		}

		matches := gameIDPattern.FindStringSubmatch(href)
		if matches == nil {
			return
		}

		id := boxscore.GameID(matches[1])
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	})

	return ids, nil
}

// ParseLineScore reads the first table on the page. It must have exactly two
// data rows, away then home, each with the team in column 0 and quarters in
// columns 1-4. Later columns (overtime, totals) are ignored.
func (l *ESPNLayout) ParseLineScore(r io.Reader) (LineScore, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return LineScore{}, fmt.Errorf("parsing HTML: %w", err)
	}

	table := doc.Find("table").First()
	if table.Length() == 0 {
		return LineScore{}, &ParseError{Page: "boxscore", Reason: "no table found"}
	}

	rows := dataRows(table)
	if len(rows) != 2 {
		return LineScore{}, &ParseError{
			Page:   "boxscore",
			Reason: fmt.Sprintf("expected 2 data rows, found %d", len(rows)),
		}
	}

	away, err := parseSide(rows[0], "away")
	if err != nil {
		return LineScore{}, err
	}
	home, err := parseSide(rows[1], "home")
	if err != nil {
		return LineScore{}, err
	}

	return LineScore{Away: away, Home: home}, nil
}

// dataRows returns the rows of table that hold td cells, skipping header rows
// and rows of nested tables.
func dataRows(table *goquery.Selection) []*goquery.Selection {
	rows := make([]*goquery.Selection, 0)
	table.Find("tr").Each(func(i int, tr *goquery.Selection) {
		if !tr.Closest("table").IsSelection(table) {
			return
		}
		if tr.ChildrenFiltered("td").Length() == 0 {
			return
		}
		rows = append(rows, tr)
	})
	return rows
}

func parseSide(tr *goquery.Selection, side string) (boxscore.Side, error) {
	cells := tr.ChildrenFiltered("td, th")
	if cells.Length() < 1+boxscore.Quarters {
		return boxscore.Side{}, &ParseError{
			Page:   "boxscore",
			Reason: fmt.Sprintf("%s row has %d columns, need at least %d", side, cells.Length(), 1+boxscore.Quarters),
		}
	}

	team := cellText(cells.Eq(0))
	if team == "" {
		return boxscore.Side{}, &ParseError{Page: "boxscore", Reason: side + " team name is empty"}
	}

	s := boxscore.Side{Team: team}
	for q := 0; q < boxscore.Quarters; q++ {
		s.Quarters[q] = cellText(cells.Eq(q + 1))
	}
	return s, nil
}

// cellText collapses whitespace the way a rendered table shows it.
func cellText(sel *goquery.Selection) string {
	return strings.Join(strings.Fields(sel.Text()), " ")
}
