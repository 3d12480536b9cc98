package boxscore

// GameID identifies one contest on the source site.
type GameID string

// Quarters is the fixed number of periods kept per side.
const Quarters = 4

// Columns is the sheet column order rows are written in.
var Columns = []string{
	"date",
	"game_id",
	"away_team",
	"home_team",
	"away_1q",
	"home_1q",
	"away_2q",
	"home_2q",
	"away_3q",
	"home_3q",
	"away_4q",
	"home_4q",
}

// Side holds one team's name and quarter scores as scraped.
type Side struct {
	Team     string           `json:"team"`
	Quarters [Quarters]string `json:"quarters"`
}

// Row is the normalized line score of one game
type Row struct {
	Date   ReportDate `json:"date"`
	GameID GameID     `json:"game_id"`
	Away   Side       `json:"away"`
	Home   Side       `json:"home"`
}

// NewRow builds a row for a game from its two sides.
func NewRow(date ReportDate, id GameID, away, home Side) Row {
	return Row{
		Date:   date,
		GameID: id,
		Away:   away,
		Home:   home,
	}
}

// Values flattens the row in Columns order.
// Quarter scores interleave away and home for each period.
func (r Row) Values() []string {
	values := make([]string, 0, len(Columns))
	values = append(values, r.Date.String(), string(r.GameID), r.Away.Team, r.Home.Team)
	for q := 0; q < Quarters; q++ {
		values = append(values, r.Away.Quarters[q], r.Home.Quarters[q])
	}
	return values
}

// Record maps each column name to its value.
func (r Row) Record() map[string]string {
	values := r.Values()
	record := make(map[string]string, len(Columns))
	for i, col := range Columns {
		record[col] = values[i]
	}
	return record
}
