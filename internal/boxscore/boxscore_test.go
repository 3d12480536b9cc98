package boxscore

import (
	"encoding/json"
	"strings"
	"testing"
)

func sampleRow(t *testing.T) Row {
	t.Helper()
	date, err := ParseReportDate("2024-06-15")
	if err != nil {
		t.Fatal(err)
	}
	return NewRow(date, "401600000",
		Side{Team: "Team A", Quarters: [Quarters]string{"22", "25", "20", "18"}},
		Side{Team: "Team B", Quarters: [Quarters]string{"24", "23", "19", "21"}},
	)
}

func TestRow_Values(t *testing.T) {
	row := sampleRow(t)

	want := []string{
		"2024-06-15", "401600000", "Team A", "Team B",
		"22", "24", "25", "23", "20", "19", "18", "21",
	}

	got := row.Values()
	if len(got) != len(Columns) {
		t.Fatalf("Values() returned %d values, want %d", len(got), len(Columns))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Values()[%d] (%s) = %q, want %q", i, Columns[i], got[i], want[i])
		}
	}
}

func TestRow_Record(t *testing.T) {
	record := sampleRow(t).Record()

	want := map[string]string{
		"date":      "2024-06-15",
		"game_id":   "401600000",
		"away_team": "Team A",
		"home_team": "Team B",
		"away_1q":   "22",
		"home_1q":   "24",
		"away_2q":   "25",
		"home_2q":   "23",
		"away_3q":   "20",
		"home_3q":   "19",
		"away_4q":   "18",
		"home_4q":   "21",
	}

	if len(record) != len(want) {
		t.Errorf("Record() has %d keys, want %d", len(record), len(want))
	}
	for k, v := range want {
		if record[k] != v {
			t.Errorf("Record()[%s] = %q, want %q", k, record[k], v)
		}
	}
}

func TestRow_JSON(t *testing.T) {
	data, err := json.Marshal(sampleRow(t))
	if err != nil {
		t.Fatalf("json.Marshal() error: %v", err)
	}
	if !strings.Contains(string(data), `"date":"2024-06-15"`) {
		t.Errorf("JSON = %s, want date as YYYY-MM-DD", data)
	}
	if !strings.Contains(string(data), `"game_id":"401600000"`) {
		t.Errorf("JSON = %s, want game_id", data)
	}
}

func TestRunResult_PreservesOrder(t *testing.T) {
	base := sampleRow(t)
	ids := []GameID{"3", "1", "2"}

	rows := make([]Row, 0, len(ids))
	for _, id := range ids {
		row := base
		row.GameID = id
		rows = append(rows, row)
	}

	result := Aggregate(base.Date, rows)
	if result.Len() != len(ids) {
		t.Fatalf("Len() = %d, want %d", result.Len(), len(ids))
	}

	got := result.GameIDs()
	for i, id := range ids {
		if got[i] != id {
			t.Errorf("GameIDs()[%d] = %s, want %s", i, got[i], id)
		}
	}

	values := result.Values()
	if len(values) != len(ids) || values[0][1] != "3" {
		t.Errorf("Values() = %v, want rows in append order", values)
	}
}

func TestRunResult_Empty(t *testing.T) {
	var nilResult *RunResult
	if !nilResult.IsEmpty() {
		t.Error("nil RunResult should be empty")
	}
	if len(nilResult.Values()) != 0 {
		t.Error("nil RunResult Values() should be empty")
	}

	result := NewRunResult(sampleRow(t).Date)
	if !result.IsEmpty() {
		t.Error("new RunResult should be empty")
	}
	if result.Rows == nil {
		t.Error("new RunResult Rows should be non-nil")
	}
}
