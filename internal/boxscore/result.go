package boxscore

// RunResult collects the rows of one run in the order they were extracted.
type RunResult struct {
	Date ReportDate `json:"date"`
	Rows []Row      `json:"rows"`
}

// NewRunResult creates an empty result for date.
func NewRunResult(date ReportDate) *RunResult {
	return &RunResult{
		Date: date,
		Rows: make([]Row, 0),
	}
}

// Aggregate builds a result from rows, keeping their order.
func Aggregate(date ReportDate, rows []Row) *RunResult {
	result := NewRunResult(date)
	for _, row := range rows {
		result.Append(row)
	}
	return result
}

// Append adds a row at the end.
func (r *RunResult) Append(row Row) {
	r.Rows = append(r.Rows, row)
}

// Len returns the number of rows.
func (r *RunResult) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}

// IsEmpty reports whether the result holds no rows.
func (r *RunResult) IsEmpty() bool {
	return r.Len() == 0
}

// GameIDs returns the game of each row in order.
func (r *RunResult) GameIDs() []GameID {
	ids := make([]GameID, 0, r.Len())
	if r == nil {
		return ids
	}
	for _, row := range r.Rows {
		ids = append(ids, row.GameID)
	}
	return ids
}

// Values flattens every row for a tabular sink.
func (r *RunResult) Values() [][]string {
	out := make([][]string, 0, r.Len())
	if r == nil {
		return out
	}
	for _, row := range r.Rows {
		out = append(out, row.Values())
	}
	return out
}
