package boxscore

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the row representation of a report date.
	DateLayout = "2006-01-02"
	// CompactLayout is the representation used in scoreboard URLs.
	CompactLayout = "20060102"
)

// ReportDate is the calendar day whose games a run collects.
type ReportDate struct {
	t time.Time
}

// NewReportDate truncates t to its calendar day in t's location.
func NewReportDate(t time.Time) ReportDate {
	y, m, d := t.Date()
	return ReportDate{t: time.Date(y, m, d, 0, 0, 0, 0, t.Location())}
}

// Yesterday returns the day before now in the given location.
// A nil location means time.Local.
func Yesterday(now time.Time, loc *time.Location) ReportDate {
	if loc == nil {
		loc = time.Local
	}
	return NewReportDate(now.In(loc).AddDate(0, 0, -1))
}

// ParseReportDate parses a YYYY-MM-DD or YYYYMMDD string.
func ParseReportDate(value string) (ReportDate, error) {
	for _, layout := range []string{DateLayout, CompactLayout} {
		if t, err := time.Parse(layout, value); err == nil {
			return NewReportDate(t), nil
		}
	}
	return ReportDate{}, fmt.Errorf("invalid report date %q", value)
}

// String formats the date as YYYY-MM-DD.
func (d ReportDate) String() string {
	return d.t.Format(DateLayout)
}

// Compact formats the date as YYYYMMDD.
func (d ReportDate) Compact() string {
	return d.t.Format(CompactLayout)
}

// Time returns midnight of the report date.
func (d ReportDate) Time() time.Time {
	return d.t
}

// IsZero reports whether the date was never set.
func (d ReportDate) IsZero() bool {
	return d.t.IsZero()
}

// MarshalText implements encoding.TextMarshaler.
func (d ReportDate) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
