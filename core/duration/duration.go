// Package duration computes billable month spans.
package duration

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted at the boundaries
const DateLayout = "2006-01-02"

// MonthsBetween counts calendar months from start to end, ignoring the day
// of month. Same-month and inverted ranges bill one month.
func MonthsBetween(start, end time.Time) int {
	months := (end.Year()-start.Year())*12 + int(end.Month()) - int(start.Month())
	if months <= 0 {
		return 1
	}
	return months
}

// ParseDate parses a YYYY-MM-DD date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return t, nil
}

// Range is a start/end date pair
type Range struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Months returns MonthsBetween for the range
func (r Range) Months() int {
	return MonthsBetween(r.Start, r.End)
}

// String renders the range for display
func (r Range) String() string {
	return r.Start.Format(DateLayout) + " → " + r.End.Format(DateLayout)
}
