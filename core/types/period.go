// Package types - billing period
package types

import (
	"time"

	"github.com/DaniloReis10/TarifadorTest-sub000/internal/errors"
)

const dateLayout = "2006-01-02"

// Period is a validated billing period [Start, End], both dates inclusive
// for recurring-service purposes. Call batches use [Start, End) per the
// record-store contract.
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewPeriod validates and builds a period. End before Start is rejected
// before any rating starts.
func NewPeriod(start, end time.Time) (Period, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return Period{}, errors.InvalidPeriod(start.Format(dateLayout), end.Format(dateLayout))
	}
	return Period{Start: start, End: end}, nil
}

// MonthPeriod builds the period covering one calendar month
func MonthPeriod(year int, month time.Month) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return Period{Start: start, End: end}
}

// Days returns the billed day count of the period using the day-of-month
// rule (end.day - start.day + 1). This is the historical proration basis
// and is kept bit-for-bit for report reproducibility; it is not
// calendar-exact for periods spanning month boundaries.
func (p Period) Days() int {
	return p.End.Day() - p.Start.Day() + 1
}

// Contains reports whether a date falls inside the period, inclusive on
// both ends
func (p Period) Contains(date time.Time) bool {
	d := truncateToDay(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// String formats the period for logs and error messages
func (p Period) String() string {
	return p.Start.Format(dateLayout) + ".." + p.End.Format(dateLayout)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
