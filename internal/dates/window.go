package dates

import (
	"time"

	"github.com/pkg/errors"
)

// GridRows is the number of week rows in a canonical window.
const GridRows = 6

// Window is the inclusive range of days materialized in the grid.
type Window struct {
	Start time.Time
	End   time.Time
}

// GridStart returns the first day of the canonical window for month.
func GridStart(month time.Time, firstDay time.Weekday) time.Time {
	return StartOfWeek(StartOfMonth(month), firstDay)
}

// GridEnd returns the last day of the canonical window for month. Months that
// touch fewer than six weeks are padded with trailing weeks.
func GridEnd(month time.Time, firstDay time.Weekday) time.Time {
	padding := GridRows - RowsInMonth(month, firstDay)
	return EndOfWeek(AddDays(EndOfMonth(month), padding*DaysPerWeek), firstDay)
}

// CanonicalWindow returns the six-row window anchored on month.
func CanonicalWindow(month time.Time, firstDay time.Weekday) Window {
	return Window{
		Start: GridStart(month, firstDay),
		End:   GridEnd(month, firstDay),
	}
}

// Days returns the number of days in the window.
func (w Window) Days() int {
	return DaysBetween(w.Start, w.End) + 1
}

// Rows returns the number of week rows in the window.
func (w Window) Rows() int {
	return w.Days() / DaysPerWeek
}

// Contains reports whether d's day lies within the window.
func (w Window) Contains(d time.Time) bool {
	n := DaysBetween(w.Start, d)
	return n >= 0 && n <= DaysBetween(w.Start, w.End)
}

// Each calls fn for every day of the window in order.
func (w Window) Each(fn func(time.Time)) {
	for i, n := 0, w.Days(); i < n; i++ {
		fn(AddDays(w.Start, i))
	}
}

// Validate checks that the window is non-empty and aligned to whole weeks.
func (w Window) Validate(firstDay time.Weekday) error {
	if w.End.Before(w.Start) {
		return errors.Errorf("window end %s before start %s", w.End.Format(time.DateOnly), w.Start.Format(time.DateOnly))
	}
	if !SameDay(w.Start, StartOfWeek(w.Start, firstDay)) {
		return errors.Errorf("window start %s is not a week start", w.Start.Format(time.DateOnly))
	}
	if !SameDay(w.End, EndOfWeek(w.End, firstDay)) {
		return errors.Errorf("window end %s is not a week end", w.End.Format(time.DateOnly))
	}
	return nil
}

func (w Window) String() string {
	return w.Start.Format(time.DateOnly) + ".." + w.End.Format(time.DateOnly)
}
