// Package dates provides the calendar arithmetic used by the grid: week and
// month boundaries, civil-day arithmetic and distances between dates.
//
// All functions operate on local wall-clock days. Day arithmetic never adds
// 24h durations, so daylight saving shifts cannot move a date to a
// neighbouring day.
package dates

import "time"

// DaysPerWeek is the number of columns in a calendar grid.
const DaysPerWeek = 7

// StartOfDay returns midnight of d's day in d's location.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// StartOfMonth returns midnight of the first day of d's month.
func StartOfMonth(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, d.Location())
}

// EndOfMonth returns midnight of the last day of d's month.
func EndOfMonth(d time.Time) time.Time {
	// Day 0 of next month is last day of this month.
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, d.Location())
}

// DaysIn returns the number of days in d's month.
func DaysIn(d time.Time) int {
	return EndOfMonth(d).Day()
}

// StartOfWeek returns midnight of the first day of the week containing d,
// where weeks begin on firstDay.
func StartOfWeek(d time.Time, firstDay time.Weekday) time.Time {
	return AddDays(StartOfDay(d), -weekdayOffset(d, firstDay))
}

// EndOfWeek returns midnight of the last day of the week containing d.
func EndOfWeek(d time.Time, firstDay time.Weekday) time.Time {
	return AddDays(StartOfWeek(d, firstDay), DaysPerWeek-1)
}

// AddDays moves d by n civil days, keeping the wall-clock time.
func AddDays(d time.Time, n int) time.Time {
	y, m, day := d.Date()
	h, mi, s := d.Clock()
	return time.Date(y, m, day+n, h, mi, s, d.Nanosecond(), d.Location())
}

// AddMonths returns the first day of the month n months away from d's month.
func AddMonths(d time.Time, n int) time.Time {
	return time.Date(d.Year(), d.Month()+time.Month(n), 1, 0, 0, 0, 0, d.Location())
}

// DaysBetween returns the number of civil days from a to b.
func DaysBetween(a, b time.Time) int {
	return civilDay(b) - civilDay(a)
}

// WeeksBetween returns the number of calendar weeks from a to b. Two dates in
// the same week are 0 weeks apart regardless of their distance in days.
func WeeksBetween(a, b time.Time, firstDay time.Weekday) int {
	return DaysBetween(StartOfWeek(a, firstDay), StartOfWeek(b, firstDay)) / DaysPerWeek
}

// RowsBetween returns the number of week rows a grid needs to show every day
// from a to b inclusive.
func RowsBetween(a, b time.Time, firstDay time.Weekday) int {
	return WeeksBetween(a, b, firstDay) + 1
}

// RowsInMonth returns the number of week rows d's month touches.
func RowsInMonth(d time.Time, firstDay time.Weekday) int {
	return RowsBetween(StartOfMonth(d), EndOfMonth(d), firstDay)
}

// MonthsBetween returns the number of calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	return (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
}

// SameDay reports whether a and b fall on the same civil day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Weekdays returns the seven weekdays in column order starting at firstDay.
func Weekdays(firstDay time.Weekday) []time.Weekday {
	days := make([]time.Weekday, DaysPerWeek)
	for i := range days {
		days[i] = time.Weekday((int(firstDay) + i) % DaysPerWeek)
	}
	return days
}

// weekdayOffset returns d's column index in a week starting at firstDay.
func weekdayOffset(d time.Time, firstDay time.Weekday) int {
	return (int(d.Weekday()) - int(firstDay) + DaysPerWeek) % DaysPerWeek
}

// civilDay maps a date to a day count that is independent of its location.
func civilDay(d time.Time) int {
	y, m, day := d.Date()
	return int(time.Date(y, m, day, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
