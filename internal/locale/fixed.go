package locale

import "time"

// Fixed is a Locale with English names and a configurable first day of week.
// It needs no translator data, which makes it the locale of choice in tests.
type Fixed struct {
	FirstDay time.Weekday
}

func (f Fixed) Name() string                       { return "fixed" }
func (f Fixed) FirstDayOfWeek() time.Weekday       { return f.FirstDay }
func (f Fixed) MonthName(m time.Month) string      { return m.String() }
func (f Fixed) WeekdayShort(d time.Weekday) string { return d.String()[:2] }
func (f Fixed) FormatDate(t time.Time) string      { return t.Format("January 2, 2006") }
