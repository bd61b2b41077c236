package calendar

import (
	"time"

	"github.com/hy4ri/calgrid/internal/dates"
)

// KeyRepeatInterval is the minimum spacing between processed key events.
// Events arriving faster are dropped so transitions do not pile up.
const KeyRepeatInterval = 100 * time.Millisecond

// Key is a navigation key understood by the grid.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyPrevMonth
	KeyNextMonth
	KeyWeekStart
	KeyWeekEnd
	KeyToday
)

var keyNames = map[Key]string{
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyEnter:     "enter",
	KeyPrevMonth: "prev-month",
	KeyNextMonth: "next-month",
	KeyWeekStart: "week-start",
	KeyWeekEnd:   "week-end",
	KeyToday:     "today",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	return "unknown"
}

// HandleKey applies a navigation key. It reports whether the key changed the
// focus, the anchor month or activated a date.
func (g *Grid) HandleKey(k Key) bool {
	if g.closed {
		return false
	}

	now := g.opts.Now()
	if !g.lastKey.IsZero() && now.Sub(g.lastKey) < KeyRepeatInterval {
		g.log.WithField("key", k).Debug("key dropped by repeat throttle")
		return false
	}
	g.lastKey = now

	switch k {
	case KeyLeft:
		return g.moveFocus(-1)
	case KeyRight:
		return g.moveFocus(1)
	case KeyUp:
		return g.moveFocus(-dates.DaysPerWeek)
	case KeyDown:
		return g.moveFocus(dates.DaysPerWeek)
	case KeyWeekStart, KeyWeekEnd:
		focus, ok := g.focusOrSeed()
		if !ok {
			return false
		}
		target := dates.StartOfWeek(focus, g.state.FirstDay)
		if k == KeyWeekEnd {
			target = dates.EndOfWeek(focus, g.state.FirstDay)
		}
		return g.moveFocus(dates.DaysBetween(focus, target))
	case KeyEnter:
		focus, ok := g.Focus()
		if !ok {
			return false
		}
		return g.Activate(focus)
	case KeyPrevMonth:
		return g.pageMonth(-1)
	case KeyNextMonth:
		return g.pageMonth(1)
	case KeyToday:
		today := dates.StartOfDay(now)
		return g.goToMonth(today, today.Day(), true)
	default:
		return false
	}
}

// moveFocus moves the focus by n days if the destination is selectable.
// When no day is focused yet the first key only seeds the focus.
func (g *Grid) moveFocus(n int) bool {
	focus, ok := g.Focus()
	if !ok {
		seed, ok := g.focusOrSeed()
		if ok {
			g.setFocus(seed)
		}
		return ok
	}
	if n == 0 {
		return false
	}

	candidate := dates.StartOfDay(dates.AddDays(focus, n))
	if !g.isSelectable(candidate) {
		g.log.WithField("candidate", candidate.Format(time.DateOnly)).Debug("focus move blocked")
		return false
	}

	// Anchor first so the transition and the focus move land together.
	if !dates.SameMonth(candidate, focus) {
		g.changeAnchor(dates.StartOfMonth(candidate))
	}
	g.setFocus(candidate)
	return true
}

// focusOrSeed returns the focus day, or the day a first key press should
// focus: the selected date, then the first of the anchor month.
func (g *Grid) focusOrSeed() (time.Time, bool) {
	if focus, ok := g.Focus(); ok {
		return focus, true
	}
	for _, d := range []time.Time{g.selected, g.state.Anchor} {
		if !d.IsZero() && dates.SameMonth(d, g.state.Anchor) && g.isSelectable(dates.StartOfDay(d)) {
			return dates.StartOfDay(d), true
		}
	}
	return time.Time{}, false
}

// pageMonth moves the anchor by n months and carries the focus along,
// clamping its day to the destination month.
func (g *Grid) pageMonth(n int) bool {
	day := 1
	if focus, ok := g.Focus(); ok {
		day = focus.Day()
	}
	return g.goToMonth(dates.AddMonths(g.state.Anchor, n), day, false)
}

// goToMonth anchors month and focuses its selectable day nearest to day.
// Without a focus day the focus is only set when seed is true. A focused
// grid refuses months with no selectable day so the focus stays visible.
// It reports whether the anchor or the focus changed.
func (g *Grid) goToMonth(month time.Time, day int, seed bool) bool {
	month = dates.StartOfMonth(month)
	_, focused := g.Focus()

	target, ok := g.nearestSelectable(month, day)
	if !ok && focused {
		g.log.WithField("month", month.Format("2006-01")).Debug("no selectable day in month")
		return false
	}

	before := g.state
	g.changeAnchor(month)
	if ok && (focused || seed) {
		g.setFocus(target)
	}
	return !dates.SameMonth(before.Anchor, g.state.Anchor) || !dates.SameDay(before.Focus, g.state.Focus)
}

// nearestSelectable returns the selectable day of month closest to day,
// preferring the earlier one on ties.
func (g *Grid) nearestSelectable(month time.Time, day int) (time.Time, bool) {
	last := dates.DaysIn(month)
	day = min(max(day, 1), last)
	for d := 0; d < last; d++ {
		for _, c := range []int{day - d, day + d} {
			if c < 1 || c > last {
				continue
			}
			t := time.Date(month.Year(), month.Month(), c, 0, 0, 0, 0, month.Location())
			if g.isSelectable(t) {
				return t, true
			}
		}
	}
	return time.Time{}, false
}
