package calendar

import (
	"time"

	"github.com/hy4ri/calgrid/internal/dates"
)

// DayCell describes one rendered day of the grid.
type DayCell struct {
	Date           time.Time
	Height         float64
	Modifiers      map[string]bool
	IsFirstOfMonth bool
}

// Has reports whether the modifier name applies to the cell.
func (c DayCell) Has(name string) bool {
	return c.Modifiers[name]
}

// RenderInput carries everything besides State that cells depend on.
type RenderInput struct {
	Selected    time.Time
	Constraints Constraints
	Modifiers   Modifiers // host modifiers, merged over the built-ins
	Now         time.Time
}

// Render returns one cell for every day of the window, in order.
func Render(s State, in RenderInput) []DayCell {
	mods := builtinModifiers(s, in).Merge(in.Modifiers)

	cells := make([]DayCell, 0, s.Window.Days())
	s.Window.Each(func(d time.Time) {
		cells = append(cells, DayCell{
			Date:           d,
			Height:         s.CellHeight,
			Modifiers:      mods.Match(d),
			IsFirstOfMonth: d.Day() == 1,
		})
	})
	return cells
}

func builtinModifiers(s State, in RenderInput) Modifiers {
	selectable := func(d time.Time) bool {
		return IsSelectable(d, in.Constraints)
	}

	return Modifiers{
		ModifierToday: func(d time.Time) bool {
			return !in.Now.IsZero() && dates.SameDay(d, in.Now)
		},
		ModifierOutside: func(d time.Time) bool {
			return !dates.SameMonth(d, s.Anchor)
		},
		ModifierSelected: func(d time.Time) bool {
			return !in.Selected.IsZero() && dates.SameDay(d, in.Selected) && selectable(d)
		},
		ModifierDisabled: func(d time.Time) bool {
			return !selectable(d)
		},
		ModifierFocusVisible: func(d time.Time) bool {
			return !s.Focus.IsZero() && dates.SameDay(d, s.Focus)
		},
		ModifierWide: func(time.Time) bool {
			return s.IsWide
		},
	}
}
