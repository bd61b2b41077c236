// Package styles provides Lip Gloss styles for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hy4ri/calgrid/internal/calendar"
)

// Terminal-adaptive colors that work in both light and dark terminals.
var (
	// Subtle is a muted color for secondary text
	Subtle = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}

	// Highlight is the accent color for the focused day
	Highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#990000"}

	// Special colors
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF6666"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#00AA00", Dark: "#66FF66"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#FFAA00", Dark: "#FFCC66"}
)

// Base styles
var (
	// Subtitle is for the focused date line
	// NOTE: No margins - the grid is hit-tested by line
	Subtitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Subtle)
)

// StatusBar styles
var (
	// StatusBarError is for error messages
	StatusBarError = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// StatusBarSuccess is for success messages
	StatusBarSuccess = lipgloss.NewStyle().
				Foreground(SuccessColor).
				Bold(true)
)

// Help styles
var (
	// HelpKey is for key bindings in help
	HelpKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Highlight)

	// HelpDesc is for key binding descriptions
	HelpDesc = lipgloss.NewStyle().
			Foreground(Subtle)

	// HelpSeparator is the separator between key and description
	HelpSeparator = lipgloss.NewStyle().
			Foreground(Subtle)
)

// Calendar styles
// NOTE: Width is NOT set here - it's calculated from the terminal width
var (
	// CalendarHeader is for month/year header
	CalendarHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(Highlight).
			Align(lipgloss.Center)

	// CalendarWeekday is for day-of-week headers
	CalendarWeekday = lipgloss.NewStyle().
			Foreground(Subtle)

	// CalendarDay is for regular days
	CalendarDay = lipgloss.NewStyle()

	// CalendarDayFocused is for the keyboard focus
	CalendarDayFocused = lipgloss.NewStyle().
				Bold(true).
				Background(Highlight).
				Foreground(lipgloss.Color("#ffffff"))

	// CalendarDaySelected is for the selected date
	CalendarDaySelected = lipgloss.NewStyle().
				Bold(true).
				Underline(true).
				Foreground(WarningColor)

	// CalendarDayToday is for today's date
	CalendarDayToday = lipgloss.NewStyle().
				Bold(true).
				Foreground(SuccessColor)

	// CalendarDayDisabled is for dates outside the selectable range
	CalendarDayDisabled = lipgloss.NewStyle().
				Strikethrough(true).
				Faint(true)

	// CalendarDayOtherMonth is for days from other months
	CalendarDayOtherMonth = lipgloss.NewStyle().
				Faint(true)

	// CalendarMonthStart marks the first of a month in the rolling grid
	CalendarMonthStart = lipgloss.NewStyle().
				Foreground(Highlight)
)

// Day picks the style for a cell from its modifiers. The first matching
// modifier wins: focus, selected, disabled, today, outside.
func Day(c calendar.DayCell) lipgloss.Style {
	switch {
	case c.Has(calendar.ModifierFocusVisible):
		return CalendarDayFocused
	case c.Has(calendar.ModifierSelected):
		return CalendarDaySelected
	case c.Has(calendar.ModifierDisabled):
		return CalendarDayDisabled
	case c.Has(calendar.ModifierToday):
		return CalendarDayToday
	case c.Has(calendar.ModifierOutside):
		return CalendarDayOtherMonth
	default:
		return CalendarDay
	}
}
