package components

import "time"

// MonthChangedMsg is emitted when the picker moves to another month on its
// own. The owner is expected to pass the month back with SetMonth.
type MonthChangedMsg struct {
	Month time.Time
}

// DateActivatedMsg is emitted when a day is activated with enter or a tap.
type DateActivatedMsg struct {
	Date time.Time
}

// FocusChangedMsg is emitted when the focused day changes.
type FocusChangedMsg struct {
	Date time.Time
}

// TransitionDoneMsg fires when a month transition's reset timer expires.
type TransitionDoneMsg struct {
	ID uint64
}

// frameMsg drives the scroll animation.
type frameMsg time.Time
