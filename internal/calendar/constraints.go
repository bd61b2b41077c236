package calendar

import (
	"time"

	"github.com/hy4ri/calgrid/internal/dates"
)

// Constraints bound the dates a user can choose. A zero bound is unbounded.
//
// Min is compared at day granularity while Max is compared at the exact
// instant, so a Max of 12:00 rejects later times on the same day.
type Constraints struct {
	Min time.Time
	Max time.Time
}

// IsSelectable reports whether d may be focused or activated under c.
func IsSelectable(d time.Time, c Constraints) bool {
	if !c.Min.IsZero() && d.Before(dates.StartOfDay(c.Min)) {
		return false
	}
	if !c.Max.IsZero() && d.After(c.Max) {
		return false
	}
	return true
}
