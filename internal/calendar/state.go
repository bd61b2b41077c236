// Package calendar implements the grid engine behind the date picker: the
// visible window, month transitions, keyboard navigation, drag gestures,
// cell sizing and the day cells handed to the presentation layer.
//
// The engine has no UI runtime dependency. State changes go through Reduce,
// a pure transition function over State and Event; Grid wraps it with
// callbacks, timers and selectability policy.
package calendar

import (
	"fmt"
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/hy4ri/calgrid/internal/dates"
)

// MaxAnimatedMonths is the largest month jump that is animated. Larger jumps
// snap straight to the destination window.
const MaxAnimatedMonths = 3

// Origin is the edge of the window that Offset is measured from.
type Origin int

const (
	OriginTop Origin = iota
	OriginBottom
)

func (o Origin) String() string {
	if o == OriginBottom {
		return "bottom"
	}
	return "top"
}

// Phase is the state machine phase. It is one of Idle, Transitioning or
// Dragging.
type Phase interface {
	phase()
}

// Idle is the resting phase: canonical window, zero offset.
type Idle struct{}

// Transitioning is an animation toward Offset. The window is collapsed when
// the reset timer identified by Timer expires.
type Transitioning struct {
	Timer uint64
}

// Dragging tracks a live drag gesture. Offset follows the pointer 1:1 from
// Base, which is the offset that corresponds to the pointer at StartY.
type Dragging struct {
	StartY float64
	Base   float64
}

func (Idle) phase()          {}
func (Transitioning) phase() {}
func (Dragging) phase()      {}

// State is the complete mutable state of a grid.
type State struct {
	FirstDay   time.Weekday
	Window     dates.Window
	Anchor     time.Time // first day of the anchor month
	Focus      time.Time // zero when no day is focused
	Offset     float64
	Origin     Origin
	CellHeight float64
	IsWide     bool
	Phase      Phase
	LastTimer  uint64
}

// NewState returns the idle state for anchor.
func NewState(anchor time.Time, firstDay time.Weekday) State {
	month := dates.StartOfMonth(anchor)
	return State{
		FirstDay:   firstDay,
		Window:     dates.CanonicalWindow(month, firstDay),
		Anchor:     month,
		Origin:     OriginTop,
		CellHeight: DefaultCellHeight,
		Phase:      Idle{},
	}
}

// Event is an input to Reduce.
type Event interface {
	event()
}

// SetAnchor moves the grid to Month.
type SetAnchor struct{ Month time.Time }

// ResetExpired reports that the reset timer Timer has fired.
type ResetExpired struct{ Timer uint64 }

// SetFocus moves the focus day. A zero Day clears it.
type SetFocus struct{ Day time.Time }

// Resize reports the rendered width of the grid container.
type Resize struct{ Width float64 }

// DragStart begins a drag gesture at pointer position Y.
type DragStart struct{ Y float64 }

// DragMove reports the pointer at Y during a drag.
type DragMove struct{ Y float64 }

// DragEnd finishes a drag at Y. Target is the day under the pointer when the
// gesture began; it is activated if the gesture turns out to be a tap.
type DragEnd struct {
	Y      float64
	Target time.Time
}

func (SetAnchor) event()    {}
func (ResetExpired) event() {}
func (SetFocus) event()     {}
func (Resize) event()       {}
func (DragStart) event()    {}
func (DragMove) event()     {}
func (DragEnd) event()      {}

// Effect is a side effect requested by Reduce.
type Effect interface {
	effect()
}

// ScheduleReset asks for ResetExpired{Timer} after the transition duration.
type ScheduleReset struct{ Timer uint64 }

// CancelReset withdraws a previously scheduled reset.
type CancelReset struct{ Timer uint64 }

// RequestAnchor reports that a drag moved the anchor to Month.
type RequestAnchor struct{ Month time.Time }

// Tap reports that a drag gesture was a tap on Day.
type Tap struct{ Day time.Time }

func (ScheduleReset) effect() {}
func (CancelReset) effect()   {}
func (RequestAnchor) effect() {}
func (Tap) effect()           {}

// Reduce applies ev to s. It panics on an unknown event or when the
// resulting state breaks the window invariants.
func Reduce(s State, ev Event) (State, []Effect) {
	var (
		next    State
		effects []Effect
	)

	switch ev := ev.(type) {
	case SetAnchor:
		next, effects = s.setAnchor(ev.Month)
	case ResetExpired:
		next = s.resetExpired(ev.Timer)
	case SetFocus:
		next = s
		next.Focus = time.Time{}
		if !ev.Day.IsZero() {
			next.Focus = dates.StartOfDay(ev.Day)
		}
	case Resize:
		next = s.resize(ev.Width)
	case DragStart:
		next, effects = s.dragStart(ev.Y)
	case DragMove:
		next, effects = s.dragMove(ev.Y)
	case DragEnd:
		next, effects = s.dragEnd(ev.Y, ev.Target)
	default:
		panic(fmt.Sprintf("calendar: unknown event %T", ev))
	}

	next.mustValidate()
	return next, effects
}

// IsTransitioning reports whether an animation or drag is in progress.
func (s State) IsTransitioning() bool {
	_, idle := s.Phase.(Idle)
	return !idle
}

// IsDragging reports whether a drag gesture is in progress.
func (s State) IsDragging() bool {
	_, ok := s.Phase.(Dragging)
	return ok
}

// GridHeight returns the height of the six visible rows.
func (s State) GridHeight() float64 {
	return dates.GridRows * s.CellHeight
}

// ViewportTop returns the number of rows between the window start and the
// top of the viewport once Offset is applied.
func (s State) ViewportTop() float64 {
	if s.CellHeight <= 0 {
		return 0
	}
	top := -s.Offset / s.CellHeight
	if s.Origin == OriginBottom {
		top = float64(s.Window.Rows()-dates.GridRows) - s.Offset/s.CellHeight
	}
	return top
}

// monthPosition returns the offset from the window top to the row holding
// the first day of month.
func (s State) monthPosition(month time.Time) float64 {
	return float64(dates.RowsBetween(s.Window.Start, month, s.FirstDay)-1) * s.CellHeight
}

func (s State) setAnchor(month time.Time) (State, []Effect) {
	month = dates.StartOfMonth(month)
	if dates.SameMonth(month, s.Anchor) {
		return s, nil
	}

	var effects []Effect
	switch p := s.Phase.(type) {
	case Dragging:
		// The drag owns the offset until it ends.
		s.Anchor = month
		s = s.cover(month)
		return s, nil
	case Transitioning:
		effects = append(effects, CancelReset{Timer: p.Timer})
	}

	if abs(dates.MonthsBetween(s.Anchor, month)) > MaxAnimatedMonths {
		return s.collapse(month), effects
	}

	if month.After(s.Anchor) {
		s.Window.End = later(s.Window.End, dates.GridEnd(month, s.FirstDay))
		s.Offset = -float64(dates.RowsBetween(s.Window.Start, month, s.FirstDay)-1) * s.CellHeight
		s.Origin = OriginTop
	} else {
		s.Window.Start = earlier(s.Window.Start, dates.GridStart(month, s.FirstDay))
		s.Offset = float64(dates.RowsBetween(month, s.Window.End, s.FirstDay))*s.CellHeight - s.GridHeight()
		s.Origin = OriginBottom
	}

	s.Anchor = month
	s.LastTimer++
	s.Phase = Transitioning{Timer: s.LastTimer}
	return s, append(effects, ScheduleReset{Timer: s.LastTimer})
}

func (s State) resetExpired(timer uint64) State {
	if p, ok := s.Phase.(Transitioning); ok && p.Timer == timer {
		return s.collapse(s.Anchor)
	}
	return s
}

// collapse returns s at rest on month's canonical window.
func (s State) collapse(month time.Time) State {
	s.Anchor = dates.StartOfMonth(month)
	s.Window = dates.CanonicalWindow(s.Anchor, s.FirstDay)
	s.Offset = 0
	s.Origin = OriginTop
	s.Phase = Idle{}
	return s
}

// cover widens the window so that month's canonical window is inside it.
func (s State) cover(month time.Time) State {
	start := dates.GridStart(month, s.FirstDay)
	if start.Before(s.Window.Start) {
		s = s.prepend(start)
	}
	s.Window.End = later(s.Window.End, dates.GridEnd(month, s.FirstDay))
	return s
}

// prepend moves the window start back to start. The offset is shifted by the
// added rows so the visible content stays in place.
func (s State) prepend(start time.Time) State {
	added := float64(dates.WeeksBetween(start, s.Window.Start, s.FirstDay)) * s.CellHeight
	s.Window.Start = start
	if s.Origin == OriginTop {
		s.Offset -= added
	}
	if d, ok := s.Phase.(Dragging); ok {
		d.Base -= added
		s.Phase = d
	}
	return s
}

func (s State) mustValidate() {
	if err := s.Window.Validate(s.FirstDay); err != nil {
		panic(errors.Wrap(err, "calendar: invalid window"))
	}
	if !dates.SameDay(s.Anchor, dates.StartOfMonth(s.Anchor)) {
		panic(errors.Errorf("calendar: anchor %s is not the first of a month", s.Anchor.Format(time.DateOnly)))
	}
	if s.Phase == nil {
		panic(errors.New("calendar: nil phase"))
	}
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

func earlier(a, b time.Time) time.Time {
	if b.Before(a) {
		return b
	}
	return a
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func absf(f float64) float64 {
	return math.Abs(f)
}
