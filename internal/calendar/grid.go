package calendar

import (
	"time"

	"github.com/sirupsen/logrus"

	"github.com/hy4ri/calgrid/internal/dates"
)

// DefaultTransitionDuration is how long a month transition animates.
const DefaultTransitionDuration = 500 * time.Millisecond

// Timer is a pending transition reset.
type Timer struct {
	ID    uint64
	Delay time.Duration
}

// Scheduler runs transition resets. When a scheduled timer fires the owner
// must call Grid.Expire with its ID on the goroutine that drives the grid.
type Scheduler interface {
	Schedule(t Timer)
	Cancel(id uint64)
}

// Options configures a Grid.
type Options struct {
	Anchor         time.Time
	Selected       time.Time
	Constraints    Constraints
	FirstDayOfWeek time.Weekday
	Modifiers      Modifiers

	// TransitionDuration defaults to DefaultTransitionDuration.
	TransitionDuration time.Duration
	TouchDrag          bool

	// Now is injectable for testing. Defaults to time.Now.
	Now func() time.Time
	// Scheduler runs transition resets. Without one transitions complete
	// immediately.
	Scheduler Scheduler
	Logger    logrus.FieldLogger

	OnAnchorMonthChange func(month time.Time)
	OnDateActivate      func(date time.Time)
	OnFocusDayChange    func(date time.Time)
}

// Grid is a mounted calendar grid. It is not safe for concurrent use; all
// calls must come from the goroutine that owns the UI.
type Grid struct {
	opts     Options
	state    State
	selected time.Time
	log      logrus.FieldLogger

	lastKey time.Time
	closed  bool
}

// New mounts a grid on opts.Anchor.
func New(opts Options) *Grid {
	if opts.TransitionDuration <= 0 {
		opts.TransitionDuration = DefaultTransitionDuration
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Anchor.IsZero() {
		opts.Anchor = opts.Now()
	}

	g := &Grid{
		opts:     opts,
		state:    NewState(opts.Anchor, opts.FirstDayOfWeek),
		selected: opts.Selected,
		log:      opts.Logger.WithField("component", "grid"),
	}

	if !opts.Selected.IsZero() && g.isSelectable(opts.Selected) {
		g.state.Focus = dates.StartOfDay(opts.Selected)
	}
	return g
}

// State returns a copy of the grid state.
func (g *Grid) State() State {
	return g.state
}

// Anchor returns the first day of the anchor month.
func (g *Grid) Anchor() time.Time {
	return g.state.Anchor
}

// Focus returns the focus day, if any.
func (g *Grid) Focus() (time.Time, bool) {
	return g.state.Focus, !g.state.Focus.IsZero()
}

// Selected returns the selected date, or the zero time.
func (g *Grid) Selected() time.Time {
	return g.selected
}

// FirstDayOfWeek returns the weekday of the first column.
func (g *Grid) FirstDayOfWeek() time.Weekday {
	return g.state.FirstDay
}

// TransitionDuration returns the animation length of month transitions.
func (g *Grid) TransitionDuration() time.Duration {
	return g.opts.TransitionDuration
}

// TouchDrag reports whether drag gestures are enabled.
func (g *Grid) TouchDrag() bool {
	return g.opts.TouchDrag
}

// IsTransitioning reports whether a transition or drag is in progress.
func (g *Grid) IsTransitioning() bool {
	return g.state.IsTransitioning()
}

// GridHeight returns the height of the six visible rows.
func (g *Grid) GridHeight() float64 {
	return g.state.GridHeight()
}

// Cells returns the day cells for the current window.
func (g *Grid) Cells() []DayCell {
	return Render(g.state, RenderInput{
		Selected:    g.selected,
		Constraints: g.opts.Constraints,
		Modifiers:   g.opts.Modifiers,
		Now:         g.opts.Now(),
	})
}

// SetAnchorMonth moves the grid to month on behalf of the host. It does not
// call OnAnchorMonthChange.
func (g *Grid) SetAnchorMonth(month time.Time) {
	g.dispatch(SetAnchor{Month: month})
}

// SetSelected replaces the selected date.
func (g *Grid) SetSelected(date time.Time) {
	if g.closed {
		return
	}
	g.selected = date
}

// SetFocusDay focuses date if it is selectable.
func (g *Grid) SetFocusDay(date time.Time) bool {
	if g.closed || !g.isSelectable(date) {
		return false
	}
	g.setFocus(date)
	return true
}

// Activate focuses date and reports it through OnDateActivate. Dates that
// are not selectable are ignored.
func (g *Grid) Activate(date time.Time) bool {
	if g.closed || date.IsZero() || !g.isSelectable(date) {
		return false
	}
	g.setFocus(date)
	g.log.WithField("date", date.Format(time.DateOnly)).Debug("date activated")
	if g.opts.OnDateActivate != nil {
		g.opts.OnDateActivate(dates.StartOfDay(date))
	}
	return true
}

// Resize reports the rendered width of the grid container.
func (g *Grid) Resize(width float64) {
	g.dispatch(Resize{Width: width})
}

// Expire is called when the reset timer id fires.
func (g *Grid) Expire(id uint64) {
	g.dispatch(ResetExpired{Timer: id})
}

// Close unmounts the grid. Pending timers are cancelled and every later
// call is ignored.
func (g *Grid) Close() {
	if g.closed {
		return
	}
	if p, ok := g.state.Phase.(Transitioning); ok && g.opts.Scheduler != nil {
		g.opts.Scheduler.Cancel(p.Timer)
	}
	g.closed = true
	g.opts.OnAnchorMonthChange = nil
	g.opts.OnDateActivate = nil
	g.opts.OnFocusDayChange = nil
}

// Closed reports whether Close has been called.
func (g *Grid) Closed() bool {
	return g.closed
}

// isSelectable applies the constraints and any host "disabled" modifier.
func (g *Grid) isSelectable(d time.Time) bool {
	if !IsSelectable(d, g.opts.Constraints) {
		return false
	}
	if disabled := g.opts.Modifiers[ModifierDisabled]; disabled != nil && disabled(d) {
		return false
	}
	return true
}

func (g *Grid) setFocus(date time.Time) {
	before := g.state.Focus
	g.dispatch(SetFocus{Day: date})
	if !dates.SameDay(before, g.state.Focus) && g.opts.OnFocusDayChange != nil {
		g.opts.OnFocusDayChange(g.state.Focus)
	}
}

// changeAnchor moves the anchor on behalf of the engine and tells the host.
func (g *Grid) changeAnchor(month time.Time) {
	if dates.SameMonth(month, g.state.Anchor) {
		return
	}
	g.dispatch(SetAnchor{Month: month})
	g.notifyAnchor(g.state.Anchor)
}

func (g *Grid) notifyAnchor(month time.Time) {
	if g.opts.OnAnchorMonthChange != nil {
		g.opts.OnAnchorMonthChange(month)
	}
}

func (g *Grid) dispatch(ev Event) {
	if g.closed {
		return
	}

	before := g.state
	next, effects := Reduce(g.state, ev)
	g.state = next

	if _, ok := ev.(SetAnchor); ok && !dates.SameMonth(before.Anchor, next.Anchor) {
		g.log.WithFields(logrus.Fields{
			"from":     before.Anchor.Format("2006-01"),
			"to":       next.Anchor.Format("2006-01"),
			"animated": next.IsTransitioning(),
			"offset":   next.Offset,
			"origin":   next.Origin,
		}).Debug("anchor month changed")
	}

	for _, e := range effects {
		g.apply(e)
	}
}

func (g *Grid) apply(e Effect) {
	switch e := e.(type) {
	case ScheduleReset:
		if g.opts.Scheduler == nil {
			g.dispatch(ResetExpired{Timer: e.Timer})
			return
		}
		g.opts.Scheduler.Schedule(Timer{ID: e.Timer, Delay: g.opts.TransitionDuration})
	case CancelReset:
		if g.opts.Scheduler != nil {
			g.opts.Scheduler.Cancel(e.Timer)
		}
	case RequestAnchor:
		g.log.WithField("month", e.Month.Format("2006-01")).Debug("drag crossed into month")
		g.notifyAnchor(e.Month)
	case Tap:
		g.Activate(e.Day)
	default:
		panic("calendar: unknown effect")
	}
}
