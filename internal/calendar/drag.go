package calendar

import (
	"time"

	"github.com/hy4ri/calgrid/internal/dates"
)

// TapThreshold is the largest pointer travel, in pixels, for which a drag
// gesture is treated as a tap.
const TapThreshold = 10

func (s State) dragStart(y float64) (State, []Effect) {
	if s.IsDragging() {
		return s, nil
	}

	var effects []Effect
	if p, ok := s.Phase.(Transitioning); ok {
		effects = append(effects, CancelReset{Timer: p.Timer})
	}

	// Continue from whatever is on screen, then widen the window one month
	// each way so every row the gesture can reach exists.
	top := s.ViewportTop()
	s.Origin = OriginTop
	s.Offset = -top * s.CellHeight
	s.Phase = Dragging{StartY: y, Base: s.Offset}

	s = s.prepend(earlier(s.Window.Start, dates.GridStart(dates.AddMonths(s.Anchor, -1), s.FirstDay)))
	s.Window.End = later(s.Window.End, dates.GridEnd(dates.AddMonths(s.Anchor, 1), s.FirstDay))

	return s, effects
}

func (s State) dragMove(y float64) (State, []Effect) {
	d, ok := s.Phase.(Dragging)
	if !ok {
		return s, nil
	}

	s.Offset = d.Base + (y - d.StartY)
	s = s.extendForDrag()

	half := s.GridHeight() / 2
	previous := dates.AddMonths(s.Anchor, -1)
	next := dates.AddMonths(s.Anchor, 1)
	travelled := -s.Offset

	var month time.Time
	switch {
	case travelled > s.monthPosition(next)-half:
		month = next
	case travelled > s.monthPosition(previous)-half && travelled < s.monthPosition(s.Anchor)-half:
		month = previous
	default:
		return s, nil
	}

	s.Anchor = month
	s = s.cover(dates.AddMonths(month, -1))
	s = s.cover(dates.AddMonths(month, 1))
	return s, []Effect{RequestAnchor{Month: month}}
}

// extendForDrag grows the window while the viewport runs past either end.
func (s State) extendForDrag() State {
	for s.Offset > 0 {
		first := dates.StartOfMonth(dates.AddDays(s.Window.Start, dates.DaysPerWeek-1))
		s = s.prepend(dates.GridStart(dates.AddMonths(first, -1), s.FirstDay))
	}
	for s.CellHeight > 0 && s.ViewportTop()+dates.GridRows > float64(s.Window.Rows()) {
		last := dates.StartOfMonth(s.Window.End)
		end := dates.GridEnd(last, s.FirstDay)
		if !end.After(s.Window.End) {
			end = dates.GridEnd(dates.AddMonths(last, 1), s.FirstDay)
		}
		s.Window.End = end
	}
	return s
}

func (s State) dragEnd(y float64, target time.Time) (State, []Effect) {
	d, ok := s.Phase.(Dragging)
	if !ok {
		return s, nil
	}

	s.Offset = -s.monthPosition(s.Anchor)
	s.Origin = OriginTop
	s.LastTimer++
	s.Phase = Transitioning{Timer: s.LastTimer}

	effects := []Effect{ScheduleReset{Timer: s.LastTimer}}
	if absf(y-d.StartY) <= TapThreshold && !target.IsZero() {
		effects = append(effects, Tap{Day: target})
	}
	return s, effects
}

// DragStart begins a vertical drag at pointer position y. It is ignored
// unless touch drag is enabled.
func (g *Grid) DragStart(y float64) {
	if !g.opts.TouchDrag {
		return
	}
	g.dispatch(DragStart{Y: y})
}

// DragMove reports the pointer position during a drag.
func (g *Grid) DragMove(y float64) {
	if !g.opts.TouchDrag {
		return
	}
	g.dispatch(DragMove{Y: y})
}

// DragEnd finishes a drag. target is the day under the pointer when the
// gesture started; it is activated when the gesture was a tap.
func (g *Grid) DragEnd(y float64, target time.Time) {
	if !g.opts.TouchDrag {
		return
	}
	g.dispatch(DragEnd{Y: y, Target: target})
}
