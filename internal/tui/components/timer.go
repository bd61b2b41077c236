package components

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/calgrid/internal/calendar"
)

// frameInterval paces the scroll animation.
const frameInterval = time.Second / 30

// tickScheduler implements calendar.Scheduler on top of tea.Tick. The grid
// schedules timers synchronously inside Update; drain turns them into
// commands for the program to run.
type tickScheduler struct {
	pending   []calendar.Timer
	cancelled map[uint64]bool
}

func newTickScheduler() *tickScheduler {
	return &tickScheduler{cancelled: make(map[uint64]bool)}
}

// Schedule implements calendar.Scheduler.
func (s *tickScheduler) Schedule(t calendar.Timer) {
	s.pending = append(s.pending, t)
}

// Cancel implements calendar.Scheduler. A tick that is already in flight
// cannot be stopped, so it is dropped when it arrives.
func (s *tickScheduler) Cancel(id uint64) {
	for i, t := range s.pending {
		if t.ID == id {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return
		}
	}
	s.cancelled[id] = true
}

// expired reports whether a TransitionDoneMsg should reach the grid.
func (s *tickScheduler) expired(id uint64) bool {
	if s.cancelled[id] {
		delete(s.cancelled, id)
		return false
	}
	return true
}

// drain returns a command for every timer scheduled since the last call.
func (s *tickScheduler) drain() tea.Cmd {
	if len(s.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(s.pending))
	for _, t := range s.pending {
		id := t.ID
		cmds = append(cmds, tea.Tick(t.Delay, func(time.Time) tea.Msg {
			return TransitionDoneMsg{ID: id}
		}))
	}
	s.pending = nil
	return tea.Batch(cmds...)
}

// frame returns a command that sends the next animation frame.
func frame() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}
