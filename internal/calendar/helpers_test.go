package calendar

import (
	"sort"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// cellHeight40Width is a container width that yields 40px cells.
const cellHeight40Width = 273

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// manualScheduler records timers until the test fires them.
type manualScheduler struct {
	pending   map[uint64]time.Duration
	cancelled []uint64
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[uint64]time.Duration)}
}

func (m *manualScheduler) Schedule(t Timer) {
	m.pending[t.ID] = t.Delay
}

func (m *manualScheduler) Cancel(id uint64) {
	delete(m.pending, id)
	m.cancelled = append(m.cancelled, id)
}

// fire expires every pending timer in scheduling order.
func (m *manualScheduler) fire(g *Grid) {
	ids := make([]uint64, 0, len(m.pending))
	for id := range m.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for _, id := range ids {
		delete(m.pending, id)
		g.Expire(id)
	}
}

// fakeClock is advanced explicitly by tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type recorder struct {
	events []string
	months []time.Time
	active []time.Time
	focus  []time.Time
}

type fixture struct {
	grid  *Grid
	sched *manualScheduler
	clock *fakeClock
	rec   *recorder
	hook  *test.Hook
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)

	f := &fixture{
		sched: newManualScheduler(),
		clock: &fakeClock{now: time.Date(2024, time.March, 12, 9, 0, 0, 0, time.Local)},
		rec:   &recorder{},
		hook:  hook,
	}

	if opts.Anchor.IsZero() {
		opts.Anchor = day(2024, time.March, 1)
	}
	opts.Now = f.clock.Now
	opts.Scheduler = f.sched
	opts.Logger = logger
	opts.OnAnchorMonthChange = func(m time.Time) {
		f.rec.events = append(f.rec.events, "anchor:"+m.Format("2006-01"))
		f.rec.months = append(f.rec.months, m)
	}
	opts.OnDateActivate = func(d time.Time) {
		f.rec.events = append(f.rec.events, "activate:"+d.Format(time.DateOnly))
		f.rec.active = append(f.rec.active, d)
	}
	opts.OnFocusDayChange = func(d time.Time) {
		f.rec.events = append(f.rec.events, "focus:"+d.Format(time.DateOnly))
		f.rec.focus = append(f.rec.focus, d)
	}

	f.grid = New(opts)
	f.grid.Resize(cellHeight40Width)
	return f
}

// key presses k after letting the repeat throttle expire.
func (f *fixture) key(k Key) bool {
	f.clock.advance(KeyRepeatInterval)
	return f.grid.HandleKey(k)
}
