package components

import (
	"fmt"
	"maps"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"
	"github.com/sirupsen/logrus"

	"github.com/hy4ri/calgrid/internal/calendar"
	"github.com/hy4ri/calgrid/internal/dates"
	"github.com/hy4ri/calgrid/internal/locale"
	"github.com/hy4ri/calgrid/internal/tui/styles"
)

const (
	// headerLines is the number of lines above the first grid row: the
	// month title and the weekday row.
	headerLines = 2

	minCellCols = 4
	maxCellCols = 10

	// DefaultColumnPixels is the assumed width of a terminal column.
	DefaultColumnPixels = 8
)

// epoch anchors absolute row numbers so the scroll position survives the
// window being rebuilt.
var epoch = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.Local)

var _ Focusable = (*DatePicker)(nil)

// DatePickerOptions configures a DatePicker.
type DatePickerOptions struct {
	// Grid is passed to calendar.New. Its Scheduler and callbacks are
	// replaced by the picker; callbacks surface as messages instead.
	Grid calendar.Options

	Locale       locale.Locale
	KeyMap       KeyMap
	ColumnPixels float64
}

// DatePicker renders a calendar.Grid in the terminal and feeds it keys,
// mouse gestures, resizes and timers.
type DatePicker struct {
	grid  *calendar.Grid
	loc   locale.Locale
	keys  KeyMap
	sched *tickScheduler
	log   logrus.FieldLogger
	now   func() time.Time

	columnPixels  float64
	width, height int
	focused       bool

	// Messages raised by grid callbacks during the current Update.
	outbox []tea.Msg

	// Scroll animation, in absolute rows from epoch.
	shown     float64
	animFrom  float64
	animTo    float64
	animStart time.Time
	animating bool

	// Pointer state between press and release.
	pressed     bool
	pressTarget time.Time
}

// NewDatePicker creates a focused DatePicker.
func NewDatePicker(opts DatePickerOptions) *DatePicker {
	if opts.ColumnPixels <= 0 {
		opts.ColumnPixels = DefaultColumnPixels
	}
	if opts.Locale == nil {
		opts.Locale = locale.Fixed{FirstDay: opts.Grid.FirstDayOfWeek}
	}
	if opts.Grid.Now == nil {
		opts.Grid.Now = time.Now
	}
	if opts.Grid.Logger == nil {
		opts.Grid.Logger = logrus.StandardLogger()
	}

	p := &DatePicker{
		loc:          opts.Locale,
		keys:         opts.KeyMap,
		sched:        newTickScheduler(),
		log:          opts.Grid.Logger.WithField("component", "datepicker"),
		now:          opts.Grid.Now,
		columnPixels: opts.ColumnPixels,
		focused:      true,
	}

	opts.Grid.Scheduler = p.sched
	opts.Grid.OnAnchorMonthChange = func(m time.Time) {
		p.outbox = append(p.outbox, MonthChangedMsg{Month: m})
	}
	opts.Grid.OnDateActivate = func(d time.Time) {
		p.outbox = append(p.outbox, DateActivatedMsg{Date: d})
	}
	opts.Grid.OnFocusDayChange = func(d time.Time) {
		p.outbox = append(p.outbox, FocusChangedMsg{Date: d})
	}

	p.grid = calendar.New(opts.Grid)
	p.shown = p.targetTop()
	p.animTo = p.shown
	return p
}

// Init implements Component.
func (p *DatePicker) Init() tea.Cmd {
	return nil
}

// Update implements Component.
func (p *DatePicker) Update(msg tea.Msg) (Component, tea.Cmd) {
	if _, ok := msg.(frameMsg); ok {
		return p, p.step()
	}
	p.handle(msg)
	return p, p.flush()
}

func (p *DatePicker) handle(msg tea.Msg) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return
		}
		if k, ok := p.keys.gridKey(msg); ok {
			p.grid.HandleKey(k)
		}
	case tea.MouseMsg:
		p.handleMouse(msg)
	case TransitionDoneMsg:
		if p.sched.expired(msg.ID) {
			p.grid.Expire(msg.ID)
		}
	}
}

func (p *DatePicker) handleMouse(msg tea.MouseMsg) {
	// One terminal line is one grid row.
	y := float64(msg.Y) * p.grid.State().CellHeight

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			p.grid.HandleKey(calendar.KeyPrevMonth)
		case tea.MouseButtonWheelDown:
			p.grid.HandleKey(calendar.KeyNextMonth)
		case tea.MouseButtonLeft:
			target, ok := p.dateAt(msg.X, msg.Y)
			if !ok {
				return
			}
			p.pressed, p.pressTarget = true, target
			p.grid.DragStart(y)
		}
	case tea.MouseActionMotion:
		if p.pressed {
			p.grid.DragMove(y)
		}
	case tea.MouseActionRelease:
		if !p.pressed {
			return
		}
		p.pressed = false
		if !p.grid.TouchDrag() {
			if target, ok := p.dateAt(msg.X, msg.Y); ok && target.Equal(p.pressTarget) {
				p.grid.Activate(target)
			}
			return
		}
		p.grid.DragEnd(y, p.pressTarget)
	}
}

// flush turns everything the grid produced during handle into commands:
// callback messages in order, reset timers and the animation.
func (p *DatePicker) flush() tea.Cmd {
	var emitted tea.Cmd
	if len(p.outbox) > 0 {
		cmds := make([]tea.Cmd, 0, len(p.outbox))
		for _, m := range p.outbox {
			m := m
			cmds = append(cmds, func() tea.Msg { return m })
		}
		emitted = tea.Sequence(cmds...)
		p.outbox = nil
	}
	return tea.Batch(emitted, p.sched.drain(), p.follow())
}

// follow points the animation at the grid's viewport. Only transitions are
// animated; drags, snaps and resets move the view immediately.
func (p *DatePicker) follow() tea.Cmd {
	target := p.targetTop()
	s := p.grid.State()
	if !s.IsTransitioning() || s.IsDragging() {
		p.shown, p.animTo = target, target
		p.animating = false
		return nil
	}
	if target == p.animTo {
		return nil
	}

	p.animFrom, p.animTo, p.animStart = p.shown, target, p.now()
	if p.animating {
		return nil
	}
	p.animating = true
	return frame()
}

// step advances the animation by one frame.
func (p *DatePicker) step() tea.Cmd {
	if !p.animating {
		return nil
	}
	t := float64(p.now().Sub(p.animStart)) / float64(p.grid.TransitionDuration())
	if t >= 1 {
		p.shown = p.animTo
		p.animating = false
		return nil
	}
	p.shown = p.animFrom + (p.animTo-p.animFrom)*easeOut(t)
	return frame()
}

func easeOut(t float64) float64 {
	return 1 - math.Pow(1-t, 3)
}

// targetTop returns the grid's viewport top in absolute rows.
func (p *DatePicker) targetTop() float64 {
	s := p.grid.State()
	return float64(dates.WeeksBetween(epoch, s.Window.Start, s.FirstDay)) + s.ViewportTop()
}

func (p *DatePicker) rowStart(row int) time.Time {
	return dates.AddDays(dates.StartOfWeek(epoch, p.grid.FirstDayOfWeek()), row*dates.DaysPerWeek)
}

func (p *DatePicker) topRow() int {
	return int(math.Round(p.shown))
}

// dateAt returns the date drawn at terminal cell x, y.
func (p *DatePicker) dateAt(x, y int) (time.Time, bool) {
	row := y - headerLines
	col := x / p.cellCols()
	if row < 0 || row >= dates.GridRows || x < 0 || col >= dates.DaysPerWeek {
		return time.Time{}, false
	}
	return dates.AddDays(p.rowStart(p.topRow()+row), col), true
}

func (p *DatePicker) cellCols() int {
	cols := p.width / dates.DaysPerWeek
	if cols < minCellCols {
		return minCellCols
	}
	if cols > maxCellCols {
		return maxCellCols
	}
	return cols
}

// View implements Component.
func (p *DatePicker) View() string {
	var b strings.Builder
	cols := p.cellCols()
	width := cols * dates.DaysPerWeek

	anchor := p.grid.Anchor()
	title := fmt.Sprintf("%s %d", p.loc.MonthName(anchor.Month()), anchor.Year())
	b.WriteString(styles.CalendarHeader.Width(width).Render(title))
	b.WriteString("\n")

	for _, wd := range dates.Weekdays(p.grid.FirstDayOfWeek()) {
		b.WriteString(styles.CalendarWeekday.Render(fit(p.loc.WeekdayShort(wd), cols)))
	}
	b.WriteString("\n")

	cells := make(map[int]calendar.DayCell)
	for _, c := range p.grid.Cells() {
		cells[dates.DaysBetween(epoch, c.Date)] = c
	}

	top := p.topRow()
	for r := 0; r < dates.GridRows; r++ {
		start := p.rowStart(top + r)
		for c := 0; c < dates.DaysPerWeek; c++ {
			b.WriteString(p.renderCell(cells, dates.AddDays(start, c), cols))
		}
		b.WriteString("\n")
	}

	if focus, ok := p.grid.Focus(); ok {
		b.WriteString(styles.Subtitle.Render(p.loc.FormatDate(focus)))
	}
	return b.String()
}

func (p *DatePicker) renderCell(cells map[int]calendar.DayCell, d time.Time, cols int) string {
	cell, ok := cells[dates.DaysBetween(epoch, d)]
	if !ok {
		return strings.Repeat(" ", cols)
	}
	if !p.focused && cell.Has(calendar.ModifierFocusVisible) {
		cell.Modifiers = maps.Clone(cell.Modifiers)
		delete(cell.Modifiers, calendar.ModifierFocusVisible)
	}

	label := fmt.Sprintf("%2d", d.Day())
	style := styles.Day(cell)
	if cell.IsFirstOfMonth {
		if cols >= 7 {
			label = runewidth.Truncate(p.loc.MonthName(d.Month()), 3, "") + " 1"
		}
		if plain(cell) {
			style = styles.CalendarMonthStart
		}
	}
	return style.Render(fit(label, cols))
}

// plain reports whether a cell carries no modifier that changes its style.
func plain(c calendar.DayCell) bool {
	for name := range c.Modifiers {
		if name != calendar.ModifierWide {
			return false
		}
	}
	return true
}

// fit right-aligns s in a cell of cols columns, keeping one column of
// spacing on the right.
func fit(s string, cols int) string {
	s = runewidth.Truncate(s, cols-1, "")
	return runewidth.FillLeft(s, cols-1) + " "
}

// SetSize implements Component.
func (p *DatePicker) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.grid.Resize(float64(width) * p.columnPixels)
}

// SetMonth moves the picker to month on behalf of the owner. Passing back
// the month from a MonthChangedMsg is a no-op.
func (p *DatePicker) SetMonth(month time.Time) tea.Cmd {
	p.grid.SetAnchorMonth(month)
	return p.flush()
}

// SetSelected marks date as the selected date.
func (p *DatePicker) SetSelected(date time.Time) {
	p.grid.SetSelected(date)
}

// Focus sets focus on the picker.
func (p *DatePicker) Focus() {
	p.focused = true
}

// Blur removes focus.
func (p *DatePicker) Blur() {
	p.focused = false
}

// Focused returns focus state.
func (p *DatePicker) Focused() bool {
	return p.focused
}

// Grid returns the underlying grid.
func (p *DatePicker) Grid() *calendar.Grid {
	return p.grid
}

// Close unmounts the grid.
func (p *DatePicker) Close() {
	p.log.Debug("closing date picker")
	p.grid.Close()
}
