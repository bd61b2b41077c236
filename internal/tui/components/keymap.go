package components

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hy4ri/calgrid/internal/calendar"
)

// KeyMap holds the picker's key bindings. It implements help.KeyMap.
type KeyMap struct {
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	PrevMonth key.Binding
	NextMonth key.Binding
	WeekStart key.Binding
	WeekEnd   key.Binding
	Today     key.Binding

	GoTo key.Binding
	Copy key.Binding
	Help key.Binding
	Quit key.Binding
}

// DefaultKeyMap returns the default bindings. With vim set, hjkl and the
// 0/$ motions are added to the arrow keys.
func DefaultKeyMap(vim bool) KeyMap {
	keys := func(plain []string, vimKeys ...string) []string {
		if vim {
			return append(plain, vimKeys...)
		}
		return plain
	}

	return KeyMap{
		Left:      key.NewBinding(key.WithKeys(keys([]string{"left"}, "h")...), key.WithHelp("←/h", "prev day")),
		Right:     key.NewBinding(key.WithKeys(keys([]string{"right"}, "l")...), key.WithHelp("→/l", "next day")),
		Up:        key.NewBinding(key.WithKeys(keys([]string{"up"}, "k")...), key.WithHelp("↑/k", "prev week")),
		Down:      key.NewBinding(key.WithKeys(keys([]string{"down"}, "j")...), key.WithHelp("↓/j", "next week")),
		Select:    key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		PrevMonth: key.NewBinding(key.WithKeys("[", "pgup"), key.WithHelp("[", "prev month")),
		NextMonth: key.NewBinding(key.WithKeys("]", "pgdown"), key.WithHelp("]", "next month")),
		WeekStart: key.NewBinding(key.WithKeys(keys([]string{"home"}, "0")...), key.WithHelp("home", "week start")),
		WeekEnd:   key.NewBinding(key.WithKeys(keys([]string{"end"}, "$")...), key.WithHelp("end", "week end")),
		Today:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "today")),
		GoTo:      key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "go to month")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy date")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.PrevMonth, k.NextMonth, k.Today, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.WeekStart, k.WeekEnd, k.PrevMonth, k.NextMonth},
		{k.Select, k.Today, k.GoTo, k.Copy},
		{k.Help, k.Quit},
	}
}

// gridKey maps a key press to a grid navigation key.
func (k KeyMap) gridKey(msg tea.KeyMsg) (calendar.Key, bool) {
	switch {
	case key.Matches(msg, k.Left):
		return calendar.KeyLeft, true
	case key.Matches(msg, k.Right):
		return calendar.KeyRight, true
	case key.Matches(msg, k.Up):
		return calendar.KeyUp, true
	case key.Matches(msg, k.Down):
		return calendar.KeyDown, true
	case key.Matches(msg, k.Select):
		return calendar.KeyEnter, true
	case key.Matches(msg, k.PrevMonth):
		return calendar.KeyPrevMonth, true
	case key.Matches(msg, k.NextMonth):
		return calendar.KeyNextMonth, true
	case key.Matches(msg, k.WeekStart):
		return calendar.KeyWeekStart, true
	case key.Matches(msg, k.WeekEnd):
		return calendar.KeyWeekEnd, true
	case key.Matches(msg, k.Today):
		return calendar.KeyToday, true
	}
	return 0, false
}
