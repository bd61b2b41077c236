// Package tui provides the terminal user interface for calgrid.
package tui

import (
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/gen2brain/beeep"
	"github.com/sirupsen/logrus"

	"github.com/hy4ri/calgrid/internal/calendar"
	"github.com/hy4ri/calgrid/internal/config"
	"github.com/hy4ri/calgrid/internal/dates"
	"github.com/hy4ri/calgrid/internal/locale"
	"github.com/hy4ri/calgrid/internal/tui/components"
	"github.com/hy4ri/calgrid/internal/tui/styles"
)

// Options configures an App.
type Options struct {
	Config *config.Config
	Locale locale.Locale

	// Grid carries the initial month, selection and range. Callbacks and
	// the scheduler are owned by the picker.
	Grid   calendar.Options
	Logger logrus.FieldLogger

	// Clipboard and Notify default to the system clipboard and desktop
	// notifications.
	Clipboard func(text string) error
	Notify    func(title, message string) error
}

// App is the main Bubble Tea model for the application. It owns the month
// and the selected date and hands them to the picker.
type App struct {
	cfg    *config.Config
	loc    locale.Locale
	picker *components.DatePicker
	keys   components.KeyMap
	help   help.Model
	log    logrus.FieldLogger

	copy   func(text string) error
	notify func(title, message string) error

	month    time.Time
	selected time.Time
	result   time.Time

	// Go-to prompt
	gotoInput textinput.Model
	isGoingTo bool

	statusMsg string
	err       error
	width     int
	height    int
}

// NewApp creates a new App instance.
func NewApp(opts Options) *App {
	if opts.Config == nil {
		opts.Config = config.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if opts.Locale == nil {
		opts.Locale = locale.Fixed{FirstDay: opts.Grid.FirstDayOfWeek}
	}
	if opts.Clipboard == nil {
		opts.Clipboard = clipboard.WriteAll
	}
	if opts.Notify == nil {
		opts.Notify = func(title, message string) error {
			return beeep.Notify(title, message, "")
		}
	}
	opts.Grid.Logger = opts.Logger

	keys := components.DefaultKeyMap(opts.Config.UI.VimMode)

	h := help.New()
	h.Styles.ShortKey = styles.HelpKey
	h.Styles.ShortDesc = styles.HelpDesc
	h.Styles.ShortSeparator = styles.HelpSeparator
	h.Styles.FullKey = styles.HelpKey
	h.Styles.FullDesc = styles.HelpDesc
	h.Styles.FullSeparator = styles.HelpSeparator

	picker := components.NewDatePicker(components.DatePickerOptions{
		Grid:         opts.Grid,
		Locale:       opts.Locale,
		KeyMap:       keys,
		ColumnPixels: opts.Config.UI.ColumnPixels,
	})

	gotoInput := textinput.New()
	gotoInput.Placeholder = "YYYY-MM or YYYY-MM-DD"
	gotoInput.CharLimit = 10
	gotoInput.Width = 24

	return &App{
		cfg:       opts.Config,
		loc:       opts.Locale,
		picker:    picker,
		keys:      keys,
		help:      h,
		log:       opts.Logger.WithField("component", "app"),
		copy:      opts.Clipboard,
		notify:    opts.Notify,
		month:     picker.Grid().Anchor(),
		selected:  opts.Grid.Selected,
		gotoInput: gotoInput,
	}
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return a.picker.Init()
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		a.picker.SetSize(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		if a.isGoingTo {
			return a.handleGoToKeyMsg(msg)
		}
		switch {
		case key.Matches(msg, a.keys.GoTo):
			a.isGoingTo = true
			a.err = nil
			a.statusMsg = ""
			a.picker.Blur()
			return a, a.gotoInput.Focus()
		case key.Matches(msg, a.keys.Quit):
			a.picker.Close()
			return a, tea.Quit
		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil
		case key.Matches(msg, a.keys.Copy):
			if focus, ok := a.picker.Grid().Focus(); ok {
				a.copyDate(focus)
			}
			return a, nil
		}

	case components.MonthChangedMsg:
		a.month = msg.Month
		return a, a.picker.SetMonth(msg.Month)

	case components.FocusChangedMsg:
		a.statusMsg = ""
		a.err = nil
		return a, nil

	case components.DateActivatedMsg:
		return a, a.activate(msg.Date)
	}

	_, cmd := a.picker.Update(msg)
	return a, cmd
}

// handleGoToKeyMsg handles keyboard input while the go-to prompt is open.
func (a *App) handleGoToKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		a.picker.Close()
		return a, tea.Quit

	case "esc":
		a.closeGoTo()
		return a, nil

	case "enter":
		value := strings.TrimSpace(a.gotoInput.Value())
		a.closeGoTo()
		if value == "" {
			return a, nil
		}
		date, err := config.ParseDate(value)
		if err != nil {
			a.err = err
			return a, nil
		}
		// A full date also moves the focus there.
		if len(value) > len("2006-01") {
			a.picker.Grid().SetFocusDay(date)
		}
		a.month = dates.StartOfMonth(date)
		a.log.WithField("month", a.month.Format("2006-01")).Debug("go to month")
		return a, a.picker.SetMonth(a.month)
	}

	var cmd tea.Cmd
	a.gotoInput, cmd = a.gotoInput.Update(msg)
	return a, cmd
}

func (a *App) closeGoTo() {
	a.isGoingTo = false
	a.gotoInput.Reset()
	a.gotoInput.Blur()
	a.picker.Focus()
}

// activate records the chosen date and ends the program.
func (a *App) activate(date time.Time) tea.Cmd {
	a.selected = date
	a.result = date
	a.picker.SetSelected(date)
	a.log.WithField("date", date.Format(time.DateOnly)).Info("date selected")

	if a.cfg.UI.CopyOnSelect {
		a.copyDate(date)
	}
	a.picker.Close()

	if !a.cfg.UI.NotifyOnSelect {
		return tea.Quit
	}

	text := a.loc.FormatDate(date)
	notify := a.notify
	log := a.log
	return tea.Sequence(func() tea.Msg {
		if err := notify("calgrid", "Selected "+text); err != nil {
			log.WithError(err).Warn("notification failed")
		}
		return nil
	}, tea.Quit)
}

func (a *App) copyDate(date time.Time) {
	value := date.Format(time.DateOnly)
	if err := a.copy(value); err != nil {
		a.log.WithError(err).Warn("copy to clipboard failed")
		a.err = err
		a.statusMsg = ""
		return
	}
	a.err = nil
	a.statusMsg = "Copied " + value
}

// View implements tea.Model.
func (a *App) View() string {
	var b strings.Builder
	b.WriteString(a.picker.View())
	b.WriteString("\n\n")

	switch {
	case a.isGoingTo:
		b.WriteString("Go to: " + a.gotoInput.View())
		b.WriteString("\n")
	case a.err != nil:
		b.WriteString(styles.StatusBarError.Render("Error: " + a.err.Error()))
		b.WriteString("\n")
	case a.statusMsg != "":
		b.WriteString(styles.StatusBarSuccess.Render(a.statusMsg))
		b.WriteString("\n")
	}

	b.WriteString(a.help.View(a.keys))
	return b.String()
}

// Month returns the month currently shown.
func (a *App) Month() time.Time {
	return a.month
}

// Selected returns the selected date, or the zero time.
func (a *App) Selected() time.Time {
	return a.selected
}

// Result returns the date chosen by the user, if any.
func (a *App) Result() (time.Time, bool) {
	return a.result, !a.result.IsZero()
}
