// Package main is the entry point for the calgrid date picker.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/hy4ri/calgrid/internal/calendar"
	"github.com/hy4ri/calgrid/internal/config"
	"github.com/hy4ri/calgrid/internal/locale"
	"github.com/hy4ri/calgrid/internal/tui"
)

const version = "0.1.0"

// errCancelled is returned when the picker exits without a date.
var errCancelled = errors.New("no date selected")

type options struct {
	month    string
	selected string
	min      string
	max      string
	locale   string
	config   string
	logLevel string
	init     bool
	save     bool
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errCancelled) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// NewCommand returns the root command.
func NewCommand() *cobra.Command {
	o := &options{}

	cmd := &cobra.Command{
		Use:   "calgrid",
		Short: "calgrid is a terminal date picker",
		Long: `calgrid is a terminal date picker with a scrolling month grid.

The chosen date is printed to stdout as YYYY-MM-DD; the picker itself draws
on stderr, so calgrid works inside command substitution:

    due=$(calgrid --min today)

Config file: ~/.config/calgrid/config.yaml`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.month, "month", "", "month to show first, YYYY-MM (default: selected date or today)")
	f.StringVar(&o.selected, "selected", "", "preselected date, YYYY-MM-DD")
	f.StringVar(&o.min, "min", "", "earliest selectable date, YYYY-MM-DD or \"today\"")
	f.StringVar(&o.max, "max", "", "latest selectable date, YYYY-MM-DD or \"today\"")
	f.StringVar(&o.locale, "locale", "", "locale for month and weekday names ("+
		strings.Join(locale.NewCatalog().Supported(), ", ")+")")
	f.StringVar(&o.config, "config", "", "config file (default ~/.config/calgrid/config.yaml)")
	f.StringVar(&o.logLevel, "log-level", "", "log level: trace, debug, info, warn, error")
	f.BoolVar(&o.init, "init", false, "create a template config file and exit")
	f.BoolVar(&o.save, "save", false, "write the config with --locale and --log-level applied and exit")

	return cmd
}

func run(cmd *cobra.Command, o *options) error {
	path := o.config
	if path == "" {
		var err error
		if path, err = config.ConfigPath(); err != nil {
			return errors.Wrap(err, "failed to get config path")
		}
	}

	if o.init {
		created, err := config.Init(path)
		if err != nil {
			return err
		}
		if !created {
			fmt.Fprintf(cmd.ErrOrStderr(), "Config file already exists: %s\n", path)
			return nil
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Config file created: %s\n", path)
		return nil
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	applyFlags(cmd, o, cfg)

	if o.save {
		if err := config.Save(path, cfg); err != nil {
			return errors.Wrap(err, "failed to save config")
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Config file written: %s\n", path)
		return nil
	}

	logFile, err := setupLogger(cfg)
	if err != nil {
		return err
	}
	defer logFile.Close()

	loc, err := resolveLocale(locale.NewCatalog(), cfg)
	if err != nil {
		return err
	}

	grid, err := gridOptions(cfg, o, loc, time.Now())
	if err != nil {
		return err
	}
	// Runs append to the same log file; the run id tells them apart.
	log := logrus.WithField("run", uuid.NewString())
	log.WithFields(logrus.Fields{
		"month":  grid.Anchor.Format("2006-01"),
		"locale": loc.Name(),
	}).Debug("starting picker")

	app := tui.NewApp(tui.Options{
		Config: cfg,
		Locale: loc,
		Grid:   grid,
		Logger: log,
	})
	p := tea.NewProgram(app,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithOutput(os.Stderr),
	)
	if _, err := p.Run(); err != nil {
		return errors.Wrap(err, "failed to run TUI")
	}

	date, ok := app.Result()
	if !ok {
		return errCancelled
	}
	fmt.Fprintln(cmd.OutOrStdout(), date.Format(time.DateOnly))
	return nil
}

// loadConfig reads --config, or the default config file when it is unset.
func loadConfig(o *options) (*config.Config, error) {
	if o.config != "" {
		return config.LoadFile(o.config)
	}
	return config.Load()
}

// applyFlags overrides config values with flags that were set.
func applyFlags(cmd *cobra.Command, o *options, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("locale") {
		cfg.Calendar.Locale = o.locale
	}
	if f.Changed("log-level") {
		cfg.Log.Level = o.logLevel
	}
}

// setupLogger points logrus at the log file. The terminal belongs to the
// picker, so nothing is logged to stderr.
func setupLogger(cfg *config.Config) (io.Closer, error) {
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse log level")
	}

	path, err := cfg.LogPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, errors.Wrap(err, "failed to create log directory")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open log file")
	}

	logrus.SetLevel(level)
	logrus.SetOutput(file)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
	return file, nil
}

// resolveLocale looks up the configured locale and applies the first day of
// week override.
func resolveLocale(r locale.Resolver, cfg *config.Config) (locale.Locale, error) {
	loc, err := r.Resolve(cfg.Calendar.Locale)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve locale")
	}
	day, ok, err := cfg.FirstDay()
	if err != nil {
		return nil, err
	}
	if ok {
		loc = locale.WithFirstDay(loc, day)
	}
	return loc, nil
}

// gridOptions builds the initial grid from config and flags. Flags win over
// the config file.
func gridOptions(cfg *config.Config, o *options, loc locale.Locale, now time.Time) (calendar.Options, error) {
	lo, hi, err := cfg.Bounds()
	if err != nil {
		return calendar.Options{}, err
	}

	parse := func(name, value string) (time.Time, error) {
		if value == "today" {
			return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), nil
		}
		t, err := config.ParseDate(value)
		return t, errors.WithMessage(err, "--"+name)
	}

	if o.min != "" {
		if lo, err = parse("min", o.min); err != nil {
			return calendar.Options{}, err
		}
	}
	if o.max != "" {
		if hi, err = parse("max", o.max); err != nil {
			return calendar.Options{}, err
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return calendar.Options{}, errors.Errorf("maximum date %s is before minimum date %s",
			hi.Format(time.DateOnly), lo.Format(time.DateOnly))
	}

	var selected time.Time
	if o.selected != "" {
		if selected, err = parse("selected", o.selected); err != nil {
			return calendar.Options{}, err
		}
	}

	anchor := now
	if !selected.IsZero() {
		anchor = selected
	}
	if o.month != "" {
		if anchor, err = parse("month", o.month); err != nil {
			return calendar.Options{}, err
		}
	}

	return calendar.Options{
		Anchor:             anchor,
		Selected:           selected,
		Constraints:        calendar.Constraints{Min: lo, Max: hi},
		FirstDayOfWeek:     loc.FirstDayOfWeek(),
		TransitionDuration: cfg.Calendar.TransitionDuration,
		TouchDrag:          cfg.Calendar.TouchDrag,
	}, nil
}
