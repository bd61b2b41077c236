// Package config handles loading and saving application configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidDate is returned for dates that are not in YYYY-MM-DD or
// YYYY-MM form.
var ErrInvalidDate = errors.New("invalid date")

// Config represents the application configuration.
type Config struct {
	Calendar CalendarConfig `yaml:"calendar"`
	UI       UIConfig       `yaml:"ui"`
	Log      LogConfig      `yaml:"log"`
}

// CalendarConfig holds settings passed to the grid.
type CalendarConfig struct {
	// Locale is a CLDR locale name such as "en_US" or "de".
	Locale string `yaml:"locale,omitempty"`

	// FirstDayOfWeek overrides the locale, e.g. "monday". Empty uses the locale.
	FirstDayOfWeek string `yaml:"first_day_of_week,omitempty"`

	TransitionDuration time.Duration `yaml:"transition_duration"`
	TouchDrag          bool          `yaml:"touch_drag"`

	// Selectable range, inclusive, as YYYY-MM-DD.
	MinimumDate string `yaml:"minimum_date,omitempty"`
	MaximumDate string `yaml:"maximum_date,omitempty"`
}

// UIConfig holds UI-related settings.
type UIConfig struct {
	VimMode bool `yaml:"vim_mode"`

	// ColumnPixels is the width of a terminal column in pixels, used to turn
	// the terminal width into a container width for cell sizing.
	ColumnPixels float64 `yaml:"column_pixels"`

	NotifyOnSelect bool `yaml:"notify_on_select"`
	CopyOnSelect   bool `yaml:"copy_on_select"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file,omitempty"` // defaults to calgrid.log in ConfigDir
}

// DefaultConfig returns a new Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Calendar: CalendarConfig{
			TransitionDuration: 500 * time.Millisecond,
			TouchDrag:          true,
		},
		UI: UIConfig{
			VimMode:      true,
			ColumnPixels: 8,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the path to the configuration directory.
// Creates the directory if it doesn't exist.
func ConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configDir := filepath.Join(homeDir, ".config", "calgrid")
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	return configDir, nil
}

// ConfigPath returns the full path to the configuration file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// LogPath returns the log file, falling back to calgrid.log in ConfigDir.
func (c *Config) LogPath() (string, error) {
	if c.Log.File != "" {
		return c.Log.File, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "calgrid.log"), nil
}

// Load reads the configuration from the default config file.
// If the file doesn't exist, returns a default configuration.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile reads the configuration from path.
// If the file doesn't exist, returns a default configuration.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return default config if file doesn't exist
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Init writes the commented template to path unless a file already exists
// there. It reports whether the file was created.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(Template), 0600); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}
	return true, nil
}

// Validate checks values that yaml decoding cannot.
func (c *Config) Validate() error {
	if _, _, err := c.Bounds(); err != nil {
		return err
	}
	if _, _, err := c.FirstDay(); err != nil {
		return err
	}
	if c.Calendar.TransitionDuration < 0 {
		return errors.Errorf("calendar.transition_duration must not be negative, got %s", c.Calendar.TransitionDuration)
	}
	if c.UI.ColumnPixels <= 0 {
		return errors.Errorf("ui.column_pixels must be positive, got %v", c.UI.ColumnPixels)
	}
	return nil
}

// Bounds parses the selectable range. Unset bounds are zero.
func (c *Config) Bounds() (lo, hi time.Time, err error) {
	if c.Calendar.MinimumDate != "" {
		if lo, err = ParseDate(c.Calendar.MinimumDate); err != nil {
			return lo, hi, errors.WithMessage(err, "calendar.minimum_date")
		}
	}
	if c.Calendar.MaximumDate != "" {
		if hi, err = ParseDate(c.Calendar.MaximumDate); err != nil {
			return lo, hi, errors.WithMessage(err, "calendar.maximum_date")
		}
	}
	if !lo.IsZero() && !hi.IsZero() && hi.Before(lo) {
		return lo, hi, errors.Errorf("maximum date %s is before minimum date %s",
			hi.Format(time.DateOnly), lo.Format(time.DateOnly))
	}
	return lo, hi, nil
}

// FirstDay returns the configured first day of the week. ok is false when
// the locale default applies.
func (c *Config) FirstDay() (day time.Weekday, ok bool, err error) {
	if c.Calendar.FirstDayOfWeek == "" {
		return time.Sunday, false, nil
	}
	day, err = ParseWeekday(c.Calendar.FirstDayOfWeek)
	if err != nil {
		return day, false, errors.WithMessage(err, "calendar.first_day_of_week")
	}
	return day, true, nil
}

// ParseDate parses a local date in YYYY-MM-DD form. A YYYY-MM value means
// the first of that month.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.DateOnly, "2006-01"} {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Wrapf(ErrInvalidDate, "%q", s)
}

// ParseWeekday accepts full or three letter English weekday names, or 0-6
// with 0 being Sunday.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || s == name[:3] || s == fmt.Sprint(int(d)) {
			return d, nil
		}
	}
	return time.Sunday, errors.Errorf("unknown weekday %q", s)
}

// Template is written by --init.
const Template = `# calgrid configuration

calendar:
  # CLDR locale for month and weekday names, e.g. en_US, en_GB, de, fr.
  locale: en_US
  # Overrides the locale's first day of week: sunday, monday, ...
  # first_day_of_week: monday
  transition_duration: 500ms
  touch_drag: true
  # Inclusive selectable range, YYYY-MM-DD.
  # minimum_date: 2024-01-01
  # maximum_date: 2024-12-31

ui:
  vim_mode: true
  # Terminal column width in pixels, used for cell sizing.
  column_pixels: 8
  notify_on_select: false
  copy_on_select: false

log:
  level: info
  # file: /tmp/calgrid.log
`
