// Package locale resolves the locale-dependent parts of the calendar: the
// first day of the week and month/weekday names.
//
// Locales are resolved through a Resolver that callers construct and inject;
// there is no package-level cache.
package locale

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/locales"
	"github.com/go-playground/locales/de"
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_GB"
	"github.com/go-playground/locales/en_US"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/fr"
	"github.com/go-playground/locales/ja"
	"github.com/go-playground/locales/ru"
)

// Default is the locale used when none is configured.
const Default = "en_US"

// Locale describes how a calendar is laid out and labelled.
type Locale interface {
	// Name returns the canonical locale name, e.g. "en_GB".
	Name() string
	// FirstDayOfWeek returns the weekday shown in the first grid column.
	FirstDayOfWeek() time.Weekday
	// MonthName returns the full name of m.
	MonthName(m time.Month) string
	// WeekdayShort returns a short label for d suitable for a column header.
	WeekdayShort(d time.Weekday) string
	// FormatDate returns a long human readable form of t.
	FormatDate(t time.Time) string
}

// Resolver looks up locales by name.
type Resolver interface {
	Resolve(name string) (Locale, error)
}

// entry pairs a translator constructor with the CLDR first day of week.
type entry struct {
	newTranslator func() locales.Translator
	firstDay      time.Weekday
}

// Catalog is a Resolver over the bundled CLDR translators.
type Catalog struct {
	entries map[string]entry
}

// NewCatalog returns a Catalog with the bundled locales registered.
func NewCatalog() *Catalog {
	return &Catalog{
		entries: map[string]entry{
			"en":    {en.New, time.Sunday},
			"en_US": {en_US.New, time.Sunday},
			"en_GB": {en_GB.New, time.Monday},
			"de":    {de.New, time.Monday},
			"fr":    {fr.New, time.Monday},
			"es":    {es.New, time.Monday},
			"ru":    {ru.New, time.Monday},
			"ja":    {ja.New, time.Sunday},
		},
	}
}

// Supported returns the sorted list of locale names the catalog resolves.
func (c *Catalog) Supported() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Resolve returns the locale for name. Names are matched case-insensitively
// and "-" is accepted in place of "_". An unknown region falls back to its
// language.
func (c *Catalog) Resolve(name string) (Locale, error) {
	normalized := Normalize(name)
	if normalized == "" {
		normalized = Default
	}

	e, ok := c.entries[normalized]
	if !ok {
		lang, _, _ := strings.Cut(normalized, "_")
		if e, ok = c.entries[lang]; !ok {
			return nil, fmt.Errorf("unsupported locale %q", name)
		}
		normalized = lang
	}

	return &translated{name: normalized, tr: e.newTranslator(), firstDay: e.firstDay}, nil
}

// Normalize converts names like "en-gb" to the catalog form "en_GB".
func Normalize(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "-", "_"))
	if name == "" {
		return ""
	}
	// Drop encodings such as "en_US.UTF-8".
	name, _, _ = strings.Cut(name, ".")
	lang, region, found := strings.Cut(name, "_")
	lang = strings.ToLower(lang)
	if !found {
		return lang
	}
	return lang + "_" + strings.ToUpper(region)
}

// WithFirstDay overrides the first day of week of l.
func WithFirstDay(l Locale, firstDay time.Weekday) Locale {
	return &override{Locale: l, firstDay: firstDay}
}

type translated struct {
	name     string
	tr       locales.Translator
	firstDay time.Weekday
}

func (t *translated) Name() string                       { return t.name }
func (t *translated) FirstDayOfWeek() time.Weekday       { return t.firstDay }
func (t *translated) MonthName(m time.Month) string      { return t.tr.MonthWide(m) }
func (t *translated) WeekdayShort(d time.Weekday) string { return t.tr.WeekdayShort(d) }
func (t *translated) FormatDate(d time.Time) string      { return t.tr.FmtDateLong(d) }

type override struct {
	Locale
	firstDay time.Weekday
}

func (o *override) FirstDayOfWeek() time.Weekday { return o.firstDay }
