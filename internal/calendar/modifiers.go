package calendar

import "time"

// Built-in modifier names.
const (
	ModifierToday        = "today"
	ModifierSelected     = "selected"
	ModifierDisabled     = "disabled"
	ModifierOutside      = "outside"
	ModifierWide         = "wide"
	ModifierFocusVisible = "focusVisible"
)

// Predicate reports whether a modifier applies to a date.
type Predicate func(time.Time) bool

// Modifiers maps modifier names to predicates.
type Modifiers map[string]Predicate

// Merge returns the union of m and other. When both define a name the
// predicates are combined with a logical OR.
func (m Modifiers) Merge(other Modifiers) Modifiers {
	merged := make(Modifiers, len(m)+len(other))
	for name, p := range m {
		merged[name] = p
	}
	for name, p := range other {
		if p == nil {
			continue
		}
		existing, ok := merged[name]
		if !ok || existing == nil {
			merged[name] = p
			continue
		}
		merged[name] = either(existing, p)
	}
	return merged
}

// Match returns the set of modifier names whose predicate holds for d.
func (m Modifiers) Match(d time.Time) map[string]bool {
	set := make(map[string]bool)
	for name, p := range m {
		if p != nil && p(d) {
			set[name] = true
		}
	}
	return set
}

func either(a, b Predicate) Predicate {
	return func(d time.Time) bool {
		return a(d) || b(d)
	}
}
