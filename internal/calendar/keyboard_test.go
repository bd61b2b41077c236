package calendar

import (
	"reflect"
	"testing"
	"time"
)

func TestKeyRightBlockedAtMaximum(t *testing.T) {
	f := newFixture(t, Options{
		Selected:    day(2024, time.March, 15),
		Constraints: Constraints{Max: day(2024, time.March, 15)},
	})

	if f.key(KeyRight) {
		t.Error("HandleKey(right) reported a change")
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 15)) {
		t.Errorf("Focus = %v, want 2024-03-15", focus)
	}
	if len(f.rec.events) != 0 {
		t.Errorf("events = %v, want none", f.rec.events)
	}
}

func TestKeyMoves(t *testing.T) {
	tests := []struct {
		name  string
		from  time.Time
		key   Key
		want  time.Time
		month bool
	}{
		{"right", day(2024, time.March, 12), KeyRight, day(2024, time.March, 13), false},
		{"left", day(2024, time.March, 12), KeyLeft, day(2024, time.March, 11), false},
		{"down", day(2024, time.March, 12), KeyDown, day(2024, time.March, 19), false},
		{"up", day(2024, time.March, 12), KeyUp, day(2024, time.March, 5), false},
		{"up into February", day(2024, time.March, 3), KeyUp, day(2024, time.February, 25), true},
		{"down into April", day(2024, time.March, 28), KeyDown, day(2024, time.April, 4), true},
		{"week start", day(2024, time.March, 13), KeyWeekStart, day(2024, time.March, 10), false},
		{"week end", day(2024, time.March, 13), KeyWeekEnd, day(2024, time.March, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, Options{Selected: tt.from})

			if !f.key(tt.key) {
				t.Fatal("HandleKey reported no change")
			}
			if focus, _ := f.grid.Focus(); !focus.Equal(tt.want) {
				t.Errorf("Focus = %v, want %v", focus, tt.want)
			}
			if changed := len(f.rec.months) > 0; changed != tt.month {
				t.Errorf("month changed = %v, want %v", changed, tt.month)
			}
		})
	}
}

func TestKeyMonthChangePrecedesFocus(t *testing.T) {
	f := newFixture(t, Options{Selected: day(2024, time.March, 31)})

	f.key(KeyRight)

	want := []string{"anchor:2024-04", "focus:2024-04-01"}
	if !reflect.DeepEqual(f.rec.events, want) {
		t.Errorf("events = %v, want %v", f.rec.events, want)
	}
	if !f.grid.IsTransitioning() {
		t.Error("focus move across months should animate")
	}
}

func TestKeyRepeatThrottle(t *testing.T) {
	f := newFixture(t, Options{Selected: day(2024, time.March, 12)})

	if !f.key(KeyRight) {
		t.Fatal("first key dropped")
	}
	f.clock.advance(40 * time.Millisecond)
	if f.grid.HandleKey(KeyRight) {
		t.Error("key within the repeat interval was processed")
	}
	if entry := f.hook.LastEntry(); entry == nil || entry.Message != "key dropped by repeat throttle" {
		t.Errorf("last log entry = %v", entry)
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 13)) {
		t.Errorf("Focus = %v, want 2024-03-13", focus)
	}

	if !f.key(KeyRight) {
		t.Error("key after the repeat interval was dropped")
	}
}

func TestKeySeedsFocus(t *testing.T) {
	f := newFixture(t, Options{})

	if _, ok := f.grid.Focus(); ok {
		t.Fatal("focus set without a selected date")
	}
	f.key(KeyDown)
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 1)) {
		t.Errorf("Focus = %v, want the first of the anchor month", focus)
	}
	if len(f.rec.months) != 0 {
		t.Errorf("seeding changed month: %v", f.rec.months)
	}
}

func TestKeyEnterActivatesFocus(t *testing.T) {
	f := newFixture(t, Options{})
	if f.key(KeyEnter) {
		t.Error("enter without focus activated something")
	}

	f.grid.SetFocusDay(day(2024, time.March, 20))
	f.key(KeyEnter)
	if len(f.rec.active) != 1 || !f.rec.active[0].Equal(day(2024, time.March, 20)) {
		t.Errorf("active = %v", f.rec.active)
	}
}

func TestKeyPageMonthClampsFocus(t *testing.T) {
	f := newFixture(t, Options{
		Anchor:   day(2024, time.January, 1),
		Selected: day(2024, time.January, 31),
	})

	f.key(KeyNextMonth)

	if !f.grid.Anchor().Equal(day(2024, time.February, 1)) {
		t.Errorf("Anchor = %v", f.grid.Anchor())
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.February, 29)) {
		t.Errorf("Focus = %v, want 2024-02-29", focus)
	}

	f.key(KeyPrevMonth)
	f.key(KeyPrevMonth)
	if !f.grid.Anchor().Equal(day(2023, time.December, 1)) {
		t.Errorf("Anchor = %v, want 2023-12-01", f.grid.Anchor())
	}
}

func TestKeyToday(t *testing.T) {
	f := newFixture(t, Options{Anchor: day(2024, time.August, 1)})

	f.key(KeyToday)

	if !f.grid.Anchor().Equal(day(2024, time.March, 1)) {
		t.Errorf("Anchor = %v, want March", f.grid.Anchor())
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 12)) {
		t.Errorf("Focus = %v, want today", focus)
	}
	// Five months back is a snap, not a transition.
	if f.grid.IsTransitioning() {
		t.Error("large jump should not animate")
	}
}

func TestKeyRespectsHostDisabledModifier(t *testing.T) {
	weekend := func(d time.Time) bool {
		return d.Weekday() == time.Saturday || d.Weekday() == time.Sunday
	}
	f := newFixture(t, Options{
		Selected:  day(2024, time.March, 15), // Friday
		Modifiers: Modifiers{ModifierDisabled: weekend},
	})

	if f.key(KeyRight) {
		t.Error("focus moved onto a disabled Saturday")
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 15)) {
		t.Errorf("Focus = %v", focus)
	}
}

func TestKeyPageMonthRefusedWithoutSelectableDay(t *testing.T) {
	f := newFixture(t, Options{
		Selected:    day(2024, time.March, 15),
		Constraints: Constraints{Max: day(2024, time.March, 15)},
	})

	if f.key(KeyNextMonth) {
		t.Error("HandleKey(next-month) reported a change")
	}
	f.sched.fire(f.grid)

	if !f.grid.Anchor().Equal(day(2024, time.March, 1)) {
		t.Errorf("Anchor = %v, want March", f.grid.Anchor())
	}
	focus, _ := f.grid.Focus()
	if !focus.Equal(day(2024, time.March, 15)) || !f.grid.State().Window.Contains(focus) {
		t.Errorf("Focus = %v, window = %s", focus, f.grid.State().Window)
	}
	if len(f.rec.events) != 0 {
		t.Errorf("events = %v, want none", f.rec.events)
	}
}

func TestKeyPageMonthFocusesNearestSelectableDay(t *testing.T) {
	f := newFixture(t, Options{
		Selected:    day(2024, time.March, 20),
		Constraints: Constraints{Max: day(2024, time.April, 10)},
	})

	if !f.key(KeyNextMonth) {
		t.Fatal("HandleKey(next-month) reported no change")
	}
	f.sched.fire(f.grid)

	want := []string{"anchor:2024-04", "focus:2024-04-10"}
	if !reflect.DeepEqual(f.rec.events, want) {
		t.Errorf("events = %v, want %v", f.rec.events, want)
	}
	focus, _ := f.grid.Focus()
	if !f.grid.State().Window.Contains(focus) {
		t.Errorf("Focus %v outside window %s", focus, f.grid.State().Window)
	}

	// Arrow keys keep the focus in the shown month.
	f.key(KeyLeft)
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.April, 9)) || !f.grid.Anchor().Equal(day(2024, time.April, 1)) {
		t.Errorf("Focus = %v Anchor = %v", focus, f.grid.Anchor())
	}
}

func TestKeyPageMonthWithoutFocus(t *testing.T) {
	f := newFixture(t, Options{Constraints: Constraints{Max: day(2024, time.March, 15)}})

	// Nothing focused, so browsing past the range is allowed.
	if !f.key(KeyNextMonth) {
		t.Fatal("HandleKey(next-month) reported no change")
	}
	if !f.grid.Anchor().Equal(day(2024, time.April, 1)) {
		t.Errorf("Anchor = %v, want April", f.grid.Anchor())
	}
	if _, ok := f.grid.Focus(); ok {
		t.Error("paging seeded a focus day")
	}
}

func TestKeyTodayNotSelectable(t *testing.T) {
	// Today is 2024-03-12 and nothing in March is selectable.
	f := newFixture(t, Options{Constraints: Constraints{Max: day(2024, time.February, 1)}})

	if f.key(KeyToday) {
		t.Error("HandleKey(today) reported a change")
	}
	if _, ok := f.grid.Focus(); ok || len(f.rec.events) != 0 {
		t.Errorf("events = %v", f.rec.events)
	}

	// With a selectable day in today's month the focus goes to the nearest one.
	f = newFixture(t, Options{
		Anchor:      day(2024, time.January, 1),
		Constraints: Constraints{Min: day(2024, time.March, 20)},
	})
	if !f.key(KeyToday) {
		t.Fatal("HandleKey(today) reported no change")
	}
	if focus, _ := f.grid.Focus(); !focus.Equal(day(2024, time.March, 20)) || !f.grid.Anchor().Equal(day(2024, time.March, 1)) {
		t.Errorf("Focus = %v Anchor = %v", focus, f.grid.Anchor())
	}
}
