package calendar

import (
	"testing"
	"time"
)

func TestIsSelectable(t *testing.T) {
	lo := day(2024, time.March, 10)
	hi := time.Date(2024, time.March, 10, 12, 0, 0, 0, time.Local)
	c := Constraints{Min: lo.Add(8 * time.Hour), Max: hi}

	tests := []struct {
		name string
		d    time.Time
		want bool
	}{
		{"start of min day", lo, true},
		{"morning of min day", lo.Add(6 * time.Hour), true},
		{"exactly max", hi, true},
		{"after max same day", time.Date(2024, time.March, 10, 18, 0, 0, 0, time.Local), false},
		{"day before min", day(2024, time.March, 9), false},
		{"day after max", day(2024, time.March, 11), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSelectable(tt.d, c); got != tt.want {
				t.Errorf("IsSelectable(%v) = %v, want %v", tt.d, got, tt.want)
			}
		})
	}
}

func TestIsSelectableUnbounded(t *testing.T) {
	d := day(1900, time.January, 1)
	if !IsSelectable(d, Constraints{}) {
		t.Error("zero constraints should accept every date")
	}
	if !IsSelectable(d, Constraints{Max: day(2000, time.January, 1)}) {
		t.Error("min-unbounded constraints should accept an early date")
	}
	if IsSelectable(d, Constraints{Min: day(2000, time.January, 1)}) {
		t.Error("date before min should be rejected")
	}
}

func TestIsSelectableWholeRange(t *testing.T) {
	c := Constraints{Min: day(2024, time.March, 5).Add(13 * time.Hour), Max: day(2024, time.March, 20)}
	for d := day(2024, time.February, 25); d.Before(day(2024, time.March, 31)); d = d.AddDate(0, 0, 1) {
		inside := !d.Before(day(2024, time.March, 5)) && !d.After(day(2024, time.March, 20))
		if got := IsSelectable(d, c); got != inside {
			t.Errorf("IsSelectable(%s) = %v, want %v", d.Format(time.DateOnly), got, inside)
		}
	}
}
