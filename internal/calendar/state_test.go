package calendar

import (
	"testing"
	"time"

	"github.com/hy4ri/calgrid/internal/dates"
)

func march(t *testing.T) State {
	t.Helper()
	s := NewState(day(2024, time.March, 1), time.Sunday)
	s, _ = Reduce(s, Resize{Width: cellHeight40Width})
	if s.CellHeight != 40 {
		t.Fatalf("CellHeight = %v, want 40", s.CellHeight)
	}
	return s
}

func TestNewStateIsCanonical(t *testing.T) {
	s := NewState(day(2024, time.March, 17), time.Sunday)

	if !s.Anchor.Equal(day(2024, time.March, 1)) {
		t.Errorf("Anchor = %v, want 2024-03-01", s.Anchor)
	}
	if !s.Window.Start.Equal(day(2024, time.February, 25)) || !s.Window.End.Equal(day(2024, time.April, 6)) {
		t.Errorf("Window = %s, want 2024-02-25..2024-04-06", s.Window)
	}
	if s.Window.Days() != 42 {
		t.Errorf("Window has %d days, want 42", s.Window.Days())
	}
	if s.IsTransitioning() {
		t.Error("new state should be idle")
	}
}

func TestSetAnchorSameMonthIsNoop(t *testing.T) {
	s := march(t)

	for i := 0; i < 3; i++ {
		next, effects := Reduce(s, SetAnchor{Month: day(2024, time.March, 20)})
		if len(effects) != 0 {
			t.Fatalf("effects = %v, want none", effects)
		}
		if next != s {
			t.Fatalf("state changed: %+v -> %+v", s, next)
		}
		s = next
	}
}

func TestSetAnchorForward(t *testing.T) {
	s := march(t)
	oldStart := s.Window.Start
	april := day(2024, time.April, 1)

	s, effects := Reduce(s, SetAnchor{Month: april})

	wantOffset := -float64(dates.RowsBetween(oldStart, april, time.Sunday)-1) * 40
	if s.Offset != wantOffset || s.Offset != -200 {
		t.Errorf("Offset = %v, want %v", s.Offset, wantOffset)
	}
	if s.Origin != OriginTop {
		t.Errorf("Origin = %v, want top", s.Origin)
	}
	if !s.Window.Start.Equal(oldStart) {
		t.Errorf("Window.Start moved to %v", s.Window.Start)
	}
	if !s.Window.End.Equal(dates.GridEnd(april, time.Sunday)) {
		t.Errorf("Window.End = %v, want April grid end", s.Window.End)
	}
	if s.ViewportTop() != 5 {
		t.Errorf("ViewportTop() = %v, want 5", s.ViewportTop())
	}

	p, ok := s.Phase.(Transitioning)
	if !ok {
		t.Fatalf("Phase = %T, want Transitioning", s.Phase)
	}
	if len(effects) != 1 || effects[0] != (ScheduleReset{Timer: p.Timer}) {
		t.Fatalf("effects = %v, want ScheduleReset{%d}", effects, p.Timer)
	}

	s, _ = Reduce(s, ResetExpired{Timer: p.Timer})
	if s.IsTransitioning() || s.Offset != 0 {
		t.Errorf("after reset: phase %T offset %v", s.Phase, s.Offset)
	}
	if s.Window != dates.CanonicalWindow(april, time.Sunday) {
		t.Errorf("Window = %s, want canonical April window", s.Window)
	}
}

func TestSetAnchorBackward(t *testing.T) {
	s := NewState(day(2024, time.April, 1), time.Sunday)
	s, _ = Reduce(s, Resize{Width: cellHeight40Width})
	oldEnd := s.Window.End

	s, _ = Reduce(s, SetAnchor{Month: day(2024, time.March, 1)})

	if s.Origin != OriginBottom {
		t.Errorf("Origin = %v, want bottom", s.Origin)
	}
	want := float64(dates.RowsBetween(day(2024, time.March, 1), oldEnd, time.Sunday))*40 - 6*40
	if s.Offset != want {
		t.Errorf("Offset = %v, want %v", s.Offset, want)
	}
	if !s.Window.Start.Equal(day(2024, time.February, 25)) || !s.Window.End.Equal(oldEnd) {
		t.Errorf("Window = %s", s.Window)
	}
	if s.ViewportTop() != 0 {
		t.Errorf("ViewportTop() = %v, want 0 (March rows at the top)", s.ViewportTop())
	}
}

func TestSetAnchorLargeJumpSnaps(t *testing.T) {
	s := march(t)
	s, effects := Reduce(s, SetAnchor{Month: day(2024, time.July, 1)})

	if len(effects) != 0 {
		t.Errorf("effects = %v, want none", effects)
	}
	if s.IsTransitioning() || s.Offset != 0 {
		t.Errorf("phase %T offset %v, want idle at 0", s.Phase, s.Offset)
	}
	if s.Window != dates.CanonicalWindow(day(2024, time.July, 1), time.Sunday) {
		t.Errorf("Window = %s", s.Window)
	}

	// Three months is still animated.
	s, effects = Reduce(s, SetAnchor{Month: day(2024, time.April, 1)})
	if !s.IsTransitioning() || len(effects) != 1 {
		t.Errorf("3 month jump: phase %T effects %v", s.Phase, effects)
	}
}

func TestSetAnchorMergesRunningTransition(t *testing.T) {
	s := march(t)
	s, _ = Reduce(s, SetAnchor{Month: day(2024, time.April, 1)})
	first := s.Phase.(Transitioning).Timer

	s, effects := Reduce(s, SetAnchor{Month: day(2024, time.May, 1)})
	second := s.Phase.(Transitioning).Timer

	if second == first {
		t.Fatal("merged transition reused the timer id")
	}
	if len(effects) != 2 || effects[0] != (CancelReset{Timer: first}) || effects[1] != (ScheduleReset{Timer: second}) {
		t.Fatalf("effects = %v", effects)
	}
	// The window spans from March's start through May.
	if !s.Window.Start.Equal(day(2024, time.February, 25)) || !s.Window.End.Equal(dates.GridEnd(day(2024, time.May, 1), time.Sunday)) {
		t.Errorf("Window = %s", s.Window)
	}

	// The superseded timer does nothing.
	stale, _ := Reduce(s, ResetExpired{Timer: first})
	if !stale.IsTransitioning() {
		t.Error("stale timer collapsed the transition")
	}
}

func TestResizeScalesOffset(t *testing.T) {
	s := march(t)
	s, _ = Reduce(s, SetAnchor{Month: day(2024, time.April, 1)})

	s, _ = Reduce(s, Resize{Width: 560})
	if !s.IsWide || s.CellHeight != 61 {
		t.Fatalf("Resize(560): wide=%v cellHeight=%v, want true 61", s.IsWide, s.CellHeight)
	}
	if s.ViewportTop() != 5 {
		t.Errorf("ViewportTop() = %v after resize, want 5", s.ViewportTop())
	}
}

type bogusEvent struct{}

func (bogusEvent) event() {}

func TestReduceUnknownEventPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for unknown event")
		}
	}()
	Reduce(march(t), bogusEvent{})
}

func TestReduceInvalidWindowPanics(t *testing.T) {
	s := march(t)
	s.Window.End = s.Window.Start.AddDate(0, 0, -7)

	defer func() {
		if recover() == nil {
			t.Error("expected panic for end before start")
		}
	}()
	Reduce(s, SetFocus{Day: day(2024, time.March, 3)})
}

func TestSetFocusIsPhaseIndependent(t *testing.T) {
	s := march(t)
	s, _ = Reduce(s, SetAnchor{Month: day(2024, time.April, 1)})
	before := s.Phase

	s, _ = Reduce(s, SetFocus{Day: time.Date(2024, time.April, 3, 15, 30, 0, 0, time.Local)})
	if !s.Focus.Equal(day(2024, time.April, 3)) {
		t.Errorf("Focus = %v", s.Focus)
	}
	if s.Phase != before {
		t.Errorf("Phase changed to %T", s.Phase)
	}
}
