package availability

import (
	"errors"
	"testing"
)

func TestNewTimeWindow_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		start, end int // hours
	}{
		{name: "zero duration", start: 10, end: 10},
		{name: "negative duration", start: 12, end: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTimeWindow(at(tt.start, 0), at(tt.end, 0))
			if !errors.Is(err, ErrInvalidWindow) {
				t.Errorf("expected ErrInvalidWindow, got %v", err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b TimeWindow
		want bool
	}{
		{name: "disjoint", a: win(8, 0, 9, 0), b: win(10, 0, 11, 0), want: false},
		{name: "partial overlap", a: win(8, 0, 10, 0), b: win(9, 0, 11, 0), want: true},
		{name: "containment", a: win(8, 0, 12, 0), b: win(9, 0, 10, 0), want: true},
		{name: "identical", a: win(8, 0, 10, 0), b: win(8, 0, 10, 0), want: true},
		{name: "adjacent end-to-start", a: win(8, 0, 10, 0), b: win(10, 0, 12, 0), want: false},
		{name: "adjacent start-to-end", a: win(10, 0, 12, 0), b: win(8, 0, 10, 0), want: false},
		{name: "one minute overlap", a: win(8, 0, 10, 1), b: win(10, 0, 12, 0), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Overlaps(tt.b); got != tt.want {
				t.Errorf("Overlaps(a,b) = %v, want %v", got, tt.want)
			}
			// Overlap is symmetric.
			if got := tt.b.Overlaps(tt.a); got != tt.want {
				t.Errorf("Overlaps(b,a) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOverlaps_Self(t *testing.T) {
	w := win(9, 30, 10, 45)
	if !w.Overlaps(w) {
		t.Errorf("a valid window must overlap itself")
	}
}

func TestTouches(t *testing.T) {
	a := win(8, 0, 10, 0)
	b := win(10, 0, 12, 0)
	c := win(11, 0, 13, 0)

	if !a.Touches(b) || !b.Touches(a) {
		t.Errorf("back-to-back windows should touch in both directions")
	}
	if b.Touches(c) {
		t.Errorf("overlapping windows do not touch")
	}
}

func TestContains_HalfOpenBoundaries(t *testing.T) {
	w := win(11, 0, 13, 0)

	tests := []struct {
		name   string
		hour   int
		minute int
		want   bool
	}{
		{name: "before start", hour: 10, minute: 59, want: false},
		{name: "exactly at start is inside", hour: 11, minute: 0, want: true},
		{name: "middle", hour: 11, minute: 30, want: true},
		{name: "exactly at end is outside", hour: 13, minute: 0, want: false},
		{name: "after end", hour: 13, minute: 1, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := w.Contains(at(tt.hour, tt.minute)); got != tt.want {
				t.Errorf("Contains(%02d:%02d) = %v, want %v", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestDuration(t *testing.T) {
	w := win(11, 0, 13, 30)
	if got := w.Duration().Minutes(); got != 150 {
		t.Errorf("Duration() = %v minutes, want 150", got)
	}
}
