package effects

import "testing"

func TestWindowProgressClampedLinear(t *testing.T) {
	w := Window{Start: 1, Duration: 2}
	cases := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{1, 0},
		{2, 0.5},
		{3, 1},
		{10, 1},
		{-5, 0},
	}
	for _, c := range cases {
		if got := w.Progress(c.t); got != c.want {
			t.Errorf("Progress(%v) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestWindowProgressZeroDurationIsCut(t *testing.T) {
	w := Window{Start: 5, Duration: 0}
	if got := w.Progress(4.9); got != 0 {
		t.Errorf("before cut: Progress() = %v, want 0", got)
	}
	if got := w.Progress(5); got != 1 {
		t.Errorf("at cut: Progress() = %v, want 1", got)
	}
	if got := w.Progress(100); got != 1 {
		t.Errorf("after cut: Progress() = %v, want 1", got)
	}
}
