package timeline

import (
	"testing"
)

func TestActiveIntervalAndIsActiveAt(t *testing.T) {
	b := DefaultBase("el1", 1.0, 4.0, 0.5, 0.5)
	start, end := b.ActiveInterval()
	if start != 1.0 {
		t.Fatalf("start = %v, want 1.0", start)
	}
	if end != 4.0 {
		t.Fatalf("end = %v, want 4.0", end)
	}
	if !b.IsActiveAt(1.0) {
		t.Error("start boundary should be active (inclusive)")
	}
	if b.IsActiveAt(4.0) {
		t.Error("end boundary should not be active (exclusive)")
	}
	if !b.IsActiveAt(3.999) {
		t.Error("just before end should be active")
	}
}

func TestLocalTime(t *testing.T) {
	b := DefaultBase("el1", 2.0, 5.0, 1.0, 0)
	if got := b.LocalTime(3.0); got != 2.0 {
		t.Errorf("LocalTime(3.0) = %v, want 2.0", got)
	}
}

func TestComputeDuration(t *testing.T) {
	m := &Model{
		Tracks: []Track{
			{Elements: []Element{
				&MediaElement{BaseFields: DefaultBase("a", 0, 3, 0, 0)},
				&MediaElement{BaseFields: DefaultBase("b", 2, 5, 0, 1)},
			}},
		},
	}
	// a: active [0,3); b: active [2,6)
	if got := m.ComputeDuration(); got != 6 {
		t.Errorf("ComputeDuration() = %v, want 6", got)
	}
}

func TestEffectiveSize(t *testing.T) {
	s := ExportSettings{Width: 1920, Height: 1080, ResolutionMultiplier: 0.5}
	w, h := s.EffectiveSize()
	if w != 960 || h != 540 {
		t.Errorf("EffectiveSize() = %dx%d, want 960x540", w, h)
	}
}

func TestTotalFrames(t *testing.T) {
	cases := []struct {
		duration, fps float64
		want          int64
	}{
		{1.0, 30, 30},
		{1.15, 10, 12},
		{0, 30, 0},
		{2.0, 29.97, 60},
	}
	for _, c := range cases {
		if got := TotalFrames(c.duration, c.fps); got != c.want {
			t.Errorf("TotalFrames(%v, %v) = %v, want %v", c.duration, c.fps, got, c.want)
		}
	}
}

func TestPTSMicrosIsFloor(t *testing.T) {
	s := ExportSettings{FPS: 30}
	// k=1 at 30fps -> 33333.33us, floored to 33333
	if got := s.PTSMicros(1); got != 33333 {
		t.Errorf("PTSMicros(1) = %v, want 33333", got)
	}
}

func TestIsKeyframeCadence(t *testing.T) {
	s := ExportSettings{FPS: 30}
	cadence := int64(90) // 3*30
	for k := int64(0); k < 300; k++ {
		want := k%cadence == 0
		if got := s.IsKeyframe(k); got != want {
			t.Errorf("IsKeyframe(%d) = %v, want %v", k, got, want)
		}
	}
}

func TestSubtitleResolvePosition(t *testing.T) {
	s := &SubtitleElement{FontSize: 20, Position: SubtitlePositionTop}
	x, y := s.ResolvePosition(1920, 1080)
	if x != 0 {
		t.Errorf("top x = %v, want 0", x)
	}
	if y != 40-540 {
		t.Errorf("top y = %v, want %v", y, 40-540.0)
	}

	s.Position = SubtitlePositionCustom
	s.CustomX, s.CustomY = 10, 20
	x, y = s.ResolvePosition(1920, 1080)
	if x != 10 || y != 20 {
		t.Errorf("custom position = (%v, %v), want (10, 20)", x, y)
	}
}

func TestByteSourceIsZero(t *testing.T) {
	if !(ByteSource{}).IsZero() {
		t.Error("empty ByteSource should be zero")
	}
	if (ByteSource{FilePath: "x"}).IsZero() {
		t.Error("ByteSource with FilePath should not be zero")
	}
}
