package effects

import (
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// SlideDirection is the closed set of slide directions §4.7 names.
type SlideDirection string

const (
	SlideLeft  SlideDirection = "L"
	SlideRight SlideDirection = "R"
	SlideUp    SlideDirection = "U"
	SlideDown  SlideDirection = "D"
)

// Slide translates the surface's content by Window.Progress * (W or H) in
// Direction, leaving the vacated area transparent. It is a "transition".
type Slide struct {
	EffectID  string
	Direction SlideDirection
	Window    Window
}

func (sl *Slide) ID() string   { return sl.EffectID }
func (sl *Slide) Kind() string { return "transition" }

func (sl *Slide) Process(s *render.Surface, _ timeline.ExportSettings, t float64) (*render.Surface, error) {
	p := sl.Window.Progress(t)
	if p <= 0 {
		return s, nil
	}

	var dx, dy int
	switch sl.Direction {
	case SlideLeft:
		dx = -int(p * float64(s.W))
	case SlideRight:
		dx = int(p * float64(s.W))
	case SlideUp:
		dy = -int(p * float64(s.H))
	case SlideDown:
		dy = int(p * float64(s.H))
	}

	src := s.Clone()
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			sx, sy := x-dx, y-dy
			r, g, b, a := src.At(sx, sy)
			s.SetPixel(x, y, r, g, b, a)
		}
	}
	return s, nil
}
