package effects

import (
	"math"

	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// FadeKind is the closed set of fade variants §4.7 names.
type FadeKind string

const (
	FadeIn    FadeKind = "in"
	FadeOut   FadeKind = "out"
	FadeCross FadeKind = "cross"
)

// Fade scales the whole surface's alpha by a function of Window.Progress.
// It is a "transition": duration- and progress-driven.
type Fade struct {
	EffectID string
	FadeKind FadeKind
	Window   Window
}

func (f *Fade) ID() string   { return f.EffectID }
func (f *Fade) Kind() string { return "transition" }

func (f *Fade) Process(s *render.Surface, _ timeline.ExportSettings, t float64) (*render.Surface, error) {
	p := f.Window.Progress(t)
	var mul float64
	switch f.FadeKind {
	case FadeIn:
		mul = p
	case FadeOut:
		mul = 1 - p
	case FadeCross:
		// No second clip is available to this single-surface processor, so
		// "cross" dips to transparent at the window's midpoint and back —
		// a symmetric fade rather than a true two-source crossfade.
		mul = math.Abs(2*p - 1)
	default:
		mul = 1
	}
	s.MapPixels(func(_, _ int, r, g, b, a float64) (float64, float64, float64, float64) {
		return r, g, b, clamp01(a * mul)
	})
	return s, nil
}
