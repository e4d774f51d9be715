package effects

import (
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// Brightness scales every pixel's RGB channels by Factor (1.0 = no
// change), clamping to [0,1]. It is an "effect": parameterized but
// time-independent.
type Brightness struct {
	EffectID string
	Factor   float64
}

func (b *Brightness) ID() string   { return b.EffectID }
func (b *Brightness) Kind() string { return "effect" }

func (b *Brightness) Process(s *render.Surface, _ timeline.ExportSettings, _ float64) (*render.Surface, error) {
	s.MapPixels(func(_, _ int, r, g, b2, a float64) (float64, float64, float64, float64) {
		return clamp01(r * b.Factor), clamp01(g * b.Factor), clamp01(b2 * b.Factor), a
	})
	return s, nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
