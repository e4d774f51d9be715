package effects

import (
	"math"

	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// ColorFilter adjusts hue (degrees, additive), saturation, and brightness
// (both multiplicative, 1.0 = no change) via an RGB->HSV->RGB round trip.
type ColorFilter struct {
	EffectID        string
	HueShiftDegrees float64
	SaturationMul   float64
	BrightnessMul   float64
}

func (c *ColorFilter) ID() string   { return c.EffectID }
func (c *ColorFilter) Kind() string { return "effect" }

func (c *ColorFilter) Process(s *render.Surface, _ timeline.ExportSettings, _ float64) (*render.Surface, error) {
	s.MapPixels(func(_, _ int, r, g, b, a float64) (float64, float64, float64, float64) {
		h, sat, v := rgbToHSV(r, g, b)
		h = math.Mod(h+c.HueShiftDegrees, 360)
		if h < 0 {
			h += 360
		}
		sat = clamp01(sat * c.SaturationMul)
		v = clamp01(v * c.BrightnessMul)
		nr, ng, nb := hsvToRGB(h, sat, v)
		return nr, ng, nb, a
	})
	return s, nil
}

func rgbToHSV(r, g, b float64) (h, s, v float64) {
	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	v = maxc
	delta := maxc - minc
	if delta < 1e-9 {
		return 0, 0, v
	}
	s = delta / maxc
	switch maxc {
	case r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func hsvToRGB(h, s, v float64) (r, g, b float64) {
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r1, g1, b1 float64
	switch {
	case h < 60:
		r1, g1, b1 = c, x, 0
	case h < 120:
		r1, g1, b1 = x, c, 0
	case h < 180:
		r1, g1, b1 = 0, c, x
	case h < 240:
		r1, g1, b1 = 0, x, c
	case h < 300:
		r1, g1, b1 = x, 0, c
	default:
		r1, g1, b1 = c, 0, x
	}
	return clamp01(r1 + m), clamp01(g1 + m), clamp01(b1 + m)
}
