package effects

import (
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// Blur is a separable box blur of the given radius in pixels. It is an
// "effect": parameterized but time-independent.
type Blur struct {
	EffectID string
	Radius   int
}

func (bl *Blur) ID() string   { return bl.EffectID }
func (bl *Blur) Kind() string { return "effect" }

func (bl *Blur) Process(s *render.Surface, _ timeline.ExportSettings, _ float64) (*render.Surface, error) {
	if bl.Radius <= 0 {
		return s, nil
	}
	horiz := boxBlurPass(s, bl.Radius, true)
	vert := boxBlurPass(horiz, bl.Radius, false)
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			r, g, b, a := vert.At(x, y)
			s.SetPixel(x, y, r, g, b, a)
		}
	}
	return s, nil
}

// boxBlurPass runs one directional box blur pass over src, returning a
// fresh surface of the same size holding the blurred result.
func boxBlurPass(src *render.Surface, radius int, horizontal bool) *render.Surface {
	out := render.NewSurface(src.W, src.H)
	for y := 0; y < src.H; y++ {
		for x := 0; x < src.W; x++ {
			var sr, sg, sb, sa float64
			n := 0
			for d := -radius; d <= radius; d++ {
				sx, sy := x, y
				if horizontal {
					sx = x + d
				} else {
					sy = y + d
				}
				r, g, b, a := src.At(sx, sy)
				sr += r
				sg += g
				sb += b
				sa += a
				n++
			}
			out.SetPixel(x, y, sr/float64(n), sg/float64(n), sb/float64(n), sa/float64(n))
		}
	}
	return out
}
