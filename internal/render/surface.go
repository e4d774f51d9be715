// Package render implements the Frame Renderer (§4.2): a pixel surface
// with an explicit save/restore transform/alpha/blend stack, per-element-
// kind drawing, z-ordering, and the effect pipeline.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/reelforge/compositor/internal/timeline"
)

type state struct {
	transform Transform
	alpha     float64
	blend     timeline.BlendMode
}

func defaultState() state {
	return state{transform: Identity(), alpha: 1, blend: timeline.BlendSourceOver}
}

// Surface is the compositor's raster canvas: an *image.RGBA plus the
// transform/alpha/blend-mode stack every element renderer pushes and pops
// around its own drawing (§4.2 step 4: "in a saved surface state").
type Surface struct {
	Img  *image.RGBA
	W, H int

	stack []state
	cur   state
}

// NewSurface allocates a W x H surface with every pixel transparent black;
// callers Clear it to paint a background.
func NewSurface(w, h int) *Surface {
	return &Surface{
		Img: image.NewRGBA(image.Rect(0, 0, w, h)),
		W:   w,
		H:   h,
		cur: defaultState(),
	}
}

// Clear fills the whole surface with bg, discarding the transform/alpha/
// blend stack (§4.2 step 1).
func (s *Surface) Clear(bg color.RGBA) {
	draw.Draw(s.Img, s.Img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	s.stack = nil
	s.cur = defaultState()
}

// Save pushes the current transform/alpha/blend state.
func (s *Surface) Save() { s.stack = append(s.stack, s.cur) }

// Restore pops the most recently saved state, or resets to default if the
// stack is empty (a renderer bug, but one a frame should survive).
func (s *Surface) Restore() {
	if n := len(s.stack); n > 0 {
		s.cur = s.stack[n-1]
		s.stack = s.stack[:n-1]
		return
	}
	s.cur = defaultState()
}

func (s *Surface) SetAlpha(a float64)                  { s.cur.alpha = a }
func (s *Surface) SetBlend(b timeline.BlendMode)       { s.cur.blend = b }

// Translate, Scale, and RotateDegrees work like a 2D canvas context: the new
// operation applies to local coordinates before the transform already in
// place, so the Frame Renderer's Scale(r, r) also scales every position a
// renderer translates to afterwards.
func (s *Surface) Translate(dx, dy float64)  { s.cur.transform = Identity().Translate(dx, dy).Mul(s.cur.transform) }
func (s *Surface) Scale(sx, sy float64)      { s.cur.transform = Identity().Scale(sx, sy).Mul(s.cur.transform) }
func (s *Surface) RotateDegrees(deg float64) { s.cur.transform = Identity().RotateDegrees(deg).Mul(s.cur.transform) }

// DrawImage maps src onto the local-space rect [0,0,dstW,dstH], sampling
// with nearest-neighbor and compositing through the current transform,
// alpha, and blend mode.
func (s *Surface) DrawImage(src image.Image, dstW, dstH float64) {
	if dstW <= 0 || dstH <= 0 {
		return
	}
	bounds := src.Bounds()
	srcW, srcH := float64(bounds.Dx()), float64(bounds.Dy())
	if srcW <= 0 || srcH <= 0 {
		return
	}

	inv := s.cur.transform.Invert()
	minX, minY, maxX, maxY := s.transformedBBox(dstW, dstH)
	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			lx, ly := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			if lx < 0 || lx >= dstW || ly < 0 || ly >= dstH {
				continue
			}
			sx := bounds.Min.X + int(lx/dstW*srcW)
			sy := bounds.Min.Y + int(ly/dstH*srcH)
			sr, sg, sb, sa := colorToStraightFloat(src.At(sx, sy))
			sa *= s.cur.alpha
			s.blendAt(px, py, sr, sg, sb, sa)
		}
	}
}

// FillRect fills the local-space rect [0,0,w,h] with a solid color through
// the current transform/alpha/blend — used by shape overlays and the
// background box behind text/subtitles.
func (s *Surface) FillRect(w, h float64, c color.RGBA) {
	if w <= 0 || h <= 0 {
		return
	}
	inv := s.cur.transform.Invert()
	minX, minY, maxX, maxY := s.transformedBBox(w, h)
	sr, sg, sb, sa := colorToStraightFloat(c)
	sa *= s.cur.alpha
	for py := minY; py < maxY; py++ {
		for px := minX; px < maxX; px++ {
			lx, ly := inv.Apply(float64(px)+0.5, float64(py)+0.5)
			if lx < 0 || lx >= w || ly < 0 || ly >= h {
				continue
			}
			s.blendAt(px, py, sr, sg, sb, sa)
		}
	}
}

// MapPixels applies fn to every pixel in straight-alpha [0,1] space and
// writes the result back. Effect processors (render/effects) use this to
// mutate a surface in place without reaching into its premultiplied byte
// layout.
func (s *Surface) MapPixels(fn func(x, y int, r, g, b, a float64) (nr, ng, nb, na float64)) {
	for y := 0; y < s.H; y++ {
		for x := 0; x < s.W; x++ {
			r, g, b, a := readPixel(s.Img, x, y)
			nr, ng, nb, na := fn(x, y, r, g, b, a)
			writePixel(s.Img, x, y, nr, ng, nb, na)
		}
	}
}

// At returns the straight-alpha [0,1] color at (x, y), or all-zero if out
// of bounds.
func (s *Surface) At(x, y int) (r, g, b, a float64) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return 0, 0, 0, 0
	}
	return readPixel(s.Img, x, y)
}

// SetPixel writes a straight-alpha [0,1] color directly at (x, y),
// bypassing the transform/alpha/blend stack. Effect processors use this
// for whole-surface rewrites (blur, slide) where the stack's
// per-element semantics don't apply.
func (s *Surface) SetPixel(x, y int, r, g, b, a float64) {
	if x < 0 || y < 0 || x >= s.W || y >= s.H {
		return
	}
	writePixel(s.Img, x, y, r, g, b, a)
}

// Clone returns a surface of the same size with an independent copy of the
// pixel buffer (transform/alpha/blend stack reset to default) — used by
// processors that read the original while writing a transformed copy
// (slide).
func (s *Surface) Clone() *Surface {
	out := NewSurface(s.W, s.H)
	copy(out.Img.Pix, s.Img.Pix)
	return out
}

func (s *Surface) transformedBBox(w, h float64) (minX, minY, maxX, maxY int) {
	corners := [4][2]float64{{0, 0}, {w, 0}, {0, h}, {w, h}}
	minXf, minYf := math.Inf(1), math.Inf(1)
	maxXf, maxYf := math.Inf(-1), math.Inf(-1)
	for _, c := range corners {
		x, y := s.cur.transform.Apply(c[0], c[1])
		minXf = math.Min(minXf, x)
		minYf = math.Min(minYf, y)
		maxXf = math.Max(maxXf, x)
		maxYf = math.Max(maxYf, y)
	}
	return clampInt(int(math.Floor(minXf)), 0, s.W),
		clampInt(int(math.Floor(minYf)), 0, s.H),
		clampInt(int(math.Ceil(maxXf)), 0, s.W),
		clampInt(int(math.Ceil(maxYf)), 0, s.H)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (s *Surface) blendAt(px, py int, sr, sg, sb, sa float64) {
	dr, dg, db, da := readPixel(s.Img, px, py)
	r, g, b, a := compositePixel(s.cur.blend, dr, dg, db, da, sr, sg, sb, sa)
	writePixel(s.Img, px, py, r, g, b, a)
}

func readPixel(img *image.RGBA, x, y int) (r, g, b, a float64) {
	i := img.PixOffset(x, y)
	pa := float64(img.Pix[i+3]) / 255
	if pa == 0 {
		return 0, 0, 0, 0
	}
	return float64(img.Pix[i]) / 255 / pa, float64(img.Pix[i+1]) / 255 / pa, float64(img.Pix[i+2]) / 255 / pa, pa
}

func writePixel(img *image.RGBA, x, y int, r, g, b, a float64) {
	r, g, b, a = clamp01(r), clamp01(g), clamp01(b), clamp01(a)
	i := img.PixOffset(x, y)
	img.Pix[i] = uint8(r*a*255 + 0.5)
	img.Pix[i+1] = uint8(g*a*255 + 0.5)
	img.Pix[i+2] = uint8(b*a*255 + 0.5)
	img.Pix[i+3] = uint8(a*255 + 0.5)
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

func colorToStraightFloat(c color.Color) (r, g, b, a float64) {
	rr, gg, bb, aa := c.RGBA()
	if aa == 0 {
		return 0, 0, 0, 0
	}
	a = float64(aa) / 65535
	return float64(rr) / float64(aa), float64(gg) / float64(aa), float64(bb) / float64(aa), a
}
