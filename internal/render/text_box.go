package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/rivo/uniseg"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// textBoxParams is the shared input to both the text and subtitle
// renderers (§4.4, §4.6): they differ only in position resolution, not in
// how the glyph box itself is built.
type textBoxParams struct {
	Content    string
	FontFamily string
	FontSize   float64
	Color      color.RGBA
	Background *color.RGBA
	Decoration string // "", "underline", "line-through"
	Padding    float64
}

// measureRunWidth walks content by grapheme cluster (uniseg) and sums the
// glyph advance of every rune in each cluster, so a multi-rune cluster
// (accents, emoji) contributes the advances of all its runes, as
// font.Drawer.DrawString does when it draws them. Kerning is not included.
func measureRunWidth(face font.Face, content string) float64 {
	var width fixed.Int26_6
	gr := uniseg.NewGraphemes(content)
	for gr.Next() {
		for _, r := range gr.Runes() {
			if adv, ok := face.GlyphAdvance(r); ok {
				width += adv
			}
		}
	}
	return float64(width) / 64
}

// buildTextBox rasterizes the styled text (plus optional background fill
// and decoration stroke) into its own tightly-fitting RGBA image, which
// the caller then draws onto the Surface through the active transform.
func buildTextBox(fonts *FontProvider, p textBoxParams) (img *image.RGBA, w, h float64) {
	face := fonts.Face(p.FontFamily, p.FontSize)
	metrics := face.Metrics()
	ascent := float64(metrics.Ascent) / 64
	descent := float64(metrics.Descent) / 64
	lineHeight := ascent + descent
	if lineHeight <= 0 {
		lineHeight = p.FontSize * 1.2
	}

	textW := measureRunWidth(face, p.Content)
	if textW <= 0 {
		textW = 1
	}

	pad := p.Padding
	w = textW + 2*pad
	h = lineHeight + 2*pad

	img = image.NewRGBA(image.Rect(0, 0, int(math.Ceil(w)), int(math.Ceil(h))))
	if p.Background != nil {
		draw.Draw(img, img.Bounds(), image.NewUniform(*p.Background), image.Point{}, draw.Src)
	}

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(p.Color),
		Face: face,
		Dot:  fixed.P(int(pad), int(pad+ascent)),
	}
	drawer.DrawString(p.Content)

	switch p.Decoration {
	case "underline":
		strokeHorizontalLine(img, int(pad+ascent+descent*0.3), int(pad), int(pad+textW), p.FontSize, p.Color)
	case "line-through":
		strokeHorizontalLine(img, int(pad+ascent*0.6), int(pad), int(pad+textW), p.FontSize, p.Color)
	}

	return img, w, h
}

// strokeHorizontalLine draws a filled horizontal bar whose thickness scales
// with font size, per §4.4: "width scales with font size (max(1,
// fontSize/20))".
func strokeHorizontalLine(img *image.RGBA, y, x0, x1 int, fontSize float64, c color.RGBA) {
	thickness := int(math.Max(1, fontSize/20))
	rect := image.Rect(x0, y, x1, y+thickness).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(img, rect, image.NewUniform(c), image.Point{}, draw.Over)
}
