package render

import "github.com/reelforge/compositor/internal/timeline"

// RenderText draws a TextElement per §4.4: raster position is
// (W/2+x, H/2+y) in canvas-space (the caller's transform already applies
// the resolution multiplier), horizontally justified by TextAlign and
// vertically centered on the anchor to match the source's
// textBaseline='middle'.
func RenderText(s *Surface, el *timeline.TextElement, canvasW, canvasH int, fonts *FontProvider) {
	img, w, h := buildTextBox(fonts, textBoxParams{
		Content:    el.Content,
		FontFamily: el.FontFamily,
		FontSize:   el.FontSize,
		Color:      el.Color,
		Background: el.Background,
		Decoration: el.Decoration,
	})

	x := float64(canvasW)/2 + el.X
	y := float64(canvasH)/2 + el.Y - h/2

	switch el.TextAlign {
	case timeline.TextAlignCenter:
		x -= w / 2
	case timeline.TextAlignRight:
		x -= w
	}

	s.Save()
	s.Translate(x, y)
	if el.RotationDegrees != 0 {
		s.RotateDegrees(el.RotationDegrees)
	}
	s.DrawImage(img, w, h)
	s.Restore()
}
