package render

import "github.com/reelforge/compositor/internal/timeline"

const subtitleBackgroundPadding = 8

// RenderSubtitle draws a SubtitleElement per §4.6: like text, but the
// position comes from a preset or custom coordinates, and a present
// background gets 8px of padding around the glyph box. Like RenderText,
// the anchor is vertically centered on the box.
func RenderSubtitle(s *Surface, el *timeline.SubtitleElement, canvasW, canvasH int, fonts *FontProvider) {
	padding := 0.0
	if el.Background != nil {
		padding = subtitleBackgroundPadding
	}

	img, w, h := buildTextBox(fonts, textBoxParams{
		Content:    el.Content,
		FontFamily: el.FontFamily,
		FontSize:   el.FontSize,
		Color:      el.Color,
		Background: el.Background,
		Padding:    padding,
	})

	cx, cy := el.ResolvePosition(canvasW, canvasH)
	x := float64(canvasW)/2 + cx
	y := float64(canvasH)/2 + cy - h/2

	switch el.Align {
	case timeline.TextAlignCenter:
		x -= w / 2
	case timeline.TextAlignRight:
		x -= w
	}

	s.Save()
	s.Translate(x, y)
	s.DrawImage(img, w, h)
	s.Restore()
}
