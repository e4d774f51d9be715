package render

import (
	"context"
	"image/color"
	"strings"

	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/timeline"
)

func overlayByteSource(source string) timeline.ByteSource {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		return timeline.ByteSource{URL: source}
	}
	return timeline.ByteSource{FilePath: source}
}

var overlayFallbackGrey = color.RGBA{R: 128, G: 128, B: 128, A: 255}

// RenderOverlay draws an OverlayElement per §4.5: centered on (x, y),
// rotated by rotation. Shapes fill a rect in the given color; images are
// loaded through the shared media cache (keyed by their source string,
// since overlays are not tied to a timeline media id) and fall back to a
// neutral grey rectangle on failure; patterns are generated deterministically.
func RenderOverlay(ctx context.Context, s *Surface, el *timeline.OverlayElement, mediaCache *cache.MediaCache) {
	s.Save()
	defer s.Restore()

	s.Translate(el.X, el.Y)
	if el.RotationDegrees != 0 {
		s.RotateDegrees(el.RotationDegrees)
	}
	// Draw centered on (x, y): shift by half the element's own box.
	s.Translate(-el.Width/2, -el.Height/2)

	switch el.OverlayKind {
	case timeline.OverlayKindShape:
		c, ok := timeline.ParseHexColor(el.Source)
		if !ok {
			c = overlayFallbackGrey
		}
		s.FillRect(el.Width, el.Height, c)

	case timeline.OverlayKindImage:
		img, err := mediaCache.GetImage(ctx, "overlay:"+el.Source, overlayByteSource(el.Source))
		if err != nil {
			s.FillRect(el.Width, el.Height, overlayFallbackGrey)
			return
		}
		s.DrawImage(img, el.Width, el.Height)

	case timeline.OverlayKindPattern:
		w, h := int(el.Width), int(el.Height)
		if w <= 0 || h <= 0 {
			return
		}
		colorSrc := el.Source
		if i := strings.IndexByte(colorSrc, ':'); i >= 0 {
			colorSrc = colorSrc[i+1:]
		}
		fg, ok := timeline.ParseHexColor(colorSrc)
		if !ok {
			fg = color.RGBA{A: 255}
		}
		img := renderPattern(string(patternKindFromSource(el)), w, h, fg)
		s.DrawImage(img, el.Width, el.Height)
	}
}

// patternKindFromSource maps the overlay's Source field to a pattern kind
// when it names one directly (e.g. "dots:#ff0000"); callers that only want
// a color on a named pattern put the pattern name ahead of the color,
// separated by a colon.
func patternKindFromSource(el *timeline.OverlayElement) timeline.PatternName {
	for _, name := range []timeline.PatternName{
		timeline.PatternDots, timeline.PatternStripes, timeline.PatternCheckerboard, timeline.PatternSolid,
	} {
		if len(el.Source) >= len(name) && el.Source[:len(name)] == string(name) {
			return name
		}
	}
	return timeline.PatternSolid
}
