package effects

import (
	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

// WipeDirection is the closed set of wipe axes §4.7 names.
type WipeDirection string

const (
	WipeHorizontal WipeDirection = "H"
	WipeVertical   WipeDirection = "V"
)

// Wipe progressively reveals the surface along Direction as
// Window.Progress advances from 0 to 1, zeroing the alpha of the
// not-yet-revealed region. It is a "transition".
type Wipe struct {
	EffectID  string
	Direction WipeDirection
	Window    Window
}

func (w *Wipe) ID() string   { return w.EffectID }
func (w *Wipe) Kind() string { return "transition" }

func (w *Wipe) Process(s *render.Surface, _ timeline.ExportSettings, t float64) (*render.Surface, error) {
	p := w.Window.Progress(t)

	var boundary int
	if w.Direction == WipeVertical {
		boundary = int(p * float64(s.H))
	} else {
		boundary = int(p * float64(s.W))
	}

	s.MapPixels(func(x, y int, r, g, b, a float64) (float64, float64, float64, float64) {
		pos := x
		if w.Direction == WipeVertical {
			pos = y
		}
		if pos >= boundary {
			return r, g, b, 0
		}
		return r, g, b, a
	})
	return s, nil
}
