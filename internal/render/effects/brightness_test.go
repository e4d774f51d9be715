package effects

import (
	"image/color"
	"math"
	"testing"

	"github.com/reelforge/compositor/internal/render"
	"github.com/reelforge/compositor/internal/timeline"
)

func quantized(a, b float64) bool { return math.Abs(a-b) < 0.01 }

func TestBrightnessScalesAndClamps(t *testing.T) {
	s := render.NewSurface(1, 1)
	s.Clear(color.RGBA{R: 200, G: 100, B: 50, A: 255})

	b := &Brightness{EffectID: "b1", Factor: 2.0}
	if b.ID() != "b1" || b.Kind() != "effect" {
		t.Fatalf("ID/Kind mismatch: %q %q", b.ID(), b.Kind())
	}

	out, err := b.Process(s, timeline.ExportSettings{}, 0)
	if err != nil {
		t.Fatalf("Process returned error: %v", err)
	}
	r, g, bl, _ := out.At(0, 0)
	if !quantized(r, 1) { // 200/255*2 clamps to 1
		t.Errorf("r = %v, want clamped to 1", r)
	}
	wantG := (100.0 / 255) * 2
	if !quantized(g, wantG) {
		t.Errorf("g = %v, want ~%v", g, wantG)
	}
	_ = bl
}
