package render

import (
	"testing"

	"github.com/reelforge/compositor/internal/timeline"
)

func TestCompositeOpaqueSourceOverReplacesDest(t *testing.T) {
	r, g, b, a := compositePixel(timeline.BlendSourceOver, 1, 0, 0, 1, 0, 1, 0, 1)
	if !almostEqual(r, 0) || !almostEqual(g, 1) || !almostEqual(b, 0) || !almostEqual(a, 1) {
		t.Errorf("opaque over = (%v,%v,%v,%v), want (0,1,0,1)", r, g, b, a)
	}
}

func TestCompositeZeroAlphaSourceIsNoOp(t *testing.T) {
	r, g, b, a := compositePixel(timeline.BlendSourceOver, 0.2, 0.3, 0.4, 0.5, 1, 1, 1, 0)
	if r != 0.2 || g != 0.3 || b != 0.4 || a != 0.5 {
		t.Errorf("got (%v,%v,%v,%v), want dest unchanged", r, g, b, a)
	}
}

func TestBlendChannelMultiply(t *testing.T) {
	if got := blendChannel(timeline.BlendMultiply, 0.5, 0.5); !almostEqual(got, 0.25) {
		t.Errorf("multiply(0.5,0.5) = %v, want 0.25", got)
	}
}

func TestBlendChannelScreen(t *testing.T) {
	if got := blendChannel(timeline.BlendScreen, 0.5, 0.5); !almostEqual(got, 0.75) {
		t.Errorf("screen(0.5,0.5) = %v, want 0.75", got)
	}
}

func TestCompositeOntoTransparentDestIsJustSource(t *testing.T) {
	r, g, b, a := compositePixel(timeline.BlendSourceOver, 0, 0, 0, 0, 0.4, 0.5, 0.6, 0.5)
	if !almostEqual(r, 0.4) || !almostEqual(g, 0.5) || !almostEqual(b, 0.6) || !almostEqual(a, 0.5) {
		t.Errorf("got (%v,%v,%v,%v), want source unchanged onto transparent dest", r, g, b, a)
	}
}
