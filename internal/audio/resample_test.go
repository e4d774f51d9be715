package audio

import (
	"math"
	"testing"
)

func TestResampleLinearSameRateIsNoOp(t *testing.T) {
	src := [][]float32{{1, 2, 3}}
	out := resampleLinear(src, 44100, 44100)
	if len(out) != 1 || len(out[0]) != 3 {
		t.Fatalf("expected unchanged buffer, got %v", out)
	}
}

func TestResampleLinearUpsampleDoublesLength(t *testing.T) {
	src := [][]float32{{0, 1, 0, -1}}
	out := resampleLinear(src, 10, 20)
	wantLen := 8
	if len(out[0]) != wantLen {
		t.Fatalf("len(out[0]) = %d, want %d", len(out[0]), wantLen)
	}
	// The first sample should line up with the source's first sample.
	if math.Abs(float64(out[0][0])) > 1e-6 {
		t.Errorf("out[0][0] = %v, want ~0", out[0][0])
	}
}

func TestResampleLinearDownsampleHalvesLength(t *testing.T) {
	src := [][]float32{{0, 0.5, 1, 0.5, 0, -0.5, -1, -0.5}}
	out := resampleLinear(src, 20, 10)
	if len(out[0]) != 4 {
		t.Fatalf("len(out[0]) = %d, want 4", len(out[0]))
	}
}

func TestResampleLinearInterpolatesMidpoint(t *testing.T) {
	src := [][]float32{{0, 10}}
	// outRate = 2x srcRate -> an extra sample exactly halfway between 0 and 10.
	out := resampleLinear(src, 1, 2)
	if len(out[0]) < 2 {
		t.Fatalf("out too short: %v", out[0])
	}
	if math.Abs(float64(out[0][1])-5) > 1e-3 {
		t.Errorf("out[0][1] = %v, want ~5", out[0][1])
	}
}

func TestResampleLinearPreservesChannelCount(t *testing.T) {
	src := [][]float32{{0, 1, 0}, {1, 0, 1}}
	out := resampleLinear(src, 10, 15)
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
}
