package render

import "github.com/reelforge/compositor/internal/timeline"

// blendChannel combines one straight-alpha [0,1] source/destination channel
// pair under the given blend mode, before alpha compositing.
func blendChannel(mode timeline.BlendMode, dst, src float64) float64 {
	switch mode {
	case timeline.BlendMultiply:
		return dst * src
	case timeline.BlendScreen:
		return 1 - (1-dst)*(1-src)
	case timeline.BlendOverlay:
		if dst <= 0.5 {
			return 2 * dst * src
		}
		return 1 - 2*(1-dst)*(1-src)
	default: // source-over: no per-channel blend, caller uses src directly
		return src
	}
}

// compositePixel alpha-composites a straight-alpha source color onto a
// straight-alpha destination color, applying mode to the color channels
// first (for non-source-over modes) and always using the source's alpha
// for the Porter-Duff "over" step (§4.2 step 4: blend mode + opacity are
// applied together, per element).
func compositePixel(mode timeline.BlendMode, dstR, dstG, dstB, dstA, srcR, srcG, srcB, srcA float64) (r, g, b, a float64) {
	if srcA <= 0 {
		return dstR, dstG, dstB, dstA
	}

	br := blendChannel(mode, dstR, srcR)
	bg := blendChannel(mode, dstG, srcG)
	bb := blendChannel(mode, dstB, srcB)

	outA := srcA + dstA*(1-srcA)
	if outA <= 0 {
		return 0, 0, 0, 0
	}
	r = (br*srcA + dstR*dstA*(1-srcA)) / outA
	g = (bg*srcA + dstG*dstA*(1-srcA)) / outA
	b = (bb*srcA + dstB*dstA*(1-srcA)) / outA
	return r, g, b, outA
}
