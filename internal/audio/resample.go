// Package audio implements the Audio Mixer (§4.10): per-element decode,
// resample, offset/trim placement, and accumulation into one planar
// float32 PCM buffer.
package audio

import "math"

// resampleLinear resamples a planar PCM buffer from srcRate to outRate
// using linear interpolation. No library in the retrieved corpus performs
// sample-rate conversion; linear interpolation is the standard minimal
// technique and keeps the mix deterministic given fixed inputs, which a
// higher-order resampler would not materially improve on for this
// contract.
func resampleLinear(src [][]float32, srcRate, outRate int) [][]float32 {
	if srcRate == outRate || srcRate <= 0 {
		return src
	}
	srcLen := 0
	if len(src) > 0 {
		srcLen = len(src[0])
	}
	duration := float64(srcLen) / float64(srcRate)
	outLen := int(math.Ceil(duration * float64(outRate)))

	out := make([][]float32, len(src))
	for c := range src {
		out[c] = make([]float32, outLen)
		for i := 0; i < outLen; i++ {
			srcPos := float64(i) * float64(srcRate) / float64(outRate)
			i0 := int(srcPos)
			frac := float32(srcPos - float64(i0))

			var s0, s1 float32
			if i0 < len(src[c]) {
				s0 = src[c][i0]
			}
			if i0+1 < len(src[c]) {
				s1 = src[c][i0+1]
			} else {
				s1 = s0
			}
			out[c][i] = s0 + frac*(s1-s0)
		}
	}
	return out
}
