package audio

import (
	"context"
	"math"

	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/logging"
	"github.com/reelforge/compositor/internal/timeline"
)

// Mixer produces the single planar float32 PCM buffer the audio encoder
// consumes, per §4.10.
type Mixer struct {
	cache *cache.MediaCache
}

func NewMixer(mediaCache *cache.MediaCache) *Mixer {
	return &Mixer{cache: mediaCache}
}

// Mix walks every non-muted audio-bearing element and accumulates it into
// an output buffer of length ceil(duration * sampleRate), one slice per
// output channel. A single element's decode failure is logged and that
// element skipped; the mix still completes so one bad clip never aborts
// the whole export.
func (m *Mixer) Mix(ctx context.Context, model *timeline.Model, settings timeline.ExportSettings, logger *logging.Logger) [][]float32 {
	outRate := settings.AudioSampleRate
	outCh := settings.AudioChannels
	outLen := int(math.Ceil(model.Duration * float64(outRate)))

	out := make([][]float32, outCh)
	for c := range out {
		out[c] = make([]float32, outLen)
	}

	for _, tr := range model.Tracks {
		if tr.Muted {
			continue
		}
		for _, el := range tr.Elements {
			me, ok := el.(*timeline.MediaElement)
			if !ok {
				continue
			}
			if me.MediaKind != timeline.MediaKindAudio && me.MediaKind != timeline.MediaKindVideo {
				continue
			}
			if err := m.mixElement(ctx, out, outRate, outCh, me); err != nil && logger != nil {
				logger.Warnf("audio mix: skipping element %s (media %s): %v", me.BaseFields.ID, me.MediaID, err)
			}
		}
	}

	return out
}

func (m *Mixer) mixElement(ctx context.Context, out [][]float32, outRate, outCh int, me *timeline.MediaElement) error {
	pcm, err := m.cache.GetAudioPCM(ctx, me.MediaID, me.Source)
	if err != nil {
		return err
	}

	resampled := pcm.Samples
	if pcm.SampleRate != outRate {
		resampled = resampleLinear(pcm.Samples, pcm.SampleRate, outRate)
	}
	if len(resampled) == 0 {
		return nil
	}

	base := me.BaseFields
	offset := int(math.Floor(base.StartTime * float64(outRate)))
	trimStartS := int(math.Floor(base.TrimStart * float64(outRate)))
	trimEndS := int(math.Floor(base.TrimEnd * float64(outRate)))

	srcLen := len(resampled[0])
	effectiveLen := srcLen - trimStartS - trimEndS
	if effectiveLen <= 0 {
		return nil
	}

	maxCh := len(resampled)
	if outCh < maxCh {
		maxCh = outCh
	}

	for c := 0; c < maxCh; c++ {
		for i := 0; i < effectiveLen; i++ {
			oi := offset + i
			if oi < 0 || oi >= len(out[c]) {
				continue
			}
			si := trimStartS + i
			if si < 0 || si >= len(resampled[c]) {
				continue
			}
			out[c][oi] = clampSample(out[c][oi] + resampled[c][si])
		}
	}
	return nil
}

func clampSample(v float32) float32 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}
