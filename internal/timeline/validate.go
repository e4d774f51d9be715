package timeline

import (
	"fmt"
	"math"

	"github.com/reelforge/compositor/internal/errs"
)

// MediaResolver answers whether a media id resolves to a concrete byte
// source. The adapter populates this before validation; the validator does
// not fetch anything itself.
type MediaResolver interface {
	Resolves(mediaID string) bool
}

// Validate checks a Model against an ExportSettings record and, on success,
// returns the same model with every element's derived ActiveFrameRange
// filled in (§3.1). It never mutates the model on failure, and it collects
// every offense rather than stopping at the first one, per §4.1.
func Validate(model *Model, settings ExportSettings, media MediaResolver) (*Model, error) {
	var offenses []string

	if len(model.Tracks) == 0 {
		offenses = append(offenses, "timeline has no tracks")
	}

	w, h := settings.Width, settings.Height
	if w < 64 || w > 7680 || h < 64 || h > 4320 {
		offenses = append(offenses, fmt.Sprintf("canvas %dx%d outside supported range 64..7680 x 64..4320", w, h))
	}
	if !SupportedSampleRates[settings.AudioSampleRate] {
		offenses = append(offenses, fmt.Sprintf("unsupported audio sample rate %d", settings.AudioSampleRate))
	}
	if settings.FPS < 1 || settings.FPS > 120 {
		offenses = append(offenses, fmt.Sprintf("fps %.3g outside supported range 1..120", settings.FPS))
	}
	if settings.ResolutionMultiplier < 0.25 || settings.ResolutionMultiplier > 4 {
		offenses = append(offenses, fmt.Sprintf("resolution multiplier %.3g outside supported range 0.25..4", settings.ResolutionMultiplier))
	}

	for ti, tr := range model.Tracks {
		for ei, el := range tr.Elements {
			base := el.Base()
			loc := fmt.Sprintf("track %d (%s) element %d (%s)", ti, tr.Name, ei, base.ID)

			if base.StartTime < 0 || base.Duration < 0 || base.TrimStart < 0 || base.TrimEnd < 0 {
				offenses = append(offenses, loc+": negative time field")
				continue
			}
			if base.TrimStart+base.TrimEnd >= base.Duration {
				offenses = append(offenses, loc+": trimStart+trimEnd >= duration")
				continue
			}
			_, end := base.ActiveInterval()
			if end-base.StartTime <= 0 {
				offenses = append(offenses, loc+": active interval has zero or negative length")
				continue
			}

			if me, ok := el.(*MediaElement); ok {
				if me.MediaID == "" || me.Source.IsZero() {
					offenses = append(offenses, loc+": media element missing media id or byte source")
				} else if media != nil && !media.Resolves(me.MediaID) {
					offenses = append(offenses, loc+fmt.Sprintf(": media id %q does not resolve to a byte source", me.MediaID))
				}
			}
		}
	}

	computedDuration := model.ComputeDuration()
	if computedDuration <= 0 {
		offenses = append(offenses, "total timeline duration must be > 0")
	}

	if len(offenses) > 0 {
		return nil, &errs.ValidationError{Offenses: offenses}
	}

	model.Duration = computedDuration
	annotateFrameRanges(model, settings.FPS)
	return model, nil
}

// annotateFrameRanges derives each element's [k0, k1) output-frame range
// from its active time interval: frame k is in range iff start <= k/fps <
// end, i.e. k0 = ceil(start*fps) and k1 = ceil(end*fps), each taken with an
// epsilon against float drift. The frame-snapping discipline mirrors the
// teacher's epsilon-guarded edit-instruction math generalized to output
// frame units (§3.1 of the expanded spec).
func annotateFrameRanges(model *Model, fps float64) {
	const epsilon = 1e-9
	for ti := range model.Tracks {
		for ei := range model.Tracks[ti].Elements {
			base := model.Tracks[ti].Elements[ei].Base()
			start, end := base.ActiveInterval()
			k0 := int64(math.Ceil(start*fps - epsilon))
			k1 := int64(math.Ceil(end*fps - epsilon))
			if k1 < k0 {
				k1 = k0
			}
			base.ActiveFrameRange = [2]int64{k0, k1}
		}
	}
}
