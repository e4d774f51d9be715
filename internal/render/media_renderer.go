package render

import (
	"context"

	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/errs"
	"github.com/reelforge/compositor/internal/timeline"
)

// RenderMedia draws a MediaElement onto the canvas-filling rect
// (0, 0, canvasW, canvasH); the resolution multiplier is applied once, by
// the Frame Renderer's shared per-element Scale(r) (§4.2 step 4), so this
// rect is in nominal canvas units and always ends up covering the
// effective surface exactly as §4.3 specifies.
func RenderMedia(ctx context.Context, s *Surface, el *timeline.MediaElement, mediaCache *cache.MediaCache, canvasW, canvasH int, frameIdx int64, fpsOut float64) error {
	switch el.MediaKind {
	case timeline.MediaKindImage:
		img, err := mediaCache.GetImage(ctx, el.MediaID, el.Source)
		if err != nil {
			return err
		}
		s.Save()
		s.DrawImage(img, float64(canvasW), float64(canvasH))
		s.Restore()
		return nil

	case timeline.MediaKindVideo:
		dec, err := mediaCache.GetVideoDecoder(ctx, el.MediaID, el.Source, fpsOut)
		if err != nil {
			return err
		}
		tau := el.BaseFields.LocalTime(float64(frameIdx) / fpsOut)
		frame, err := dec.FrameAt(ctx, frameIdx, tau)
		if err != nil {
			var seekErr *errs.SeekTimeoutError
			if asSeekTimeout(err, &seekErr) {
				return seekErr
			}
			return err
		}
		s.Save()
		s.DrawImage(frame, float64(canvasW), float64(canvasH))
		s.Restore()
		return nil

	case timeline.MediaKindAudio:
		// Audio-only media elements contribute no pixels; the Audio Mixer
		// (§4.10) reads them independently of the frame loop.
		return nil

	default:
		return nil
	}
}

func asSeekTimeout(err error, target **errs.SeekTimeoutError) bool {
	if e, ok := err.(*errs.SeekTimeoutError); ok {
		*target = e
		return true
	}
	return false
}
