package render

import (
	"context"
	"sort"

	"github.com/reelforge/compositor/internal/cache"
	"github.com/reelforge/compositor/internal/logging"
	"github.com/reelforge/compositor/internal/timeline"
)

// Dependencies bundles everything the Frame Renderer needs beyond the
// model/settings/frame index it is handed per call.
type Dependencies struct {
	Cache   *cache.MediaCache
	Fonts   *FontProvider
	Effects []Processor
	Logger  *logging.Logger
}

type activeElement struct {
	trackIdx int
	elIdx    int
	isText   bool
	track    *timeline.Track
	el       timeline.Element
}

// collectActiveSet gathers every non-muted element whose ActiveFrameRange
// covers frame k (§4.2 step 2), already in ascending track/element order.
func collectActiveSet(model *timeline.Model, k int64) []activeElement {
	var out []activeElement
	for ti := range model.Tracks {
		tr := &model.Tracks[ti]
		if tr.Muted {
			continue
		}
		isText := tr.Kind == timeline.TrackKindText
		for ei, el := range tr.Elements {
			rng := el.Base().ActiveFrameRange
			if k >= rng[0] && k < rng[1] {
				out = append(out, activeElement{trackIdx: ti, elIdx: ei, isText: isText, track: tr, el: el})
			}
		}
	}
	sortActiveSet(out)
	return out
}

// sortActiveSet implements §4.2 step 3's render order: text-track elements
// strictly above non-text, then by track index, then stable by position.
func sortActiveSet(out []activeElement) {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].isText != out[j].isText {
			return !out[i].isText
		}
		if out[i].trackIdx != out[j].trackIdx {
			return out[i].trackIdx < out[j].trackIdx
		}
		return out[i].elIdx < out[j].elIdx
	})
}

// RenderFrame produces a fully composited surface for frame index k,
// following §4.2's per-frame algorithm. A per-element failure is logged
// and that element skipped; if composition itself panics, the surface is
// reset to a plain background fill so every frame index still gets
// emitted (§4.2 failure policy).
func RenderFrame(ctx context.Context, model *timeline.Model, settings timeline.ExportSettings, k int64, deps Dependencies) *Surface {
	w, h := settings.EffectiveSize()
	surface := NewSurface(w, h)
	surface.Clear(settings.BackgroundColor)

	func() {
		defer func() {
			if r := recover(); r != nil {
				surface.Clear(settings.BackgroundColor)
				if deps.Logger != nil {
					deps.Logger.Errorf("frame %d composition panicked, substituting background fill: %v", k, r)
				}
			}
		}()
		renderActiveSet(ctx, surface, model, settings, k, deps)
	}()

	tk := float64(k) / settings.FPS
	surface, effectErrs := RunEffects(surface, deps.Effects, settings, tk)
	if deps.Logger != nil {
		for _, e := range effectErrs {
			deps.Logger.Warnf("frame %d effect error: %v", k, e)
		}
	}
	return surface
}

func renderActiveSet(ctx context.Context, surface *Surface, model *timeline.Model, settings timeline.ExportSettings, k int64, deps Dependencies) {
	canvasW, canvasH := settings.Width, settings.Height
	r := settings.ResolutionMultiplier

	for _, ae := range collectActiveSet(model, k) {
		renderOneElement(ctx, surface, ae, canvasW, canvasH, r, settings, k, deps)
	}
}

func renderOneElement(ctx context.Context, surface *Surface, ae activeElement, canvasW, canvasH int, r float64, settings timeline.ExportSettings, k int64, deps Dependencies) {
	defer func() {
		if rec := recover(); rec != nil && deps.Logger != nil {
			deps.Logger.Warnf("frame %d element %s panicked, skipping: %v", k, ae.el.Base().ID, rec)
		}
	}()

	base := ae.el.Base()
	surface.Save()
	defer surface.Restore()

	surface.SetAlpha(base.Opacity)
	surface.SetBlend(base.Blend)
	surface.Scale(r, r)

	var err error
	switch v := ae.el.(type) {
	case *timeline.MediaElement:
		err = RenderMedia(ctx, surface, v, deps.Cache, canvasW, canvasH, k, settings.FPS)
	case *timeline.TextElement:
		RenderText(surface, v, canvasW, canvasH, deps.Fonts)
	case *timeline.OverlayElement:
		RenderOverlay(ctx, surface, v, deps.Cache)
	case *timeline.SubtitleElement:
		RenderSubtitle(surface, v, canvasW, canvasH, deps.Fonts)
	}

	if err != nil && deps.Logger != nil {
		deps.Logger.Warnf("frame %d element %s failed, skipping: %v", k, base.ID, err)
	}
}
