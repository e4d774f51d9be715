package timeline

import (
	"testing"

	"github.com/reelforge/compositor/internal/errs"
)

type stubResolver map[string]bool

func (s stubResolver) Resolves(mediaID string) bool { return s[mediaID] }

func validSettings() ExportSettings {
	return ExportSettings{
		Width: 1920, Height: 1080, FPS: 30,
		AudioSampleRate: 48000, ResolutionMultiplier: 1,
	}
}

func TestValidateRejectsEmptyTimeline(t *testing.T) {
	m := &Model{}
	_, err := Validate(m, validSettings(), stubResolver{})
	if err == nil {
		t.Fatal("expected validation error for empty timeline")
	}
	var ve *errs.ValidationError
	if !asValidationError(err, &ve) {
		t.Fatalf("expected *errs.ValidationError, got %T", err)
	}
}

func TestValidateRejectsUnresolvedMedia(t *testing.T) {
	m := &Model{Tracks: []Track{{Elements: []Element{
		&MediaElement{BaseFields: DefaultBase("a", 0, 2, 0, 0), MediaID: "missing", Source: ByteSource{FilePath: "x.mp4"}},
	}}}}
	_, err := Validate(m, validSettings(), stubResolver{})
	if err == nil {
		t.Fatal("expected validation error for unresolved media id")
	}
}

func TestValidateAcceptsAndAnnotatesFrameRanges(t *testing.T) {
	m := &Model{Tracks: []Track{{Elements: []Element{
		&MediaElement{BaseFields: DefaultBase("a", 1.0, 2.0, 0, 0), MediaID: "m1", Source: ByteSource{FilePath: "x.mp4"}},
	}}}}
	settings := validSettings()
	got, err := Validate(m, settings, stubResolver{"m1": true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	rng := got.Tracks[0].Elements[0].Base().ActiveFrameRange
	// active interval [1.0, 3.0) at 30fps -> [30, 90)
	if rng != [2]int64{30, 90} {
		t.Errorf("ActiveFrameRange = %v, want [30 90]", rng)
	}
	if got.Duration != 3.0 {
		t.Errorf("Duration = %v, want 3.0", got.Duration)
	}
}

func TestValidateRejectsBadTrim(t *testing.T) {
	m := &Model{Tracks: []Track{{Elements: []Element{
		&MediaElement{BaseFields: DefaultBase("a", 0, 2.0, 1.0, 1.0), MediaID: "m1", Source: ByteSource{FilePath: "x.mp4"}},
	}}}}
	_, err := Validate(m, validSettings(), stubResolver{"m1": true})
	if err == nil {
		t.Fatal("expected error: trimStart+trimEnd >= duration")
	}
}

func TestValidateRejectsUnsupportedCanvasAndSampleRate(t *testing.T) {
	m := &Model{Tracks: []Track{{Elements: []Element{
		&MediaElement{BaseFields: DefaultBase("a", 0, 1, 0, 0), MediaID: "m1", Source: ByteSource{FilePath: "x.mp4"}},
	}}}}
	settings := validSettings()
	settings.Width = 10
	settings.AudioSampleRate = 12345
	_, err := Validate(m, settings, stubResolver{"m1": true})
	ve, ok := err.(*errs.ValidationError)
	if !ok {
		t.Fatalf("expected *errs.ValidationError, got %T", err)
	}
	if len(ve.Offenses) < 2 {
		t.Errorf("expected at least 2 offenses (canvas + sample rate), got %d: %v", len(ve.Offenses), ve.Offenses)
	}
}

func asValidationError(err error, target **errs.ValidationError) bool {
	ve, ok := err.(*errs.ValidationError)
	if !ok {
		return false
	}
	*target = ve
	return true
}
