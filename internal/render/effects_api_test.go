package render

import (
	"errors"
	"testing"

	"github.com/reelforge/compositor/internal/timeline"
)

type fakeProcessor struct {
	id      string
	kind    string
	err     error
	panics  bool
	replace *Surface
}

func (f *fakeProcessor) ID() string   { return f.id }
func (f *fakeProcessor) Kind() string { return f.kind }
func (f *fakeProcessor) Process(s *Surface, _ timeline.ExportSettings, _ float64) (*Surface, error) {
	if f.panics {
		panic("boom")
	}
	if f.err != nil {
		return nil, f.err
	}
	if f.replace != nil {
		return f.replace, nil
	}
	return s, nil
}

func TestRunEffectsPassesThroughOnError(t *testing.T) {
	s := NewSurface(1, 1)
	failing := &fakeProcessor{id: "p1", kind: "effect", err: errors.New("nope")}
	out, errs := RunEffects(s, []Processor{failing}, timeline.ExportSettings{}, 0)
	if out != s {
		t.Error("surface should pass through unchanged on processor error")
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(errs))
	}
}

func TestRunEffectsRecoversFromPanic(t *testing.T) {
	s := NewSurface(1, 1)
	panicking := &fakeProcessor{id: "p2", kind: "effect", panics: true}
	out, errs := RunEffects(s, []Processor{panicking}, timeline.ExportSettings{}, 0)
	if out != s {
		t.Error("surface should pass through unchanged after a panicking processor")
	}
	if len(errs) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(errs))
	}
}

func TestRunEffectsChainsReplacement(t *testing.T) {
	s := NewSurface(1, 1)
	replacement := NewSurface(2, 2)
	replacing := &fakeProcessor{id: "p3", kind: "effect", replace: replacement}
	out, errs := RunEffects(s, []Processor{replacing}, timeline.ExportSettings{}, 0)
	if len(errs) != 0 {
		t.Fatalf("expected no errors, got %v", errs)
	}
	if out != replacement {
		t.Error("expected the replaced surface to be returned")
	}
}

func TestRunEffectsContinuesAfterFailure(t *testing.T) {
	s := NewSurface(1, 1)
	failing := &fakeProcessor{id: "p1", kind: "effect", err: errors.New("nope")}
	replacement := NewSurface(3, 3)
	replacing := &fakeProcessor{id: "p2", kind: "effect", replace: replacement}

	out, errs := RunEffects(s, []Processor{failing, replacing}, timeline.ExportSettings{}, 0)
	if len(errs) != 1 {
		t.Fatalf("expected 1 recorded error, got %d", len(errs))
	}
	if out != replacement {
		t.Error("subsequent processor should still run and its replacement returned")
	}
}
