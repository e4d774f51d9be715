package render

import "github.com/reelforge/compositor/internal/timeline"

// Processor is the Effect Pipeline contract (§4.7): a stable id and a
// process step that may replace the surface with a new one. Concrete
// processors live in render/effects and are wired in by the caller — this
// package only knows the interface, so effects can depend on Surface
// without creating an import cycle back into render.
type Processor interface {
	ID() string
	// Kind is "effect" (parameterized, time-independent) or "transition"
	// (duration- and progress-driven).
	Kind() string
	Process(s *Surface, settings timeline.ExportSettings, t float64) (*Surface, error)
}

// RunEffects runs every processor over s in order. A processor that
// panics or returns an error is skipped and the surface passes through
// unchanged (§4.7: "the processor is skipped and its error recorded; the
// surface passes through unchanged").
func RunEffects(s *Surface, processors []Processor, settings timeline.ExportSettings, t float64) (*Surface, []error) {
	var errsOut []error
	for _, p := range processors {
		s, errsOut = runOneEffect(s, p, settings, t, errsOut)
	}
	return s, errsOut
}

func runOneEffect(s *Surface, p Processor, settings timeline.ExportSettings, t float64, errsOut []error) (outSurface *Surface, outErrs []error) {
	outSurface, outErrs = s, errsOut
	defer func() {
		if r := recover(); r != nil {
			outSurface = s
			outErrs = append(outErrs, panicToErr(p.ID(), r))
		}
	}()
	next, err := p.Process(s, settings, t)
	if err != nil {
		outErrs = append(outErrs, err)
		return s, outErrs
	}
	return next, outErrs
}

func panicToErr(id string, r any) error {
	return &processorPanic{id: id, recovered: r}
}

type processorPanic struct {
	id        string
	recovered any
}

func (e *processorPanic) Error() string {
	return "effect processor " + e.id + " panicked"
}
