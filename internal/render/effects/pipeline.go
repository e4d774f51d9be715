// Package effects implements the Effect Pipeline's closed built-in
// processor set (§4.7): blur, brightness, color filter, fade, slide, and
// wipe. Every processor satisfies render.Processor by operating on a
// *render.Surface; this package depends on render for that type, so
// render itself never imports effects (ID/Kind/Process is the whole
// contract, wired together by the caller that assembles a Pipeline).
package effects

import "github.com/reelforge/compositor/internal/render"

// Pipeline is an ordered, named list of processors. Reorder/Add/Remove are
// plain slice operations, not synchronized — per §4.7, "callers must
// quiesce the driver before mutating."
type Pipeline struct {
	processors []render.Processor
}

func NewPipeline() *Pipeline { return &Pipeline{} }

func (p *Pipeline) Add(proc render.Processor) { p.processors = append(p.processors, proc) }

func (p *Pipeline) Remove(id string) bool {
	for i, proc := range p.processors {
		if proc.ID() == id {
			p.processors = append(p.processors[:i], p.processors[i+1:]...)
			return true
		}
	}
	return false
}

// Reorder moves the processor with the given id to newIndex, shifting
// everything between. A no-op if id is not found or newIndex is out of
// range.
func (p *Pipeline) Reorder(id string, newIndex int) bool {
	idx := -1
	for i, proc := range p.processors {
		if proc.ID() == id {
			idx = i
			break
		}
	}
	if idx == -1 || newIndex < 0 || newIndex >= len(p.processors) {
		return false
	}
	proc := p.processors[idx]
	p.processors = append(p.processors[:idx], p.processors[idx+1:]...)
	p.processors = append(p.processors[:newIndex], append([]render.Processor{proc}, p.processors[newIndex:]...)...)
	return true
}

// List returns the pipeline's processors in run order, for handing to
// render.RunEffects.
func (p *Pipeline) List() []render.Processor {
	out := make([]render.Processor, len(p.processors))
	copy(out, p.processors)
	return out
}
