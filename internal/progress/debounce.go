package progress

import (
	"sync"
	"time"

	"github.com/bep/debounce"
)

// Debounced wraps an Event sink (typically a WSPublisher.Send) so a burst
// of events arriving faster than window coalesces into a single delivery
// of the most recent event. This protects a slow external consumer (e.g.
// a browser tab re-rendering a progress bar) from being flooded faster
// than it can redraw, without touching the bus's own fire-and-forget
// delivery to other subscribers (§5.1 of the expanded spec).
//
// It wraps github.com/bep/debounce, the same debouncing library the
// desktop app carried (indirectly, via its UI layer) for coalescing
// rapid-fire events; here it is fed the trailing Event explicitly rather
// than a bare func(), since the decorated sink needs the most recent
// value, not just a tick.
type Debounced struct {
	mu      sync.Mutex
	pending Event
	trigger func(func())
	sink    func(Event)
}

// NewDebounced returns a Debounced that forwards to sink at most once per
// window, always with the most recently fed Event.
func NewDebounced(window time.Duration, sink func(Event)) *Debounced {
	return &Debounced{
		trigger: debounce.New(window),
		sink:    sink,
	}
}

// Feed records ev as the pending value and schedules a trailing delivery
// to sink within window, coalescing with any delivery already scheduled.
func (d *Debounced) Feed(ev Event) {
	d.mu.Lock()
	d.pending = ev
	d.mu.Unlock()

	d.trigger(func() {
		d.mu.Lock()
		ev := d.pending
		d.mu.Unlock()
		d.sink(ev)
	})
}
