package progress

import (
	"sync"
	"testing"
	"time"
)

func TestDebouncedCoalescesBurstToMostRecentEvent(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	d := NewDebounced(20*time.Millisecond, func(ev Event) {
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	})

	for i := int64(0); i < 5; i++ {
		d.Feed(Event{Stage: StageProcessing, CurrentFrame: i})
	}

	time.Sleep(60 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 1 {
		t.Fatalf("expected exactly one coalesced delivery, got %d: %+v", len(received), received)
	}
	if received[0].CurrentFrame != 4 {
		t.Errorf("coalesced delivery should carry the most recent event, got frame %d, want 4", received[0].CurrentFrame)
	}
}

func TestDebouncedDeliversSeparateBurstsSeparately(t *testing.T) {
	var mu sync.Mutex
	var received []Event

	d := NewDebounced(10*time.Millisecond, func(ev Event) {
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	})

	d.Feed(Event{Stage: StageProcessing, CurrentFrame: 1})
	time.Sleep(30 * time.Millisecond)
	d.Feed(Event{Stage: StageProcessing, CurrentFrame: 2})
	time.Sleep(30 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(received) != 2 {
		t.Fatalf("expected two separate deliveries, got %d: %+v", len(received), received)
	}
}
