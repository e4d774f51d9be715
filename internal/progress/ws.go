package progress

import (
	"context"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WSPublisher serializes Event values to a single websocket connection.
// gorilla/websocket connections are not safe for concurrent writes, hence
// the mutex.
type WSPublisher struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

func NewWSPublisher(conn *websocket.Conn) *WSPublisher {
	return &WSPublisher{conn: conn}
}

func (w *WSPublisher) Send(ev Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.conn.WriteJSON(ev)
}

// Attach subscribes to bus and forwards every event over conn until ctx
// is cancelled or the bus closes the subscription. A write failure ends
// the attachment (the remote consumer is gone); it never blocks or
// panics the driver that is publishing.
func Attach(ctx context.Context, bus *Bus, conn *websocket.Conn) {
	id, ch := bus.Subscribe(32)
	defer bus.Unsubscribe(id)
	pub := NewWSPublisher(conn)

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			if err := pub.Send(ev); err != nil {
				return
			}
		}
	}
}

// AttachDebounced behaves like Attach but routes delivery through a
// Debounced, so a slow websocket client receives at most one event per
// window regardless of how fast the driver publishes (§5.1). Terminal
// events still arrive, just possibly coalesced with whatever processing
// event immediately preceded them.
func AttachDebounced(ctx context.Context, bus *Bus, conn *websocket.Conn, window time.Duration) {
	id, ch := bus.Subscribe(32)
	defer bus.Unsubscribe(id)
	pub := NewWSPublisher(conn)

	failed := make(chan struct{}, 1)
	deb := NewDebounced(window, func(ev Event) {
		if err := pub.Send(ev); err != nil {
			select {
			case failed <- struct{}{}:
			default:
			}
		}
	})

	for {
		select {
		case <-ctx.Done():
			return
		case <-failed:
			return
		case ev, ok := <-ch:
			if !ok {
				return
			}
			deb.Feed(ev)
		}
	}
}
