package stream

import (
	"context"

	"tradewire/internal/ws"
)

type ConnState = ws.ConnState

const (
	StateIdle       = ws.StateIdle
	StateConnecting = ws.StateConnecting
	StateConnected  = ws.StateConnected
	StateClosed     = ws.StateClosed
)

// Handler is invoked once per decoded event, in wire order, on the goroutine
// running EventLoop. A returned error ends the loop and is returned by it.
type Handler func(Event) error

// Forward returns a Handler that pushes events onto ch, so a slow consumer
// applies backpressure to the read loop instead of losing events. It gives up
// with ctx.Err() once ctx is done.
func Forward(ctx context.Context, ch chan<- Event) Handler {
	return func(event Event) error {
		select {
		case ch <- event:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// Chain runs handlers in order and stops at the first error.
func Chain(handlers ...Handler) Handler {
	return func(event Event) error {
		for _, h := range handlers {
			if err := h(event); err != nil {
				return err
			}
		}
		return nil
	}
}
