package ws

import "sync/atomic"

// ConnState represents the lifecycle state of a streaming session.
type ConnState int32

// Connection states. A session moves Idle -> Connecting -> Connected -> Closed;
// a failed handshake returns it to Idle.
const (
	// StateIdle indicates no socket is held.
	StateIdle ConnState = iota
	// StateConnecting indicates a handshake is in progress.
	StateConnecting
	// StateConnected indicates a live socket is held.
	StateConnected
	// StateClosed indicates the socket has been released and the session is spent.
	StateClosed
)

// String returns the string representation of the connection state.
func (s ConnState) String() string {
	return [...]string{
		"idle",
		"connecting",
		"connected",
		"closed",
	}[s]
}

// State provides thread-safe atomic access to a ConnState value.
type State struct {
	state atomic.Int32
}

// Load returns the current connection state.
func (s *State) Load() ConnState {
	return ConnState(s.state.Load())
}

// Store sets the connection state to the given value.
func (s *State) Store(state ConnState) {
	s.state.Store(int32(state))
}

// CompareAndSwap atomically compares the current state with old and swaps to new if equal.
// It returns true if the swap was performed.
func (s *State) CompareAndSwap(old, new ConnState) bool {
	return s.state.CompareAndSwap(int32(old), int32(new))
}
