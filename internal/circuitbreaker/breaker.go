// Package circuitbreaker stops sending requests to a host that keeps failing
// server side, and tries it again after a cool-down.
package circuitbreaker

import (
	"sync"
	"time"
)

type State int32

const (
	StateClosed State = iota
	StateOpen
	StateHalfOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "CLOSED"
	case StateOpen:
		return "OPEN"
	case StateHalfOpen:
		return "HALF_OPEN"
	default:
		return "UNKNOWN"
	}
}

type Config struct {
	// FailThreshold consecutive failures open the breaker.
	FailThreshold int `yaml:"fail_threshold"`
	// SuccessThreshold consecutive half-open successes close it again.
	SuccessThreshold int `yaml:"success_threshold"`
	// Timeout is how long the breaker stays open before a trial request is let through.
	Timeout time.Duration `yaml:"timeout"`
}

// Breaker counts consecutive outcomes reported through Record.
type Breaker struct {
	mu        sync.Mutex
	state     State
	failures  int
	successes int
	openedAt  time.Time
	config    Config
	now       func() time.Time
	metrics   MetricsSnapshot
}

type MetricsSnapshot struct {
	Allowed      int64
	Rejected     int64
	Failures     int64
	StateChanges int32
	CurrentState string
}

// New creates a closed breaker. Thresholds below one are raised to one.
func New(config Config) *Breaker {
	if config.FailThreshold < 1 {
		config.FailThreshold = 1
	}
	if config.SuccessThreshold < 1 {
		config.SuccessThreshold = 1
	}
	return &Breaker{config: config, now: time.Now}
}

// WithClock replaces the clock used for the open timeout.
func (b *Breaker) WithClock(now func() time.Time) *Breaker {
	b.mu.Lock()
	b.now = now
	b.mu.Unlock()
	return b
}

// Allow reports whether a request may be sent. An open breaker whose timeout
// has elapsed moves to half-open and lets trial requests through.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateOpen {
		if b.now().Sub(b.openedAt) < b.config.Timeout {
			b.metrics.Rejected++
			return false
		}
		b.transition(StateHalfOpen)
	}
	b.metrics.Allowed++
	return true
}

// Record reports the outcome of an allowed request.
func (b *Breaker) Record(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !success {
		b.metrics.Failures++
	}

	switch b.state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.config.FailThreshold {
			b.open()
		}
	case StateHalfOpen:
		if !success {
			b.open()
			return
		}
		b.successes++
		if b.successes >= b.config.SuccessThreshold {
			b.transition(StateClosed)
		}
	case StateOpen:
		// late result of a request allowed before the breaker opened
	}
}

func (b *Breaker) open() {
	b.openedAt = b.now()
	b.transition(StateOpen)
}

func (b *Breaker) transition(state State) {
	if b.state == state {
		return
	}
	b.state = state
	b.failures = 0
	b.successes = 0
	b.metrics.StateChanges++
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// Reset closes the breaker and clears its counters.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.transition(StateClosed)
}

func (b *Breaker) Metrics() MetricsSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	snap := b.metrics
	snap.CurrentState = b.state.String()
	return snap
}
