package resilience

import (
	"context"
	"sync"
	"time"
)

// State represents the circuit breaker state.
type State int

const (
	// StateClosed means calls flow to the provider normally.
	StateClosed State = iota
	// StateOpen means calls fail fast without reaching the provider.
	StateOpen
	// StateHalfOpen means a limited number of probe calls are allowed.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// BreakerConfig configures the circuit breaker.
type BreakerConfig struct {
	// MaxFailures is the number of consecutive failures before the
	// circuit opens.
	// Default: 5
	MaxFailures int

	// ResetTimeout is how long the circuit stays open before probing.
	// Default: 30 seconds
	ResetTimeout time.Duration

	// HalfOpenMaxProbes is the max concurrent probes in half-open state.
	// Default: 1
	HalfOpenMaxProbes int

	// IsFailure decides whether an error trips the breaker. Classified
	// caller errors (bad request, not found) should not count; provider
	// outages and transport failures should.
	// Default: all non-nil errors are failures.
	IsFailure func(err error) bool

	// OnStateChange is called when the circuit state changes.
	OnStateChange func(from, to State)
}

// Breaker implements the circuit breaker pattern around provider calls.
type Breaker struct {
	config BreakerConfig

	mu          sync.Mutex
	state       State
	failures    int
	lastFailure time.Time
	probes      int
}

// NewBreaker creates a new circuit breaker.
func NewBreaker(config BreakerConfig) *Breaker {
	if config.MaxFailures <= 0 {
		config.MaxFailures = 5
	}
	if config.ResetTimeout <= 0 {
		config.ResetTimeout = 30 * time.Second
	}
	if config.HalfOpenMaxProbes <= 0 {
		config.HalfOpenMaxProbes = 1
	}
	if config.IsFailure == nil {
		config.IsFailure = func(err error) bool { return err != nil }
	}

	return &Breaker{config: config, state: StateClosed}
}

// Execute runs the provider call through the breaker. When the circuit
// is open the call is not attempted and ErrCircuitOpen is returned.
func (b *Breaker) Execute(ctx context.Context, op func(context.Context) error) error {
	if err := b.beforeCall(); err != nil {
		return err
	}

	err := op(ctx)
	b.afterCall(err)
	return err
}

// State returns the current circuit state.
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.currentStateLocked()
}

// Reset closes the circuit and clears the failure count.
func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	old := b.state
	b.state = StateClosed
	b.failures = 0
	b.probes = 0

	if old != StateClosed && b.config.OnStateChange != nil {
		b.config.OnStateChange(old, StateClosed)
	}
}

func (b *Breaker) beforeCall() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.currentStateLocked() {
	case StateOpen:
		return ErrCircuitOpen
	case StateHalfOpen:
		if b.probes >= b.config.HalfOpenMaxProbes {
			return ErrCircuitOpen
		}
		b.probes++
	}
	return nil
}

func (b *Breaker) afterCall(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	failed := b.config.IsFailure(err)
	old := b.state

	switch b.state {
	case StateClosed:
		if failed {
			b.failures++
			b.lastFailure = time.Now()
			if b.failures >= b.config.MaxFailures {
				b.state = StateOpen
			}
		} else {
			b.failures = 0
		}

	case StateHalfOpen:
		if failed {
			// Probe failed: restart the open-state clock.
			b.lastFailure = time.Now()
			b.state = StateOpen
		} else {
			b.state = StateClosed
			b.failures = 0
		}
	}

	if old != b.state && b.config.OnStateChange != nil {
		b.config.OnStateChange(old, b.state)
	}
}

func (b *Breaker) currentStateLocked() State {
	if b.state == StateOpen && time.Since(b.lastFailure) >= b.config.ResetTimeout {
		b.state = StateHalfOpen
		b.probes = 0
		if b.config.OnStateChange != nil {
			b.config.OnStateChange(StateOpen, StateHalfOpen)
		}
	}
	return b.state
}
