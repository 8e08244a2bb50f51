package health

import (
	"context"

	"github.com/jonwraymond/placegate/placecache"
	"github.com/jonwraymond/placegate/resilience"
)

// StoreChecker reports the reachability of the place cache.
type StoreChecker struct {
	name  string
	store placecache.Store
}

// NewStoreChecker creates a checker for the place cache.
func NewStoreChecker(store placecache.Store) *StoreChecker {
	return &StoreChecker{name: "place-cache", store: store}
}

// Name returns the name of this checker.
func (c *StoreChecker) Name() string { return c.name }

// Check pings the backing store.
func (c *StoreChecker) Check(ctx context.Context) Result {
	if err := c.store.Ping(ctx); err != nil {
		return Unhealthy("place cache unreachable", err)
	}
	return Healthy("place cache reachable")
}

// PingerChecker adapts any ping function into a checker.
type PingerChecker struct {
	name string
	ping func(ctx context.Context) error
}

// NewPingChecker creates a checker from a ping function.
func NewPingChecker(name string, ping func(ctx context.Context) error) *PingerChecker {
	return &PingerChecker{name: name, ping: ping}
}

// Name returns the name of this checker.
func (c *PingerChecker) Name() string { return c.name }

// Check runs the ping.
func (c *PingerChecker) Check(ctx context.Context) Result {
	if err := c.ping(ctx); err != nil {
		return Unhealthy(c.name+" unreachable", err)
	}
	return Healthy(c.name + " reachable")
}

// BreakerChecker reports the upstream circuit state. An open circuit
// is degraded, not unhealthy: the gateway still serves cached rows.
type BreakerChecker struct {
	breaker *resilience.Breaker
}

// NewBreakerChecker creates a checker for the upstream circuit breaker.
func NewBreakerChecker(breaker *resilience.Breaker) *BreakerChecker {
	return &BreakerChecker{breaker: breaker}
}

// Name returns the name of this checker.
func (c *BreakerChecker) Name() string { return "upstream" }

// Check inspects the circuit state.
func (c *BreakerChecker) Check(ctx context.Context) Result {
	select {
	case <-ctx.Done():
		return Unhealthy("context cancelled", ctx.Err())
	default:
	}

	state := c.breaker.State()
	details := map[string]any{"circuit": state.String()}

	switch state {
	case resilience.StateClosed:
		return Healthy("upstream circuit closed").WithDetails(details)
	case resilience.StateHalfOpen:
		return Degraded("upstream circuit probing").WithDetails(details)
	default:
		return Degraded("upstream circuit open").WithDetails(details)
	}
}

var (
	_ Checker = (*StoreChecker)(nil)
	_ Checker = (*PingerChecker)(nil)
	_ Checker = (*BreakerChecker)(nil)
)
