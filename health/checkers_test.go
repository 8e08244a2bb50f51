package health

import (
	"context"
	"errors"
	"testing"

	"github.com/jonwraymond/placegate/placecache"
	"github.com/jonwraymond/placegate/resilience"
)

type unreachableStore struct {
	placecache.Store
}

func (unreachableStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func TestStoreChecker(t *testing.T) {
	ctx := context.Background()

	healthy := NewStoreChecker(placecache.NewMemoryStore())
	if got := healthy.Check(ctx); got.Status != StatusHealthy {
		t.Errorf("reachable store: status = %v", got.Status)
	}

	down := NewStoreChecker(unreachableStore{})
	result := down.Check(ctx)
	if result.Status != StatusUnhealthy {
		t.Errorf("unreachable store: status = %v", result.Status)
	}
	if result.Error == nil {
		t.Error("unreachable store: error should be carried")
	}
}

func TestPingChecker(t *testing.T) {
	ctx := context.Background()

	ok := NewPingChecker("counters", func(context.Context) error { return nil })
	if got := ok.Check(ctx); got.Status != StatusHealthy {
		t.Errorf("status = %v", got.Status)
	}
	if ok.Name() != "counters" {
		t.Errorf("Name = %q", ok.Name())
	}

	down := NewPingChecker("counters", func(context.Context) error {
		return errors.New("redis: connection refused")
	})
	if got := down.Check(ctx); got.Status != StatusUnhealthy {
		t.Errorf("status = %v", got.Status)
	}
}

func TestBreakerChecker(t *testing.T) {
	ctx := context.Background()
	breaker := resilience.NewBreaker(resilience.BreakerConfig{MaxFailures: 1})
	checker := NewBreakerChecker(breaker)

	if got := checker.Check(ctx); got.Status != StatusHealthy {
		t.Errorf("closed circuit: status = %v", got.Status)
	}

	// Trip the circuit.
	_ = breaker.Execute(ctx, func(context.Context) error {
		return errors.New("upstream down")
	})

	result := checker.Check(ctx)
	if result.Status != StatusDegraded {
		t.Errorf("open circuit: status = %v, want degraded", result.Status)
	}
	if result.Details["circuit"] != "open" {
		t.Errorf("details = %v", result.Details)
	}
}

func TestBreakerChecker_AggregatedReadiness(t *testing.T) {
	// An open upstream circuit must not flip readiness to unhealthy:
	// the gateway still serves cached rows.
	breaker := resilience.NewBreaker(resilience.BreakerConfig{MaxFailures: 1})
	_ = breaker.Execute(context.Background(), func(context.Context) error {
		return errors.New("upstream down")
	})

	agg := NewAggregator()
	agg.Register("place-cache", NewStoreChecker(placecache.NewMemoryStore()))
	agg.Register("upstream", NewBreakerChecker(breaker))

	results := agg.CheckAll(context.Background())
	if got := agg.OverallStatus(results); got != StatusDegraded {
		t.Errorf("overall = %v, want degraded", got)
	}
}
