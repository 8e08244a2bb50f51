package ratelimit

import (
	"context"
	"time"

	"github.com/jonwraymond/placegate/apierr"
)

// Decision is the outcome of a governor check, carrying the standard
// rate-limit response metadata.
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
	ResetAt    time.Time
}

// GovernorConfig configures the rate governor.
type GovernorConfig struct {
	// Store holds the windowed counters.
	Store CounterStore

	// Bypass makes every check return Allowed without consuming the
	// counter. It exists for tests and operational break-glass only and
	// must be set explicitly; there is no environment fallback.
	Bypass bool

	// FailClosed denies requests when the counter store errors. The
	// default lets them through: a counter outage degrades protection,
	// not availability.
	FailClosed bool

	// OnDecision is called after every non-bypassed check, for metrics.
	OnDecision func(tier Tier, callerKey string, d Decision)
}

// Governor gates operations against their tier quotas.
type Governor struct {
	config GovernorConfig
}

// NewGovernor creates a rate governor.
func NewGovernor(config GovernorConfig) *Governor {
	return &Governor{config: config}
}

// Bypassed reports whether enforcement is disabled.
func (g *Governor) Bypassed() bool { return g.config.Bypass }

// Check consumes one request from the caller's quota for the tier and
// returns the decision. The counter is incremented before comparison,
// so the check-and-consume is a single atomic store operation.
func (g *Governor) Check(ctx context.Context, tier Tier, callerKey string) (Decision, error) {
	if g.config.Bypass {
		return Decision{Allowed: true, Limit: tier.Max, Remaining: tier.Max}, nil
	}

	count, resetAt, err := g.config.Store.Incr(ctx, tier.Name+":"+callerKey, tier.Window)
	if err != nil {
		if g.config.FailClosed {
			return Decision{Limit: tier.Max, ResetAt: resetAt}, err
		}
		return Decision{Allowed: true, Limit: tier.Max}, err
	}

	d := Decision{
		Limit:   tier.Max,
		ResetAt: resetAt,
	}
	if count <= int64(tier.Max) {
		d.Allowed = true
		d.Remaining = tier.Max - int(count)
	} else {
		d.RetryAfter = time.Until(resetAt)
		if d.RetryAfter < 0 {
			d.RetryAfter = 0
		}
	}

	if g.config.OnDecision != nil {
		g.config.OnDecision(tier, callerKey, d)
	}
	return d, nil
}

// Deny builds the typed error for a denied decision.
func Deny(tier Tier) *apierr.Error {
	return apierr.RateLimitExceeded(tier.RetryHint)
}
