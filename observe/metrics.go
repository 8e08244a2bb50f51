package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records gateway metrics.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: implementations must not panic and must return quickly.
type Metrics interface {
	// RecordOperation records one gateway operation with duration and
	// error status.
	RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error)

	// RecordCacheLookup records a cache-aside lookup outcome.
	RecordCacheLookup(ctx context.Context, hit bool)

	// RecordRateLimit records a rate governor decision.
	RecordRateLimit(ctx context.Context, tier string, allowed bool)
}

// metricsImpl is the concrete implementation of Metrics.
type metricsImpl struct {
	meter        metric.Meter
	opCount      metric.Int64Counter
	opErrors     metric.Int64Counter
	opDuration   metric.Float64Histogram
	cacheLookups metric.Int64Counter
	rateDecision metric.Int64Counter
}

// NewMetrics creates a Metrics instance with the given meter.
func NewMetrics(meter metric.Meter) (Metrics, error) {
	opCount, err := meter.Int64Counter(
		"gateway.op.total",
		metric.WithDescription("Total number of gateway operations"),
		metric.WithUnit("{call}"),
	)
	if err != nil {
		return nil, err
	}

	opErrors, err := meter.Int64Counter(
		"gateway.op.errors",
		metric.WithDescription("Total number of failed gateway operations"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	opDuration, err := meter.Float64Histogram(
		"gateway.op.duration_ms",
		metric.WithDescription("Gateway operation duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	cacheLookups, err := meter.Int64Counter(
		"gateway.cache.lookups",
		metric.WithDescription("Cache-aside lookups by outcome"),
		metric.WithUnit("{lookup}"),
	)
	if err != nil {
		return nil, err
	}

	rateDecision, err := meter.Int64Counter(
		"gateway.ratelimit.decisions",
		metric.WithDescription("Rate governor decisions by tier and outcome"),
		metric.WithUnit("{decision}"),
	)
	if err != nil {
		return nil, err
	}

	return &metricsImpl{
		meter:        meter,
		opCount:      opCount,
		opErrors:     opErrors,
		opDuration:   opDuration,
		cacheLookups: cacheLookups,
		rateDecision: rateDecision,
	}, nil
}

// RecordOperation records metrics for one gateway operation.
func (m *metricsImpl) RecordOperation(ctx context.Context, meta OpMeta, duration time.Duration, err error) {
	opt := metric.WithAttributes(attribute.String("op", meta.Name))

	m.opCount.Add(ctx, 1, opt)
	if err != nil {
		m.opErrors.Add(ctx, 1, opt)
	}
	m.opDuration.Record(ctx, float64(duration.Milliseconds()), opt)
}

// RecordCacheLookup records a hit or a miss.
func (m *metricsImpl) RecordCacheLookup(ctx context.Context, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	m.cacheLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// RecordRateLimit records a governor decision.
func (m *metricsImpl) RecordRateLimit(ctx context.Context, tier string, allowed bool) {
	m.rateDecision.Add(ctx, 1, metric.WithAttributes(
		attribute.String("tier", tier),
		attribute.Bool("allowed", allowed),
	))
}

// noopMetrics is a metrics implementation that does nothing.
type noopMetrics struct{}

func (noopMetrics) RecordOperation(context.Context, OpMeta, time.Duration, error) {}
func (noopMetrics) RecordCacheLookup(context.Context, bool)                       {}
func (noopMetrics) RecordRateLimit(context.Context, string, bool)                 {}

// NopMetrics returns a metrics implementation that discards everything.
func NopMetrics() Metrics { return noopMetrics{} }
