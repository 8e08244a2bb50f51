package observe

import (
	"context"
	"time"
)

// Middleware wraps gateway operations with tracing, metrics, and
// logging.
//
// Contract:
//   - Concurrency: Do is safe for concurrent use.
//   - Context: the span context is propagated into fn.
//   - Errors: fn's error is recorded and propagated unchanged.
type Middleware struct {
	tracer  Tracer
	metrics Metrics
	logger  Logger
}

// NewMiddleware creates a Middleware with the given components.
func NewMiddleware(tracer Tracer, metrics Metrics, logger Logger) *Middleware {
	return &Middleware{
		tracer:  tracer,
		metrics: metrics,
		logger:  logger,
	}
}

// Do runs fn inside a span for the operation and records its duration
// and outcome.
func (m *Middleware) Do(ctx context.Context, meta OpMeta, fn func(context.Context) error) error {
	ctx, span := m.tracer.StartSpan(ctx, meta)
	start := time.Now()

	err := fn(ctx)
	duration := time.Since(start)

	m.tracer.EndSpan(span, err)
	m.metrics.RecordOperation(ctx, meta, duration, err)

	opLogger := m.logger.WithOp(meta)
	fields := []Field{
		{Key: "duration_ms", Value: float64(duration.Milliseconds())},
	}
	if err != nil {
		fields = append(fields, Field{Key: "error", Value: err.Error()})
		opLogger.Error(ctx, "operation failed", fields...)
	} else {
		opLogger.Info(ctx, "operation completed", fields...)
	}

	return err
}

// MiddlewareFromObserver creates a Middleware from an Observer.
func MiddlewareFromObserver(obs Observer) (*Middleware, error) {
	metrics, err := NewMetrics(obs.Meter())
	if err != nil {
		return nil, err
	}
	return NewMiddleware(NewTracer(obs.Tracer()), metrics, obs.Logger()), nil
}
