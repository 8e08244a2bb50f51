// Package observe provides observability primitives for the place
// gateway: structured logging, OpenTelemetry tracing and metrics, and
// an instrumentation wrapper for the gateway operations.
//
// It is a pure instrumentation library: no transport, no business
// logic, no I/O beyond exporter setup.
package observe
