// Package resilience guards calls to the place data provider.
//
// It provides a circuit breaker so a sustained provider outage fails
// fast instead of holding every cache miss on a dead connection. Per-call
// deadlines are the caller's concern (context.WithTimeout); outbound
// throttling lives in the upstream client.
package resilience
