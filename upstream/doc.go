// Package upstream is the HTTP client for the place data provider.
//
// It speaks the provider's v1 surface: a place-details GET with a field
// mask, a text-search POST with an optional location-bias circle, and a
// photo-media GET. Every call is bounded by an explicit timeout, guarded
// by a circuit breaker, and throttled by an outbound token bucket so the
// service itself cannot exhaust the provider quota.
//
// Failures are classified here, exactly once, into the apierr taxonomy.
package upstream
