// Package health provides health checking for the gateway's
// dependencies: the place cache, the rate-limit counter store, and the
// upstream circuit breaker.
//
// A Checker is any component that can report its health status. Use
// Aggregator to combine checkers into a composite check and the HTTP
// handlers to expose liveness, readiness, and detailed status:
//
//	agg := health.NewAggregator()
//	agg.Register("place-cache", health.NewStoreChecker(store))
//	agg.Register("counters", health.NewPingChecker("counters", rdb.Ping))
//	agg.Register("upstream", health.NewBreakerChecker(client.Breaker()))
//
//	mux := http.NewServeMux()
//	health.RegisterHandlers(mux, agg)
package health
