package resilience

import "errors"

// ErrCircuitOpen is returned when the provider circuit is open and the
// call was not attempted.
var ErrCircuitOpen = errors.New("resilience: circuit breaker is open")
