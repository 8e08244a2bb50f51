// Package fetch orchestrates place lookups across the persistent cache
// and the upstream provider.
//
// Lookups are cache-aside: a fresh cached row is returned without any
// upstream traffic, while a miss or stale row triggers exactly one
// provider call whose result is re-stamped and written back. Concurrent
// lookups for the same place coalesce onto a single in-flight provider
// call. Text search and photo media are live pass-throughs and are
// never persisted.
package fetch
