// Package placecache persists normalized place rows keyed by provider
// place id.
//
// Stores hold no freshness logic: Get returns stale rows too, and the
// fetch orchestrator decides whether a row still counts as a hit. Rows
// are only ever replaced whole (upsert), never deleted here.
package placecache
