// Package place defines the normalized place data model shared by the
// cache store, the fetch orchestrator, and the upstream client.
package place
