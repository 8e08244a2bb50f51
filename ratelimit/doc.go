// Package ratelimit is the tiered request-rate governor.
//
// Each public operation owns a fixed-window tier (window size + max
// requests). Counters are partitioned by caller key, the authenticated
// user id when known and the normalized client address otherwise, and
// live in an injected CounterStore: an in-process map for
// single-instance use, or Redis for deployments where all instances
// must share one quota.
//
// The decision gate runs before any cache or upstream work; a denied
// request never reaches the rest of the pipeline.
package ratelimit
