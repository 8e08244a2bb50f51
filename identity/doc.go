// Package identity represents the caller of a place operation.
//
// Session issuance lives in an external service; this package only
// resolves "who is asking" (an authenticated user id from a bearer
// token, or anonymous) so rate counters can be partitioned per caller.
package identity
