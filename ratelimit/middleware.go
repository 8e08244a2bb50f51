package ratelimit

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonwraymond/placegate/apierr"
	"github.com/jonwraymond/placegate/identity"
)

// Options configures the rate-limit middleware for one tier.
type Options struct {
	Governor *Governor
	Tier     Tier

	// Resolver resolves bearer tokens into identities. Optional: an
	// identity already attached to the request context wins.
	Resolver *identity.Resolver

	// TrustForwardedFor keys anonymous callers by the first
	// X-Forwarded-For entry instead of RemoteAddr. Enable only behind
	// a proxy that sanitizes the header.
	TrustForwardedFor bool

	// OmitHeaders suppresses the X-RateLimit-* response headers.
	OmitHeaders bool

	// OnError observes counter-store failures. The decision itself
	// still follows the governor's fail-open/fail-closed policy.
	OnError func(error)
}

// Middleware gates a handler behind the tier's quota. Denied requests
// receive the 429 envelope and never reach the next handler.
func Middleware(opts Options) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			id := identity.FromContext(ctx)
			if id == nil && opts.Resolver != nil {
				// A bad token degrades to anonymous: the request is
				// still served, just keyed and limited by address.
				id, _ = opts.Resolver.ResolveRequest(r)
				ctx = identity.WithIdentity(ctx, id)
				r = r.WithContext(ctx)
			}

			key := CallerKey(id, ClientAddr(r, opts.TrustForwardedFor))
			dec, err := opts.Governor.Check(ctx, opts.Tier, key)
			if err != nil && opts.OnError != nil {
				opts.OnError(err)
			}

			if !opts.OmitHeaders {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(dec.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(dec.Remaining))
				if !dec.ResetAt.IsZero() {
					w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(dec.ResetAt.Unix(), 10))
				}
			}

			if !dec.Allowed {
				retryAfter := int(dec.RetryAfter / time.Second)
				if retryAfter < 1 {
					retryAfter = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				apierr.WriteJSON(w, Deny(opts.Tier))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
