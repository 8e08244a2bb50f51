package ratelimit

import "time"

// Tier is one named rate-limit configuration.
type Tier struct {
	// Name keys the counter namespace; it must be stable across
	// releases or callers get a fresh quota on deploy.
	Name string

	// Window is the fixed window size.
	Window time.Duration

	// Max is the number of requests allowed per window.
	Max int

	// RetryHint is the caller-facing message on denial.
	RetryHint string
}

// Fixed tiers for the public place operations.
var (
	TierPlaceLookup = Tier{
		Name:      "place-lookup",
		Window:    time.Hour,
		Max:       100,
		RetryHint: "place lookup limit reached, try again in an hour",
	}
	TierSearch = Tier{
		Name:      "place-search",
		Window:    time.Hour,
		Max:       20,
		RetryHint: "search limit reached, try again in an hour",
	}
	TierPhoto = Tier{
		Name:      "place-photo",
		Window:    time.Hour,
		Max:       50,
		RetryHint: "photo limit reached, try again in an hour",
	}
)

// Guard tiers consumed by the external auth service.
var (
	TierAuthLogin = Tier{
		Name:      "auth-login",
		Window:    15 * time.Minute,
		Max:       10,
		RetryHint: "too many login attempts, try again in 15 minutes",
	}
	TierAuthSignup = Tier{
		Name:      "auth-signup",
		Window:    time.Hour,
		Max:       5,
		RetryHint: "too many signup attempts, try again in an hour",
	}
	TierAuthResend = Tier{
		Name:      "auth-resend",
		Window:    time.Minute,
		Max:       1,
		RetryHint: "verification email already sent, wait a minute before resending",
	}
)
