package port

import "errors"

// Sentinel errors used across ports. Handlers map these to HTTP statuses.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	// ErrRateLimited marks an upstream 429. Recoverable by caller retry
	// after a delay; never retried internally.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrQuotaExhausted marks an upstream 402. Terminal until the account
	// is topped up out-of-band.
	ErrQuotaExhausted = errors.New("usage quota exhausted")

	// ErrNoContent means the upstream answered 2xx but produced no
	// completion text. Distinct from a transport failure.
	ErrNoContent = errors.New("no content produced")

	// ErrVideoQuota marks a 403 from the video-search upstream (quota
	// exceeded or invalid API key).
	ErrVideoQuota = errors.New("video search quota exceeded or invalid API key")

	ErrUserNotFound        = errors.New("user not found")
	ErrAchievementNotFound = errors.New("achievement not found")
)
