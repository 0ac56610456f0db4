package transport

import "errors"

// Domain errors for transport construction and request execution.
// Request-time failures are surfaced as *apierr.Error; these sentinels cover
// everything that fails before a request is ever built.
var (
	ErrMissingAPIKey = errors.New("flowpay API key is required")
	ErrInvalidPath   = errors.New("invalid request path")

	// errAttemptTimeout marks a physical attempt that was aborted by its
	// per-attempt deadline rather than by a network fault.
	errAttemptTimeout = errors.New("attempt deadline exceeded")
)
