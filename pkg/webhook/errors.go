package webhook

import "errors"

// Domain errors for webhook verification, designed for errors.Is checks.
// Verification failures all wrap ErrSignatureVerification; a payload that
// fails to parse after its signature checked out is a distinct condition and
// deliberately does not.
var (
	ErrSignatureVerification = errors.New("webhook signature verification failed")

	ErrInvalidHeader     = errors.New("signature header is unparseable")
	ErrToleranceExceeded = errors.New("signature timestamp outside tolerance")
	ErrSignatureMismatch = errors.New("signature did not match")

	ErrInvalidPayload = errors.New("webhook payload is not valid JSON")

	ErrMissingSecret = errors.New("webhook secret is required")
)
