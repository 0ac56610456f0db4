// Package transport executes Flowpay API requests with automatic retries,
// exponential backoff, idempotency keys, and error classification.
//
// This is the low-level engine behind the flowpay client. It turns one logical
// API call into up to 1+MaxRetries physical HTTP attempts, retrying only
// transient conditions (429 and 5xx gateway statuses) and surfacing everything
// else as a classified *apierr.Error.
//
// # Key Features
//
// - Bearer authentication and JSON codec handled transparently
// - Exponential backoff with jitter, honoring Retry-After on 429 responses
// - Stable Idempotency-Key per logical mutating call, safe to retry
// - Per-attempt timeouts layered on the caller's context
// - Sandbox mode marker header for test-environment routing
//
// # Basic Usage
//
//	tr, err := transport.New(transport.Config{APIKey: "sk_live_..."})
//	if err != nil {
//	    // empty API key is a construction-time failure
//	}
//
//	var result PaymentList
//	err = tr.Request(ctx, http.MethodGet, "/v1/payments", &result,
//	    transport.WithQuery(map[string]any{"limit": 10}),
//	)
//
// Failures are always *apierr.Error values; see the apierr package for the
// classification taxonomy.
package transport
