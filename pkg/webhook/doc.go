// Package webhook verifies the authenticity of inbound Flowpay webhook
// notifications and parses them into typed events.
//
// Flowpay signs every webhook delivery with HMAC-SHA256 over the payload bound
// to a timestamp, carried in a single header of the form:
//
//	Flowpay-Signature: t=1712345678,v1=5257a869e7...
//
// Verification is replay-resistant: timestamps outside the tolerance window
// (5 minutes by default) are rejected, and signature comparison runs in
// constant time.
//
// # Basic Usage
//
//	event, err := webhook.ConstructEvent(rawBody, r.Header.Get(webhook.SignatureHeaderName), secret)
//	if err != nil {
//	    // reject the delivery; never process unverified payloads
//	}
//	switch event.Type {
//	case "payment.succeeded":
//	    // ...
//	}
//
// The exact raw request body bytes must be passed in; any reserialization
// before verification invalidates the signature.
//
// # HTTP Handler
//
// For the common case of a dedicated webhook endpoint, Handler wires body
// reading, verification, and dispatch together:
//
//	r.Post("/webhooks/flowpay", webhook.Handler(secret, func(ctx context.Context, event webhook.Event) error {
//	    return process(ctx, event)
//	}))
//
// Verification needs no per-instance state; all functions in this package are
// free functions safe for concurrent use.
package webhook
