// Package flowpay provides the official Go client for the Flowpay
// payment-gateway HTTP API.
//
// The client hides HTTP mechanics (authentication, retries, timeouts,
// idempotency keys) behind a small typed surface: create checkout sessions,
// list and retrieve payments, list projects, and verify inbound webhook
// deliveries.
//
// Key Features:
//
//   - Typed resource accessors with explicit error returns
//   - Automatic retries with exponential backoff and Retry-After support
//   - Stable idempotency keys on mutating calls, safe against duplicate effects
//   - Machine-readable error classification via the apierr package
//   - Replay-resistant HMAC-SHA256 webhook verification via the webhook package
//
// Basic Usage:
//
//	client, err := flowpay.New(flowpay.Config{APIKey: "sk_live_..."})
//	if err != nil {
//		// empty API key fails here, before any network activity
//	}
//
//	session, err := client.Checkout.Create(ctx, flowpay.CheckoutParams{
//		Amount:   2500,
//		Currency: "EUR",
//	})
//
//	payments, err := client.Payments.List(ctx, flowpay.ListPaymentsParams{Limit: 10})
//
// Configuration can also come from the environment:
//
//	cfg, err := flowpay.ConfigFromEnv() // FLOWPAY_API_KEY, FLOWPAY_SANDBOX, ...
//	client, err := flowpay.New(cfg)
//
// Error Handling:
//
// Every failed API call surfaces a *apierr.Error discriminated by a stable
// code, so callers can branch programmatically:
//
//	if apierr.IsCode(err, apierr.CodeRateLimit) {
//		// back off and try again later
//	}
package flowpay
