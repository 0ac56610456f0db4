package webhook

import (
	"context"
	"io"
	"log/slog"
	"net/http"
)

// maxPayloadBytes caps how much of a delivery body is read.
// Flowpay events are small; anything larger is not a legitimate delivery.
const maxPayloadBytes = 1 << 20

// EventHandlerFunc processes a verified webhook event.
// Returning an error makes the endpoint respond 500 so the gateway redelivers.
type EventHandlerFunc func(ctx context.Context, event Event) error

// Handler returns an http.HandlerFunc that reads the raw delivery body,
// verifies its signature with the given secret, and dispatches the parsed
// event. Unverifiable or malformed deliveries are rejected with 400 before
// handle is ever invoked.
func Handler(secret string, handle EventHandlerFunc, opts ...VerifyOption) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxPayloadBytes))
		if err != nil {
			http.Error(w, "failed to read request body", http.StatusBadRequest)
			return
		}

		event, err := ConstructEvent(payload, r.Header.Get(SignatureHeaderName), secret, opts...)
		if err != nil {
			// The secret never appears in responses or logs.
			slog.DebugContext(r.Context(), "rejected webhook delivery", slog.String("error", err.Error()))
			http.Error(w, "webhook verification failed", http.StatusBadRequest)
			return
		}

		if err := handle(r.Context(), event); err != nil {
			http.Error(w, "webhook processing failed", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}
