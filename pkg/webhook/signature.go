package webhook

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeaderName is the HTTP header Flowpay signs deliveries with.
const SignatureHeaderName = "Flowpay-Signature"

// DefaultTolerance is the maximum allowed age (past or future) of a signed
// timestamp before the delivery is rejected as a potential replay.
const DefaultTolerance = 5 * time.Minute

// SignatureHeader holds the parsed components of a signature header.
type SignatureHeader struct {
	// Timestamp is the signing time in seconds since epoch.
	Timestamp int64
	// Signature is the hex-encoded HMAC-SHA256 digest.
	Signature string
}

// verifyOptions contains configurable options for a verification call.
type verifyOptions struct {
	tolerance time.Duration
	now       func() time.Time
}

// VerifyOption is a functional option for ConstructEvent and Handler.
type VerifyOption func(*verifyOptions)

// WithTolerance sets the replay-window tolerance.
// Default is 5 minutes; zero disables the timestamp check entirely.
func WithTolerance(tolerance time.Duration) VerifyOption {
	return func(o *verifyOptions) {
		if tolerance >= 0 {
			o.tolerance = tolerance
		}
	}
}

// withNow overrides the clock. Test hook.
func withNow(now func() time.Time) VerifyOption {
	return func(o *verifyOptions) {
		o.now = now
	}
}

// ParseSignatureHeader parses a header of the form "t=<unix-seconds>,v1=<hex>".
// Unknown pairs are ignored for forward compatibility; a missing or malformed
// t or v1 component fails with ErrInvalidHeader.
func ParseSignatureHeader(header string) (SignatureHeader, error) {
	var (
		parsed       SignatureHeader
		sawTimestamp bool
	)

	for _, part := range strings.Split(header, ",") {
		key, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found {
			continue
		}
		switch key {
		case "t":
			ts, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return SignatureHeader{}, fmt.Errorf("%w: %w: bad timestamp %q", ErrSignatureVerification, ErrInvalidHeader, value)
			}
			parsed.Timestamp = ts
			sawTimestamp = true
		case "v1":
			parsed.Signature = value
		}
	}

	if !sawTimestamp || parsed.Signature == "" {
		return SignatureHeader{}, fmt.Errorf("%w: %w: missing t or v1 component", ErrSignatureVerification, ErrInvalidHeader)
	}

	return parsed, nil
}

// Sign computes the hex-encoded HMAC-SHA256 signature Flowpay would produce
// for the given payload at the given timestamp. Exposed for building test
// fixtures and local mock gateways.
func Sign(secret string, timestamp int64, payload []byte) string {
	h := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(h, "%d.%s", timestamp, payload)
	return hex.EncodeToString(h.Sum(nil))
}

// EncodeSignatureHeader renders a timestamp and signature in wire format.
func EncodeSignatureHeader(timestamp int64, signature string) string {
	return fmt.Sprintf("t=%d,v1=%s", timestamp, signature)
}

// ConstructEvent authenticates a raw webhook payload against its signature
// header and parses it into an Event.
//
// The payload must be the exact raw request body bytes; any reserialization
// before verification invalidates the signature. Verification failures wrap
// ErrSignatureVerification. A payload that verifies but is not valid JSON
// fails with ErrInvalidPayload instead; it is not a signature problem.
func ConstructEvent(payload []byte, header, secret string, opts ...VerifyOption) (Event, error) {
	if secret == "" {
		return Event{}, ErrMissingSecret
	}

	options := &verifyOptions{
		tolerance: DefaultTolerance,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(options)
	}

	parsed, err := ParseSignatureHeader(header)
	if err != nil {
		return Event{}, err
	}

	// Reject replays of captured deliveries outside the tolerance window.
	if options.tolerance > 0 {
		age := options.now().Unix() - parsed.Timestamp
		if age < 0 {
			age = -age
		}
		if time.Duration(age)*time.Second > options.tolerance {
			return Event{}, fmt.Errorf("%w: %w", ErrSignatureVerification, ErrToleranceExceeded)
		}
	}

	// hmac.Equal is constant-time over equal-length inputs; the length check
	// it performs first is not a useful timing oracle for this scheme.
	expected := Sign(secret, parsed.Timestamp, payload)
	if !hmac.Equal([]byte(expected), []byte(parsed.Signature)) {
		return Event{}, fmt.Errorf("%w: %w", ErrSignatureVerification, ErrSignatureMismatch)
	}

	var event Event
	if err := json.Unmarshal(payload, &event); err != nil {
		return Event{}, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	event.Raw = payload

	return event, nil
}
