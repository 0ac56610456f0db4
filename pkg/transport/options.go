package transport

import (
	"log/slog"
	"net/http"
	"time"
)

// Option is a functional option for configuring a Transport at construction.
type Option func(*Transport)

// WithHTTPClient sets a custom HTTP client.
// Useful for custom transports, proxies, or testing.
func WithHTTPClient(client *http.Client) Option {
	return func(t *Transport) {
		if client != nil {
			t.client = client
		}
	}
}

// WithLogger sets the logger used for retry diagnostics.
// Default is slog.Default(). The API key is never logged.
func WithLogger(logger *slog.Logger) Option {
	return func(t *Transport) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// WithUserAgent overrides the User-Agent header sent on every request.
func WithUserAgent(ua string) Option {
	return func(t *Transport) {
		if ua != "" {
			t.userAgent = ua
		}
	}
}

// requestOptions contains all configurable options for a single logical request.
type requestOptions struct {
	query   map[string]any
	body    any
	headers map[string]string
	timeout time.Duration
}

// RequestOption is a functional option for a single logical request.
type RequestOption func(*requestOptions)

// WithQuery merges query parameters into the request URL.
// Entries with nil values are omitted entirely rather than encoded as empty.
func WithQuery(params map[string]any) RequestOption {
	return func(o *requestOptions) {
		for k, v := range params {
			o.query[k] = v
		}
	}
}

// WithQueryValue adds a single query parameter. A nil value is omitted.
func WithQueryValue(key string, value any) RequestOption {
	return func(o *requestOptions) {
		if key != "" {
			o.query[key] = value
		}
	}
}

// WithBody sets the JSON-serializable request body.
// Bodies are ignored for GET requests.
func WithBody(body any) RequestOption {
	return func(o *requestOptions) {
		o.body = body
	}
}

// WithHeader adds a custom header to every attempt of the request.
// Caller-supplied headers win on collision with the standard set.
func WithHeader(key, value string) RequestOption {
	return func(o *requestOptions) {
		if key != "" {
			o.headers[key] = value
		}
	}
}

// WithTimeout overrides the per-attempt timeout for this request only.
func WithTimeout(timeout time.Duration) RequestOption {
	return func(o *requestOptions) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}
