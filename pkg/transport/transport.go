package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/flowpay/flowpay-go/pkg/apierr"
)

// Version is the SDK release version, reported in the User-Agent header.
const Version = "0.3.0"

// DefaultBaseURL is the production Flowpay API host.
const DefaultBaseURL = "https://api.flowpay.io"

const (
	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
	defaultUserAgent  = "flowpay-go/" + Version

	sandboxHeader     = "X-Flowpay-Sandbox"
	idempotencyHeader = "Idempotency-Key"

	// Backoff schedule: baseBackoff * 2^retry plus up to jitterRange of jitter.
	baseBackoff = 500 * time.Millisecond
	jitterRange = 200 * time.Millisecond
)

// Config holds the immutable connection settings for a Transport.
type Config struct {
	// APIKey authenticates every request. Required.
	APIKey string
	// BaseURL defaults to DefaultBaseURL; trailing slashes are stripped.
	BaseURL string
	// Timeout bounds each physical attempt. Default is 30 seconds.
	Timeout time.Duration
	// MaxRetries is the number of retry attempts after the first one.
	// Default is 2; negative disables retries.
	MaxRetries int
	// Sandbox adds a marker header routing requests to the test environment.
	Sandbox bool
}

// Transport executes logical API requests as bounded sequences of physical
// HTTP attempts. Safe for concurrent use; all configuration is read-only
// after construction.
type Transport struct {
	apiKey     string
	baseURL    string
	timeout    time.Duration
	maxRetries int
	sandbox    bool
	userAgent  string

	client *http.Client
	logger *slog.Logger
}

// New creates a Transport from the given configuration.
// An empty or all-whitespace API key fails here, before any network activity.
func New(cfg Config, opts ...Option) (*Transport, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	maxRetries := cfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = defaultMaxRetries
	} else if maxRetries < 0 {
		maxRetries = 0
	}

	t := &Transport{
		apiKey:     strings.TrimSpace(cfg.APIKey),
		baseURL:    baseURL,
		timeout:    timeout,
		maxRetries: maxRetries,
		sandbox:    cfg.Sandbox,
		userAgent:  defaultUserAgent,
		client:     &http.Client{},
		logger:     slog.Default(),
	}

	for _, opt := range opts {
		opt(t)
	}

	return t, nil
}

// BaseURL returns the normalized base URL requests are issued against.
func (t *Transport) BaseURL() string {
	return t.baseURL
}

// Request executes one logical API call. On a 2xx response the body is
// JSON-decoded into out (a 204 leaves out untouched); every other outcome is
// a classified *apierr.Error. Retries are applied transparently for 429 and
// transient 5xx statuses; canceling ctx aborts the current attempt and skips
// any remaining retries.
func (t *Transport) Request(ctx context.Context, method, path string, out any, opts ...RequestOption) error {
	options := &requestOptions{
		query:   make(map[string]any),
		headers: make(map[string]string),
		timeout: t.timeout,
	}
	for _, opt := range opts {
		opt(options)
	}

	target, err := t.buildURL(path, options.query)
	if err != nil {
		return err
	}

	var payload []byte
	if options.body != nil && method != http.MethodGet {
		payload, err = json.Marshal(options.body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	headers := t.buildHeaders(method, options.headers)

	var lastErr error
	var serverDelay time.Duration
	var serverDelaySet bool

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			delay := backoffDelay(attempt - 1)
			if serverDelaySet {
				delay = serverDelay
			}
			t.logger.DebugContext(ctx, "retrying flowpay request",
				slog.String("method", method),
				slog.String("path", path),
				slog.Int("attempt", attempt+1),
				slog.Duration("delay", delay))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		serverDelay, serverDelaySet = 0, false

		status, respBody, respHeader, err := t.attempt(ctx, method, target, payload, headers, options.timeout)
		if err != nil {
			// Caller-level cancellation ends the logical request outright.
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = t.connectionError(err, options.timeout)
			continue
		}

		if status >= 200 && status < 300 {
			return decodeResult(status, respBody, out)
		}

		apiErr := apierr.New(status, respBody, "")
		if !apierr.Retryable(status) {
			return apiErr
		}
		lastErr = apiErr

		if status == http.StatusTooManyRequests {
			if d, ok := retryAfterDelay(respHeader.Get("Retry-After"), time.Now()); ok {
				serverDelay, serverDelaySet = d, true
			}
		}
	}

	if lastErr == nil {
		lastErr = apierr.Connection("request failed after retries")
	}
	return lastErr
}

// attempt performs a single physical HTTP round-trip with its own deadline.
func (t *Transport) attempt(ctx context.Context, method, target string, payload []byte, headers map[string]string, timeout time.Duration) (int, []byte, http.Header, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(reqCtx, method, target, bodyReader)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		if reqCtx.Err() == context.DeadlineExceeded && ctx.Err() == nil {
			return 0, nil, nil, fmt.Errorf("%w: %w", errAttemptTimeout, err)
		}
		return 0, nil, nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return resp.StatusCode, body, resp.Header, nil
}

// buildHeaders assembles the standard header set, then merges caller overrides
// last so they win on collision. The idempotency key is generated here, once
// per logical request, so every retry reuses the same value.
func (t *Transport) buildHeaders(method string, overrides map[string]string) map[string]string {
	headers := map[string]string{
		"Authorization": "Bearer " + t.apiKey,
		"Content-Type":  "application/json",
		"Accept":        "application/json",
		"User-Agent":    t.userAgent,
	}
	if t.sandbox {
		headers[sandboxHeader] = "true"
	}
	if isMutating(method) {
		headers[idempotencyHeader] = uuid.New().String()
	}
	for k, v := range overrides {
		headers[k] = v
	}
	return headers
}

func (t *Transport) buildURL(path string, query map[string]any) (string, error) {
	if !strings.HasPrefix(path, "/") {
		return "", fmt.Errorf("%w: %q must start with a slash", ErrInvalidPath, path)
	}

	target := t.baseURL + path
	values := url.Values{}
	for k, v := range query {
		s, ok := queryString(v)
		if !ok {
			continue
		}
		values.Set(k, s)
	}
	if len(values) > 0 {
		target += "?" + values.Encode()
	}
	return target, nil
}

// connectionError classifies a transport-level fault, distinguishing attempt
// timeouts from generic network failures.
func (t *Transport) connectionError(err error, timeout time.Duration) *apierr.Error {
	if isAttemptTimeout(err) {
		return apierr.Connection(fmt.Sprintf("request timed out after %dms", timeout.Milliseconds()))
	}
	return apierr.Connection(fmt.Sprintf("network error: %v", err))
}

func isAttemptTimeout(err error) bool {
	return errors.Is(err, errAttemptTimeout)
}

// decodeResult parses a successful response. A 204 or empty body yields an
// empty result without attempting a JSON parse.
func decodeResult(status int, body []byte, out any) error {
	if status == http.StatusNoContent || len(body) == 0 || out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return apierr.New(status, body, fmt.Sprintf("failed to decode response: %v", err))
	}
	return nil
}

// backoffDelay computes the exponential backoff for the given retry index
// (0 for the first retry) with uniform jitter to avoid synchronized retry
// storms across clients.
func backoffDelay(retry int) time.Duration {
	return baseBackoff*(1<<retry) + time.Duration(rand.Int63n(int64(jitterRange)))
}

// retryAfterDelay interprets a Retry-After header value: all-digit values are
// whole seconds, anything else is tried as an HTTP date whose delta to now is
// floored at zero. Returns false when the header is absent or unparseable.
func retryAfterDelay(value string, now time.Time) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if isDigits(value) {
		secs, err := strconv.Atoi(value)
		if err != nil {
			return 0, false
		}
		return time.Duration(secs) * time.Second, true
	}
	at, err := http.ParseTime(value)
	if err != nil {
		return 0, false
	}
	d := at.Sub(now)
	if d < 0 {
		d = 0
	}
	return d, true
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch:
		return true
	default:
		return false
	}
}

// queryString stringifies a query parameter value. Nil values report ok=false
// and are omitted from the URL entirely.
func queryString(v any) (string, bool) {
	switch val := v.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case bool:
		return strconv.FormatBool(val), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}
