package flowpay

import (
	"log/slog"
	"net/http"

	"github.com/flowpay/flowpay-go/pkg/transport"
	"github.com/flowpay/flowpay-go/pkg/webhook"
)

// Version is the SDK release version.
const Version = transport.Version

// Option configures the client's underlying transport.
type Option = transport.Option

// WithHTTPClient sets a custom HTTP client for all API requests.
func WithHTTPClient(client *http.Client) Option {
	return transport.WithHTTPClient(client)
}

// WithLogger sets the logger used for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return transport.WithLogger(logger)
}

// Client is the Flowpay API client. All resource accessors are constructed
// once at client creation and are safe for concurrent use.
type Client struct {
	transport     *transport.Transport
	webhookSecret string

	Checkout *CheckoutService
	Payments *PaymentService
	Projects *ProjectService
}

// New creates a Client from the given configuration.
// An empty or all-whitespace API key fails here, before any network activity.
func New(cfg Config, opts ...Option) (*Client, error) {
	tr, err := transport.New(transport.Config{
		APIKey:     cfg.APIKey,
		BaseURL:    cfg.BaseURL,
		Timeout:    cfg.Timeout,
		MaxRetries: cfg.MaxRetries,
		Sandbox:    cfg.Sandbox,
	}, opts...)
	if err != nil {
		return nil, err
	}

	return &Client{
		transport:     tr,
		webhookSecret: cfg.WebhookSecret,
		Checkout:      &CheckoutService{transport: tr},
		Payments:      &PaymentService{transport: tr},
		Projects:      &ProjectService{transport: tr},
	}, nil
}

// ConstructEvent verifies an inbound webhook delivery against the configured
// webhook secret and parses it into an event. See webhook.ConstructEvent for
// the verification contract.
func (c *Client) ConstructEvent(payload []byte, header string, opts ...webhook.VerifyOption) (webhook.Event, error) {
	return webhook.ConstructEvent(payload, header, c.webhookSecret, opts...)
}
