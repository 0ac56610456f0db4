package flowpay

import (
	"context"
	"net/http"
	"time"

	"github.com/flowpay/flowpay-go/pkg/transport"
)

// CheckoutService creates hosted checkout sessions.
type CheckoutService struct {
	transport *transport.Transport
}

// CheckoutParams describes a checkout session to create.
// Amount is in the currency's minor unit (cents).
type CheckoutParams struct {
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Description string            `json:"description,omitempty"`
	ProjectID   string            `json:"project_id,omitempty"`
	SuccessURL  string            `json:"success_url,omitempty"`
	CancelURL   string            `json:"cancel_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// CheckoutSession is a hosted payment page the customer is redirected to.
type CheckoutSession struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Status    string    `json:"status"`
	Amount    int64     `json:"amount"`
	Currency  string    `json:"currency"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Create opens a new checkout session. The call is idempotent across retries;
// the transport attaches a stable Idempotency-Key so a retried request never
// creates a duplicate session.
func (s *CheckoutService) Create(ctx context.Context, params CheckoutParams) (*CheckoutSession, error) {
	var session CheckoutSession
	if err := s.transport.Request(ctx, http.MethodPost, "/v1/checkout", &session,
		transport.WithBody(params)); err != nil {
		return nil, err
	}
	return &session, nil
}
