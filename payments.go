package flowpay

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/flowpay/flowpay-go/pkg/apierr"
	"github.com/flowpay/flowpay-go/pkg/transport"
)

// PaymentService lists and retrieves payment records.
type PaymentService struct {
	transport *transport.Transport
}

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentSucceeded PaymentStatus = "succeeded"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Payment is a single payment record.
type Payment struct {
	ID          string            `json:"id"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency"`
	Status      PaymentStatus     `json:"status"`
	ProjectID   string            `json:"project_id,omitempty"`
	Description string            `json:"description,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
}

// PaymentList is a page of payments with pagination metadata.
type PaymentList struct {
	Data []Payment `json:"data"`
	Meta ListMeta  `json:"meta"`
}

// ListPaymentsParams filters a payment listing. Zero-valued fields are
// omitted from the request entirely.
type ListPaymentsParams struct {
	Limit     int
	Offset    int
	Status    PaymentStatus
	ProjectID string
}

// List returns a page of payments matching the given filters.
func (s *PaymentService) List(ctx context.Context, params ListPaymentsParams) (*PaymentList, error) {
	query := make(map[string]any)
	if params.Limit > 0 {
		query["limit"] = params.Limit
	}
	if params.Offset > 0 {
		query["offset"] = params.Offset
	}
	if params.Status != "" {
		query["status"] = string(params.Status)
	}
	if params.ProjectID != "" {
		query["project_id"] = params.ProjectID
	}

	var list PaymentList
	if err := s.transport.Request(ctx, http.MethodGet, "/v1/payments", &list,
		transport.WithQuery(query)); err != nil {
		return nil, err
	}
	return &list, nil
}

// Get retrieves a single payment by ID.
// An empty ID fails before any network call is made.
func (s *PaymentService) Get(ctx context.Context, id string) (*Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &apierr.Error{
			Code:    apierr.CodeInvalidRequest,
			Message: "payment id is required",
		}
	}

	var payment Payment
	if err := s.transport.Request(ctx, http.MethodGet, "/v1/payments/"+url.PathEscape(id), &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}
