package flowpay_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	flowpay "github.com/flowpay/flowpay-go"
	"github.com/flowpay/flowpay-go/pkg/apierr"
	"github.com/flowpay/flowpay-go/pkg/transport"
	"github.com/flowpay/flowpay-go/pkg/webhook"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Header http.Header
	Body   []byte
}

// newTestClient spins up a mock gateway that records every request and
// responds with the given status and body.
func newTestClient(t *testing.T, status int, responseBody string) (*flowpay.Client, *[]recordedRequest) {
	t.Helper()

	var requests []recordedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		requests = append(requests, recordedRequest{
			Method: r.Method,
			Path:   r.URL.Path,
			Query:  r.URL.RawQuery,
			Header: r.Header.Clone(),
			Body:   body,
		})
		w.WriteHeader(status)
		_, _ = w.Write([]byte(responseBody))
	}))
	t.Cleanup(srv.Close)

	client, err := flowpay.New(flowpay.Config{APIKey: "sk_test_123", BaseURL: srv.URL})
	require.NoError(t, err)
	return client, &requests
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("constructs all resource accessors", func(t *testing.T) {
		t.Parallel()

		client, err := flowpay.New(flowpay.Config{APIKey: "sk_test_123"})
		require.NoError(t, err)
		assert.NotNil(t, client.Checkout)
		assert.NotNil(t, client.Payments)
		assert.NotNil(t, client.Projects)
	})

	t.Run("empty api key fails before any network activity", func(t *testing.T) {
		t.Parallel()

		_, err := flowpay.New(flowpay.Config{})
		require.ErrorIs(t, err, transport.ErrMissingAPIKey)

		_, err = flowpay.New(flowpay.Config{APIKey: "   "})
		require.ErrorIs(t, err, transport.ErrMissingAPIKey)
	})
}

func TestCheckoutCreate(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK,
		`{"id":"cs_789","url":"https://pay.flowpay.io/cs_789","status":"open","amount":2500,"currency":"EUR"}`)

	session, err := client.Checkout.Create(context.Background(), flowpay.CheckoutParams{
		Amount:   2500,
		Currency: "EUR",
		Metadata: map[string]string{"order": "ord_1"},
	})
	require.NoError(t, err)

	assert.Equal(t, "cs_789", session.ID)
	assert.Equal(t, "https://pay.flowpay.io/cs_789", session.URL)
	assert.EqualValues(t, 2500, session.Amount)

	require.Len(t, *requests, 1)
	req := (*requests)[0]
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "/v1/checkout", req.Path)
	assert.NotEmpty(t, req.Header.Get("Idempotency-Key"))

	var sent flowpay.CheckoutParams
	require.NoError(t, json.Unmarshal(req.Body, &sent))
	assert.EqualValues(t, 2500, sent.Amount)
	assert.Equal(t, "EUR", sent.Currency)
	assert.Equal(t, map[string]string{"order": "ord_1"}, sent.Metadata)
}

func TestPaymentsList(t *testing.T) {
	t.Parallel()

	t.Run("all filters set", func(t *testing.T) {
		t.Parallel()

		client, requests := newTestClient(t, http.StatusOK,
			`{"data":[{"id":"pay_1","amount":100,"currency":"EUR","status":"succeeded"}],"meta":{"total":1,"limit":10,"offset":20}}`)

		list, err := client.Payments.List(context.Background(), flowpay.ListPaymentsParams{
			Limit:     10,
			Offset:    20,
			Status:    flowpay.PaymentSucceeded,
			ProjectID: "proj_7",
		})
		require.NoError(t, err)

		require.Len(t, list.Data, 1)
		assert.Equal(t, "pay_1", list.Data[0].ID)
		assert.Equal(t, flowpay.PaymentSucceeded, list.Data[0].Status)
		assert.Equal(t, flowpay.ListMeta{Total: 1, Limit: 10, Offset: 20}, list.Meta)

		require.Len(t, *requests, 1)
		req := (*requests)[0]
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "/v1/payments", req.Path)
		assert.Equal(t, "limit=10&offset=20&project_id=proj_7&status=succeeded", req.Query)
		assert.Empty(t, req.Header.Get("Idempotency-Key"))
	})

	t.Run("unset filters are absent from the URL", func(t *testing.T) {
		t.Parallel()

		client, requests := newTestClient(t, http.StatusOK, `{"data":[],"meta":{"total":0,"limit":0,"offset":0}}`)

		_, err := client.Payments.List(context.Background(), flowpay.ListPaymentsParams{})
		require.NoError(t, err)

		require.Len(t, *requests, 1)
		assert.Empty(t, (*requests)[0].Query)
	})
}

func TestPaymentsGet(t *testing.T) {
	t.Parallel()

	t.Run("retrieves by id", func(t *testing.T) {
		t.Parallel()

		client, requests := newTestClient(t, http.StatusOK,
			`{"id":"pay_123","amount":4200,"currency":"USD","status":"pending","created_at":"2026-03-14T12:00:00Z"}`)

		payment, err := client.Payments.Get(context.Background(), "pay_123")
		require.NoError(t, err)

		assert.Equal(t, "pay_123", payment.ID)
		assert.EqualValues(t, 4200, payment.Amount)
		assert.Equal(t, flowpay.PaymentPending, payment.Status)
		assert.Equal(t, time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC), payment.CreatedAt)

		require.Len(t, *requests, 1)
		assert.Equal(t, "/v1/payments/pay_123", (*requests)[0].Path)
	})

	t.Run("empty id fails without a network call", func(t *testing.T) {
		t.Parallel()

		client, requests := newTestClient(t, http.StatusOK, `{}`)

		_, err := client.Payments.Get(context.Background(), "  ")
		require.Error(t, err)
		assert.True(t, apierr.IsCode(err, apierr.CodeInvalidRequest))
		assert.Empty(t, *requests)
	})
}

func TestProjectsList(t *testing.T) {
	t.Parallel()

	client, requests := newTestClient(t, http.StatusOK,
		`{"data":[{"id":"proj_1","name":"Storefront"},{"id":"proj_2","name":"Mobile"}],"meta":{"total":2,"limit":50,"offset":0}}`)

	list, err := client.Projects.List(context.Background())
	require.NoError(t, err)

	require.Len(t, list.Data, 2)
	assert.Equal(t, "Storefront", list.Data[0].Name)

	require.Len(t, *requests, 1)
	assert.Equal(t, http.MethodGet, (*requests)[0].Method)
	assert.Equal(t, "/v1/projects", (*requests)[0].Path)
}

func TestErrorsPassThroughUnchanged(t *testing.T) {
	t.Parallel()

	client, _ := newTestClient(t, http.StatusUnauthorized, `{"error":"Invalid API Key"}`)

	_, err := client.Projects.List(context.Background())
	require.Error(t, err)

	apiErr := apierr.AsError(err)
	require.NotNil(t, apiErr)
	assert.Equal(t, apierr.CodeAuthentication, apiErr.Code)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Message, "Invalid API Key")
}

func TestClientConstructEvent(t *testing.T) {
	t.Parallel()

	client, err := flowpay.New(flowpay.Config{APIKey: "sk", WebhookSecret: "whsec_42"})
	require.NoError(t, err)

	payload := []byte(`{"id":"evt_1","type":"payment.succeeded"}`)
	ts := time.Now().Unix()
	header := webhook.EncodeSignatureHeader(ts, webhook.Sign("whsec_42", ts, payload))

	event, err := client.ConstructEvent(payload, header)
	require.NoError(t, err)
	assert.Equal(t, "evt_1", event.ID)

	_, err = client.ConstructEvent(payload, "t=1,v1=bogus", webhook.WithTolerance(0))
	require.ErrorIs(t, err, webhook.ErrSignatureMismatch)
}
