package payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

func TestCreateOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/orders", r.URL.Path)

		user, pass, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "key_id", user)
		assert.Equal(t, "key_secret", pass)

		var req CreateOrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, int64(28000), req.Amount)
		assert.Equal(t, "INR", req.Currency)
		assert.Equal(t, "rcpt-1", req.Receipt)

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(Order{ID: "order_123", Amount: req.Amount, Currency: req.Currency, Receipt: req.Receipt, Status: "created"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key_id", "key_secret", time.Second, logger.NewNop())
	order, err := c.CreateOrder(context.Background(), 28000, "INR", "rcpt-1")
	require.NoError(t, err)
	assert.Equal(t, "order_123", order.ID)
}

func TestCreateOrder_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "gateway error", status: http.StatusBadRequest, body: `{"error":{"code":"BAD_REQUEST_ERROR","description":"amount too small"}}`, wantErr: ErrInvalidResponse},
		{name: "server error", status: http.StatusBadGateway, body: "oops", wantErr: ErrInvalidResponse},
		{name: "empty id", status: http.StatusOK, body: `{"id":""}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "k", "s", time.Second, logger.NewNop())
			_, err := c.CreateOrder(context.Background(), 100, "INR", "r")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreateOrder_NonPositiveAmount(t *testing.T) {
	c := NewClient("http://unused", "k", "s", time.Second, logger.NewNop())
	_, err := c.CreateOrder(context.Background(), 0, "INR", "r")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestVerifySignature(t *testing.T) {
	c := NewClient("http://unused", "k", "topsecret", time.Second, logger.NewNop())
	sig := Sign("topsecret", "order_1", "pay_1")

	assert.True(t, c.VerifySignature("order_1", "pay_1", sig))
	assert.False(t, c.VerifySignature("order_1", "pay_2", sig))
	assert.False(t, c.VerifySignature("order_1", "pay_1", Sign("other", "order_1", "pay_1")))
	assert.False(t, c.VerifySignature("order_1", "pay_1", ""))
}
