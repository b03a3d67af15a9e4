package whatsapp

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

func TestSendText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v19.0/12345/messages", r.URL.Path)
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))

		var req SendTextRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "whatsapp", req.MessagingProduct)
		assert.Equal(t, "919876543210", req.To)
		assert.Equal(t, "hello", req.Text.Body)

		_, _ = w.Write([]byte(`{"messages":[{"id":"wamid.1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/v19.0", "12345", "token", time.Second, logger.NewNop())
	id, err := c.SendText(context.Background(), "+91 98765 43210", "hello")

	require.NoError(t, err)
	assert.Equal(t, "wamid.1", id)
}

func TestSendText_Errors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "api error", status: http.StatusBadRequest, body: `{"error":{"message":"invalid parameter","code":100}}`, wantErr: ErrInvalidResponse},
		{name: "no messages", status: http.StatusOK, body: `{"messages":[]}`, wantErr: ErrInvalidResponse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c := NewClient(srv.URL, "1", "token", time.Second, logger.NewNop())
			_, err := c.SendText(context.Background(), "919876543210", "hi")
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "919876543210", NormalizePhone("+91 (987) 654-3210"))
	assert.Equal(t, "", NormalizePhone("12-34"))
	assert.Equal(t, "", NormalizePhone(""))
}

func TestSendText_InvalidRecipient(t *testing.T) {
	c := NewClient("http://localhost", "1", "token", time.Second, logger.NewNop())
	_, err := c.SendText(context.Background(), "abc", "hi")
	assert.ErrorIs(t, err, ErrInvalidRecipient)
}
