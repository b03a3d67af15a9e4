package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент WhatsApp Cloud API для текстовых уведомлений
type Client struct {
	baseURL       string
	phoneNumberID string
	token         string
	httpClient    *http.Client
	log           Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, phoneNumberID, token string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL:       strings.TrimRight(baseURL, "/"),
		phoneNumberID: phoneNumberID,
		token:         token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// SendText отправляет текст на номер to и возвращает id сообщения
func (c *Client) SendText(ctx context.Context, to, body string) (string, error) {
	recipient := NormalizePhone(to)
	if recipient == "" {
		return "", ErrInvalidRecipient
	}

	payload, err := json.Marshal(SendTextRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               recipient,
		Type:             "text",
		Text:             Text{Body: body},
	})
	if err != nil {
		return "", fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
	case http.StatusUnauthorized:
		return "", ErrUnauthorized
	default:
		raw, _ := io.ReadAll(resp.Body)
		var apiErr ErrorResponse
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error.Message != "" {
			return "", fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, apiErr.Error.Message)
		}
		return "", fmt.Errorf("%w: unexpected status code %d", ErrInvalidResponse, resp.StatusCode)
	}

	var sent SendResponse
	if err := json.NewDecoder(resp.Body).Decode(&sent); err != nil {
		return "", fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}
	if len(sent.Messages) == 0 {
		return "", fmt.Errorf("%w: no message id", ErrInvalidResponse)
	}

	c.log.Info("WhatsApp message sent: to=%s, id=%s", recipient, sent.Messages[0].ID)
	return sent.Messages[0].ID, nil
}

// NormalizePhone оставляет только цифры: API ждёт номер без "+" и пробелов
func NormalizePhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	if b.Len() < 8 {
		return ""
	}
	return b.String()
}
