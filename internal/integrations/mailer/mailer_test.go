package mailer

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/mail"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

func newTestMailer(send sendFunc) *Mailer {
	m := New("smtp.example.com", 587, "user", "pass", "PlayZone <noreply@example.com>", logger.NewNop())
	m.send = send
	m.now = func() time.Time { return time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC) }
	return m
}

func TestBuild_Structure(t *testing.T) {
	m := newTestMailer(nil)

	raw, err := m.Build(Message{
		To:      []string{"anna@example.com"},
		Subject: "Бронирование PZ-000042 подтверждено",
		Text:    "plain body",
		HTML:    `<p>html body</p><img src="cid:qr">`,
		Inline:  []Inline{{ContentID: "qr", Filename: "pass.png", ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}},
	})
	require.NoError(t, err)

	parsed, err := mail.ReadMessage(bytes.NewReader(raw))
	require.NoError(t, err)

	dec := new(mime.WordDecoder)
	subject, err := dec.DecodeHeader(parsed.Header.Get("Subject"))
	require.NoError(t, err)
	assert.Equal(t, "Бронирование PZ-000042 подтверждено", subject)

	mediaType, params, err := mime.ParseMediaType(parsed.Header.Get("Content-Type"))
	require.NoError(t, err)
	assert.Equal(t, "multipart/related", mediaType)

	reader := multipart.NewReader(parsed.Body, params["boundary"])

	first, err := reader.NextPart()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.Header.Get("Content-Type"), "multipart/alternative"))

	second, err := reader.NextPart()
	require.NoError(t, err)
	assert.Equal(t, "<qr>", second.Header.Get("Content-Id"))
	assert.Equal(t, "image/png", second.Header.Get("Content-Type"))

	_, err = reader.NextPart()
	assert.ErrorIs(t, err, io.EOF)
}

func TestSend(t *testing.T) {
	var gotAddr, gotFrom string
	var gotTo []string
	var gotAuth smtp.Auth
	m := newTestMailer(func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotAuth, gotFrom, gotTo = addr, a, from, to
		return nil
	})

	err := m.Send(context.Background(), Message{To: []string{"a@example.com"}, Subject: "hi", Text: "body"})

	require.NoError(t, err)
	assert.Equal(t, "smtp.example.com:587", gotAddr)
	assert.Equal(t, "PlayZone <noreply@example.com>", gotFrom)
	assert.Equal(t, []string{"a@example.com"}, gotTo)
	assert.NotNil(t, gotAuth)
}

func TestSend_Errors(t *testing.T) {
	m := newTestMailer(func(string, smtp.Auth, string, []string, []byte) error {
		return errors.New("connection refused")
	})

	err := m.Send(context.Background(), Message{To: []string{"a@example.com"}, Text: "body"})
	assert.ErrorIs(t, err, ErrSend)

	err = m.Send(context.Background(), Message{Text: "body"})
	assert.ErrorIs(t, err, ErrInvalidMessage)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = m.Send(ctx, Message{To: []string{"a@example.com"}, Text: "body"})
	assert.ErrorIs(t, err, ErrSend)
}
