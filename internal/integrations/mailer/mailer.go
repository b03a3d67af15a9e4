package mailer

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"strings"
	"time"
)

var (
	// ErrInvalidMessage нет получателя или тела письма
	ErrInvalidMessage = errors.New("mailer: invalid message")

	// ErrSend ошибка SMTP
	ErrSend = errors.New("mailer: send failed")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Inline вложение, на которое ссылается HTML через cid:ContentID
type Inline struct {
	ContentID   string
	Filename    string
	ContentType string
	Data        []byte
}

// Message письмо: текстовая и HTML версии плюс встроенные картинки
type Message struct {
	To      []string
	Subject string
	Text    string
	HTML    string
	Inline  []Inline
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer отправка писем через SMTP
type Mailer struct {
	addr     string
	host     string
	username string
	password string
	from     string
	send     sendFunc
	now      func() time.Time
	log      Logger
}

func New(host string, port int, username, password, from string, log Logger) *Mailer {
	return &Mailer{
		addr:     fmt.Sprintf("%s:%d", host, port),
		host:     host,
		username: username,
		password: password,
		from:     from,
		send:     smtp.SendMail,
		now:      time.Now,
		log:      log,
	}
}

// Send собирает MIME письмо и отправляет его. net/smtp не принимает контекст,
// поэтому отменённый контекст проверяется только перед отправкой.
func (m *Mailer) Send(ctx context.Context, msg Message) error {
	if len(msg.To) == 0 || (msg.Text == "" && msg.HTML == "") {
		return ErrInvalidMessage
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	raw, err := m.Build(msg)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	if err := m.send(m.addr, auth, m.from, msg.To, raw); err != nil {
		m.log.Error("Mailer: failed to send %q to %v: %v", msg.Subject, msg.To, err)
		return fmt.Errorf("%w: %v", ErrSend, err)
	}

	m.log.Info("Mailer: sent %q to %v", msg.Subject, msg.To)
	return nil
}

// Build multipart/related с multipart/alternative внутри
func (m *Mailer) Build(msg Message) ([]byte, error) {
	var buf bytes.Buffer

	related := multipart.NewWriter(&buf)

	header := textproto.MIMEHeader{}
	header.Set("From", m.from)
	header.Set("To", strings.Join(msg.To, ", "))
	header.Set("Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	header.Set("Date", m.now().Format(time.RFC1123Z))
	header.Set("MIME-Version", "1.0")
	header.Set("Content-Type", "multipart/related; boundary="+related.Boundary())
	for key, values := range header {
		fmt.Fprintf(&buf, "%s: %s\r\n", key, values[0])
	}
	buf.WriteString("\r\n")

	var alt bytes.Buffer
	alternative := multipart.NewWriter(&alt)
	if msg.Text != "" {
		if err := writePart(alternative, "text/plain; charset=utf-8", []byte(msg.Text), nil); err != nil {
			return nil, err
		}
	}
	if msg.HTML != "" {
		if err := writePart(alternative, "text/html; charset=utf-8", []byte(msg.HTML), nil); err != nil {
			return nil, err
		}
	}
	if err := alternative.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	altHeader := textproto.MIMEHeader{}
	altHeader.Set("Content-Type", "multipart/alternative; boundary="+alternative.Boundary())
	altPart, err := related.CreatePart(altHeader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	if _, err := altPart.Write(alt.Bytes()); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	for _, in := range msg.Inline {
		extra := textproto.MIMEHeader{}
		extra.Set("Content-ID", "<"+in.ContentID+">")
		extra.Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", in.Filename))
		if err := writePart(related, in.ContentType, in.Data, extra); err != nil {
			return nil, err
		}
	}

	if err := related.Close(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return buf.Bytes(), nil
}

// writePart часть в base64 с переносом строк по 76 символов
func writePart(w *multipart.Writer, contentType string, data []byte, extra textproto.MIMEHeader) error {
	h := textproto.MIMEHeader{}
	h.Set("Content-Type", contentType)
	h.Set("Content-Transfer-Encoding", "base64")
	for k, v := range extra {
		h[k] = v
	}

	part, err := w.CreatePart(h)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}

	encoded := base64.StdEncoding.EncodeToString(data)
	for len(encoded) > 76 {
		if _, err := part.Write([]byte(encoded[:76] + "\r\n")); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
		}
		encoded = encoded[76:]
	}
	if _, err := part.Write([]byte(encoded + "\r\n")); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidMessage, err)
	}
	return nil
}
