package notifier

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/skip2/go-qrcode"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/mailer"
)

const (
	ChannelEmail    = "email"
	ChannelWhatsApp = "whatsapp"

	resultSent   = "sent"
	resultFailed = "failed"

	qrContentID = "entry-pass"
	qrSize      = 256
)

// Config получатели копий и название площадки в шаблонах
type Config struct {
	VenueName  string
	AdminEmail string
	AdminPhone string
}

// Dispatcher рендерит уведомления и отправляет их по email и WhatsApp.
// Ошибки отправки логируются и считаются в метриках, повторов нет.
type Dispatcher struct {
	email     EmailSender    // nil, если SMTP выключен
	whatsapp  WhatsAppSender // nil, если WhatsApp выключен
	metrics   Metrics
	cfg       Config
	templates map[domain.EventType]*templateSet
	logger    Logger

	wg sync.WaitGroup
}

func NewDispatcher(email EmailSender, whatsapp WhatsAppSender, metrics Metrics, cfg Config, logger Logger) (*Dispatcher, error) {
	templates, err := loadTemplates()
	if err != nil {
		return nil, fmt.Errorf("notifier: parse templates: %w", err)
	}
	return &Dispatcher{
		email:     email,
		whatsapp:  whatsapp,
		metrics:   metrics,
		cfg:       cfg,
		templates: templates,
		logger:    logger,
	}, nil
}

// Publish inline-транспорт: отправка в фоне, запрос не ждёт SMTP
func (d *Dispatcher) Publish(_ context.Context, event domain.NotificationEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.Dispatch(context.Background(), event); err != nil {
			d.logger.Error("Notifier: %v", err)
		}
	}()
	return nil
}

// Wait дожидается фоновых отправок (остановка сервера, тесты)
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Dispatch отправляет уведомление по всем каналам. Ошибку возвращает только неизвестный тип события.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.NotificationEvent) error {
	set, ok := d.templates[event.Type]
	if !ok {
		return fmt.Errorf("notifier: unknown event type %q (%s)", event.Type, event.Reference)
	}

	data := templateData{Event: event, Venue: d.cfg.VenueName}

	var inline []mailer.Inline
	if event.Type == domain.EventBookingConfirmed {
		png, err := qrcode.Encode(EntryPassPayload(event), qrcode.Medium, qrSize)
		if err != nil {
			d.logger.Warn("Notifier: failed to render QR for %s: %v", event.Reference, err)
		} else {
			data.QRContentID = qrContentID
			inline = append(inline, mailer.Inline{
				ContentID:   qrContentID,
				Filename:    event.Reference + ".png",
				ContentType: "image/png",
				Data:        png,
			})
		}
	}

	if event.Email != "" {
		d.sendEmail(ctx, set, data, []string{event.Email}, inline)
	}
	if event.Phone != "" && set.whatsapp != nil {
		d.sendWhatsApp(ctx, set, data, event.Phone)
	}

	if set.admin {
		if d.cfg.AdminEmail != "" {
			d.sendEmail(ctx, set, adminData(data), []string{d.cfg.AdminEmail}, nil)
		}
		if d.cfg.AdminPhone != "" && set.whatsapp != nil {
			d.sendWhatsApp(ctx, set, adminData(data), d.cfg.AdminPhone)
		}
	}

	return nil
}

// EntryPassPayload содержимое QR на входном билете
func EntryPassPayload(event domain.NotificationEvent) string {
	return fmt.Sprintf("%s|%s|%s|%d", event.Reference, event.Date, event.SlotLabel, event.Children)
}

type templateData struct {
	Event       domain.NotificationEvent
	Venue       string
	QRContentID string
	Admin       bool
}

func adminData(data templateData) templateData {
	data.Admin = true
	data.QRContentID = ""
	return data
}

func (d *Dispatcher) sendEmail(ctx context.Context, set *templateSet, data templateData, to []string, inline []mailer.Inline) {
	if d.email == nil {
		return
	}

	msg, err := renderEmail(set, data)
	if err != nil {
		d.logger.Error("Notifier: failed to render email %s for %s: %v", data.Event.Type, data.Event.Reference, err)
		d.metrics.IncNotification(ChannelEmail, resultFailed)
		return
	}
	msg.To = to
	msg.Inline = inline

	if err := d.email.Send(ctx, msg); err != nil {
		d.logger.Error("Notifier: email %s for %s to %v failed: %v", data.Event.Type, data.Event.Reference, to, err)
		d.metrics.IncNotification(ChannelEmail, resultFailed)
		return
	}

	d.metrics.IncNotification(ChannelEmail, resultSent)
	d.logger.Info("Notifier: email %s for %s sent to %v", data.Event.Type, data.Event.Reference, to)
}

func (d *Dispatcher) sendWhatsApp(ctx context.Context, set *templateSet, data templateData, phone string) {
	if d.whatsapp == nil {
		return
	}

	var body bytes.Buffer
	if err := set.whatsapp.Execute(&body, data); err != nil {
		d.logger.Error("Notifier: failed to render whatsapp %s for %s: %v", data.Event.Type, data.Event.Reference, err)
		d.metrics.IncNotification(ChannelWhatsApp, resultFailed)
		return
	}

	id, err := d.whatsapp.SendText(ctx, phone, body.String())
	if err != nil {
		d.logger.Error("Notifier: whatsapp %s for %s failed: %v", data.Event.Type, data.Event.Reference, err)
		d.metrics.IncNotification(ChannelWhatsApp, resultFailed)
		return
	}

	d.metrics.IncNotification(ChannelWhatsApp, resultSent)
	d.logger.Info("Notifier: whatsapp %s for %s sent, id=%s", data.Event.Type, data.Event.Reference, id)
}

func renderEmail(set *templateSet, data templateData) (mailer.Message, error) {
	var subject, text, html bytes.Buffer

	if err := set.subject.Execute(&subject, data); err != nil {
		return mailer.Message{}, err
	}
	if err := set.text.Execute(&text, data); err != nil {
		return mailer.Message{}, err
	}
	if err := set.html.Execute(&html, data); err != nil {
		return mailer.Message{}, err
	}

	s := subject.String()
	if data.Admin {
		s = "[admin] " + s
	}
	return mailer.Message{Subject: s, Text: text.String(), HTML: html.String()}, nil
}
