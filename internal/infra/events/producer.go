package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

var (
	// ErrPublish не удалось записать событие в топик
	ErrPublish = errors.New("events: publish failed")

	// ErrDecode сообщение не является событием уведомления
	ErrDecode = errors.New("events: malformed message")
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Producer пишет события уведомлений в kafka
type Producer struct {
	writer *kafka.Writer
	topic  string
	logger Logger
}

func NewProducer(brokers []string, topic string, logger Logger) *Producer {
	return &Producer{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			BatchTimeout: 50 * time.Millisecond,
			RequiredAcks: kafka.RequireOne,
		},
		topic:  topic,
		logger: logger,
	}
}

// Publish проставляет ID события и пишет его с ключом Reference,
// чтобы события одного бронирования шли в одну партицию по порядку
func (p *Producer) Publish(ctx context.Context, event domain.NotificationEvent) error {
	message, err := Encode(&event)
	if err != nil {
		return err
	}

	if err := p.writer.WriteMessages(ctx, message); err != nil {
		p.logger.Error("Publish: failed to write %s for %s to %s: %v", event.Type, event.Reference, p.topic, err)
		return fmt.Errorf("%w: %v", ErrPublish, err)
	}

	p.logger.Info("Publish: %s for %s sent to %s, id=%s", event.Type, event.Reference, p.topic, event.ID)
	return nil
}

func (p *Producer) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}

// Encode готовит сообщение; пустой ID заполняется новым uuid
func Encode(event *domain.NotificationEvent) (kafka.Message, error) {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("%w: encode: %v", ErrPublish, err)
	}

	return kafka.Message{
		Key:   []byte(event.Reference),
		Value: data,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	}, nil
}

// Decode разбирает сообщение топика
func Decode(msg kafka.Message) (domain.NotificationEvent, error) {
	var event domain.NotificationEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return event, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if event.Type == "" || event.Reference == "" {
		return event, fmt.Errorf("%w: type and reference are required", ErrDecode)
	}
	return event, nil
}
