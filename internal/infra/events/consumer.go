package events

import (
	"context"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

// Handler обработчик события; ошибка логируется, сообщение не перечитывается
type Handler func(ctx context.Context, event domain.NotificationEvent) error

// Consumer читает события уведомлений из kafka в группе
type Consumer struct {
	reader *kafka.Reader
	logger Logger
}

func NewConsumer(brokers []string, groupID, topic string, logger Logger) *Consumer {
	return &Consumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:           brokers,
			GroupID:           groupID,
			Topic:             topic,
			HeartbeatInterval: 3 * time.Second,
			SessionTimeout:    30 * time.Second,
		}),
		logger: logger,
	}
}

func (c *Consumer) Close() error {
	if c == nil || c.reader == nil {
		return nil
	}
	return c.reader.Close()
}

// Consume читает до отмены контекста. Битые сообщения пропускаются.
func (c *Consumer) Consume(ctx context.Context, handler Handler) error {
	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		c.handle(ctx, msg, handler)
	}
}

func (c *Consumer) handle(ctx context.Context, msg kafka.Message, handler Handler) {
	event, err := Decode(msg)
	if err != nil {
		c.logger.Warn("Consume: skip message at partition=%d offset=%d: %v", msg.Partition, msg.Offset, err)
		return
	}

	if err := handler(ctx, event); err != nil {
		c.logger.Error("Consume: handler failed for %s %s: %v", event.Type, event.Reference, err)
	}
}
