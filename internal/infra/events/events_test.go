package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

func sampleEvent() domain.NotificationEvent {
	return domain.NotificationEvent{
		Type:       domain.EventBookingConfirmed,
		Reference:  "PZ-000042",
		Name:       "Anna",
		Email:      "anna@example.com",
		Date:       "2025-06-12",
		SlotLabel:  "10:00-12:00",
		Children:   2,
		Total:      "280.00",
		OccurredAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestEncode_AssignsIDAndKey(t *testing.T) {
	event := sampleEvent()

	msg, err := Encode(&event)

	require.NoError(t, err)
	assert.NotEmpty(t, event.ID)
	assert.Equal(t, []byte("PZ-000042"), msg.Key)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "booking_confirmed", string(msg.Headers[0].Value))

	decoded, err := Decode(msg)
	require.NoError(t, err)
	assert.Equal(t, event.ID, decoded.ID)
	assert.Equal(t, event.SlotLabel, decoded.SlotLabel)
	assert.True(t, event.OccurredAt.Equal(decoded.OccurredAt))
}

func TestEncode_KeepsExistingID(t *testing.T) {
	event := sampleEvent()
	event.ID = "fixed"

	_, err := Encode(&event)

	require.NoError(t, err)
	assert.Equal(t, "fixed", event.ID)
}

func TestDecode_Malformed(t *testing.T) {
	_, err := Decode(kafka.Message{Value: []byte("{not json")})
	assert.ErrorIs(t, err, ErrDecode)

	_, err = Decode(kafka.Message{Value: []byte(`{"type":"booking_confirmed"}`)})
	assert.ErrorIs(t, err, ErrDecode)
}

func TestConsumer_HandleSkipsBadMessages(t *testing.T) {
	c := &Consumer{logger: logger.NewNop()}
	calls := 0
	handler := func(ctx context.Context, event domain.NotificationEvent) error {
		calls++
		return errors.New("smtp down")
	}

	c.handle(context.Background(), kafka.Message{Value: []byte("garbage")}, handler)
	assert.Equal(t, 0, calls)

	event := sampleEvent()
	msg, err := Encode(&event)
	require.NoError(t, err)

	c.handle(context.Background(), msg, handler)
	assert.Equal(t, 1, calls)
}
