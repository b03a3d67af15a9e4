package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/mailer"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

type MockEmail struct {
	mock.Mock
}

func (m *MockEmail) Send(ctx context.Context, msg mailer.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

type MockWhatsApp struct {
	mock.Mock
}

func (m *MockWhatsApp) SendText(ctx context.Context, to, body string) (string, error) {
	args := m.Called(ctx, to, body)
	return args.String(0), args.Error(1)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncNotification(channel, result string) {
	m.Called(channel, result)
}

func newDispatcher(t *testing.T) (*Dispatcher, *MockEmail, *MockWhatsApp, *MockMetrics) {
	email := new(MockEmail)
	wa := new(MockWhatsApp)
	metrics := new(MockMetrics)
	d, err := NewDispatcher(email, wa, metrics, Config{
		VenueName:  "PlayZone",
		AdminEmail: "admin@playzone.test",
	}, logger.NewNop())
	require.NoError(t, err)
	return d, email, wa, metrics
}

func confirmedEvent() domain.NotificationEvent {
	return domain.NotificationEvent{
		Type:       domain.EventBookingConfirmed,
		Reference:  "PZ-000042",
		Name:       "Anna",
		Email:      "anna@example.com",
		Phone:      "+919876543210",
		Date:       "2025-06-12",
		SlotLabel:  "10:00-12:00",
		Children:   2,
		Total:      "280.00",
		OccurredAt: time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestDispatch_BookingConfirmedWithQR(t *testing.T) {
	d, email, wa, metrics := newDispatcher(t)

	email.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.Subject == "Booking PZ-000042 confirmed" &&
			len(msg.To) == 1 && msg.To[0] == "anna@example.com" &&
			strings.Contains(msg.HTML, "cid:"+qrContentID) &&
			strings.Contains(msg.Text, "Time: 10:00-12:00") &&
			len(msg.Inline) == 1 && msg.Inline[0].ContentType == "image/png" && len(msg.Inline[0].Data) > 0
	})).Return(nil).Once()
	wa.On("SendText", mock.Anything, "+919876543210", mock.MatchedBy(func(body string) bool {
		return strings.HasPrefix(body, "PlayZone: booking PZ-000042 confirmed")
	})).Return("wamid.1", nil).Once()
	metrics.On("IncNotification", ChannelEmail, "sent").Return().Once()
	metrics.On("IncNotification", ChannelWhatsApp, "sent").Return().Once()

	require.NoError(t, d.Dispatch(context.Background(), confirmedEvent()))

	email.AssertExpectations(t)
	wa.AssertExpectations(t)
	metrics.AssertExpectations(t)
}

func TestDispatch_FailuresAreLoggedNotReturned(t *testing.T) {
	d, email, wa, metrics := newDispatcher(t)

	email.On("Send", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Once()
	wa.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("api down")).Once()
	metrics.On("IncNotification", ChannelEmail, "failed").Return().Once()
	metrics.On("IncNotification", ChannelWhatsApp, "failed").Return().Once()

	err := d.Dispatch(context.Background(), confirmedEvent())

	assert.NoError(t, err)
	metrics.AssertExpectations(t)
}

func TestDispatch_EnquiryAdminCopy(t *testing.T) {
	d, email, wa, metrics := newDispatcher(t)

	event := domain.NotificationEvent{
		Type:      domain.EventEnquiryReceived,
		Reference: "EQ-5",
		Name:      "Boris",
		Email:     "boris@example.com",
		Extra:     map[string]string{"message": "Do you host <b>parties</b>?"},
	}

	email.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To[0] == "boris@example.com" && !strings.HasPrefix(msg.Subject, "[admin]") &&
			strings.Contains(msg.HTML, "&lt;b&gt;parties&lt;/b&gt;")
	})).Return(nil).Once()
	email.On("Send", mock.Anything, mock.MatchedBy(func(msg mailer.Message) bool {
		return msg.To[0] == "admin@playzone.test" && strings.HasPrefix(msg.Subject, "[admin]") && len(msg.Inline) == 0
	})).Return(nil).Once()
	metrics.On("IncNotification", ChannelEmail, "sent").Return().Twice()

	require.NoError(t, d.Dispatch(context.Background(), event))

	email.AssertExpectations(t)
	wa.AssertNotCalled(t, "SendText", mock.Anything, mock.Anything, mock.Anything)
}

func TestDispatch_DisabledChannels(t *testing.T) {
	metrics := new(MockMetrics)
	d, err := NewDispatcher(nil, nil, metrics, Config{VenueName: "PlayZone"}, logger.NewNop())
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(context.Background(), confirmedEvent()))
	metrics.AssertNotCalled(t, "IncNotification", mock.Anything, mock.Anything)
}

func TestDispatch_UnknownType(t *testing.T) {
	d, _, _, _ := newDispatcher(t)

	err := d.Dispatch(context.Background(), domain.NotificationEvent{Type: "bogus", Reference: "X"})

	assert.Error(t, err)
}

func TestPublish_Inline(t *testing.T) {
	d, email, wa, metrics := newDispatcher(t)
	email.On("Send", mock.Anything, mock.Anything).Return(nil)
	wa.On("SendText", mock.Anything, mock.Anything, mock.Anything).Return("id", nil)
	metrics.On("IncNotification", mock.Anything, mock.Anything).Return()

	require.NoError(t, d.Publish(context.Background(), confirmedEvent()))
	d.Wait()

	email.AssertNumberOfCalls(t, "Send", 1)
	wa.AssertNumberOfCalls(t, "SendText", 1)
}

func TestAllEventTypesRender(t *testing.T) {
	sets, err := loadTemplates()
	require.NoError(t, err)

	for _, eventType := range []domain.EventType{
		domain.EventBookingPending, domain.EventBookingConfirmed, domain.EventBookingCancelled,
		domain.EventPartyRequested, domain.EventPartyUpdated, domain.EventEnquiryReceived,
	} {
		set, ok := sets[eventType]
		require.True(t, ok, eventType)

		msg, err := renderEmail(set, templateData{Event: domain.NotificationEvent{Type: eventType, Reference: "R-1"}, Venue: "PlayZone"})
		require.NoError(t, err, eventType)
		assert.NotEmpty(t, msg.Subject)
	}
}

func TestEntryPassPayload(t *testing.T) {
	assert.Equal(t, "PZ-000042|2025-06-12|10:00-12:00|2", EntryPassPayload(confirmedEvent()))
}
