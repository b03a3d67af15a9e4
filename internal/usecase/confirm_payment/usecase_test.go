package confirm_payment

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/payment"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/ptr"
	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

const secret = "test_secret"

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockTimeSlotRepository struct {
	mock.Mock
}

func (m *MockTimeSlotRepository) GetByID(ctx context.Context, id int64) (*domain.TimeSlot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TimeSlot), args.Error(1)
}

type MockRedeemer struct {
	mock.Mock
}

func (m *MockRedeemer) Redeem(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, event domain.NotificationEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncBooking(status string) {
	m.Called(status)
}

// hmacVerifier проверяет подпись тем же алгоритмом, что и клиент шлюза
type hmacVerifier struct{}

func (hmacVerifier) VerifySignature(orderID, paymentID, signature string) bool {
	return payment.Sign(secret, orderID, paymentID) == signature
}

type passThroughTx struct{}

func (passThroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var now = time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

type deps struct {
	bookings  *MockBookingRepository
	slots     *MockTimeSlotRepository
	redeemer  *MockRedeemer
	publisher *MockPublisher
	metrics   *MockMetrics
}

func newUseCase() (*UseCase, *deps) {
	d := &deps{
		bookings:  new(MockBookingRepository),
		slots:     new(MockTimeSlotRepository),
		redeemer:  new(MockRedeemer),
		publisher: new(MockPublisher),
		metrics:   new(MockMetrics),
	}
	uc := NewUseCase(d.bookings, d.slots, hmacVerifier{}, d.redeemer, d.publisher, d.metrics, passThroughTx{}, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc, d
}

func pendingBooking() *domain.Booking {
	return &domain.Booking{
		ID:               42,
		UserID:           7,
		TimeSlotID:       2,
		BookingDate:      time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		NumberOfChildren: 2,
		ChildrenAges:     []int64{4, 6},
		Status:           domain.StatusPending,
		PaymentStatus:    domain.PaymentUnpaid,
		TotalAmount:      decimal.NewFromInt(280),
		VoucherID:        ptr.Ptr(int64(5)),
		PaymentOrderID:   ptr.Ptr("order_1"),
		ContactName:      "Anna",
	}
}

func signedRequest() *Request {
	return &Request{
		Actor:     domain.Actor{UserID: 7, Role: domain.RoleCustomer},
		BookingID: 42,
		OrderID:   "order_1",
		PaymentID: "pay_1",
		Signature: payment.Sign(secret, "order_1", "pay_1"),
	}
}

func TestExecute_ConfirmsAndRedeemsOnce(t *testing.T) {
	uc, d := newUseCase()

	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	d.bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Status == domain.StatusConfirmed && b.PaymentStatus == domain.PaymentPaid &&
			b.PaymentID != nil && *b.PaymentID == "pay_1" && b.UpdatedAt.Equal(now)
	})).Return(nil)
	d.redeemer.On("Redeem", mock.Anything, mock.Anything).Return(nil).Once()
	d.metrics.On("IncBooking", "confirmed").Return()
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(&domain.TimeSlot{
		ID: 2, StartTime: types.MustTimeString("10:00"), EndTime: types.MustTimeString("12:00"),
	}, nil)
	d.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.EventBookingConfirmed && e.SlotLabel == "10:00-12:00"
	})).Return(nil)

	resp, err := uc.Execute(context.Background(), signedRequest())

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.False(t, resp.AlreadyConfirmed)
	d.redeemer.AssertNumberOfCalls(t, "Redeem", 1)
	d.publisher.AssertExpectations(t)
}

func TestExecute_RepeatedVerifyIsIdempotent(t *testing.T) {
	uc, d := newUseCase()

	confirmed := pendingBooking()
	confirmed.Status = domain.StatusConfirmed
	confirmed.PaymentStatus = domain.PaymentPaid
	confirmed.PaymentID = ptr.Ptr("pay_1")
	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(confirmed, nil)

	resp, err := uc.Execute(context.Background(), signedRequest())

	require.NoError(t, err)
	assert.True(t, resp.AlreadyConfirmed)
	assert.Equal(t, "confirmed", resp.Status)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	d.redeemer.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
	d.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	d.metrics.AssertNotCalled(t, "IncBooking", mock.Anything)
}

func TestExecute_BadSignature(t *testing.T) {
	uc, d := newUseCase()
	req := signedRequest()
	req.Signature = payment.Sign("other_secret", "order_1", "pay_1")

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidSignature)
	d.bookings.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestExecute_TerminalStatusRejected(t *testing.T) {
	for _, status := range []domain.BookingStatus{domain.StatusCancelled, domain.StatusCompleted} {
		t.Run(string(status), func(t *testing.T) {
			uc, d := newUseCase()
			b := pendingBooking()
			b.Status = status
			d.bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

			_, err := uc.Execute(context.Background(), signedRequest())

			assert.ErrorIs(t, err, ErrInvalidStatus)
			d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			d.redeemer.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_OrderMismatch(t *testing.T) {
	uc, d := newUseCase()
	b := pendingBooking()
	b.PaymentOrderID = ptr.Ptr("order_other")
	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(b, nil)

	_, err := uc.Execute(context.Background(), signedRequest())

	assert.ErrorIs(t, err, ErrOrderMismatch)
}

func TestExecute_ForeignBooking(t *testing.T) {
	uc, d := newUseCase()
	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	req := signedRequest()
	req.Actor = domain.Actor{UserID: 99, Role: domain.RoleCustomer}

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotFound(t *testing.T) {
	uc, d := newUseCase()
	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(nil, bookingRepo.ErrBookingNotFound)

	_, err := uc.Execute(context.Background(), signedRequest())

	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestExecute_VoucherLimitKeepsConfirmation(t *testing.T) {
	uc, d := newUseCase()

	d.bookings.On("GetByID", mock.Anything, int64(42)).Return(pendingBooking(), nil)
	d.bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	d.redeemer.On("Redeem", mock.Anything, mock.Anything).Return(domain.ErrVoucherUsageLimit)
	d.metrics.On("IncBooking", "confirmed").Return()
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(nil, errors.New("db down"))
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

	resp, err := uc.Execute(context.Background(), signedRequest())

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
}

func TestExecute_Validation(t *testing.T) {
	uc, _ := newUseCase()
	req := signedRequest()
	req.PaymentID = ""

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidInput)
}
