package create_booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	timeslotRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/timeslot"
	"github.com/m04kA/PlayZone-BookingService/internal/integrations/payment"
	"github.com/m04kA/PlayZone-BookingService/internal/usecase/check_availability"
	"github.com/m04kA/PlayZone-BookingService/pkg/dbmetrics"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/ptr"
	"github.com/m04kA/PlayZone-BookingService/pkg/txmanager"
	"github.com/m04kA/PlayZone-BookingService/pkg/types"
)

// Mock implementations

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	args := m.Called(ctx, booking)
	if fn, ok := args.Get(0).(func(*domain.Booking) *domain.Booking); ok {
		return fn(booking), args.Error(1)
	}
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockPackageRepository struct {
	mock.Mock
}

func (m *MockPackageRepository) GetByID(ctx context.Context, id int64) (*domain.Package, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Package), args.Error(1)
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

type MockAvailability struct {
	mock.Mock
}

func (m *MockAvailability) Check(ctx context.Context, date time.Time, timeSlotID int64, children int) (check_availability.Result, error) {
	args := m.Called(ctx, date, timeSlotID, children)
	return args.Get(0).(check_availability.Result), args.Error(1)
}

type MockVoucherService struct {
	mock.Mock
}

func (m *MockVoucherService) GetValid(ctx context.Context, code string) (*domain.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherService) Redeem(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (*payment.Order, error) {
	args := m.Called(ctx, amountMinor, currency, receipt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Order), args.Error(1)
}

func (m *MockGateway) KeyID() string {
	return "key_test"
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

// passThroughTx выполняет функцию без реальной транзакции
type passThroughTx struct{}

func (passThroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeBeginner открывает транзакции-заглушки для настоящего txmanager
type fakeBeginner struct {
	begun int
}

type fakeTx struct {
	dbmetrics.DBExecutor
}

func (fakeTx) Commit() error   { return nil }
func (fakeTx) Rollback() error { return nil }

func (b *fakeBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	b.begun++
	return fakeTx{}, nil
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

// Test helpers

var now = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

type deps struct {
	bookings  *MockBookingRepository
	packages  *MockPackageRepository
	slots     *MockTimeSlotRepository
	avail     *MockAvailability
	vouchers  *MockVoucherService
	gateway   *MockGateway
	publisher *MockPublisher
	metrics   *MockMetrics
}

func newUseCase(cfg Config) (*UseCase, *deps) {
	d := &deps{
		bookings:  new(MockBookingRepository),
		packages:  new(MockPackageRepository),
		slots:     new(MockTimeSlotRepository),
		avail:     new(MockAvailability),
		vouchers:  new(MockVoucherService),
		gateway:   new(MockGateway),
		publisher: new(MockPublisher),
		metrics:   new(MockMetrics),
	}
	uc := NewUseCase(d.bookings, d.packages, d.slots, d.avail, d.vouchers, d.gateway, d.publisher, d.metrics,
		passThroughTx{}, cfg, logger.NewNop())
	uc.timeProvider = fixedTime{t: now}
	return uc, d
}

func onlineConfig() Config {
	return Config{PaymentMode: PaymentModeOnline, AdvanceDays: 30, Currency: "INR"}
}

func validRequest() *Request {
	return &Request{
		Actor:        domain.Actor{UserID: 7, Role: domain.RoleCustomer},
		PackageID:    1,
		TimeSlotID:   2,
		Date:         time.Date(2025, 6, 12, 0, 0, 0, 0, time.UTC),
		Children:     2,
		ChildrenAges: []int64{4, 6},
		ContactName:  "Anna",
		ContactPhone: ptr.Ptr("+911234567890"),
	}
}

func walkIn() *domain.Package {
	return &domain.Package{ID: 1, Name: "Walk-in", Type: domain.PackageWalkIn, Price: decimal.NewFromInt(150), DurationMinutes: 120, IsActive: true}
}

func morningSlot() *domain.TimeSlot {
	return &domain.TimeSlot{
		ID:          2,
		StartTime:   types.MustTimeString("10:00"),
		EndTime:     types.MustTimeString("12:00"),
		MaxCapacity: 20,
		IsActive:    true,
	}
}

// expectCreate эмулирует RETURNING id, created_at
func expectCreate(d *deps, id int64) {
	d.bookings.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).
		Return(func(b *domain.Booking) *domain.Booking {
			created := *b
			created.ID = id
			created.CreatedAt = now
			return &created
		}, nil)
}

// Tests

func TestExecute_PendingWithPaymentOrder(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	req := validRequest()

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 20, MaxCapacity: 20}, nil)
	expectCreate(d, 42)
	d.metrics.On("IncBooking", "pending").Return()
	d.gateway.On("CreateOrder", mock.Anything, int64(30000), "INR", mock.AnythingOfType("string")).
		Return(&payment.Order{ID: "order_1", Amount: 30000, Currency: "INR"}, nil)
	d.bookings.On("Update", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.PaymentOrderID != nil && *b.PaymentOrderID == "order_1"
	})).Return(nil)
	d.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.EventBookingPending && e.Reference == "PZ-000042"
	})).Return(nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, "unpaid", resp.PaymentStatus)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Total))
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "order_1", resp.Payment.OrderID)
	assert.Equal(t, "key_test", resp.Payment.KeyID)
	assert.Equal(t, "10:00-12:00", resp.SlotLabel)
	d.vouchers.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
	d.bookings.AssertExpectations(t)
	d.publisher.AssertExpectations(t)
}

func TestExecute_CapacityConflict(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	req := validRequest()

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: false, Remaining: 1, MaxCapacity: 20, Reason: check_availability.ReasonInsufficientCapacity}, nil)

	resp, err := uc.Execute(context.Background(), req)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrSlotNotAvailable)
	d.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	d.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_VoucherRejected(t *testing.T) {
	cases := []struct {
		name      string
		domainErr error
	}{
		{"expired", domain.ErrVoucherExpired},
		{"not found", domain.ErrVoucherNotFound},
		{"usage limit exceeded", domain.ErrVoucherUsageLimit},
		{"inactive", domain.ErrVoucherInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc, d := newUseCase(onlineConfig())
			req := validRequest()
			req.VoucherCode = ptr.Ptr("SUMMER")

			d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
			d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
			d.vouchers.On("GetValid", mock.Anything, "SUMMER").Return(nil, tc.domainErr)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, ErrInvalidVoucher)
			assert.ErrorIs(t, err, tc.domainErr)
			assert.Equal(t, tc.name, domain.VoucherRejectionReason(err))
			d.avail.AssertNotCalled(t, "Check", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_VenueModeConfirmsAndRedeems(t *testing.T) {
	cfg := onlineConfig()
	cfg.PaymentMode = PaymentModeVenue
	uc, d := newUseCase(cfg)
	req := validRequest()
	req.VoucherCode = ptr.Ptr("save20")

	voucher := &domain.Voucher{ID: 5, Code: "SAVE20", DiscountType: domain.DiscountFixed, DiscountValue: decimal.NewFromInt(20), IsActive: true}

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.vouchers.On("GetValid", mock.Anything, "save20").Return(voucher, nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 5, MaxCapacity: 20}, nil)
	expectCreate(d, 9)
	d.vouchers.On("Redeem", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == 9 && b.VoucherID != nil && *b.VoucherID == 5
	})).Return(nil).Once()
	d.metrics.On("IncBooking", "confirmed").Return()
	d.publisher.On("Publish", mock.Anything, mock.MatchedBy(func(e domain.NotificationEvent) bool {
		return e.Type == domain.EventBookingConfirmed
	})).Return(nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "offline", resp.PaymentStatus)
	assert.True(t, decimal.NewFromInt(280).Equal(resp.Total))
	assert.True(t, decimal.NewFromInt(20).Equal(resp.Discount))
	assert.Nil(t, resp.Payment)
	d.vouchers.AssertExpectations(t)
	d.gateway.AssertNotCalled(t, "CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecute_ZeroTotalConfirmed(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	req := validRequest()
	req.VoucherCode = ptr.Ptr("FREE")

	voucher := &domain.Voucher{ID: 3, Code: "FREE", DiscountType: domain.DiscountFixed, DiscountValue: decimal.NewFromInt(500), IsActive: true}

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.vouchers.On("GetValid", mock.Anything, "FREE").Return(voucher, nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 5, MaxCapacity: 20}, nil)
	expectCreate(d, 10)
	d.vouchers.On("Redeem", mock.Anything, mock.Anything).Return(nil)
	d.metrics.On("IncBooking", "confirmed").Return()
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "not_required", resp.PaymentStatus)
	assert.True(t, resp.Total.IsZero())
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Discount))
}

func TestExecute_RedeemLimitReachedRollsBack(t *testing.T) {
	cfg := onlineConfig()
	cfg.PaymentMode = PaymentModeVenue
	uc, d := newUseCase(cfg)
	req := validRequest()
	req.VoucherCode = ptr.Ptr("LAST")

	voucher := &domain.Voucher{ID: 4, Code: "LAST", DiscountType: domain.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), IsActive: true}

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.vouchers.On("GetValid", mock.Anything, "LAST").Return(voucher, nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 5, MaxCapacity: 20}, nil)
	expectCreate(d, 11)
	d.vouchers.On("Redeem", mock.Anything, mock.Anything).Return(domain.ErrVoucherUsageLimit)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrInvalidVoucher)
	assert.ErrorIs(t, err, domain.ErrVoucherUsageLimit)
	d.metrics.AssertNotCalled(t, "IncBooking", mock.Anything)
}

func TestExecute_AdminCreated(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	req := validRequest()
	req.AdminCreated = true
	req.Actor = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	req.UserID = ptr.Ptr(int64(77))

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 5, MaxCapacity: 20}, nil)
	expectCreate(d, 12)
	d.vouchers.On("Redeem", mock.Anything, mock.Anything).Return(nil)
	d.metrics.On("IncBooking", "confirmed").Return()
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, int64(77), resp.UserID)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, "offline", resp.PaymentStatus)
}

func TestExecute_AdminCreatedRequiresAdmin(t *testing.T) {
	uc, _ := newUseCase(onlineConfig())
	req := validRequest()
	req.AdminCreated = true

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_PaymentGatewayFailure(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	req := validRequest()

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 5, MaxCapacity: 20}, nil)
	expectCreate(d, 13)
	d.metrics.On("IncBooking", "pending").Return()
	d.gateway.On("CreateOrder", mock.Anything, int64(30000), "INR", mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrPaymentUnavailable)
	d.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestExecute_PackageChecks(t *testing.T) {
	t.Run("birthday package is booked through parties", func(t *testing.T) {
		uc, d := newUseCase(onlineConfig())
		pkg := walkIn()
		pkg.Type = domain.PackageBirthday
		d.packages.On("GetByID", mock.Anything, int64(1)).Return(pkg, nil)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPackageNotBookable)
	})

	t.Run("inactive package", func(t *testing.T) {
		uc, d := newUseCase(onlineConfig())
		pkg := walkIn()
		pkg.IsActive = false
		d.packages.On("GetByID", mock.Anything, int64(1)).Return(pkg, nil)

		_, err := uc.Execute(context.Background(), validRequest())
		assert.ErrorIs(t, err, ErrPackageNotBookable)
	})
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr error
	}{
		{"zero children", func(r *Request) { r.Children = 0; r.ChildrenAges = nil }, ErrInvalidInput},
		{"over children cap", func(r *Request) { r.Children = domain.MaxChildrenPerBooking + 1 }, ErrInvalidInput},
		{"ages mismatch", func(r *Request) { r.ChildrenAges = []int64{4} }, ErrInvalidInput},
		{"age out of range", func(r *Request) { r.ChildrenAges = []int64{4, 18} }, ErrInvalidInput},
		{"no contact", func(r *Request) { r.ContactPhone = nil }, ErrInvalidInput},
		{"no name", func(r *Request) { r.ContactName = "  " }, ErrInvalidInput},
		{"date in past", func(r *Request) { r.Date = now.AddDate(0, 0, -1) }, ErrInvalidDate},
		{"too far ahead", func(r *Request) { r.Date = now.AddDate(0, 0, 31) }, ErrDateTooFarInFuture},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, d := newUseCase(onlineConfig())
			req := validRequest()
			tt.mutate(req)

			_, err := uc.Execute(context.Background(), req)

			assert.ErrorIs(t, err, tt.wantErr)
			d.packages.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
		})
	}
}

func TestExecute_SlotAlreadyStartedToday(t *testing.T) {
	uc, d := newUseCase(onlineConfig())
	uc.timeProvider = fixedTime{t: time.Date(2025, 6, 12, 10, 30, 0, 0, time.UTC)}
	req := validRequest()

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)

	_, err := uc.Execute(context.Background(), req)

	assert.ErrorIs(t, err, ErrSlotAlreadyStarted)
}

func TestExecute_SerializationConflictRetried(t *testing.T) {
	cfg := onlineConfig()
	cfg.PaymentMode = PaymentModeVenue
	uc, d := newUseCase(cfg)
	beginner := &fakeBeginner{}
	uc.txManager = txmanager.NewTransactionManager(beginner)
	req := validRequest()

	// Конфликт сериализации, обёрнутый репозиторием слотов и калькулятором доступности
	conflict := fmt.Errorf("%w: failed to get time slot: %w", check_availability.ErrInternal,
		fmt.Errorf("%w: GetByID - scan slot: %w", timeslotRepo.ErrScanRow, &pq.Error{Code: "40001"}))

	d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
	d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{}, conflict).Once()
	d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
		Return(check_availability.Result{Available: true, Remaining: 18, MaxCapacity: 20}, nil).Once()
	expectCreate(d, 21)
	d.vouchers.On("Redeem", mock.Anything, mock.Anything).Return(nil)
	d.metrics.On("IncBooking", "confirmed").Return()
	d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

	resp, err := uc.Execute(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "confirmed", resp.Status)
	assert.Equal(t, 2, beginner.begun)
	d.avail.AssertNumberOfCalls(t, "Check", 2)
	d.bookings.AssertNumberOfCalls(t, "Create", 1)
}

func TestExecute_VenueTimezone(t *testing.T) {
	ist := time.FixedZone("IST", 5*60*60+30*60)

	t.Run("yesterday in venue time is in the past", func(t *testing.T) {
		cfg := onlineConfig()
		cfg.Location = ist
		uc, d := newUseCase(cfg)
		// 20:00 UTC 11 июня = 01:30 12 июня по IST
		uc.timeProvider = fixedTime{t: time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)}
		req := validRequest()
		req.Date = time.Date(2025, 6, 11, 0, 0, 0, 0, time.UTC)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrInvalidDate)
		d.packages.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})

	t.Run("slot start is compared in venue time", func(t *testing.T) {
		cfg := onlineConfig()
		cfg.Location = ist
		uc, d := newUseCase(cfg)
		// 05:00 UTC = 10:30 IST, слот 10:00 уже идёт
		uc.timeProvider = fixedTime{t: time.Date(2025, 6, 12, 5, 0, 0, 0, time.UTC)}
		req := validRequest()

		d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
		d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)

		_, err := uc.Execute(context.Background(), req)

		assert.ErrorIs(t, err, ErrSlotAlreadyStarted)
	})

	t.Run("early morning UTC is already today in venue time", func(t *testing.T) {
		cfg := onlineConfig()
		cfg.Location = ist
		cfg.PaymentMode = PaymentModeVenue
		uc, d := newUseCase(cfg)
		// 20:00 UTC 11 июня = 01:30 12 июня по IST, слот 10:00 ещё впереди
		uc.timeProvider = fixedTime{t: time.Date(2025, 6, 11, 20, 0, 0, 0, time.UTC)}
		req := validRequest()

		d.packages.On("GetByID", mock.Anything, int64(1)).Return(walkIn(), nil)
		d.slots.On("GetByID", mock.Anything, int64(2)).Return(morningSlot(), nil)
		d.avail.On("Check", mock.Anything, req.Date, int64(2), 2).
			Return(check_availability.Result{Available: true, Remaining: 18, MaxCapacity: 20}, nil)
		expectCreate(d, 22)
		d.vouchers.On("Redeem", mock.Anything, mock.Anything).Return(nil)
		d.metrics.On("IncBooking", "confirmed").Return()
		d.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)

		resp, err := uc.Execute(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "confirmed", resp.Status)
	})
}
