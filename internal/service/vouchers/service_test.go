package vouchers

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
	voucherRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/voucher"
	"github.com/m04kA/PlayZone-BookingService/internal/service/vouchers/models"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/ptr"
)

type MockVoucherRepository struct {
	mock.Mock
}

func (m *MockVoucherRepository) Create(ctx context.Context, v *domain.Voucher) (*domain.Voucher, error) {
	args := m.Called(ctx, v)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) GetByCode(ctx context.Context, code string) (*domain.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) List(ctx context.Context) ([]*domain.Voucher, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*domain.Voucher), args.Error(1)
}

func (m *MockVoucherRepository) Deactivate(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockVoucherRepository) IncrementUsage(ctx context.Context, voucherID int64) error {
	return m.Called(ctx, voucherID).Error(0)
}

func (m *MockVoucherRepository) CreateRedemption(ctx context.Context, r *domain.VoucherRedemption) (bool, error) {
	args := m.Called(ctx, r)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoucherRepository) DeleteRedemption(ctx context.Context, bookingID int64) error {
	return m.Called(ctx, bookingID).Error(0)
}

// memVoucherRepo хранит счётчик и погашения одного ваучера так же, как таблицы vouchers и voucher_redemptions
type memVoucherRepo struct {
	MockVoucherRepository
	usageLimit  int
	usedCount   int
	redemptions map[int64]int64 // booking_id -> voucher_id
}

func newMemVoucherRepo(limit, used int) *memVoucherRepo {
	return &memVoucherRepo{usageLimit: limit, usedCount: used, redemptions: map[int64]int64{}}
}

func (r *memVoucherRepo) IncrementUsage(_ context.Context, _ int64) error {
	if r.usedCount >= r.usageLimit {
		return voucherRepo.ErrUsageLimitReached
	}
	r.usedCount++
	return nil
}

func (r *memVoucherRepo) CreateRedemption(_ context.Context, red *domain.VoucherRedemption) (bool, error) {
	if _, ok := r.redemptions[red.BookingID]; ok {
		return false, nil
	}
	r.redemptions[red.BookingID] = red.VoucherID
	return true, nil
}

func (r *memVoucherRepo) DeleteRedemption(_ context.Context, bookingID int64) error {
	delete(r.redemptions, bookingID)
	return nil
}

type MockMetrics struct {
	mock.Mock
}

func (m *MockMetrics) IncVoucherRedemption() {
	m.Called()
}

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

var (
	now   = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	admin = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	user  = domain.Actor{UserID: 7, Role: domain.RoleCustomer}
)

func newService() (*Service, *MockVoucherRepository, *MockMetrics) {
	repo := &MockVoucherRepository{}
	metrics := &MockMetrics{}
	svc := NewService(repo, metrics, logger.NewNop())
	svc.timeProvider = fixedTime{t: now}
	return svc, repo, metrics
}

func TestCreate_NormalizesCode(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	repo.On("Create", ctx, mock.MatchedBy(func(v *domain.Voucher) bool {
		return v.Code == "SUMMER10" && v.IsActive && v.DiscountType == domain.DiscountPercentage
	})).Return(&domain.Voucher{ID: 3, Code: "SUMMER10", DiscountType: domain.DiscountPercentage}, nil)

	resp, err := svc.Create(ctx, admin, &models.CreateVoucherRequest{
		Code:          " summer10 ",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(10),
		MaxDiscount:   ptr.Ptr(decimal.NewFromInt(200)),
		ValidFrom:     now,
		ValidTill:     now.AddDate(0, 1, 0),
		UsageLimit:    ptr.Ptr(50),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.ID)
	repo.AssertExpectations(t)
}

func TestCreate_Validation(t *testing.T) {
	svc, repo, _ := newService()
	base := func() *models.CreateVoucherRequest {
		return &models.CreateVoucherRequest{
			Code:          "X",
			DiscountType:  "fixed",
			DiscountValue: decimal.NewFromInt(50),
			ValidFrom:     now,
			ValidTill:     now.Add(time.Hour),
		}
	}

	cases := map[string]func(r *models.CreateVoucherRequest){
		"empty code": func(r *models.CreateVoucherRequest) { r.Code = "  " },
		"bad type":   func(r *models.CreateVoucherRequest) { r.DiscountType = "bogo" },
		"zero value": func(r *models.CreateVoucherRequest) { r.DiscountValue = decimal.Zero },
		"percentage over 100": func(r *models.CreateVoucherRequest) {
			r.DiscountType = "percentage"
			r.DiscountValue = decimal.NewFromInt(101)
		},
		"max discount with fixed": func(r *models.CreateVoucherRequest) { r.MaxDiscount = ptr.Ptr(decimal.NewFromInt(10)) },
		"window inverted":         func(r *models.CreateVoucherRequest) { r.ValidTill = now.Add(-time.Hour) },
		"zero usage limit":        func(r *models.CreateVoucherRequest) { r.UsageLimit = ptr.Ptr(0) },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			req := base()
			mutate(req)
			_, err := svc.Create(context.Background(), admin, req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreate_Duplicate(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()
	repo.On("Create", ctx, mock.Anything).Return(nil, voucherRepo.ErrVoucherExists)

	_, err := svc.Create(ctx, admin, &models.CreateVoucherRequest{
		Code: "DUP", DiscountType: "fixed", DiscountValue: decimal.NewFromInt(1),
		ValidFrom: now, ValidTill: now.Add(time.Hour),
	})
	assert.ErrorIs(t, err, ErrVoucherExists)
}

func TestAdminOnly(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	_, err := svc.Create(ctx, user, &models.CreateVoucherRequest{})
	assert.ErrorIs(t, err, ErrAccessDenied)
	_, err = svc.List(ctx, user)
	assert.ErrorIs(t, err, ErrAccessDenied)
	assert.ErrorIs(t, svc.Deactivate(ctx, user, 1), ErrAccessDenied)

	repo.AssertExpectations(t)
}

func TestGetValid(t *testing.T) {
	svc, repo, _ := newService()
	ctx := context.Background()

	valid := &domain.Voucher{Code: "OK", IsActive: true, ValidFrom: now.Add(-time.Hour), ValidTill: now.Add(time.Hour)}
	expired := &domain.Voucher{Code: "OLD", IsActive: true, ValidFrom: now.AddDate(-1, 0, 0), ValidTill: now.Add(-time.Hour)}
	repo.On("GetByCode", ctx, "OK").Return(valid, nil)
	repo.On("GetByCode", ctx, "OLD").Return(expired, nil)
	repo.On("GetByCode", ctx, "NOPE").Return(nil, voucherRepo.ErrVoucherNotFound)

	v, err := svc.GetValid(ctx, "ok")
	require.NoError(t, err)
	assert.Same(t, valid, v)

	_, err = svc.GetValid(ctx, "old")
	assert.ErrorIs(t, err, domain.ErrVoucherExpired)

	_, err = svc.GetValid(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrVoucherNotFound)
	assert.Equal(t, "not found", domain.VoucherRejectionReason(err))
}

func TestRedeem(t *testing.T) {
	ctx := context.Background()
	booking := &domain.Booking{ID: 11, VoucherID: ptr.Ptr(int64(4)), DiscountAmount: decimal.NewFromInt(20)}

	t.Run("first redemption increments usage", func(t *testing.T) {
		svc, repo, metrics := newService()
		repo.On("CreateRedemption", ctx, mock.MatchedBy(func(r *domain.VoucherRedemption) bool {
			return r.VoucherID == 4 && r.BookingID == 11
		})).Return(true, nil)
		repo.On("IncrementUsage", ctx, int64(4)).Return(nil)
		metrics.On("IncVoucherRedemption").Return()

		require.NoError(t, svc.Redeem(ctx, booking))
		repo.AssertExpectations(t)
		metrics.AssertExpectations(t)
	})

	t.Run("second redemption for same booking is a no-op", func(t *testing.T) {
		svc, repo, metrics := newService()
		repo.On("CreateRedemption", ctx, mock.Anything).Return(false, nil)

		require.NoError(t, svc.Redeem(ctx, booking))
		repo.AssertNotCalled(t, "IncrementUsage", mock.Anything, mock.Anything)
		metrics.AssertNotCalled(t, "IncVoucherRedemption")
	})

	t.Run("limit reached", func(t *testing.T) {
		svc, repo, metrics := newService()
		repo.On("CreateRedemption", ctx, mock.Anything).Return(true, nil)
		repo.On("IncrementUsage", ctx, int64(4)).Return(voucherRepo.ErrUsageLimitReached)
		repo.On("DeleteRedemption", ctx, int64(11)).Return(nil)

		assert.ErrorIs(t, svc.Redeem(ctx, booking), domain.ErrVoucherUsageLimit)
		repo.AssertExpectations(t)
		metrics.AssertNotCalled(t, "IncVoucherRedemption")
	})

	t.Run("limit reached and redemption cleanup fails", func(t *testing.T) {
		svc, repo, _ := newService()
		repo.On("CreateRedemption", ctx, mock.Anything).Return(true, nil)
		repo.On("IncrementUsage", ctx, int64(4)).Return(voucherRepo.ErrUsageLimitReached)
		repo.On("DeleteRedemption", ctx, int64(11)).Return(errors.New("connection reset"))

		err := svc.Redeem(ctx, booking)
		assert.ErrorIs(t, err, ErrInternal)
		assert.NotErrorIs(t, err, domain.ErrVoucherUsageLimit)
	})

	t.Run("no voucher", func(t *testing.T) {
		svc, repo, _ := newService()
		require.NoError(t, svc.Redeem(ctx, &domain.Booking{ID: 12}))
		repo.AssertNotCalled(t, "CreateRedemption", mock.Anything, mock.Anything)
	})
}

func TestRedeem_CounterAndRedemptionsStayConsistent(t *testing.T) {
	ctx := context.Background()
	repo := newMemVoucherRepo(2, 1)
	metrics := new(MockMetrics)
	metrics.On("IncVoucherRedemption").Return()
	svc := NewService(repo, metrics, logger.NewNop())

	first := &domain.Booking{ID: 31, VoucherID: ptr.Ptr(int64(4))}
	second := &domain.Booking{ID: 32, VoucherID: ptr.Ptr(int64(4))}

	require.NoError(t, svc.Redeem(ctx, first))
	assert.ErrorIs(t, svc.Redeem(ctx, second), domain.ErrVoucherUsageLimit)
	// Повтор для уже погашенного бронирования счётчик не трогает
	require.NoError(t, svc.Redeem(ctx, first))

	assert.Equal(t, 2, repo.usedCount)
	assert.Len(t, repo.redemptions, 1)
	assert.Contains(t, repo.redemptions, int64(31))
	assert.NotContains(t, repo.redemptions, int64(32))
	metrics.AssertNumberOfCalls(t, "IncVoucherRedemption", 1)
}
