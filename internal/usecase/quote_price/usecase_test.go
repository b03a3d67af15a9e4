package quote_price

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	packageRepo "github.com/m04kA/PlayZone-BookingService/internal/infra/storage/playpackage"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
	"github.com/m04kA/PlayZone-BookingService/pkg/ptr"
)

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

type MockVoucherLookup struct {
	mock.Mock
}

func (m *MockVoucherLookup) GetValid(ctx context.Context, code string) (*domain.Voucher, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Voucher), args.Error(1)
}

func newUseCase() (*UseCase, *MockPackageRepository, *MockVoucherLookup) {
	packages := new(MockPackageRepository)
	vouchers := new(MockVoucherLookup)
	packages.On("GetByID", mock.Anything, int64(1)).Return(&domain.Package{
		ID: 1, Type: domain.PackageWalkIn, Price: decimal.NewFromInt(150), IsActive: true,
	}, nil).Maybe()
	return NewUseCase(packages, vouchers, logger.NewNop()), packages, vouchers
}

func TestExecute_NoVoucher(t *testing.T) {
	uc, _, vouchers := newUseCase()

	resp, err := uc.Execute(context.Background(), &Request{PackageID: 1, Children: 2})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Total))
	assert.True(t, resp.Discount.IsZero())
	assert.Nil(t, resp.Voucher)
	vouchers.AssertNotCalled(t, "GetValid", mock.Anything, mock.Anything)
}

func TestExecute_ValidVoucher(t *testing.T) {
	uc, _, vouchers := newUseCase()
	vouchers.On("GetValid", mock.Anything, "SAVE20").Return(&domain.Voucher{
		ID: 5, Code: "SAVE20", DiscountType: domain.DiscountFixed, DiscountValue: decimal.NewFromInt(20), IsActive: true,
	}, nil)

	resp, err := uc.Execute(context.Background(), &Request{PackageID: 1, Children: 2, VoucherCode: ptr.Ptr(" save20 ")})

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(280).Equal(resp.Total))
	require.NotNil(t, resp.Voucher)
	assert.True(t, resp.Voucher.Valid)
}

func TestExecute_RejectedVoucherIsReported(t *testing.T) {
	uc, _, vouchers := newUseCase()
	vouchers.On("GetValid", mock.Anything, "OLD").Return(nil, domain.ErrVoucherExpired)

	resp, err := uc.Execute(context.Background(), &Request{PackageID: 1, Children: 2, VoucherCode: ptr.Ptr("old")})

	require.NoError(t, err)
	require.NotNil(t, resp.Voucher)
	assert.False(t, resp.Voucher.Valid)
	assert.Equal(t, "expired", resp.Voucher.Reason)
	assert.True(t, decimal.NewFromInt(300).Equal(resp.Total))
}

func TestExecute_PackageNotFound(t *testing.T) {
	packages := new(MockPackageRepository)
	packages.On("GetByID", mock.Anything, int64(9)).Return(nil, packageRepo.ErrPackageNotFound)
	uc := NewUseCase(packages, new(MockVoucherLookup), logger.NewNop())

	_, err := uc.Execute(context.Background(), &Request{PackageID: 9, Children: 1})

	assert.ErrorIs(t, err, ErrPackageNotFound)
}

func TestExecute_InvalidChildren(t *testing.T) {
	uc, _, _ := newUseCase()

	_, err := uc.Execute(context.Background(), &Request{PackageID: 1, Children: 0})

	assert.ErrorIs(t, err, ErrInvalidInput)
}
