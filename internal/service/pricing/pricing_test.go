package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/domain"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func TestComputeTotal(t *testing.T) {
	tests := []struct {
		name         string
		price        string
		children     int
		voucher      *domain.Voucher
		wantSubtotal string
		wantDiscount string
		wantTotal    string
	}{
		{
			name:         "no voucher",
			price:        "100",
			children:     3,
			wantSubtotal: "300",
			wantDiscount: "0",
			wantTotal:    "300",
		},
		{
			name:     "percentage capped by max discount",
			price:    "100",
			children: 3,
			voucher: &domain.Voucher{
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: dec("10"),
				MaxDiscount:   decPtr("20"),
			},
			wantSubtotal: "300",
			wantDiscount: "20",
			wantTotal:    "280",
		},
		{
			name:     "percentage under cap",
			price:    "100",
			children: 3,
			voucher: &domain.Voucher{
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: dec("5"),
				MaxDiscount:   decPtr("20"),
			},
			wantSubtotal: "300",
			wantDiscount: "15",
			wantTotal:    "285",
		},
		{
			name:     "fixed larger than subtotal never goes negative",
			price:    "100",
			children: 3,
			voucher: &domain.Voucher{
				DiscountType:  domain.DiscountFixed,
				DiscountValue: dec("500"),
			},
			wantSubtotal: "300",
			wantDiscount: "300",
			wantTotal:    "0",
		},
		{
			name:     "percentage rounded to two places",
			price:    "99.99",
			children: 1,
			voucher: &domain.Voucher{
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: dec("15"),
			},
			wantSubtotal: "99.99",
			wantDiscount: "15",
			wantTotal:    "84.99",
		},
		{
			name:     "hundred percent",
			price:    "250",
			children: 2,
			voucher: &domain.Voucher{
				DiscountType:  domain.DiscountPercentage,
				DiscountValue: dec("100"),
			},
			wantSubtotal: "500",
			wantDiscount: "500",
			wantTotal:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q, err := ComputeTotal(dec(tt.price), tt.children, tt.voucher)
			require.NoError(t, err)

			assert.True(t, dec(tt.wantSubtotal).Equal(q.Subtotal), "subtotal %s", q.Subtotal)
			assert.True(t, dec(tt.wantDiscount).Equal(q.Discount), "discount %s", q.Discount)
			assert.True(t, dec(tt.wantTotal).Equal(q.Total), "total %s", q.Total)
			assert.False(t, q.Total.IsNegative())
			assert.True(t, q.Discount.LessThanOrEqual(q.Subtotal))
		})
	}
}

func TestComputeTotal_Idempotent(t *testing.T) {
	v := &domain.Voucher{
		DiscountType:  domain.DiscountPercentage,
		DiscountValue: dec("10"),
		MaxDiscount:   decPtr("20"),
		UsedCount:     3,
	}

	first, err := ComputeTotal(dec("100"), 3, v)
	require.NoError(t, err)
	second, err := ComputeTotal(dec("100"), 3, v)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, v.UsedCount, "voucher state untouched")
}

func TestComputeTotal_InvalidInput(t *testing.T) {
	_, err := ComputeTotal(dec("100"), 0, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeTotal(dec("-1"), 2, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ComputeTotal(dec("100"), 1, &domain.Voucher{DiscountType: "bogo", DiscountValue: dec("1")})
	assert.ErrorIs(t, err, ErrUnknownDiscountType)
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(28000), ToMinorUnits(dec("280")))
	assert.Equal(t, int64(8499), ToMinorUnits(dec("84.99")))
	assert.Equal(t, int64(0), ToMinorUnits(decimal.Zero))
}
