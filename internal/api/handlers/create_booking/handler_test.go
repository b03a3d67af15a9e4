package create_booking

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	createBooking "github.com/m04kA/PlayZone-BookingService/internal/usecase/create_booking"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

type MockUseCase struct {
	mock.Mock
}

func (m *MockUseCase) Execute(ctx context.Context, req *createBooking.Request) (*createBooking.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*createBooking.Response), args.Error(1)
}

const validBody = `{"packageId":1,"timeSlotId":2,"bookingDate":"2025-10-15","childrenAges":[4,6],
"contactName":"Анна","contactPhone":"+79990000000"}`

func newRequest(body string, actor *domain.Actor) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bookings", strings.NewReader(body))
	if actor != nil {
		req = req.WithContext(middleware.WithActor(req.Context(), *actor))
	}
	return req
}

func TestHandle_Created(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, false, logger.NewNop())
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.Actor.UserID == 7 && r.Children == 2 && !r.AdminCreated && r.UserID == nil &&
			r.Date.Equal(time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC))
	})).Return(&createBooking.Response{
		ID:            11,
		Reference:     "PZ-000011",
		UserID:        7,
		BookingDate:   time.Date(2025, 10, 15, 0, 0, 0, 0, time.UTC),
		Status:        string(domain.StatusPending),
		PaymentStatus: "pending",
		Subtotal:      decimal.NewFromInt(1000),
		Discount:      decimal.Zero,
		Total:         decimal.NewFromInt(1000),
		Payment: &createBooking.PaymentOrder{
			OrderID:     "order_1",
			AmountMinor: 100000,
			Currency:    "INR",
			KeyID:       "key",
		},
	}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, &actor))

	require.Equal(t, http.StatusCreated, w.Code)
	var resp BookingResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, int64(11), resp.ID)
	assert.Equal(t, "1000.00", resp.Total)
	assert.Equal(t, "2025-10-15", resp.BookingDate)
	require.NotNil(t, resp.Payment)
	assert.Equal(t, "order_1", resp.Payment.OrderID)
	uc.AssertExpectations(t)
}

func TestHandle_CustomerCannotBookForOthers(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, false, logger.NewNop())
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.UserID == nil
	})).Return(nil, createBooking.ErrSlotNotAvailable)

	body := `{"userId":99,"packageId":1,"timeSlotId":2,"bookingDate":"2025-10-15","childrenAges":[4],"contactName":"A","contactEmail":"a@b.c"}`
	w := httptest.NewRecorder()
	h.Handle(w, newRequest(body, &actor))

	assert.Equal(t, http.StatusConflict, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_AdminBooksForCustomer(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, true, logger.NewNop())
	actor := domain.Actor{UserID: 1, Role: domain.RoleAdmin}

	uc.On("Execute", mock.Anything, mock.MatchedBy(func(r *createBooking.Request) bool {
		return r.AdminCreated && r.UserID != nil && *r.UserID == 99
	})).Return(&createBooking.Response{ID: 5, UserID: 99, Status: string(domain.StatusConfirmed)}, nil)

	body := `{"userId":99,"packageId":1,"timeSlotId":2,"bookingDate":"2025-10-15","childrenAges":[4],"contactName":"A","contactEmail":"a@b.c"}`
	w := httptest.NewRecorder()
	h.Handle(w, newRequest(body, &actor))

	assert.Equal(t, http.StatusCreated, w.Code)
	uc.AssertExpectations(t)
}

func TestHandle_Errors(t *testing.T) {
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"slot not available", createBooking.ErrSlotNotAvailable, http.StatusConflict},
		{"package not found", createBooking.ErrPackageNotFound, http.StatusNotFound},
		{"package not bookable", createBooking.ErrPackageNotBookable, http.StatusBadRequest},
		{"past date", createBooking.ErrInvalidDate, http.StatusBadRequest},
		{"too far", createBooking.ErrDateTooFarInFuture, http.StatusBadRequest},
		{"slot started", createBooking.ErrSlotAlreadyStarted, http.StatusBadRequest},
		{"invalid input", createBooking.ErrInvalidInput, http.StatusBadRequest},
		{"access denied", createBooking.ErrAccessDenied, http.StatusForbidden},
		{"payment unavailable", createBooking.ErrPaymentUnavailable, http.StatusBadGateway},
		{"internal", createBooking.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := NewHandler(uc, false, logger.NewNop())
			uc.On("Execute", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: details", tt.err))

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(validBody, &actor))

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}

func TestHandle_VoucherRejected(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, false, logger.NewNop())
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	uc.On("Execute", mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("%w: %w", createBooking.ErrInvalidVoucher, domain.ErrVoucherExpired))

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, &actor))

	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp VoucherRejection
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "expired", resp.Reason)
}

func TestHandle_BadRequests(t *testing.T) {
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	tests := []struct {
		name string
		body string
	}{
		{"malformed json", `{"packageId":`},
		{"unknown field", `{"packageId":1,"extra":true}`},
		{"bad date", `{"packageId":1,"timeSlotId":2,"bookingDate":"15.10.2025","childrenAges":[4]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := new(MockUseCase)
			h := NewHandler(uc, false, logger.NewNop())

			w := httptest.NewRecorder()
			h.Handle(w, newRequest(tt.body, &actor))

			assert.Equal(t, http.StatusBadRequest, w.Code)
			uc.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
		})
	}
}

func TestHandle_NoActor(t *testing.T) {
	uc := new(MockUseCase)
	h := NewHandler(uc, false, logger.NewNop())

	w := httptest.NewRecorder()
	h.Handle(w, newRequest(validBody, nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
