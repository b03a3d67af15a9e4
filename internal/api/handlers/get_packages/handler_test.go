package get_packages

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/m04kA/PlayZone-BookingService/internal/api/middleware"
	"github.com/m04kA/PlayZone-BookingService/internal/domain"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog"
	"github.com/m04kA/PlayZone-BookingService/internal/service/catalog/models"
	"github.com/m04kA/PlayZone-BookingService/pkg/logger"
)

type MockCatalogService struct {
	mock.Mock
}

func (m *MockCatalogService) ListPackages(ctx context.Context, actor domain.Actor, includeInactive bool) ([]models.PackageResponse, error) {
	args := m.Called(ctx, actor, includeInactive)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PackageResponse), args.Error(1)
}

func (m *MockCatalogService) GetPackage(ctx context.Context, actor domain.Actor, id int64) (*models.PackageResponse, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PackageResponse), args.Error(1)
}

func TestHandle_PublicWithoutActor(t *testing.T) {
	svc := new(MockCatalogService)
	h := NewHandler(svc, false, logger.NewNop())

	svc.On("ListPackages", mock.Anything, domain.Actor{}, false).
		Return([]models.PackageResponse{{ID: 1, Name: "Walk-in"}}, nil)

	w := httptest.NewRecorder()
	h.Handle(w, httptest.NewRequest(http.MethodGet, "/api/v1/packages", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Walk-in"`)
	svc.AssertExpectations(t)
}

func TestHandle_AdminListForbiddenForCustomer(t *testing.T) {
	svc := new(MockCatalogService)
	h := NewHandler(svc, true, logger.NewNop())
	actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}

	svc.On("ListPackages", mock.Anything, actor, true).Return(nil, catalog.ErrAccessDenied)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/packages", nil)
	req = req.WithContext(middleware.WithActor(req.Context(), actor))
	w := httptest.NewRecorder()
	h.Handle(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestHandleByID(t *testing.T) {
	tests := []struct {
		name     string
		id       string
		err      error
		wantCode int
	}{
		{"found", "1", nil, http.StatusOK},
		{"not found", "2", catalog.ErrPackageNotFound, http.StatusNotFound},
		{"internal", "3", catalog.ErrInternal, http.StatusInternalServerError},
		{"bad id", "x", nil, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockCatalogService)
			h := NewHandler(svc, false, logger.NewNop())
			if tt.err != nil {
				svc.On("GetPackage", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)
			} else {
				svc.On("GetPackage", mock.Anything, mock.Anything, mock.Anything).
					Return(&models.PackageResponse{ID: 1}, nil)
			}

			req := httptest.NewRequest(http.MethodGet, "/api/v1/packages/"+tt.id, nil)
			req = mux.SetURLVars(req, map[string]string{"id": tt.id})
			w := httptest.NewRecorder()
			h.HandleByID(w, req)

			assert.Equal(t, tt.wantCode, w.Code)
		})
	}
}
