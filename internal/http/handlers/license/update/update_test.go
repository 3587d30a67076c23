package update

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

// MockService реализует интерфейс update.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, id string, patch models.LicensePatch) (*models.License, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

const testID = "5b0c1f5e-2f7c-4c1a-9a38-3f0f2f1d8a11"

func TestUpdateHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "частичное обновление",
			id:   testID,
			body: `{"usage":40,"status":"expiring"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, testID, mock.MatchedBy(func(p models.LicensePatch) bool {
					return p.Usage != nil && *p.Usage == 40 && p.Status != nil && *p.Status == "expiring" && p.Cost == nil
				})).Return(&models.License{ID: testID, Usage: 40, Status: models.StatusExpiring}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"usage":40`,
		},
		{
			name:           "некорректный id",
			id:             "abc",
			body:           `{}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid license id",
		},
		{
			name:           "некорректный JSON",
			id:             testID,
			body:           "{",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
		{
			name:           "отрицательная стоимость",
			id:             testID,
			body:           `{"cost":-5}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Cost must be greater than or equal to 0",
		},
		{
			name:           "неизвестный статус",
			id:             testID,
			body:           `{"status":"archived"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Status must be one of [active expiring inactive pending]",
		},
		{
			name: "лицензия не найдена",
			id:   testID,
			body: `{"usage":10}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, testID, mock.Anything).Return(nil, models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "license not found",
		},
		{
			name: "ошибка сервиса",
			id:   testID,
			body: `{"usage":10}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, testID, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not update license",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(sl.Discard(), mockService)

			req := httptest.NewRequest(http.MethodPut, "/licenses/"+tt.id, bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", tt.id)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
