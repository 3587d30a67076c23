package remove

import (
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

type MockService struct {
	mock.Mock
}

func (m *MockService) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testID = "5b0c1f5e-2f7c-4c1a-9a38-3f0f2f1d8a11"

func TestRemoveHandler(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное удаление",
			id:   testID,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, testID).Return(nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"License deleted successfully"`,
		},
		{
			name:           "некорректный id",
			id:             "not-a-uuid",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid license id",
		},
		{
			name: "повторное удаление",
			id:   testID,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, testID).Return(models.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "license not found",
		},
		{
			name: "ошибка сервиса",
			id:   testID,
			setupMock: func(m *MockService) {
				m.On("Remove", mock.Anything, testID).Return(errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "failed to delete license",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(sl.Discard(), mockService)

			req := httptest.NewRequest(http.MethodDelete, "/licenses/"+tt.id, nil)
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
