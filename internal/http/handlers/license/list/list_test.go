package list

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
	"github.com/magabrotheeeer/license-dashboard/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, filter models.LicenseFilter) ([]models.License, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.License), args.Error(1)
}

func TestListHandler(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:  "без фильтров",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.LicenseFilter{}).
					Return([]models.License{{ID: "1"}, {ID: "2"}}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"count":2`,
		},
		{
			name:  "фильтры и пагинация",
			query: "?vendor=SAP&status=active&limit=10&offset=5",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, models.LicenseFilter{Vendor: "SAP", Status: "active", Limit: 10, Offset: 5}).
					Return([]models.License{}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"licenses":[]`,
		},
		{
			name:           "нечисловой limit",
			query:          "?limit=ten",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "limit and offset must be integers",
		},
		{
			name:           "отрицательный offset",
			query:          "?offset=-1",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Offset must be greater than or equal to 0",
		},
		{
			name:           "неизвестный статус",
			query:          "?status=archived",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Status must be one of",
		},
		{
			name:  "ошибка сервиса",
			query: "",
			setupMock: func(m *MockService) {
				m.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "could not list licenses",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(sl.Discard(), mockService)

			req := httptest.NewRequest(http.MethodGet, "/licenses"+tt.query, nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
