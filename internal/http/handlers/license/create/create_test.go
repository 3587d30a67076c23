package create

import (
	"bytes"
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

// MockService реализует интерфейс create.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, req models.LicenseRequest) (*models.License, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.License), args.Error(1)
}

func TestCreateHandler(t *testing.T) {
	validBody := `{"vendor":"SAP","product":"S/4HANA","quantity":100,"cost":32000,"renewalDate":"2026-06-30"}`

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное создание",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(req models.LicenseRequest) bool {
					return req.Vendor == "SAP" && *req.Quantity == 100 && *req.Cost == 32000
				})).Return(&models.License{ID: "abc", Vendor: models.VendorSAP, Status: models.StatusActive}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"id":"abc"`,
		},
		{
			name:           "некорректный JSON",
			body:           "not a json",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"invalid request body"}`,
		},
		{
			name:           "отсутствует обязательное поле",
			body:           `{"vendor":"SAP","quantity":1,"cost":1,"renewalDate":"2026-06-30"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Product is a required field",
		},
		{
			name:           "неизвестный поставщик",
			body:           `{"vendor":"Adobe","product":"X","quantity":1,"cost":1,"renewalDate":"2026-06-30"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Vendor must be one of",
		},
		{
			name:           "usage больше 100",
			body:           `{"vendor":"SAP","product":"X","quantity":1,"cost":1,"renewalDate":"2026-06-30","usage":120}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "field Usage must be less than or equal to 100",
		},
		{
			name: "некорректная дата от сервиса",
			body: `{"vendor":"SAP","product":"X","quantity":1,"cost":1,"renewalDate":"30.06.2026"}`,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).
					Return(nil, &models.FieldError{Msg: "renewal date must be YYYY-MM-DD or RFC 3339"})
			},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   "renewal date must be YYYY-MM-DD or RFC 3339",
		},
		{
			name: "ошибка хранилища",
			body: validBody,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not create license"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)
			handler := New(sl.Discard(), mockService)

			req := httptest.NewRequest(http.MethodPost, "/licenses", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			assert.Contains(t, rr.Header().Get("Content-Type"), "application/json")
			mockService.AssertExpectations(t)
		})
	}
}
