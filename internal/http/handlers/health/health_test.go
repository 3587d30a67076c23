package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/license-dashboard/internal/lib/sl"
)

func ok(context.Context) error { return nil }

func down(context.Context) error { return errors.New("connection refused") }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name           string
		checks         map[string]Check
		expectedStatus int
		expectedBody   string
	}{
		{
			name:           "all dependencies up",
			checks:         map[string]Check{"postgres": ok, "redis": ok},
			expectedStatus: http.StatusOK,
			expectedBody:   `{"status":"OK","data":{"status":"ok"}}`,
		},
		{
			name:           "no checks",
			expectedStatus: http.StatusOK,
			expectedBody:   `"status":"ok"`,
		},
		{
			name:           "database down",
			checks:         map[string]Check{"postgres": down, "redis": ok},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "postgres unavailable",
		},
		{
			name:           "cache down",
			checks:         map[string]Check{"postgres": ok, "redis": down},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "redis unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := New(sl.Discard(), tt.checks)

			rr := httptest.NewRecorder()
			handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
		})
	}
}
