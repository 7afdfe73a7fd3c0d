package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hrsuite/timetrack-api/internal/services"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", fmt.Errorf("%w: bad date", services.ErrValidation), http.StatusBadRequest},
		{"not found", fmt.Errorf("%w: timesheet not found", services.ErrNotFound), http.StatusNotFound},
		{"conflict", fmt.Errorf("%w: already reviewed", services.ErrConflict), http.StatusConflict},
		{"integrity", fmt.Errorf("%w: orphaned log", services.ErrIntegrity), http.StatusUnprocessableEntity},
		{"wrapped deeper", fmt.Errorf("entry 2: %w", fmt.Errorf("%w: no project", services.ErrNotFound)), http.StatusNotFound},
		{"unclassified", errors.New("pq: connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("GET", "/api/v1/timesheets/1", nil)

			respondError(c, tt.err)
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/v1/timesheets/1", nil)

	respondError(c, errors.New("dial tcp 10.0.0.3:5432: connect: connection refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.3")
	assert.Contains(t, w.Body.String(), "internal server error")
}
