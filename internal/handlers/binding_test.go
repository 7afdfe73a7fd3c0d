package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type logPayload struct {
	LogDate     string `json:"log_date"`
	TimesheetID uint   `json:"timesheet_id"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    logPayload
		expectError bool
	}{
		{
			name:     "Nested structure",
			key:      "daily_log",
			body:     `{"daily_log": {"log_date": "2026-03-02", "timesheet_id": 7}}`,
			expected: logPayload{LogDate: "2026-03-02", TimesheetID: 7},
		},
		{
			name:     "Flat structure",
			key:      "daily_log",
			body:     `{"log_date": "2026-03-03", "timesheet_id": 8}`,
			expected: logPayload{LogDate: "2026-03-03", TimesheetID: 8},
		},
		{
			name:     "Missing key falls back to flat",
			key:      "daily_log",
			body:     `{"other": "value", "log_date": "2026-03-04", "timesheet_id": 9}`,
			expected: logPayload{LogDate: "2026-03-04", TimesheetID: 9},
		},
		{
			name:     "Different wrapper key",
			key:      "employee",
			body:     `{"employee": {"log_date": "2026-03-05", "timesheet_id": 10}}`,
			expected: logPayload{LogDate: "2026-03-05", TimesheetID: 10},
		},
		{
			name:        "Flat body with wrong field type",
			key:         "daily_log",
			body:        `{"log_date": "2026-03-02", "timesheet_id": "seven"}`,
			expectError: true,
		},
		{
			name:        "Nested body with wrong field type",
			key:         "daily_log",
			body:        `{"daily_log": {"log_date": "2026-03-02", "timesheet_id": "seven"}}`,
			expectError: true,
		},
		{
			name:        "Nested key holds a scalar",
			key:         "daily_log",
			body:        `{"daily_log": "not an object"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var result logPayload
			err := BindNestedOrFlat(c, tt.key, &result)

			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expected, result)
			}
		})
	}
}
