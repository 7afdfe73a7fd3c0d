package handlers

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
)

// uintParam parses a numeric path parameter
func uintParam(c *gin.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(value), nil
}

// intQuery parses an integer query parameter with a default
func intQuery(c *gin.Context, name string, def int) int {
	value, err := strconv.Atoi(c.DefaultQuery(name, strconv.Itoa(def)))
	if err != nil {
		return def
	}
	return value
}

// dateQuery parses a YYYY-MM-DD query parameter; empty returns zero time
func dateQuery(c *gin.Context, name string) (time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return time.Time{}, nil
	}
	date, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q. Use YYYY-MM-DD", name, raw)
	}
	return date, nil
}
