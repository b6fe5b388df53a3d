package request

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"hostel/internal/pkg/apperr"
)

// PathID parses a positive integer path parameter.
func PathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput("INVALID_ID", "Invalid "+name)
	}
	return id, nil
}

// QueryID parses an optional positive integer query parameter; absent yields 0.
func QueryID(c *gin.Context, name string) (int64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidInput("INVALID_QUERY", "Invalid "+name)
	}
	return id, nil
}

func QueryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(strings.TrimSpace(c.Query(name)))
	if err != nil || v < 0 {
		return def
	}
	return v
}
