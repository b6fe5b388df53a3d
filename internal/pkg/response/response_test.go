package response

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hostel/internal/pkg/apperr"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("X", "x"), http.StatusNotFound},
		{apperr.InvalidInput("X", "x"), http.StatusBadRequest},
		{apperr.Conflict("X", "x"), http.StatusBadRequest},
		{apperr.Unauthorized("X", "x"), http.StatusUnauthorized},
		{apperr.Forbidden("X", "x"), http.StatusForbidden},
		{apperr.Transient("x", errors.New("reset")), http.StatusServiceUnavailable},
		{errors.New("plain"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, StatusFor(tc.err), tc.err.Error())
	}
}

func TestFromErrorHidesInternalDetailInProduction(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	FromError(c, apperr.Internal("Failed to load booking", errors.New("pq: relation missing")), false)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	assert.NotContains(t, w.Body.String(), "relation missing")

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	FromError(c, apperr.Internal("Failed to load booking", errors.New("pq: relation missing")), true)
	assert.Contains(t, w.Body.String(), "relation missing")
}
