package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hostel/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// StatusFor maps an error kind to its HTTP status. Conflicts are reported as
// 400 because existing clients treat every rejected transition as a bad request.
func StatusFor(err error) int {
	e, ok := apperr.As(err)
	if !ok {
		return http.StatusInternalServerError
	}
	if e.Retryable {
		return http.StatusServiceUnavailable
	}
	switch e.Kind {
	case apperr.KindNotFound:
		return http.StatusNotFound
	case apperr.KindInvalidInput, apperr.KindConflict:
		return http.StatusBadRequest
	case apperr.KindUnauthorized:
		return http.StatusUnauthorized
	case apperr.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// FromError writes err as the standard error envelope. Internal failure
// detail is only exposed when exposeDetail is set (non-production).
func FromError(c *gin.Context, err error, exposeDetail bool) {
	status := StatusFor(err)
	_ = c.Error(err)

	e, ok := apperr.As(err)
	if !ok {
		e = apperr.Internal("Internal server error", err)
	}

	if e.Kind == apperr.KindInternal {
		if e.Retryable {
			c.Header("Retry-After", "1")
		}
		if exposeDetail && e.Err != nil {
			ErrorWithDetails(c, status, e.Code, e.Message, e.Err.Error())
			return
		}
		Error(c, status, e.Code, e.Message)
		return
	}

	if e.Details != nil {
		ErrorWithDetails(c, status, e.Code, e.Message, e.Details)
		return
	}
	Error(c, status, e.Code, e.Message)
}
