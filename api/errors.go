package api

import (
	"errors"
	"net/http"

	"taskwell/task-api/internal/apperr"
	"taskwell/task-api/internal/authz"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps the service error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a 500 and gets logged; taxonomy
// errors carry caller-facing messages already.
func respondError(c *gin.Context, err error) {
	requestID := c.GetString("requestID")

	var status int

	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthorized):
		status = http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Unhandled service error", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(status, gin.H{
		"error":     err.Error(),
		"requestID": requestID,
	})
}

// principalFrom returns the resolved principal or nil for anonymous
// requests.
func principalFrom(c *gin.Context) *authz.Principal {
	v, ok := c.Get("principal")
	if !ok {
		return nil
	}

	return v.(*authz.Principal)
}
