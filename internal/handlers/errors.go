package handlers

import (
	"errors"
	"net/http"

	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errMalformedClaim = "malformed auth claim"
	errUnauthorized   = "unauthorized"
	errConflict       = "username already taken"
	errInternal       = "internal error"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err, "request_id", c.GetString(ctxRequestID)}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Infow(logKey, fields...)
		}
	}
	c.AbortWithStatusJSON(httpCode, gin.H{"error": userMsg})
}

// respondError maps core errors to status codes. Unknown users and bad
// passwords share one response so callers cannot enumerate accounts.
func (h *Handler) respondError(c *gin.Context, err error, logKey string, kv ...interface{}) {
	switch {
	case errors.Is(err, service.ErrMalformedClaim):
		h.logAndJSONError(c, http.StatusBadRequest, errMalformedClaim, logKey, err, kv...)
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrNotFound):
		h.logAndJSONError(c, http.StatusUnauthorized, errUnauthorized, logKey, err, kv...)
	case errors.Is(err, service.ErrConflict):
		h.logAndJSONError(c, http.StatusConflict, errConflict, logKey, err, kv...)
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, errInternal, logKey, err, kv...)
	}
}
