package handlers

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"todo_service/internal/models"
	"todo_service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// authClaimHeader carries a JSON {"username","password"} object.
	authClaimHeader = "Authentication"
	requestIDHeader = "X-Request-ID"

	ctxUsername  = "username"
	ctxRequestID = "requestId"
)

// authMiddleware resolves the caller to a verified username. A bearer token
// takes precedence over the Authentication claim header.
func (h *Handler) authMiddleware(c *gin.Context) {
	username, err := h.verifyRequest(c)
	if err != nil {
		h.respondError(c, err, "auth_rejected", "path", c.FullPath())
		return
	}

	// store in Gin context
	c.Set(ctxUsername, username)
	c.Next()
}

func (h *Handler) verifyRequest(c *gin.Context) (string, error) {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			return "", fmt.Errorf("%w: invalid Authorization header format", service.ErrMalformedClaim)
		}
		return h.services.ParseToken(parts[1])
	}

	claim, err := decodeClaim(c.GetHeader(authClaimHeader))
	if err != nil {
		return "", err
	}
	return h.services.Authenticate(c.Request.Context(), claim.Username, claim.Password)
}

// decodeClaim parses the Authentication header value.
func decodeClaim(raw string) (models.AuthClaim, error) {
	var claim models.AuthClaim
	if strings.TrimSpace(raw) == "" {
		return claim, fmt.Errorf("%w: missing %s header", service.ErrMalformedClaim, authClaimHeader)
	}
	if err := json.Unmarshal([]byte(raw), &claim); err != nil {
		return claim, fmt.Errorf("%w: %w", service.ErrMalformedClaim, err)
	}
	if claim.Username == "" {
		return claim, fmt.Errorf("%w: username is empty", service.ErrMalformedClaim)
	}
	return claim, nil
}

// verifiedUsername returns the identity set by authMiddleware.
func verifiedUsername(c *gin.Context) string {
	return c.GetString(ctxUsername)
}

// requestIDMiddleware propagates X-Request-ID or assigns a fresh one.
func (h *Handler) requestIDMiddleware(c *gin.Context) {
	id := c.GetHeader(requestIDHeader)
	if id == "" {
		id = uuid.NewString()
	}
	c.Set(ctxRequestID, id)
	c.Header(requestIDHeader, id)
	c.Next()
}

func (h *Handler) requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	if h.log == nil {
		return
	}
	h.log.Infow("http_request",
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
		"status", c.Writer.Status(),
		"latency", time.Since(start),
		"request_id", c.GetString(ctxRequestID),
	)
}
