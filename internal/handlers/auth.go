package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const statusRegistered = "registered"

// Single, shared credentials payload for register, sign-up and sign-in.
type authCredentials struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cr3t"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a 400 JSON on failure.
// Returns false if the request was already handled (aborted), true otherwise.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("bad_request_body", "err", err, "path", c.FullPath())
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return false
	}
	return true
}

func (h *Handler) bindCredentials(c *gin.Context) (authCredentials, bool) {
	var input authCredentials
	ok := h.bindJSONOrBadRequest(c, &input)
	return input, ok
}

// @Summary      Register user
// @Description  Creates a user with an empty todo list. Also served at /api/register.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /auth/sign-up [post]
func (h *Handler) signUp(c *gin.Context) {
	input, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	if err := h.services.SignUp(c.Request.Context(), input.Username, input.Password); err != nil {
		h.respondError(c, err, "auth_sign_up_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": statusRegistered})
}

// @Summary      Sign in
// @Description  Exchanges credentials for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      authCredentials  true  "Credentials"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	input, ok := h.bindCredentials(c)
	if !ok {
		return
	}

	token, err := h.services.GenerateToken(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		h.respondError(c, err, "auth_sign_in_failed", "username", input.Username)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
