package handler

import (
	"net/http"

	"sharklink/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// AuthHandler drives the Google OAuth login flow
type AuthHandler struct {
	authenticator *auth.GoogleAuthenticator
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authenticator *auth.GoogleAuthenticator) *AuthHandler {
	return &AuthHandler{authenticator: authenticator}
}

// Login handles GET /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	state := uuid.NewString()
	if err := auth.SaveState(c, state); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to start login",
		})
		return
	}

	c.Redirect(http.StatusFound, h.authenticator.AuthURL(state))
}

// Callback handles GET /auth/callback
func (h *AuthHandler) Callback(c *gin.Context) {
	state := c.Query("state")
	if state == "" || state != auth.PopState(c) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Invalid OAuth state",
		})
		return
	}

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "Missing OAuth code",
		})
		return
	}

	ident, err := h.authenticator.Exchange(c.Request.Context(), code)
	if err != nil {
		log.Error().Err(err).Msg("OAuth exchange failed")
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Code:    http.StatusUnauthorized,
			Message: "Login failed",
		})
		return
	}

	if err := auth.SaveIdentity(c, ident); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to save session",
		})
		return
	}

	log.Info().Str("email", ident.Email).Msg("User logged in")
	c.Redirect(http.StatusFound, "/")
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := auth.ClearIdentity(c); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Failed to clear session",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
