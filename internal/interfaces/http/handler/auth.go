package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/verdantia/storefront/internal/application/identity"
	"github.com/verdantia/storefront/internal/infrastructure/auth"
	"github.com/verdantia/storefront/internal/interfaces/http/middleware"
)

// AuthHandler handles admin authentication HTTP requests
type AuthHandler struct {
	BaseHandler
	authService *identity.AuthService
	blacklist   auth.TokenBlacklist
}

// NewAuthHandler creates a new auth handler. The blacklist is optional;
// without it Logout is a no-op beyond client-side token disposal.
func NewAuthHandler(authService *identity.AuthService, blacklist auth.TokenBlacklist) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		blacklist:   blacklist,
	}
}

// Login godoc
// @Summary      Admin login
// @Description  Authenticate an admin user with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.LoginRequest true "Login credentials"
// @Success      200 {object} APIResponse[identity.LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req identity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Refresh godoc
// @Summary      Refresh access token
// @Description  Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body identity.RefreshRequest true "Refresh token"
// @Success      200 {object} APIResponse[identity.LoginResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req identity.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, result)
}

// Logout godoc
// @Summary      Admin logout
// @Description  Revoke the current access token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      204
// @Failure      401 {object} ErrorResponse
// @Router       /admin/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if h.blacklist != nil && claims.ID != "" {
		if ttl := claims.GetRemainingTTL(); ttl > 0 {
			if err := h.blacklist.AddToBlacklist(c.Request.Context(), claims.ID, ttl); err != nil {
				h.InternalError(c, "Failed to revoke token")
				return
			}
		}
	}

	h.NoContent(c)
}

// ChangePassword godoc
// @Summary      Change own password
// @Description  Change the authenticated admin's password and invalidate existing sessions
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body identity.ChangePasswordRequest true "Current and new password"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      401 {object} ErrorResponse
// @Router       /admin/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	userID := middleware.GetJWTUserID(c)
	if userID == "" {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req identity.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(c, err)
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req); err != nil {
		h.HandleError(c, err)
		return
	}

	// All tokens issued before now stop working
	if h.blacklist != nil {
		if claims := middleware.GetJWTClaims(c); claims != nil {
			_ = h.blacklist.AddUserTokensToBlacklist(c.Request.Context(), userID, claims.GetRemainingTTL())
		}
	}

	h.NoContent(c)
}

// Me godoc
// @Summary      Current admin profile
// @Description  Returns the authenticated admin user's claims
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} APIResponse[map[string]string]
// @Failure      401 {object} ErrorResponse
// @Router       /admin/auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	h.Success(c, gin.H{
		"user_id": claims.UserID,
		"email":   claims.Email,
		"role":    claims.Role,
	})
}
