package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/verdantia/storefront/internal/domain/identity"
	"go.uber.org/zap"
)

// RoleConfig holds configuration for role middleware
type RoleConfig struct {
	// Logger for middleware logging
	Logger *zap.Logger
	// OnDenied is called when the role check fails (optional)
	OnDenied func(c *gin.Context, requiredRoles []string)
}

// RequireAdmin creates middleware that only admits full administrators.
// User management and system settings routes use this.
func RequireAdmin() gin.HandlerFunc {
	return RequireAnyRole(string(identity.AdminRoleAdmin))
}

// RequireStaff creates middleware that admits any back-office role.
// Catalog, promotion, coupon and order management routes use this.
func RequireStaff() gin.HandlerFunc {
	return RequireAnyRole(string(identity.AdminRoleAdmin), string(identity.AdminRoleEditor))
}

// RequireAnyRole creates middleware that requires any of the specified roles
func RequireAnyRole(roles ...string) gin.HandlerFunc {
	return RequireAnyRoleWithConfig(RoleConfig{}, roles...)
}

// RequireAnyRoleWithConfig creates role middleware with custom config
func RequireAnyRoleWithConfig(cfg RoleConfig, roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetJWTClaims(c)
		if claims == nil {
			handleRoleDenied(c, cfg, roles, "No authentication claims found")
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				if cfg.Logger != nil {
					cfg.Logger.Debug("Role check passed",
						zap.String("user_id", claims.UserID),
						zap.String("role", claims.Role),
					)
				}
				c.Next()
				return
			}
		}

		handleRoleDenied(c, cfg, roles, "User lacks required role")
	}
}

// HasRole reports whether the authenticated user carries the given role
func HasRole(c *gin.Context, role string) bool {
	claims := GetJWTClaims(c)
	return claims != nil && claims.Role == role
}

// handleRoleDenied handles failed role checks
func handleRoleDenied(c *gin.Context, cfg RoleConfig, requiredRoles []string, reason string) {
	if cfg.OnDenied != nil {
		cfg.OnDenied(c, requiredRoles)
		return
	}

	if cfg.Logger != nil {
		userID := ""
		userRole := ""
		if claims := GetJWTClaims(c); claims != nil {
			userID = claims.UserID
			userRole = claims.Role
		}

		cfg.Logger.Warn("Role check denied",
			zap.String("reason", reason),
			zap.String("user_id", userID),
			zap.String("user_role", userRole),
			zap.Strings("required_roles", requiredRoles),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
	}

	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ERR_FORBIDDEN",
			"message": "Access denied: insufficient role",
		},
	})
}
