package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/verdantia/storefront/internal/infrastructure/logger"
	"go.uber.org/zap"
)

// Client token context keys and header names
const (
	ClientTokenKey       = "client_token"
	ClientTokenHeaderKey = "X-Client-Token"
	SessionIDKey         = "session_id"
	SessionIDHeaderKey   = "X-Session-ID"
	MaxClientTokenLength = 64
)

// ClientTokenConfig holds configuration for the client token middleware
type ClientTokenConfig struct {
	// Required determines whether requests without a client token are rejected
	Required bool
	// SkipPaths are paths that never need a client token (e.g. health check)
	SkipPaths []string
	// Logger for middleware logging
	Logger *zap.Logger
}

// DefaultClientTokenConfig returns default client token middleware configuration
func DefaultClientTokenConfig() ClientTokenConfig {
	return ClientTokenConfig{
		Required:  false,
		SkipPaths: []string{"/health", "/healthz", "/ready", "/metrics"},
		Logger:    nil,
	}
}

// ClientToken extracts the anonymous client token from the X-Client-Token
// header and threads it through the gin context and the request context so
// downstream logging and tracing can correlate by storefront visitor.
func ClientToken() gin.HandlerFunc {
	return ClientTokenWithConfig(DefaultClientTokenConfig())
}

// RequireClientToken behaves like ClientToken but rejects requests that do
// not carry a token. The cart route group uses this variant; promotion
// evaluation accepts the token in the request body instead.
func RequireClientToken() gin.HandlerFunc {
	cfg := DefaultClientTokenConfig()
	cfg.Required = true
	return ClientTokenWithConfig(cfg)
}

// ClientTokenWithConfig returns client token middleware with custom configuration
func ClientTokenWithConfig(cfg ClientTokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath || strings.HasPrefix(path, skipPath+"/") {
				c.Next()
				return
			}
		}

		token := c.GetHeader(ClientTokenHeaderKey)
		if token == "" {
			if cfg.Required {
				respondMissingClientToken(c)
				return
			}
			c.Next()
			return
		}

		if !isValidClientToken(token) {
			if cfg.Logger != nil {
				cfg.Logger.Warn("Rejected malformed client token",
					zap.String("path", path),
					zap.Int("length", len(token)),
				)
			}
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CLIENT_TOKEN",
					"message": "Client token is malformed",
				},
			})
			return
		}

		c.Set(ClientTokenKey, token)

		if sessionID := c.GetHeader(SessionIDHeaderKey); sessionID != "" && isValidClientToken(sessionID) {
			c.Set(SessionIDKey, sessionID)
		}

		// Thread through the request context for logger and tracing enrichment
		ctx := c.Request.Context()
		log := logger.FromContext(ctx)
		ctx, _ = logger.WithClientToken(ctx, log, token)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// isValidClientToken validates token format. Tokens are opaque identifiers
// minted by the storefront client; restrict to URL-safe characters to keep
// them out of injection territory in logs and Redis keys.
func isValidClientToken(token string) bool {
	if token == "" || len(token) > MaxClientTokenLength {
		return false
	}
	for i := 0; i < len(token); i++ {
		ch := token[i]
		switch {
		case ch >= 'a' && ch <= 'z':
		case ch >= 'A' && ch <= 'Z':
		case ch >= '0' && ch <= '9':
		case ch == '-' || ch == '_' || ch == '.':
		default:
			return false
		}
	}
	return true
}

// respondMissingClientToken aborts with a 400 for token-required routes
func respondMissingClientToken(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "CLIENT_TOKEN_REQUIRED",
			"message": "X-Client-Token header is required",
		},
	})
}

// GetClientToken retrieves the client token from gin.Context
func GetClientToken(c *gin.Context) string {
	if token, exists := c.Get(ClientTokenKey); exists {
		if t, ok := token.(string); ok {
			return t
		}
	}
	return ""
}

// GetSessionID retrieves the browsing session ID from gin.Context
func GetSessionID(c *gin.Context) string {
	if sessionID, exists := c.Get(SessionIDKey); exists {
		if s, ok := sessionID.(string); ok {
			return s
		}
	}
	return ""
}
