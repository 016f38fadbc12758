package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/verdantia/storefront/internal/infrastructure/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestClientToken_HeaderExtraction(t *testing.T) {
	tests := []struct {
		name           string
		token          string
		expectedStatus int
		expectedToken  string
	}{
		{
			name:           "valid token in header",
			token:          "visitor-abc123",
			expectedStatus: http.StatusOK,
			expectedToken:  "visitor-abc123",
		},
		{
			name:           "missing token is tolerated",
			token:          "",
			expectedStatus: http.StatusOK,
			expectedToken:  "",
		},
		{
			name:           "token with invalid characters rejected",
			token:          "bad token!",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "token exceeding max length rejected",
			token:          strings.Repeat("a", MaxClientTokenLength+1),
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(ClientToken())

			var capturedToken string
			router.GET("/test", func(c *gin.Context) {
				capturedToken = GetClientToken(c)
				c.Status(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.token != "" {
				req.Header.Set(ClientTokenHeaderKey, tt.token)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedToken, capturedToken)
			}
		})
	}
}

func TestRequireClientToken_MissingToken(t *testing.T) {
	router := gin.New()
	router.Use(RequireClientToken())

	router.GET("/cart", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "CLIENT_TOKEN_REQUIRED")
}

func TestClientToken_SkipPaths(t *testing.T) {
	router := gin.New()
	cfg := DefaultClientTokenConfig()
	cfg.Required = true
	router.Use(ClientTokenWithConfig(cfg))

	router.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	router.GET("/health/ready", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, path := range []string{"/health", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code, "path %s should be skipped", path)
	}
}

func TestClientToken_SessionID(t *testing.T) {
	router := gin.New()
	router.Use(ClientToken())

	var capturedSession string
	router.GET("/test", func(c *gin.Context) {
		capturedSession = GetSessionID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(ClientTokenHeaderKey, "visitor-1")
	req.Header.Set(SessionIDHeaderKey, "session-42")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-42", capturedSession)
}

func TestClientToken_ContextPropagation(t *testing.T) {
	token := "visitor-ctx-check"

	router := gin.New()
	router.Use(ClientToken())

	router.GET("/test", func(c *gin.Context) {
		ctx := c.Request.Context()
		assert.Equal(t, token, logger.GetClientToken(ctx))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(ClientTokenHeaderKey, token)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestIsValidClientToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
		valid bool
	}{
		{"alphanumeric", "abc123XYZ", true},
		{"with separators", "a-b_c.d", true},
		{"empty", "", false},
		{"whitespace", "a b", false},
		{"unicode", "tokén", false},
		{"max length", strings.Repeat("x", MaxClientTokenLength), true},
		{"over max length", strings.Repeat("x", MaxClientTokenLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, isValidClientToken(tt.token))
		})
	}
}
