package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

func TestProfiling_LabelsAttached(t *testing.T) {
	router := gin.New()
	router.Use(Profiling())

	var attached bool
	router.GET("/api/v1/products/:slug", func(c *gin.Context) {
		// Labels are attached to the request context via pprof; the
		// middleware must have swapped the request context
		attached = c.Request.Context() != nil
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/linen-shirt", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, attached)
}

func TestProfiling_Disabled(t *testing.T) {
	cfg := DefaultProfilingConfig()
	cfg.Enabled = false

	router := gin.New()
	router.Use(ProfilingWithConfig(cfg))
	router.GET("/test", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestExtractProfilingLabels(t *testing.T) {
	router := gin.New()

	var labels map[string]string
	router.GET("/api/v1/carts/:token", func(c *gin.Context) {
		labels = extractProfilingLabels(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/carts/visitor-1", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "GET", labels[telemetry.ProfilingLabelMethod])
	assert.Equal(t, "/api/v1/carts/:token", labels[telemetry.ProfilingLabelRoute])
	assert.Equal(t, "carts", labels[telemetry.ProfilingLabelHandler])
}

func TestExtractHandlerFromRoute(t *testing.T) {
	tests := []struct {
		route    string
		expected string
	}{
		{"/api/v1/products/:slug", "products"},
		{"/api/v1/products", "products"},
		{"/api/v1/admin/promotions/:id/activate", "admin"},
		{"/api/v2/brands", "brands"},
		{"/health", "health"},
		{"", ""},
		{"/api/v1", ""},
	}

	for _, tt := range tests {
		t.Run(tt.route, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractHandlerFromRoute(tt.route))
		})
	}
}

func TestIsVersionSegment(t *testing.T) {
	assert.True(t, isVersionSegment("v1"))
	assert.True(t, isVersionSegment("v12"))
	assert.True(t, isVersionSegment("V2"))
	assert.False(t, isVersionSegment("v"))
	assert.False(t, isVersionSegment("products"))
	assert.False(t, isVersionSegment("version"))
}
