package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

// ProfilingConfig holds configuration for the profiling middleware.
type ProfilingConfig struct {
	// Enabled controls whether profiling labels are added to requests.
	Enabled bool
	// SkipPaths are paths that don't need profiling labels (e.g., health checks).
	SkipPaths []string
	// SkipPathPrefixes are path prefixes that don't need profiling labels.
	SkipPathPrefixes []string
}

// DefaultProfilingConfig returns default profiling middleware configuration.
func DefaultProfilingConfig() ProfilingConfig {
	return ProfilingConfig{
		Enabled: true,
		SkipPaths: []string{
			"/health",
			"/healthz",
			"/ready",
			"/metrics",
		},
		SkipPathPrefixes: []string{
			"/swagger",
			"/api-docs",
		},
	}
}

// Profiling returns profiling middleware with default configuration.
// It adds Pyroscope labels to the request context so profiles can be
// sliced by handler, route and method in the Pyroscope UI.
func Profiling() gin.HandlerFunc {
	return ProfilingWithConfig(DefaultProfilingConfig())
}

// ProfilingWithConfig returns profiling middleware with custom configuration.
// The middleware adds the following labels to the profiling context:
//   - handler: derived resource name (e.g., "products", "carts")
//   - route: route pattern (e.g., "/api/v1/products/:slug")
//   - method: HTTP method
func ProfilingWithConfig(cfg ProfilingConfig) gin.HandlerFunc {
	if !cfg.Enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path

		for _, skipPath := range cfg.SkipPaths {
			if path == skipPath {
				c.Next()
				return
			}
		}

		for _, prefix := range cfg.SkipPathPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		labels := extractProfilingLabels(c)

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// extractProfilingLabels extracts profiling labels from the gin context.
// All labels are route-pattern derived so cardinality stays bounded.
func extractProfilingLabels(c *gin.Context) map[string]string {
	labels := make(map[string]string, 3)

	if method := c.Request.Method; method != "" {
		labels[telemetry.ProfilingLabelMethod] = method
	}

	route := c.FullPath()
	if route != "" {
		labels[telemetry.ProfilingLabelRoute] = route
	}

	if handler := extractHandlerFromRoute(route); handler != "" {
		labels[telemetry.ProfilingLabelHandler] = handler
	}

	return labels
}

// extractHandlerFromRoute derives a handler name from the route pattern.
// Example: "/api/v1/products/:slug" -> "products"
// Example: "/api/v1/admin/promotions/:id/activate" -> "admin"
func extractHandlerFromRoute(route string) string {
	if route == "" {
		return ""
	}

	parts := strings.Split(route, "/")

	for i, part := range parts {
		if part == "" || part == "api" || isVersionSegment(part) {
			continue
		}

		if strings.HasPrefix(part, ":") || strings.HasPrefix(part, "{") {
			continue
		}

		// If the next part is a path parameter, this is the resource
		// e.g., "/api/v1/products/:slug" -> products
		if i+1 < len(parts) && (strings.HasPrefix(parts[i+1], ":") || strings.HasPrefix(parts[i+1], "{")) {
			return part
		}

		return part
	}

	return ""
}

// isVersionSegment checks if a path segment is an API version (v1, v2, etc.)
func isVersionSegment(segment string) bool {
	if len(segment) < 2 {
		return false
	}
	if segment[0] != 'v' && segment[0] != 'V' {
		return false
	}
	for i := 1; i < len(segment); i++ {
		if segment[i] < '0' || segment[i] > '9' {
			return false
		}
	}
	return true
}
