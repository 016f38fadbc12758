package telemetry_test

import (
	"context"
	"runtime/pprof"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

// pprofLabelsFromContext collects all pprof labels attached to ctx.
func pprofLabelsFromContext(ctx context.Context) map[string]string {
	labels := make(map[string]string)
	pprof.ForLabels(ctx, func(key, value string) bool {
		labels[key] = value
		return true
	})
	return labels
}

func TestWithProfilingLabels_EmptyLabels(t *testing.T) {
	ctx := context.Background()
	called := false

	telemetry.WithProfilingLabels(ctx, nil, func(c context.Context) {
		called = true
	})

	assert.True(t, called, "function should be called even with empty labels")

	called = false
	telemetry.WithProfilingLabels(ctx, map[string]string{}, func(c context.Context) {
		called = true
	})

	assert.True(t, called, "function should be called with empty map")
}

func TestWithProfilingLabels_BasicLabels(t *testing.T) {
	ctx := context.Background()
	called := false
	var capturedCtx context.Context

	labels := map[string]string{
		"handler": "PromotionHandler",
		"method":  "GET",
		"route":   "/api/v1/promotions/evaluate",
	}

	telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
		called = true
		capturedCtx = c
	})

	assert.True(t, called, "function should be called")
	assert.NotNil(t, capturedCtx, "context should be passed")
}

func TestWithProfilingLabels_OnlyHighCardinalityLabels(t *testing.T) {
	ctx := context.Background()
	called := false

	// Everything here gets filtered; the function must still run.
	labels := map[string]string{
		"client_token": "tok-abc",
		"cart_id":      "cart-123",
		"order_id":     "order-456",
	}

	telemetry.WithProfilingLabels(ctx, labels, func(c context.Context) {
		called = true
	})

	assert.True(t, called, "function should be called")
}

func TestWithPprofLabels_SanitizesLabels(t *testing.T) {
	ctx := context.Background()

	labels := map[string]string{
		"handler":      "CartHandler",
		"HTTP-Method":  "POST",       // key normalized to http_method
		"client_token": "tok-secret", // high cardinality, dropped
		"user_id":      "user-9",     // high cardinality, dropped
		"":             "value",      // empty key, dropped
		"region":       "",           // empty value, dropped
	}

	var got map[string]string
	telemetry.WithPprofLabels(ctx, labels, func(c context.Context) {
		got = pprofLabelsFromContext(c)
	})

	assert.Equal(t, "CartHandler", got["handler"])
	assert.Equal(t, "POST", got["http_method"], "key should be lowercased and snake_cased")
	assert.NotContains(t, got, "client_token")
	assert.NotContains(t, got, "user_id")
	assert.NotContains(t, got, "region")
	assert.Len(t, got, 2)
}

func TestWithPprofLabels_TruncatesLongValues(t *testing.T) {
	ctx := context.Background()
	longValue := strings.Repeat("x", telemetry.MaxLabelValueLength+72)

	var got map[string]string
	telemetry.WithPprofLabels(ctx, map[string]string{"operation": longValue}, func(c context.Context) {
		got = pprofLabelsFromContext(c)
	})

	assert.Len(t, got["operation"], telemetry.MaxLabelValueLength)
}

func TestWithPprofLabels_EmptyLabels(t *testing.T) {
	ctx := context.Background()
	called := false

	telemetry.WithPprofLabels(ctx, nil, func(c context.Context) {
		called = true
	})

	assert.True(t, called, "function should be called with nil labels")
}

func TestProfilingScope_Builder(t *testing.T) {
	scope := telemetry.NewProfilingScope(nil)

	scope.WithHandler("CatalogHandler").
		WithRoute("/api/v1/products/:slug").
		WithMethod("GET").
		WithOperation("GetProductBySlug").
		WithRegion("db_query")

	labels := scope.Labels()

	assert.Equal(t, "CatalogHandler", labels[telemetry.ProfilingLabelHandler])
	assert.Equal(t, "/api/v1/products/:slug", labels[telemetry.ProfilingLabelRoute])
	assert.Equal(t, "GET", labels[telemetry.ProfilingLabelMethod])
	assert.Equal(t, "GetProductBySlug", labels[telemetry.ProfilingLabelOperation])
	assert.Equal(t, "db_query", labels[telemetry.ProfilingLabelRegion])
}

func TestProfilingScope_WithInitialLabels(t *testing.T) {
	initial := map[string]string{
		"handler": "OrderHandler",
		"method":  "POST",
	}

	scope := telemetry.NewProfilingScope(initial)
	scope.WithRoute("/api/v1/orders")

	labels := scope.Labels()

	assert.Equal(t, "OrderHandler", labels["handler"])
	assert.Equal(t, "POST", labels["method"])
	assert.Equal(t, "/api/v1/orders", labels["route"])
}

func TestProfilingScope_OverwriteLabel(t *testing.T) {
	scope := telemetry.NewProfilingScope(map[string]string{
		"handler": "OldHandler",
	})
	scope.WithHandler("CouponHandler")

	assert.Equal(t, "CouponHandler", scope.Labels()["handler"])
}

func TestProfilingScope_LabelsReturnsACopy(t *testing.T) {
	scope := telemetry.NewProfilingScope(nil)
	scope.WithHandler("PromotionHandler")

	labels1 := scope.Labels()
	labels1["handler"] = "Modified"

	labels2 := scope.Labels()
	assert.Equal(t, "PromotionHandler", labels2["handler"], "original should not be modified")
}

func TestProfilingScope_Run(t *testing.T) {
	ctx := context.Background()
	called := false

	scope := telemetry.NewProfilingScope(nil)
	scope.WithHandler("CartHandler").WithMethod("POST")

	scope.Run(ctx, func(c context.Context) {
		called = true
	})

	assert.True(t, called, "function should be called via Run")
}

func TestHTTPRequestLabels(t *testing.T) {
	tests := []struct {
		name    string
		handler string
		route   string
		method  string
		wantLen int
	}{
		{
			name:    "all_fields",
			handler: "CatalogHandler",
			route:   "/api/v1/products",
			method:  "GET",
			wantLen: 3,
		},
		{
			name:    "only_handler",
			handler: "CatalogHandler",
			wantLen: 1,
		},
		{
			name:    "all_empty",
			wantLen: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			labels := telemetry.HTTPRequestLabels(tt.handler, tt.route, tt.method)
			assert.Len(t, labels, tt.wantLen)
		})
	}
}

func TestOperationLabels(t *testing.T) {
	labels := telemetry.OperationLabels("EvaluatePromotions", map[string]string{
		"region": "cache",
	})

	assert.Equal(t, "EvaluatePromotions", labels[telemetry.ProfilingLabelOperation])
	assert.Equal(t, "cache", labels[telemetry.ProfilingLabelRegion])
}

func TestRegionLabels(t *testing.T) {
	labels := telemetry.RegionLabels("db_query", nil)

	assert.Equal(t, "db_query", labels[telemetry.ProfilingLabelRegion])
	assert.Len(t, labels, 1)
}
