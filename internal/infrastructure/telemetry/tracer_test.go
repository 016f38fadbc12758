package telemetry_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	logger := zaptest.NewLogger(t)

	cfg := telemetry.Config{
		Enabled:           false,
		CollectorEndpoint: "localhost:4317",
		SamplingRatio:     1.0,
		ServiceName:       "storefront-test",
	}

	tp, err := telemetry.NewTracerProvider(context.Background(), cfg, logger)
	require.NoError(t, err)
	require.NotNil(t, tp)

	assert.False(t, tp.IsEnabled())
	assert.False(t, tp.IsSpanProfilesEnabled())
	assert.Equal(t, cfg, tp.GetConfig())
}

func TestTracerProvider_Disabled_Tracer(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	// Falls through to the global provider
	tracer := tp.Tracer("test")
	require.NotNil(t, tracer)

	_, span := tracer.Start(context.Background(), "noop")
	span.End()
}

func TestTracerProvider_Disabled_Shutdown(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	assert.NoError(t, tp.Shutdown(context.Background()))
	assert.NoError(t, tp.ForceFlush(context.Background()))
}

func TestTracerProvider_Disabled_EnableSpanProfiles(t *testing.T) {
	logger := zaptest.NewLogger(t)

	tp, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{Enabled: false}, logger)
	require.NoError(t, err)

	// No provider to wrap, silently does nothing
	require.NoError(t, tp.EnableSpanProfiles())
	assert.False(t, tp.IsSpanProfilesEnabled())
}
