package telemetry_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

func TestDefaultDBMetricsConfig(t *testing.T) {
	cfg := telemetry.DefaultDBMetricsConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThreshold)
	assert.Equal(t, 15*time.Second, cfg.PoolStatsInterval)
}

func TestNewDBMetrics_Defaults(t *testing.T) {
	mp := newDisabledMeterProvider(t)

	m, err := telemetry.NewDBMetrics(mp.Meter("db"), telemetry.DBMetricsConfig{Enabled: true}, nil)
	require.NoError(t, err)
	require.NotNil(t, m)

	// Recording is a no-op against the no-op meter, but must not panic
	m.RecordQuery(context.Background(), "select", "products", 5*time.Millisecond, nil)
	m.RecordQuery(context.Background(), "", "", time.Second, nil)

	m.Stop()
	// Safe to call multiple times
	m.Stop()
}

func TestDBMetricsPlugin_Initialize(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	mp := newDisabledMeterProvider(t)
	m, err := telemetry.NewDBMetrics(mp.Meter("db"), telemetry.DefaultDBMetricsConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	defer m.Stop()

	plugin := telemetry.NewDBMetricsPlugin(m, zaptest.NewLogger(t))
	assert.Equal(t, "db_metrics", plugin.Name())
	require.NoError(t, db.Use(plugin))

	// Queries run through the metric callbacks without error
	type row struct {
		ID   uint `gorm:"primarykey"`
		Name string
	}
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create(&row{Name: "linen shirt"}).Error)

	var got row
	require.NoError(t, db.First(&got).Error)
	assert.Equal(t, "linen shirt", got.Name)
}

func TestRegisterDBMetrics_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	m, err := telemetry.RegisterDBMetrics(db, nil, telemetry.DBMetricsConfig{Enabled: false}, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestRegisterDBMetrics_NoMeterProvider(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	// A disabled meter provider also skips registration
	mp := newDisabledMeterProvider(t)
	m, err := telemetry.RegisterDBMetrics(db, mp, telemetry.DefaultDBMetricsConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Nil(t, m)
}
