package telemetry_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/verdantia/storefront/internal/infrastructure/telemetry"
)

func TestDefaultDBTracingConfig(t *testing.T) {
	cfg := telemetry.DefaultDBTracingConfig()

	assert.False(t, cfg.Enabled)
	assert.False(t, cfg.LogFullSQL)
	assert.Equal(t, 200*time.Millisecond, cfg.SlowQueryThresh)
	assert.Equal(t, "postgresql", cfg.DBSystem)
	assert.True(t, cfg.WithoutVariables)
}

func TestDBTracingPlugin_Disabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	plugin := telemetry.NewDBTracingPlugin(telemetry.DefaultDBTracingConfig(), zaptest.NewLogger(t))

	// Disabled config skips registration entirely
	require.NoError(t, plugin.RegisterOtelGorm(db))
}

func TestDBTracingPlugin_Enabled(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := telemetry.DefaultDBTracingConfig()
	cfg.Enabled = true
	cfg.DBSystem = "sqlite"

	plugin := telemetry.NewDBTracingPlugin(cfg, zaptest.NewLogger(t))
	require.NoError(t, plugin.RegisterOtelGorm(db))

	// Queries still work with the callbacks registered
	type row struct {
		ID   uint `gorm:"primarykey"`
		Name string
	}
	require.NoError(t, db.AutoMigrate(&row{}))
	require.NoError(t, db.Create(&row{Name: "hemp tote"}).Error)

	var got row
	require.NoError(t, db.First(&got, "name = ?", "hemp tote").Error)
	assert.Equal(t, "hemp tote", got.Name)
}
