package database

import (
	"testing"

	"warehouse/internal/config"
	"warehouse/internal/logger"
	"warehouse/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConnectionSQLiteAndMigrate(t *testing.T) {
	db, err := NewConnection(config.DatabaseConfig{Driver: "sqlite", DSN: "file::memory:", MaxOpenConns: 1}, logger.Discard())
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(db))

	for _, m := range []interface{}{&model.QualityControl{}, &model.WarehouseApproval{}, &model.InventoryRecord{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
	assert.True(t, db.Migrator().HasIndex(&model.InventoryRecord{}, "idx_inventory_batch"))
	assert.True(t, db.Migrator().HasIndex(&model.QualityControl{}, "idx_qc_active_invoice"))
}

func TestNewConnectionRejectsUnknownDriver(t *testing.T) {
	_, err := NewConnection(config.DatabaseConfig{Driver: "oracle"}, logger.Discard())
	assert.Error(t, err)
}
