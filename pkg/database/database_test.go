package database

import (
	"path/filepath"
	"testing"

	"textkeeper/config"
	"textkeeper/internal/domain/document"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectMigrateTruncate(t *testing.T) {
	cfg := &config.Config{
		DBDriver: "sqlite",
		DBPath:   filepath.Join(t.TempDir(), "textkeeper.db"),
		AppMode:  "test",
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(db))
	require.NoError(t, HealthCheck(db))

	require.NoError(t, db.Create(&document.Document{Collection: "texts", ID: "u1", Data: `{"text":"a"}`}).Error)
	require.NoError(t, Truncate(db))

	var count int64
	require.NoError(t, db.Model(&document.Document{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
	assert.Error(t, HealthCheck(nil))
}
