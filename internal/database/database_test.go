package database

import (
	"path/filepath"
	"testing"

	"trading-journal-go/internal/config"
	"trading-journal-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDatabase(t *testing.T) {
	t.Run("SQLite", func(t *testing.T) {
		db, err := NewDatabase(config.Database{
			Driver:       "sqlite",
			DSN:          filepath.Join(t.TempDir(), "journal.db"),
			MaxOpenConns: 1,
		})
		require.NoError(t, err)

		assert.True(t, db.Migrator().HasTable(&models.Method{}))
		assert.True(t, db.Migrator().HasTable(&models.Trade{}))
	})

	t.Run("MigrationKeepsRows", func(t *testing.T) {
		cfg := config.Database{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "journal.db")}
		db, err := NewDatabase(cfg)
		require.NoError(t, err)
		require.NoError(t, db.Create(&models.Method{ID: "m1", Code: "BO", Name: "Breakout"}).Error)

		db, err = NewDatabase(cfg)
		require.NoError(t, err)
		var count int64
		require.NoError(t, db.Model(&models.Method{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})

	t.Run("UnsupportedDriver", func(t *testing.T) {
		_, err := NewDatabase(config.Database{Driver: "oracle", DSN: "x"})
		assert.ErrorContains(t, err, "unsupported database driver")
	})
}
