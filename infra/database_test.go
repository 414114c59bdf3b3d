package infra

import (
	"testing"
	"time"

	"github.com/amirasaad/ledger/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDBConnection_SQLite(t *testing.T) {
	db, err := NewDBConnection(&config.DB{
		Driver:          "sqlite",
		Url:             "file::memory:",
		MaxOpenConns:    25,
		MaxIdleConns:    1,
		ConnMaxLifetime: time.Hour,
	}, "test")
	require.NoError(t, err)

	require.NoError(t, AutoMigrate(db))
	assert.True(t, db.Migrator().HasTable("users"))
	assert.True(t, db.Migrator().HasTable("statements"))
	assert.True(t, db.Migrator().HasIndex("statements", "SenderID"))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
}

func TestNewDBConnection_Errors(t *testing.T) {
	_, err := NewDBConnection(&config.DB{Driver: "sqlite"}, "test")
	assert.EqualError(t, err, "DATABASE_URL is not set")

	_, err = NewDBConnection(&config.DB{Driver: "oracle", Url: "x"}, "test")
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
