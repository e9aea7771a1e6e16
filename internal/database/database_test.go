package database_test

import (
	"context"
	"fmt"
	"testing"

	"tienda/internal/config"
	"tienda/internal/database"
	"tienda/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sqliteConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Driver:      "sqlite",
		DSN:         fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		AutoMigrate: true,
		LogLevel:    "silent",
	}
}

func TestOpen_SQLiteMigratesProducts(t *testing.T) {
	db, err := database.Open(sqliteConfig())
	require.NoError(t, err)
	defer database.Close(db)

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.NoError(t, database.Ping(context.Background(), db))
}

func TestOpen_PriceCheckConstraint(t *testing.T) {
	db, err := database.Open(sqliteConfig())
	require.NoError(t, err)
	defer database.Close(db)

	err = db.Create(&models.Product{Name: "Broken", Price: 0, Availability: true}).Error
	assert.Error(t, err)
}

func TestOpen_RejectsMemoryDriver(t *testing.T) {
	_, err := database.Open(config.DatabaseConfig{Driver: "memory"})
	assert.Error(t, err)
}

func TestClose(t *testing.T) {
	db, err := database.Open(sqliteConfig())
	require.NoError(t, err)

	require.NoError(t, database.Close(db))
	assert.Error(t, database.Ping(context.Background(), db))
}
