package database_test

import (
	"context"
	"testing"

	"products-api/internal/config"
	"products-api/internal/database"
	"products-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		DatabaseDriver: config.DriverSQLite,
		DatabaseURL:    "file:" + t.Name() + "?mode=memory&cache=shared",
		AppEnv:         "test",
	}
}

func TestConnect_MigratesAndLogsSuccess(t *testing.T) {
	db, err := database.Open(sqliteConfig(t))
	require.NoError(t, err)
	defer database.Close(db)

	core, logs := observer.New(zapcore.InfoLevel)
	require.NoError(t, database.Connect(context.Background(), db, true, zap.New(core)))

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.Equal(t, 1, logs.FilterMessage(database.MsgConnectionSucceeded).Len())
}

func TestConnect_LogsConnectionErrors(t *testing.T) {
	db, err := database.Open(sqliteConfig(t))
	require.NoError(t, err)
	require.NoError(t, database.Close(db))

	core, logs := observer.New(zapcore.InfoLevel)
	err = database.Connect(context.Background(), db, true, zap.New(core))
	assert.Error(t, err)

	entries := logs.FilterMessageSnippet("Error al conectarse a la base de datos").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open(&config.Config{DatabaseDriver: "oracle"})
	assert.Error(t, err)
}
