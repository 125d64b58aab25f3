package app

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hellodemo/internal/config"
	"hellodemo/internal/logging"
)

// stubOpenDB makes Bootstrap use db (or fail with openErr) instead of dialing.
func stubOpenDB(t *testing.T, db *sql.DB, openErr error) {
	t.Helper()
	orig := openDB
	openDB = func(config.DatabaseConfig) (*sql.DB, error) {
		if openErr != nil {
			return nil, openErr
		}
		return db, nil
	}
	t.Cleanup(func() { openDB = orig })
}

func TestBootstrap_MigrationFailureClosesDatabase(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	stubOpenDB(t, db, nil)

	migrateErr := errors.New("permission denied")
	mock.ExpectQuery("SELECT to_regclass").WillReturnError(migrateErr)
	mock.ExpectClose()

	cfg := testConfig()
	cfg.Database.AutoMigrate = true

	a, err := Bootstrap(context.Background(), cfg, logging.Discard())

	assert.Nil(t, a)
	assert.ErrorIs(t, err, migrateErr)
	assert.ErrorContains(t, err, "migrate: ")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBootstrap_DatabaseUnavailable(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	dialErr := errors.New("db ping: connection refused")
	stubOpenDB(t, nil, dialErr)

	a, err := Bootstrap(context.Background(), testConfig(), logging.Discard())

	assert.Nil(t, a)
	assert.ErrorIs(t, err, dialErr)
	assert.ErrorContains(t, err, "connect to database")
}

func TestBootstrap_ClosesOnClose(t *testing.T) {
	t.Setenv("OTEL_SDK_DISABLED", "true")

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	stubOpenDB(t, db, nil)

	mock.ExpectQuery("SELECT to_regclass").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectClose()

	cfg := testConfig()
	cfg.Database.AutoMigrate = true

	a, err := Bootstrap(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)
	assert.Contains(t, a.Components(), ComponentHelloController)
	assert.NotContains(t, a.Components(), ComponentCountCache)

	assert.NoError(t, a.Close(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
