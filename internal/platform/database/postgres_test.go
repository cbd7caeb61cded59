package database_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/srgjo27/rac_reservation/internal/platform/database"
)

func TestConfigDSN(t *testing.T) {
	cfg := database.Config{Host: "db", Port: "5433", User: "rail", Password: "secret", DBName: "rac"}

	assert.Equal(t, "postgres://rail:secret@db:5433/rac?sslmode=disable", cfg.DSN())
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS reservation_events").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.NoError(t, database.EnsureSchema(context.Background(), db))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	assert.Error(t, database.EnsureSchema(context.Background(), db))

	assert.NoError(t, mock.ExpectationsWereMet())
}
