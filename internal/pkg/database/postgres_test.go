package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresClient_GetDB(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	sqlxDB := sqlx.NewDb(mockDB, "pgx")
	client := NewPostgresClientFromExisting(sqlxDB)

	assert.NotNil(t, client)
	assert.Equal(t, sqlxDB, client.GetDB())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresClient_Close(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	mock.ExpectClose()

	sqlxDB := sqlx.NewDb(mockDB, "pgx")
	client := NewPostgresClientFromExisting(sqlxDB)

	assert.NoError(t, client.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
