package db

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new test database connection with a mock
func setupTestDB(t *testing.T) (*DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)

	database := &DB{conn: sqlx.NewDb(db, "sqlmock")}

	cleanup := func() {
		db.Close()
	}

	return database, mock, cleanup
}

func TestConnectNotConfigured(t *testing.T) {
	database, err := Connect(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotConfigured)
	assert.Nil(t, database)
}

func TestConnectUnreachable(t *testing.T) {
	database, err := Connect(context.Background(), "postgres://app@127.0.0.1:1/app?sslmode=disable&connect_timeout=1")
	assert.ErrorIs(t, err, ErrDatabaseConnection)
	assert.Nil(t, database)
}

func TestBootstrapNeverFails(t *testing.T) {
	tests := []struct {
		name       string
		dsn        string
		configured bool
		status     string
	}{
		{name: "not configured", dsn: "", configured: false, status: StatusDisabled},
		{name: "unreachable", dsn: "postgres://app@127.0.0.1:1/app?sslmode=disable&connect_timeout=1", configured: true, status: StatusDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			database := Bootstrap(context.Background(), tt.dsn)
			assert.Equal(t, tt.configured, database.Configured())
			assert.Equal(t, tt.status, database.Status(context.Background()))
			assert.NoError(t, database.Close())
		})
	}
}

func TestUnreachableDatabasePing(t *testing.T) {
	database := &DB{}
	assert.ErrorIs(t, database.Ping(context.Background()), ErrDatabaseConnection)
	assert.Equal(t, StatusDown, database.Status(context.Background()))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		name      string
		mockSetup func(sqlmock.Sqlmock)
		expected  string
	}{
		{
			name: "ping succeeds",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing()
			},
			expected: StatusUp,
		},
		{
			name: "ping fails",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(sql.ErrConnDone)
			},
			expected: StatusDown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, cleanup := setupTestDB(t)
			defer cleanup()

			tt.mockSetup(mock)

			assert.Equal(t, tt.expected, db.Status(context.Background()))
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPing(t *testing.T) {
	db, mock, cleanup := setupTestDB(t)
	defer cleanup()

	mock.ExpectPing().WillReturnError(sql.ErrConnDone)

	err := db.Ping(context.Background())
	assert.ErrorIs(t, err, ErrDatabaseConnection)
	assert.NoError(t, mock.ExpectationsWereMet())

	var disabled *DB
	assert.ErrorIs(t, disabled.Ping(context.Background()), ErrNotConfigured)
}

func TestClose(t *testing.T) {
	db, mock, _ := setupTestDB(t)
	mock.ExpectClose()

	assert.NoError(t, db.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
