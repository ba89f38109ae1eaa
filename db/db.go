package db

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"githubsearch/logger"
)

// Health states reported by Status
const (
	StatusUp       = "up"
	StatusDown     = "down"
	StatusDisabled = "disabled"
)

const (
	maxOpenConns    = 5
	maxIdleConns    = 2
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 2 * time.Second
)

// DB represents a database connection. A nil *DB means no database is
// configured; every method is safe to call on it. A non-nil DB without a
// connection is configured but unreachable and reports StatusDown.
type DB struct {
	conn *sqlx.DB
}

// safeLogInfo safely logs info messages, falling back to standard log if logger is not initialized
func safeLogInfo(msg string, fields ...zap.Field) {
	if logger.GetLogger() != nil {
		logger.Info(msg, fields...)
	} else {
		log.Printf("%s", msg)
	}
}

// Connect opens a Postgres connection for dsn. An empty dsn yields
// ErrNotConfigured.
func Connect(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		return nil, ErrNotConfigured
	}

	safeLogInfo("Connecting to database")
	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}

	conn.SetMaxOpenConns(maxOpenConns)
	conn.SetMaxIdleConns(maxIdleConns)
	conn.SetConnMaxLifetime(connMaxLifetime)

	safeLogInfo("Database connection established",
		zap.Int("max_open_conns", maxOpenConns),
		zap.Duration("conn_max_lifetime", connMaxLifetime))
	return &DB{conn: conn}, nil
}

// Bootstrap attempts to connect and only logs the outcome. It never fails:
// an empty dsn yields nil (disabled), and a failed connection yields a DB
// that reports StatusDown.
func Bootstrap(ctx context.Context, dsn string) *DB {
	database, err := Connect(ctx, dsn)
	switch {
	case err == nil:
		return database
	case errors.Is(err, ErrNotConfigured):
		safeLogInfo("No database configured, skipping connection")
		return nil
	default:
		logger.Warn("Error connecting to database", zap.Error(err))
		return &DB{}
	}
}

// Configured reports whether a database was requested, reachable or not
func (db *DB) Configured() bool {
	return db != nil
}

// Ping verifies the connection is alive
func (db *DB) Ping(ctx context.Context) error {
	if db == nil {
		return ErrNotConfigured
	}
	if db.conn == nil {
		return fmt.Errorf("%w: not connected", ErrDatabaseConnection)
	}
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseConnection, err)
	}
	return nil
}

// Status reports one of StatusUp, StatusDown or StatusDisabled
func (db *DB) Status(ctx context.Context) string {
	if db == nil {
		return StatusDisabled
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.Ping(ctx); err != nil {
		logger.Warn("Database ping failed", zap.Error(err))
		return StatusDown
	}
	return StatusUp
}

// Close closes the database connection
func (db *DB) Close() error {
	if db == nil || db.conn == nil {
		return nil
	}
	return db.conn.Close()
}
