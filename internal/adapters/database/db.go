package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/internal/config"
	"github.com/mvasconcelos/horaculo/pkg/logger"
)

// DB wraps the durable store connection. Backend selection happens here at
// construction time: Postgres when DATABASE_URL is set, a local file-backed
// SQLite store otherwise.
type DB struct {
	conn   *sqlx.DB
	driver string
}

// New creates new database connection per cfg
func New(cfg *config.DatabaseConfig) (*DB, error) {
	if cfg.URL != "" {
		return newPostgres(cfg.URL)
	}
	return newSQLite(cfg.SQLitePath)
}

func newPostgres(url string) (*DB, error) {
	conn, err := sqlx.Connect("postgres", url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	conn.SetMaxOpenConns(25)
	conn.SetMaxIdleConns(5)
	conn.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("database connection established", zap.String("backend", "postgres"))
	return &DB{conn: conn, driver: "postgres"}, nil
}

func newSQLite(path string) (*DB, error) {
	conn, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite store: %w", err)
	}

	// Single writer; WAL keeps concurrent readers unblocked.
	conn.SetMaxOpenConns(1)
	if _, err := conn.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := conn.Exec("PRAGMA synchronous=NORMAL;"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	logger.Info("database connection established",
		zap.String("backend", "sqlite"),
		zap.String("path", path),
	)
	return &DB{conn: conn, driver: "sqlite3"}, nil
}

// DB returns the underlying sqlx handle
func (db *DB) DB() *sqlx.DB {
	return db.conn
}

// Driver returns the active driver name ("postgres" or "sqlite3")
func (db *DB) Driver() string {
	return db.driver
}

// Close closes database connection
func (db *DB) Close() error {
	if db.conn != nil {
		logger.Info("closing database connection")
		return db.conn.Close()
	}
	return nil
}

// Health checks database health
func (db *DB) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}
