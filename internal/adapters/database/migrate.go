package database

import (
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"go.uber.org/zap"

	"github.com/mvasconcelos/horaculo/pkg/logger"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS source_profile (
	source TEXT PRIMARY KEY,
	total_scans INTEGER NOT NULL DEFAULT 0,
	consensus_hits INTEGER NOT NULL DEFAULT 0,
	updated_at INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS event_history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	query TEXT NOT NULL,
	hard_data TEXT NOT NULL,
	verdict_summary TEXT NOT NULL,
	timestamp INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS trusted_sources (
	source TEXT PRIMARY KEY,
	weight REAL NOT NULL
);
`

// Migrate brings the schema up to date. Postgres goes through
// golang-migrate; the SQLite fallback applies its DDL inline.
func (db *DB) Migrate(migrationsPath string) error {
	if db.driver != "postgres" {
		if _, err := db.conn.Exec(sqliteSchema); err != nil {
			return fmt.Errorf("failed to apply sqlite schema: %w", err)
		}
		logger.Info("sqlite schema ensured")
		return nil
	}

	logger.Info("running database migrations", zap.String("path", migrationsPath))

	driver, err := postgres.WithInstance(db.conn.DB, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create postgres driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil {
		if err == migrate.ErrNoChange {
			logger.Info("no new migrations to apply")
			return nil
		}
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	logger.Info("migrations completed", zap.Uint("version", version))
	return nil
}
