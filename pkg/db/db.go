// Package db pkg/db/db.go provides SQLite storage for railyard configuration
// and telemetry.
package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const (
	// SQL statements for database initialization.
	createTablesSQL = `
	-- Motor driver plugin definitions. Read-only at runtime.
	CREATE TABLE IF NOT EXISTS plugins (
		name TEXT PRIMARY KEY,
		human_name TEXT NOT NULL,
		version TEXT NOT NULL,
		config_schema TEXT
	);

	-- Edge controllers. first_seen is set once; last_seen and the
	-- capability columns are owned by the telemetry ingestor.
	CREATE TABLE IF NOT EXISTS controllers (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		address TEXT,
		enabled BOOLEAN NOT NULL DEFAULT 1,
		first_seen TIMESTAMP,
		last_seen TIMESTAMP,
		platform TEXT,
		version TEXT,
		memory_mb INTEGER,
		cpu_count INTEGER,
		config_hash TEXT
	);

	-- Trains. controller_id is immutable after creation.
	CREATE TABLE IF NOT EXISTS trains (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		description TEXT,
		model TEXT,
		controller_id TEXT NOT NULL,
		plugin_name TEXT NOT NULL,
		plugin_config TEXT,
		invert_directions BOOLEAN NOT NULL DEFAULT 0,
		FOREIGN KEY (controller_id) REFERENCES controllers(id)
	);

	-- Latest telemetry snapshot, one row per train, overwritten in place.
	CREATE TABLE IF NOT EXISTS train_status (
		train_id TEXT PRIMARY KEY,
		speed INTEGER NOT NULL,
		voltage REAL NOT NULL,
		current REAL NOT NULL,
		position TEXT,
		timestamp TIMESTAMP NOT NULL,
		FOREIGN KEY (train_id) REFERENCES trains(id)
	);

	CREATE INDEX IF NOT EXISTS idx_trains_controller
		ON trains(controller_id);

	PRAGMA foreign_keys=ON;
	`
)

// DB represents the database connection and operations.
type DB struct {
	*sql.DB
}

// New creates a new database connection and initializes the schema.
func New(dbPath string) (Service, error) {
	sqlDB, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedOpenDB, err)
	}

	// Enable WAL mode for better concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToEnableWAL, err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	db := &DB{sqlDB}
	if err := db.initSchema(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFailedToInit, err)
	}

	return db, nil
}

// initSchema creates the database tables if they don't exist.
func (db *DB) initSchema() error {
	_, err := db.Exec(createTablesSQL)

	return err
}
