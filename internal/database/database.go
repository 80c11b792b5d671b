package database

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver
)

// busyTimeoutMillis is how long a writer waits on a locked database before
// failing. Handlers and the cron jobs share one file, so contention is
// expected under a refresh.
const busyTimeoutMillis = 5000

// Open opens the SQLite database and applies the connection pragmas the
// engine relies on.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// The position/transaction tables reference each other by ticker; sqlite
	// ignores foreign keys unless asked.
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(fmt.Sprintf("PRAGMA busy_timeout = %d", busyTimeoutMillis)); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL lets summary reads proceed while a refresh or snapshot writes.
	// In-memory databases silently keep their default journal, which is fine
	// for tests.
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		return nil, fmt.Errorf("failed to set journal mode: %w", err)
	}

	return db, nil
}

// HealthCheck performs a simple health check on the database
func HealthCheck(db *sql.DB) error {
	return db.Ping()
}
