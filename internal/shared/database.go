package shared

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// Pool defaults for the local library database. It is a single-user sqlite
// file, so a handful of connections is plenty.
const (
	defaultMaxOpenConns = 4
	defaultMaxIdleConns = 2
)

// NewDatabase opens the local library database at the specified path.
// The path can be ":memory:" for an in-memory database.
//
// Foreign keys are switched on so future migrations can rely on them;
// sqlite leaves them off per connection by default.
func NewDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// ConfigureDatabase sets connection pool settings for the library database.
// Non-positive values fall back to the local-store defaults, so a sparse
// config.toml still gets a sane pool.
func ConfigureDatabase(db *sql.DB, maxOpenConns, maxIdleConns int) {
	if maxOpenConns <= 0 {
		maxOpenConns = defaultMaxOpenConns
	}
	if maxIdleConns <= 0 {
		maxIdleConns = defaultMaxIdleConns
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
}
