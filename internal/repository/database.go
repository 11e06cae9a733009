package repository

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens the task database. The application always passes ":memory:",
// so the canonical list lives only for the lifetime of the process.
func InitDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("Error trying to open DB: %w", err)
	}

	// A single connection keeps every statement on the same in-memory
	// database and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("Error trying to connect: %w", err)
	}

	if err := createTables(db); err != nil {
		return nil, err
	}

	return db, nil
}

func createTables(db *sql.DB) error {
	schema := `
    CREATE TABLE IF NOT EXISTS tasks (
        id TEXT PRIMARY KEY,
        title TEXT NOT NULL,
        revenue REAL NOT NULL,
        time_taken REAL NOT NULL,
        status TEXT NOT NULL,
        priority TEXT NOT NULL,
        position INTEGER NOT NULL
    );
    `

	_, err := db.Exec(schema)
	return err
}
