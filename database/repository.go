package database

import "database/sql"

// Repository owns all note-specific SQL. It is constructed once at startup
// and shared across requests; the underlying pool handles concurrency.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *DB) *Repository {
	return &Repository{db: db.DB}
}

// NewRepositoryFromSQL wraps a raw *sql.DB. Used by tests that substitute
// a mock driver.
func NewRepositoryFromSQL(db *sql.DB) *Repository {
	return &Repository{db: db}
}
