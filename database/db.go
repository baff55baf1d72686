package database

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"cloud-notes/config"

	"database/sql"

	"github.com/go-sql-driver/mysql"
)

type DB struct {
	*sql.DB
}

// Open builds a DSN from cfg and opens a pooled connection to MySQL.
// The pool replaces the connection-per-request pattern; database/sql
// guarantees checkout/return, so no code path can leak a connection.
func Open(cfg config.DatabaseConfig) (*DB, error) {
	mc := mysql.NewConfig()
	mc.Net = "tcp"
	mc.Addr = cfg.Addr()
	mc.DBName = cfg.Name
	mc.User = cfg.User
	mc.Passwd = cfg.Password
	mc.ParseTime = true
	mc.Collation = "utf8mb4_unicode_ci"

	switch cfg.SSLMode {
	case "required":
		mc.TLSConfig = "skip-verify"
	case "custom":
		if err := registerCA(cfg.SSLCA); err != nil {
			return nil, err
		}
		mc.TLSConfig = "custom"
	}

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return &DB{db}, nil
}

// registerCA loads a PEM CA bundle and registers it with the driver under
// the "custom" TLS profile.
func registerCA(caPath string) error {
	pem, err := os.ReadFile(caPath)
	if err != nil {
		return fmt.Errorf("failed to read CA certificate: %w", err)
	}

	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return fmt.Errorf("failed to parse CA certificate %s", caPath)
	}

	return mysql.RegisterTLSConfig("custom", &tls.Config{RootCAs: pool})
}

// Migrate ensures the notes table exists. Safe to run on every startup.
func (db *DB) Migrate() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS notes (
			id INT AUTO_INCREMENT PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			content TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
			is_deleted BOOLEAN DEFAULT FALSE
		) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci
	`)
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	return db.DB.Close()
}
