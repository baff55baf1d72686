package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all settings sourced from the environment. It is built once
// at startup and passed by reference; request-handling code never reads
// environment variables directly.
type Config struct {
	Port     string
	Env      string
	LogLevel string

	Database DatabaseConfig
}

// DatabaseConfig describes how to reach the MySQL server. Defaults target a
// local or containerized instance.
type DatabaseConfig struct {
	Host     string
	Port     int
	Name     string
	User     string
	Password string

	// SSLMode is one of "disabled", "required", or "custom". "custom"
	// expects SSLCA to point at a PEM-encoded CA certificate.
	SSLMode string
	SSLCA   string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:     GetEnv("PORT", "5000"),
		Env:      GetEnv("ENV", "development"),
		LogLevel: GetEnv("LOG_LEVEL", "info"),
		Database: DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			Port:     GetEnvInt("DB_PORT", 3306),
			Name:     GetEnv("DB_NAME", "notes_db"),
			User:     GetEnv("DB_USER", "root"),
			Password: GetEnv("DB_PASSWORD", ""),
			SSLMode:  GetEnv("DB_SSL_MODE", "disabled"),
			SSLCA:    GetEnv("DB_SSL_CA", ""),
		},
	}
}

// Addr returns the host:port of the MySQL server.
func (d DatabaseConfig) Addr() string {
	return d.Host + ":" + strconv.Itoa(d.Port)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func GetEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
