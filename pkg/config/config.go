package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Backend identifiers accepted in STORAGE_BACKEND.
const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendAuto   = "auto"
)

// Config holds the runtime configuration, loaded from environment
// variables with sensible defaults for a single-device installation.
type Config struct {
	Port         string
	Backend      string
	DataDir      string
	DatabaseName string

	// TimeZone is the single canonical zone used for every
	// time-bucketed report query.
	TimeZone string

	LowStockThreshold int
}

func Load() *Config {
	return &Config{
		Port:              getEnv("PORT", "3000"),
		Backend:           getEnv("STORAGE_BACKEND", BackendAuto),
		DataDir:           getEnv("DATA_DIR", "data"),
		DatabaseName:      getEnv("DATABASE_NAME", "facturacion"),
		TimeZone:          getEnv("TIME_ZONE", "America/Panama"),
		LowStockThreshold: getEnvInt("LOW_STOCK_THRESHOLD", 5),
	}
}

// SQLitePath is the embedded database file inside DataDir.
func (c *Config) SQLitePath() string {
	return filepath.Join(c.DataDir, c.DatabaseName+".db")
}

// BoltPath is the document-store file inside DataDir.
func (c *Config) BoltPath() string {
	return filepath.Join(c.DataDir, c.DatabaseName+".bolt")
}

// Location resolves the configured report timezone, falling back to
// UTC when the zone name is unknown on the host.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
