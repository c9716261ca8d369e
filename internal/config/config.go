// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/usestring/salesdash-mcp/pkg/client"
	"github.com/usestring/salesdash-mcp/pkg/payload"
)

// Tool output defaults
const (
	DefaultRowLimitValue = 50
	MaxRowLimitValue     = 1000
)

// DefaultAccount is the account questions are asked against when none is
// configured.
const DefaultAccount = "ORGANIC NET REVENUES"

// Config holds all configuration for the MCP server and CLI.
type Config struct {
	APIEndpoint       string        // SALESDASH_API_ENDPOINT, default "http://localhost:8000/chat"
	Account           string        // SALESDASH_ACCOUNT, default "ORGANIC NET REVENUES"
	HTTPClientTimeout time.Duration // HTTP_CLIENT_TIMEOUT_MS, default 60000ms (60s)

	// Caching
	CacheTTL             time.Duration // CACHE_TTL_MS, default 300000ms (5m)
	CacheMaxItems        int           // CACHE_MAX_ITEMS, default 256
	PayloadStoreMaxItems int           // PAYLOAD_STORE_MAX_ITEMS, default 128

	// Parsing
	ParseMaxDepth int // PARSE_MAX_DEPTH, default 64

	// Dashboard
	DashboardMaxTabs int // DASHBOARD_MAX_TABS, default 3
	DashboardWorkers int // DASHBOARD_WORKERS, default 3

	// Tool output limits
	DefaultRowLimit int // DEFAULT_ROW_LIMIT
	MaxRowLimit     int // MAX_ROW_LIMIT

	// Metrics
	MetricsAddr string // METRICS_ADDR, default "" (disabled)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		APIEndpoint:       getEnvString("SALESDASH_API_ENDPOINT", client.DefaultEndpoint),
		Account:           getEnvString("SALESDASH_ACCOUNT", DefaultAccount),
		HTTPClientTimeout: getEnvDurationMs("HTTP_CLIENT_TIMEOUT_MS", 60000),

		CacheTTL:             getEnvDurationMs("CACHE_TTL_MS", 300000),
		CacheMaxItems:        getEnvInt("CACHE_MAX_ITEMS", 256),
		PayloadStoreMaxItems: getEnvInt("PAYLOAD_STORE_MAX_ITEMS", 128),

		ParseMaxDepth: getEnvInt("PARSE_MAX_DEPTH", payload.DefaultMaxDepth),

		DashboardMaxTabs: getEnvInt("DASHBOARD_MAX_TABS", 3),
		DashboardWorkers: getEnvInt("DASHBOARD_WORKERS", 3),

		DefaultRowLimit: getEnvInt("DEFAULT_ROW_LIMIT", DefaultRowLimitValue),
		MaxRowLimit:     getEnvInt("MAX_ROW_LIMIT", MaxRowLimitValue),

		MetricsAddr: getEnvString("METRICS_ADDR", ""),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

// ClampRowLimit applies the default to non-positive limits and caps the rest.
func (c *Config) ClampRowLimit(limit int) int {
	if limit <= 0 {
		limit = c.DefaultRowLimit
	}
	if c.MaxRowLimit > 0 && limit > c.MaxRowLimit {
		limit = c.MaxRowLimit
	}
	return limit
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
