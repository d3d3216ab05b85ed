package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string
	Debounce  time.Duration // debounce window for viewport-driven recomputes
}

// Load reads the configuration from the environment, falling back to
// development defaults.
func Load() *Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	}

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "./data/points.db"
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "your-secret-key-change-in-production"
	}

	debounce := 250 * time.Millisecond
	if raw := os.Getenv("DEBOUNCE_MS"); raw != "" {
		if ms, err := strconv.Atoi(raw); err == nil && ms >= 0 {
			debounce = time.Duration(ms) * time.Millisecond
		}
	}

	return &Config{
		Port:      port,
		DBPath:    dbPath,
		JWTSecret: jwtSecret,
		Debounce:  debounce,
	}
}
