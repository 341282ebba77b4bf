package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Base URL of the storefront REST API.
	APIBaseURL string
	// Directory holding client-local state (cart, auth token).
	StateDir string
	// Optional Redis address; empty means the file-backed local store.
	RedisAddr string

	DevServerAddr   string
	DevServerSecret string

	LogLevel string
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func defaultStateDir() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "trin")
	}
	return ".trin"
}

func Load() Config {
	_ = godotenv.Load() // load .env if it exists
	cfg := Config{
		APIBaseURL:      getenv("TRIN_API_BASEURL", "http://localhost:3000"),
		StateDir:        getenv("TRIN_STATE_DIR", defaultStateDir()),
		RedisAddr:       getenv("TRIN_REDIS_ADDR", ""),
		DevServerAddr:   getenv("TRIN_DEVSERVER_ADDR", ":3000"),
		DevServerSecret: getenv("TRIN_DEVSERVER_SECRET", "dev-only-secret"),
		LogLevel:        getenv("TRIN_LOG_LEVEL", "info"),
	}
	log.Debug().
		Str("api_baseurl", cfg.APIBaseURL).
		Str("state_dir", cfg.StateDir).
		Msg("config loaded")
	return cfg
}
