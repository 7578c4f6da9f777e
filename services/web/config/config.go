package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort                 = 8080
	defaultSessionIdleTTL       = 2 * time.Hour
	defaultSessionSweepInterval = 10 * time.Minute
)

// Config holds environment-driven settings for the web front-end.
type Config struct {
	Port int

	// APIKey may be empty; AI features then degrade to fallback text.
	APIKey           string
	Model            string
	AIRequestTimeout time.Duration

	CatalogPath string
	DatabaseURL string

	SessionIdleTTL       time.Duration
	SessionSweepInterval time.Duration

	LogFile string
}

// Load reads configuration from environment variables (optionally .env).
func Load() (Config, error) {
	_ = godotenv.Load() // ignore missing file

	cfg := Config{
		Port:                 defaultPort,
		SessionIdleTTL:       defaultSessionIdleTTL,
		SessionSweepInterval: defaultSessionSweepInterval,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid PORT: %s", portStr)
		}
	} else if portStr := os.Getenv("WEB_PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 {
			cfg.Port = port
		} else {
			return cfg, fmt.Errorf("invalid WEB_PORT: %s", portStr)
		}
	}

	cfg.APIKey = strings.TrimSpace(os.Getenv("API_KEY"))
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("GEMINI_API_KEY"))
	}
	cfg.Model = strings.TrimSpace(os.Getenv("GEMINI_MODEL"))

	var err error
	if cfg.AIRequestTimeout, err = durationEnv("AI_REQUEST_TIMEOUT", 0, true); err != nil {
		return cfg, err
	}
	if cfg.SessionIdleTTL, err = durationEnv("SESSION_IDLE_TTL", cfg.SessionIdleTTL, false); err != nil {
		return cfg, err
	}
	if cfg.SessionSweepInterval, err = durationEnv("SESSION_SWEEP_INTERVAL", cfg.SessionSweepInterval, false); err != nil {
		return cfg, err
	}

	cfg.CatalogPath = strings.TrimSpace(os.Getenv("CATALOG_PATH"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.LogFile = strings.TrimSpace(os.Getenv("LOG_FILE"))

	return cfg, nil
}

func durationEnv(key string, def time.Duration, allowZero bool) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 || (d == 0 && !allowZero) {
		return def, fmt.Errorf("invalid %s: %s", key, v)
	}
	return d, nil
}

// ListenAddr returns the host:port string for the HTTP server.
func (c Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.Port)
}
