package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	App      AppConfig
	Backend  BackendConfig
	Redis    RedisConfig
	Snapshot SnapshotConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

// BackendConfig points at the recruitment REST API this service fronts.
type BackendConfig struct {
	BaseURL        string
	TimeoutSeconds int
	// DetailRPS caps outbound detail/profile lookups per second.
	DetailRPS float64
	// EnrichWaitMillis bounds how long one page render waits for
	// enrichment before flagging rows as pending.
	EnrichWaitMillis int
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	// TTLSeconds is the default lifetime of cached result pages.
	TTLSeconds int
}

type SnapshotConfig struct {
	RefreshMinutes int
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	cfg := Config{}

	var missing []string
	req := func(key string) string {
		v := strings.TrimSpace(os.Getenv(key))
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}
	opt := func(key string) string {
		return strings.TrimSpace(os.Getenv(key))
	}

	cfg.App = AppConfig{
		AppName:     req("APP_NAME"),
		Environment: req("APP_ENV"),
		HTTPPort:    req("HTTP_PORT"),
	}

	cfg.Backend = BackendConfig{
		BaseURL:          req("BACKEND_BASE_URL"),
		TimeoutSeconds:   optInt("BACKEND_TIMEOUT_SECONDS", 15),
		DetailRPS:        optFloat("BACKEND_DETAIL_RPS", 20),
		EnrichWaitMillis: optInt("ENRICH_WAIT_MS", 2000),
	}

	cfg.Redis = RedisConfig{
		Host:       opt("REDIS_HOST"),
		Port:       opt("REDIS_PORT"),
		Password:   opt("REDIS_PASSWORD"),
		TTLSeconds: optInt("REDIS_TTL", 600),
	}

	cfg.Snapshot = SnapshotConfig{
		RefreshMinutes: optInt("SNAPSHOT_REFRESH_MINUTES", 10),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func optFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
