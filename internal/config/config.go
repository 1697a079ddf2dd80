package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	JWT      JWTConfig
	AI       AIConfig
}

type AppConfig struct {
	AppName     string
	Environment string
	HTTPPort    string
}

type DatabaseConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	ConnectTimeout        time.Duration
	PoolMaxConns          int32
	PoolMinConns          int32
	PoolMaxConnLifetime   time.Duration
	PoolMaxConnIdleTime   time.Duration
	PoolHealthCheckPeriod time.Duration

	RunMigrations bool
	RunSeeders    bool
}

type JWTConfig struct {
	AccessSecret     string
	RefreshSecret    string
	AccessExpiresIn  time.Duration
	RefreshExpiresIn time.Duration
}

// AIConfig selects the match-explanation mode once at startup: an empty
// GeminiAPIKey means deterministic template explanations, a non-empty key
// enables the generative path.
type AIConfig struct {
	GeminiAPIKey string
	GeminiModel  string
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

	cfg.Database = DatabaseConfig{
		DBHost:     opt("DB_HOST"),
		DBPort:     opt("DB_PORT"),
		DBName:     opt("DB_NAME"),
		DBUser:     opt("DB_USER"),
		DBPassword: opt("DB_PASSWORD"),
		DBSSLMode:  opt("DB_SSL_MODE"),

		ConnectTimeout:        optDuration("DB_CONNECT_TIMEOUT", 5*time.Second),
		PoolMaxConns:          int32(optInt("DB_POOL_MAX_CONNS", 0)),
		PoolMinConns:          int32(optInt("DB_POOL_MIN_CONNS", 0)),
		PoolMaxConnLifetime:   optDuration("DB_POOL_MAX_CONN_LIFETIME", 0),
		PoolMaxConnIdleTime:   optDuration("DB_POOL_MAX_CONN_IDLE_TIME", 0),
		PoolHealthCheckPeriod: optDuration("DB_POOL_HEALTH_CHECK_PERIOD", 0),

		RunMigrations: optBool("DB_RUN_MIGRATIONS", true),
		RunSeeders:    optBool("DB_RUN_SEEDERS", true),
	}

	cfg.JWT = JWTConfig{
		AccessSecret:     req("JWT_ACCESS_SECRET"),
		RefreshSecret:    req("JWT_REFRESH_SECRET"),
		AccessExpiresIn:  optDuration("JWT_ACCESS_EXPIRES_IN", 15*time.Minute),
		RefreshExpiresIn: optDuration("JWT_REFRESH_EXPIRES_IN", 7*24*time.Hour),
	}

	cfg.AI = AIConfig{
		GeminiAPIKey: opt("GEMINI_API_KEY"),
		GeminiModel:  opt("GEMINI_MODEL"),
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	return cfg, nil
}

func optInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}

func optBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

func optDuration(key string, def time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	if v, err := time.ParseDuration(raw); err == nil && v > 0 {
		return v
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return def
}
