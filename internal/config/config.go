package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageSQLite = "sqlite"
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

type Config struct {
	AppEnv   string
	LogLevel string
	LogFile  string

	APIBaseURL   string
	APITimeout   time.Duration
	APIRateLimit float64
	APIRateBurst int

	StorageDriver string
	StoragePath   string
	RedisURL      string

	MapsBaseURL     string
	MapsAPIKey      string
	MapsInitTimeout time.Duration

	RedirectDelay time.Duration
}

var ErrMissingAPIBaseURL = errors.New("API_BASE_URL is not set")

// Load reads the environment (and an optional .env file) into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:        getenv("APP_ENV", "development"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		LogFile:       os.Getenv("LOG_FILE"),
		APIBaseURL:    os.Getenv("API_BASE_URL"),
		StorageDriver: getenv("STORAGE_DRIVER", StorageSQLite),
		StoragePath:   getenv("STORAGE_PATH", "localmart.db"),
		RedisURL:      os.Getenv("REDIS_URL"),
		MapsBaseURL:   os.Getenv("MAPS_BASE_URL"),
		MapsAPIKey:    os.Getenv("MAPS_API_KEY"),
	}

	if cfg.APIBaseURL == "" {
		return nil, ErrMissingAPIBaseURL
	}

	var err error
	if cfg.APITimeout, err = durationEnv("API_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.MapsInitTimeout, err = durationEnv("MAPS_INIT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.RedirectDelay, err = durationEnv("CHECKOUT_REDIRECT_DELAY", 2*time.Second); err != nil {
		return nil, err
	}

	if v := os.Getenv("API_RATE_LIMIT"); v != "" {
		cfg.APIRateLimit, err = strconv.ParseFloat(v, 64)
		if err != nil || cfg.APIRateLimit <= 0 {
			return nil, fmt.Errorf("invalid API_RATE_LIMIT %q", v)
		}
	} else {
		cfg.APIRateLimit = 10
	}

	if v := os.Getenv("API_RATE_BURST"); v != "" {
		cfg.APIRateBurst, err = strconv.Atoi(v)
		if err != nil || cfg.APIRateBurst <= 0 {
			return nil, fmt.Errorf("invalid API_RATE_BURST %q", v)
		}
	} else {
		cfg.APIRateBurst = 20
	}

	switch cfg.StorageDriver {
	case StorageSQLite, StorageMemory:
	case StorageRedis:
		if cfg.RedisURL == "" {
			return nil, errors.New("REDIS_URL is required for the redis storage driver")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
