package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const prodEnv = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	StoragePath string

	// Check-in policy: a booking can be checked in starting
	// CheckInEarlyWindow before its start time, and is considered a
	// no-show (expired) once CheckInGracePeriod has passed after its
	// end time without a check-in.
	CheckInEarlyWindow time.Duration
	CheckInGracePeriod time.Duration

	// ExpireSweepInterval controls how often overdue bookings are
	// swept into the expired status.
	ExpireSweepInterval time.Duration

	// Rate limiting and response caching for public endpoints.
	RateLimitPerSecond float64
	RateLimitBurst     int
	CacheTTL           time.Duration
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{}

	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")
	cfg.IsProduction = getEnv("APP_ENV", "dev") == prodEnv
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	var err error
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "15m")
	if err != nil {
		return nil, err
	}

	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}

	cfg.StoragePath = getEnv("STORAGE_PATH", "./data/uploads")

	cfg.CheckInEarlyWindow, err = getEnvAsDuration("CHECKIN_EARLY_WINDOW", "15m")
	if err != nil {
		return nil, err
	}
	cfg.CheckInGracePeriod, err = getEnvAsDuration("CHECKIN_GRACE_PERIOD", "30m")
	if err != nil {
		return nil, err
	}
	cfg.ExpireSweepInterval, err = getEnvAsDuration("EXPIRE_SWEEP_INTERVAL", "5m")
	if err != nil {
		return nil, err
	}

	rps, err := getEnvAsInt("RATE_LIMIT_PER_SECOND", 10)
	if err != nil {
		return nil, err
	}
	cfg.RateLimitPerSecond = float64(rps)

	cfg.RateLimitBurst, err = getEnvAsInt("RATE_LIMIT_BURST", 20)
	if err != nil {
		return nil, err
	}

	cfg.CacheTTL, err = getEnvAsDuration("CACHE_TTL", "30s")
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise the provided default.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as an integer, falling back
// to the default when unset. A set-but-invalid value is an error.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}
	return val, nil
}

// getEnvAsDuration reads an environment variable as a time.Duration
// (e.g. "15m", "1h"), falling back to the default when unset.
func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	valStr := getEnv(key, defaultValue)
	d, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return d, nil
}
