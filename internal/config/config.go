package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds everything read from the environment at startup. Token
// material is fixed for the process lifetime; changing the secret or
// algorithm invalidates every outstanding token.
type Config struct {
	Port               string
	DatabaseURL        string
	SecretKey          string
	Algorithm          string
	AccessTokenExpire  time.Duration
	RefreshTokenExpire time.Duration
}

const (
	defaultPort                = "3000"
	defaultAlgorithm           = "HS256"
	defaultAccessExpireMinutes = 30
	defaultRefreshExpireDays   = 7
)

func Load() (*Config, error) {
	cfg := &Config{
		Port:      os.Getenv("PORT"),
		Algorithm: os.Getenv("ALGORITHM"),
	}

	if cfg.Port == "" {
		cfg.Port = defaultPort
	}

	if cfg.Algorithm == "" {
		cfg.Algorithm = defaultAlgorithm
	}

	if cfg.Algorithm != "HS256" {
		return nil, fmt.Errorf("unsupported ALGORITHM %q, only HS256 is supported", cfg.Algorithm)
	}

	cfg.SecretKey = os.Getenv("SECRET_KEY")

	if cfg.SecretKey == "" {
		return nil, fmt.Errorf("SECRET_KEY environment variable is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	accessMinutes := defaultAccessExpireMinutes

	if v := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", v)
		}
		accessMinutes = parsed
	}

	refreshDays := defaultRefreshExpireDays

	if v := os.Getenv("REFRESH_TOKEN_EXPIRE_DAYS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("invalid REFRESH_TOKEN_EXPIRE_DAYS: %q", v)
		}
		refreshDays = parsed
	}

	cfg.AccessTokenExpire = time.Duration(accessMinutes) * time.Minute
	cfg.RefreshTokenExpire = time.Duration(refreshDays) * 24 * time.Hour

	return cfg, nil
}
