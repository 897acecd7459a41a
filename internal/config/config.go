package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultPort           = "8080"
	defaultJWTAccessTTL   = "24h"
	defaultGatewayTimeout = "15s"
	defaultDatabaseDSN    = "bhavan.db"
)

type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string

	JWTSecret    string
	JWTAccessTTL time.Duration

	GatewayBaseURL   string
	GatewayKeyID     string
	GatewayKeySecret string
	GatewayTimeout   time.Duration

	CORSOrigins []string
	LogLevel    string
	LogFormat   string
}

// Load reads configuration from the environment, honouring a local .env
// file when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppEnv:           strings.ToLower(getEnv("APP_ENV", "dev")),
		Port:             getEnv("PORT", defaultPort),
		DatabaseURL:      getEnv("DATABASE_URL", defaultDatabaseDSN),
		JWTSecret:        strings.TrimSpace(os.Getenv("JWT_SECRET")),
		GatewayBaseURL:   getEnv("PAYMENT_GATEWAY_URL", "https://api.payments.example.com"),
		GatewayKeyID:     os.Getenv("PAYMENT_GATEWAY_KEY_ID"),
		GatewayKeySecret: os.Getenv("PAYMENT_GATEWAY_KEY_SECRET"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is empty")
	}
	if cfg.GatewayKeySecret == "" {
		return nil, fmt.Errorf("PAYMENT_GATEWAY_KEY_SECRET is empty")
	}

	var err error
	cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", defaultJWTAccessTTL)
	if err != nil {
		return nil, err
	}
	cfg.GatewayTimeout, err = parseDurationEnv("PAYMENT_GATEWAY_TIMEOUT", defaultGatewayTimeout)
	if err != nil {
		return nil, err
	}

	if raw := os.Getenv("CORS_ALLOWED_ORIGINS"); raw != "" {
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.CORSOrigins = append(cfg.CORSOrigins, o)
			}
		}
	}

	return cfg, nil
}

func getEnv(name, def string) string {
	if v := strings.TrimSpace(os.Getenv(name)); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(name, def string) (time.Duration, error) {
	raw := getEnv(name, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %q", name, raw)
	}
	return d, nil
}
