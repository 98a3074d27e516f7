package config

import (
	"os"
	"time"

	"github.com/mboard/webclient/internal/util"
)

type Config struct {
	Addr       string
	Env        string
	APIBaseURL string
	CacheURL   string
	SessionTTL time.Duration
}

func LoadConfig() (*Config, error) {
	if err := util.LoadEnv(); err != nil {
		return nil, err
	}
	addr := getenv("ADDR", ":4000")
	env := getenv("ENV", "development")
	apiBaseURL := getenv("API_BASE_URL", "https://mboard-taupe.vercel.app")
	cacheURL := getenv("CACHE_URL", "127.0.0.1:6379")

	sessionTTL := 24 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil {
			return nil, err
		}
		sessionTTL = ttl
	}

	return &Config{
		Addr:       addr,
		Env:        env,
		APIBaseURL: apiBaseURL,
		CacheURL:   cacheURL,
		SessionTTL: sessionTTL,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
