package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string

	// BaseURLs is the ordered host sweep list; order is priority order.
	BaseURLs []string

	RedisAddr string
	RedisDB   int
	RedisPass string

	CacheTTL    time.Duration // room-query TTL
	UpstreamRPS int
	WarmWorkers int
}

func Load() Config {
	// .env is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		BaseURLs:    splitHosts(env("BASE_URLS", "http://localhost:3000")),
		RedisAddr:   env("REDIS_ADDR", ""),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		CacheTTL:    time.Duration(atoi("CACHE_TTL_MS", 30_000)) * time.Millisecond,
		UpstreamRPS: atoi("UPSTREAM_RPS", 20),
		WarmWorkers: atoi("WARM_WORKERS", 4),
	}
	if len(c.BaseURLs) == 1 {
		log.Warn().Msg("only one base URL configured; host fallback is a no-op")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// splitHosts parses a comma-separated host list, trimming whitespace
// and trailing slashes. Order is priority order.
func splitHosts(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if h := strings.TrimRight(strings.TrimSpace(p), "/"); h != "" {
			out = append(out, h)
		}
	}
	if len(out) == 0 {
		out = []string{"http://localhost:3000"}
	}
	return out
}
