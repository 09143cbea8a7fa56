package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process-level configuration for the API server and the
// batch runner. All values come from the environment so main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig

	Gemini GeminiConfig

	// PrimaryCarrier identifies the distinguished carrier subject to the
	// multi-party cooperative rules.
	PrimaryCarrierBrand      string
	PrimaryCarrierArabicName string

	// RefDataPath points at the make/model to license-type JSON table.
	RefDataPath string

	// DecisionWorkers bounds concurrent model calls per claim (2-10).
	DecisionWorkers int

	// ResultCacheTTL controls how long validated case results stay in Redis.
	ResultCacheTTL time.Duration

	// RateLimit caps requests per client per window on the claim routes.
	// Zero disables limiting.
	RateLimit       int
	RateLimitWindow time.Duration
}

// RedisConfig configures the optional result cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit event publisher.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// GeminiConfig configures the language-model decision source.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:          envOr("CLAIMS_ADDR", ":8080"),
		JWTSigningKey: os.Getenv("JWT_SIGNING_KEY"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envIntOr("REDIS_POOL_SIZE", 10),
			MinIdleConns: envIntOr("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   envOr("KAFKA_AUDIT_TOPIC", "claims.audit.events"),
		},
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
			Model:  envOr("GEMINI_MODEL", "gemini-1.5-pro"),
		},
		PrimaryCarrierBrand:      envOr("PRIMARY_CARRIER_BRAND", "Tawuniya"),
		PrimaryCarrierArabicName: envOr("PRIMARY_CARRIER_ARABIC_NAME", "شركة التعاونية للتأمين"),
		RefDataPath:              envOr("REFDATA_PATH", "refdata/license_types.json"),
		DecisionWorkers:          envIntOr("DECISION_WORKERS", 4),
		ResultCacheTTL:           envDurationOr("RESULT_CACHE_TTL", 15*time.Minute),
		RateLimit:                envIntOr("RATE_LIMIT", 120),
		RateLimitWindow:          envDurationOr("RATE_LIMIT_WINDOW", time.Minute),
	}

	// The model backend tolerates only a narrow concurrency band.
	if cfg.DecisionWorkers < 2 {
		cfg.DecisionWorkers = 2
	}
	if cfg.DecisionWorkers > 10 {
		cfg.DecisionWorkers = 10
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
