package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"payequity/pkg/platform/strutil"
)

// Config is the full process configuration, read once at startup.
type Config struct {
	Server   Server
	Logging  Logging
	Database DatabaseConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
	Audit    AuditConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string
	ShutdownTimeout time.Duration
}

// Logging selects the slog handler.
type Logging struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// DatabaseConfig configures the Postgres report store. An empty URL selects
// the in-memory store.
type DatabaseConfig struct {
	URL      string
	MaxConns int32
}

// RedisConfig configures the verdict cache. An empty URL disables caching.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	VerdictTTL   time.Duration
}

// KafkaConfig configures the compliance audit stream. No brokers keeps audit
// events in memory.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// AuditConfig tunes the best-effort operations audit path.
type AuditConfig struct {
	OpsSampleRate float64 // fraction of report views recorded, 0..1
	OpsQueueSize  int
}

// FromEnv builds a Config from PAYEQUITY_* environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:            getString("PAYEQUITY_ADDR", ":8080"),
			ShutdownTimeout: getDuration("PAYEQUITY_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Logging: Logging{
			Level:  getString("PAYEQUITY_LOG_LEVEL", "info"),
			Format: getString("PAYEQUITY_LOG_FORMAT", "json"),
		},
		Database: DatabaseConfig{
			URL:      os.Getenv("PAYEQUITY_DATABASE_URL"),
			MaxConns: int32(getInt("PAYEQUITY_DATABASE_MAX_CONNS", 10)),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("PAYEQUITY_REDIS_URL"),
			PoolSize:     getInt("PAYEQUITY_REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("PAYEQUITY_REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("PAYEQUITY_REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("PAYEQUITY_REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("PAYEQUITY_REDIS_WRITE_TIMEOUT", 3*time.Second),
			VerdictTTL:   getDuration("PAYEQUITY_VERDICT_CACHE_TTL", 24*time.Hour),
		},
		Kafka: KafkaConfig{
			Brokers: getList("PAYEQUITY_KAFKA_BROKERS"),
			Topic:   getString("PAYEQUITY_KAFKA_AUDIT_TOPIC", "payequity.compliance.audit"),
		},
		Audit: AuditConfig{
			OpsSampleRate: getFloat("PAYEQUITY_AUDIT_OPS_SAMPLE_RATE", 1),
			OpsQueueSize:  getInt("PAYEQUITY_AUDIT_OPS_QUEUE_SIZE", 1024),
		},
	}
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(os.Getenv(key)), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(strings.TrimSpace(os.Getenv(key)))
	if err != nil {
		return fallback
	}
	return v
}

func getList(key string) []string {
	return strutil.DedupeAndTrim(strings.Split(os.Getenv(key), ","))
}
