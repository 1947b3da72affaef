package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the complete process configuration.
type Config struct {
	Server       Server
	Lookup       Lookup
	Notification Notification
	RateLimit    RateLimit
	Redis        RedisConfig
	Database     DatabaseConfig
	Badger       BadgerConfig
	Kafka        KafkaConfig
	Telemetry    TelemetryConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr          string
	Environment   string
	JWTSigningKey string
	JWTIssuer     string
	TokenTTL      time.Duration
	MaxBodyBytes  int64
}

// Lookup configures the insurance and challan lookups.
type Lookup struct {
	UseMockData       bool
	MockLatency       time.Duration
	InsuranceBaseURL  string
	ChallanBaseURL    string
	APIKey            string
	UpstreamTimeout   time.Duration
	FetchTimeout      time.Duration
	RecentSearchLimit int
	SavedReportLimit  int
	BreakerFailures   int
	BreakerCooldown   time.Duration
}

// Notification configures the notification log and permission prompts.
type Notification struct {
	Store          string // memory, badger, redis or postgres
	LogLimit       int
	PromptCooldown time.Duration
	MaxPrompts     int
}

// RateLimit sets per-user request allowances. Counters live in redis when
// REDIS_URL is set, otherwise in process memory.
type RateLimit struct {
	Enabled          bool
	UpstreamRequests int // searches, renewals and payments per window
	DefaultRequests  int // everything else per window
	Window           time.Duration
}

type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type BadgerConfig struct {
	Path     string
	InMemory bool
}

type KafkaConfig struct {
	Brokers     string
	LookupTopic string
}

// TelemetryConfig selects the trace exporter: otlp, stdout or none.
type TelemetryConfig struct {
	ServiceName   string
	TraceExporter string
	OTLPEndpoint  string
	OTLPInsecure  bool
}

// Store backends for the notification log.
const (
	StoreMemory   = "memory"
	StoreBadger   = "badger"
	StoreRedis    = "redis"
	StorePostgres = "postgres"
)

// DefaultJWTSigningKey is used when JWT_SIGNING_KEY is unset. It must be
// overridden outside development.
const DefaultJWTSigningKey = "dev-secret-key-change-in-production"

// FromEnv builds the configuration from environment variables so main stays lean.
func FromEnv() Config {
	return Config{
		Server: Server{
			Addr:          getEnv("MOTORHUB_ADDR", ":8080"),
			Environment:   getEnv("ENVIRONMENT", "development"),
			JWTSigningKey: getEnv("JWT_SIGNING_KEY", DefaultJWTSigningKey),
			JWTIssuer:     getEnv("JWT_ISSUER", "motorhub"),
			TokenTTL:      getDuration("TOKEN_TTL", 24*time.Hour),
			MaxBodyBytes:  int64(getInt("MAX_BODY_BYTES", 64<<10)),
		},
		Lookup: Lookup{
			UseMockData:       getBool("USE_MOCK_DATA", true),
			MockLatency:       getDuration("MOCK_LATENCY", 800*time.Millisecond),
			InsuranceBaseURL:  os.Getenv("INSURANCE_API_BASE_URL"),
			ChallanBaseURL:    os.Getenv("CHALLAN_API_BASE_URL"),
			APIKey:            os.Getenv("API_KEY"),
			UpstreamTimeout:   getDuration("UPSTREAM_TIMEOUT", 10*time.Second),
			FetchTimeout:      getDuration("FETCH_TIMEOUT", 30*time.Second),
			RecentSearchLimit: getInt("RECENT_SEARCH_LIMIT", 5),
			SavedReportLimit:  getInt("SAVED_REPORT_LIMIT", 10),
			BreakerFailures:   getInt("BREAKER_FAILURE_THRESHOLD", 5),
			BreakerCooldown:   getDuration("BREAKER_COOLDOWN", 30*time.Second),
		},
		Notification: Notification{
			Store:          strings.ToLower(getEnv("NOTIFICATION_STORE", StoreMemory)),
			LogLimit:       getInt("NOTIFICATION_LOG_LIMIT", 100),
			PromptCooldown: getDuration("NOTIFICATION_PROMPT_COOLDOWN", 72*time.Hour),
			MaxPrompts:     getInt("NOTIFICATION_MAX_PROMPTS", 3),
		},
		RateLimit: RateLimit{
			Enabled:          getBool("RATE_LIMIT_ENABLED", true),
			UpstreamRequests: getInt("RATE_LIMIT_UPSTREAM", 20),
			DefaultRequests:  getInt("RATE_LIMIT_DEFAULT", 120),
			Window:           getDuration("RATE_LIMIT_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Badger: BadgerConfig{
			Path:     getEnv("BADGER_PATH", "./data/notifications"),
			InMemory: getBool("BADGER_IN_MEMORY", false),
		},
		Kafka: KafkaConfig{
			Brokers:     os.Getenv("KAFKA_BROKERS"),
			LookupTopic: getEnv("KAFKA_LOOKUP_TOPIC", "motorhub.lookup.events"),
		},
		Telemetry: TelemetryConfig{
			ServiceName:   getEnv("OTEL_SERVICE_NAME", "motorhub"),
			TraceExporter: strings.ToLower(getEnv("OTEL_TRACES_EXPORTER", "none")),
			OTLPEndpoint:  getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			OTLPInsecure:  getBool("OTEL_EXPORTER_OTLP_INSECURE", true),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if n, err := strconv.Atoi(os.Getenv(key)); err == nil && n > 0 {
		return n
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	if b, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return b
	}
	return fallback
}
