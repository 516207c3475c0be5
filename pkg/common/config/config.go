package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Server
	ServerPort     string
	ServerHost     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Database
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Kafka
	KafkaBrokers         []string
	KafkaGroupID         string
	ExtractionInputTopic string
	MatchOutputTopic     string
	MatchDLQTopic        string

	// Matching engine
	BrandAliasPath       string
	MatcherNameWeight    float64
	MatcherGenericWeight float64
	MatcherDoseWeight    float64
	MatcherFormWeight    float64
	MatcherMinConfidence float64
	MatcherFallbackFloor float64
	MatcherResultCap     int
	MatcherLocateCap     int
	MatcherScanLimit     int
	MatcherWorkers       int

	// Result cache
	MatchCacheTTL time.Duration
}

func Load() *Config {
	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		ServerHost:     getEnv("SERVER_HOST", "0.0.0.0"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 4*1024*1024)),

		PostgresHost:     getEnv("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "pharmakart"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", "pharmakart123"),
		PostgresDB:       getEnv("POSTGRES_DB", "pharmakart"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		KafkaBrokers:         getStringSliceEnv("KAFKA_BROKERS", []string{"localhost:9092"}),
		KafkaGroupID:         getEnv("KAFKA_GROUP_ID", "pharmakart-platform"),
		ExtractionInputTopic: getEnv("EXTRACTION_INPUT_TOPIC", "prescription.extracted"),
		MatchOutputTopic:     getEnv("MATCH_OUTPUT_TOPIC", "medicine.matched"),
		MatchDLQTopic:        getEnv("MATCH_DLQ_TOPIC", ""),

		BrandAliasPath:       getEnv("BRAND_ALIAS_PATH", ""),
		MatcherNameWeight:    getFloatEnv("MATCHER_NAME_WEIGHT", 0.40),
		MatcherGenericWeight: getFloatEnv("MATCHER_GENERIC_WEIGHT", 0.30),
		MatcherDoseWeight:    getFloatEnv("MATCHER_DOSE_WEIGHT", 0.20),
		MatcherFormWeight:    getFloatEnv("MATCHER_FORM_WEIGHT", 0.10),
		MatcherMinConfidence: getFloatEnv("MATCHER_MIN_CONFIDENCE", 0.3),
		MatcherFallbackFloor: getFloatEnv("MATCHER_FALLBACK_FLOOR", 0.6),
		MatcherResultCap:     getIntEnv("MATCHER_RESULT_CAP", 5),
		MatcherLocateCap:     getIntEnv("MATCHER_LOCATE_CAP", 10),
		MatcherScanLimit:     getIntEnv("MATCHER_SCAN_LIMIT", 5000),
		MatcherWorkers:       getIntEnv("MATCHER_WORKERS", 8),

		MatchCacheTTL: getDuration("MATCH_CACHE_TTL", 10*time.Minute),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		return []string{value}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
