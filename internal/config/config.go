package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	// Simulation defaults and bounds.
	DefaultSamples int
	MaxSamples     int
	// SimWorkers caps the goroutines used for the per-sample power map.
	// Zero means one per CPU.
	SimWorkers int

	// Kafka request/summary transport, feature-flagged.
	KafkaEnabled      bool
	KafkaBrokers      []string
	KafkaRequestTopic string
	KafkaSummaryTopic string
	KafkaGroupID      string
	BatchSize         int
}

// Load reads configuration from environment variables, applying defaults
// where unset and failing fast on malformed or inconsistent values.
func Load() (*Config, error) {
	shutdownTimeout, err := parseDurationEnv("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}

	defaultSamples, err := parseIntEnv("DEFAULT_SAMPLES", 10_000)
	if err != nil {
		return nil, err
	}

	maxSamples, err := parseIntEnv("MAX_SAMPLES", 1_000_000)
	if err != nil {
		return nil, err
	}

	simWorkers, err := parseIntEnv("SIM_WORKERS", 0)
	if err != nil {
		return nil, err
	}

	batchSize, err := parseIntEnv("BATCH_SIZE", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		DefaultSamples: defaultSamples,
		MaxSamples:     maxSamples,
		SimWorkers:     simWorkers,

		KafkaEnabled:      os.Getenv("KAFKA_ENABLED") == "true",
		KafkaBrokers:      parseBrokers(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaRequestTopic: envOrDefault("KAFKA_REQUEST_TOPIC", "simulation-requests"),
		KafkaSummaryTopic: envOrDefault("KAFKA_SUMMARY_TOPIC", "simulation-summaries"),
		KafkaGroupID:      envOrDefault("KAFKA_GROUP_ID", "turbine-sim"),
		BatchSize:         batchSize,
	}

	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.DefaultSamples <= 0 {
		return nil, errors.New("DEFAULT_SAMPLES must be positive")
	}
	if cfg.MaxSamples < cfg.DefaultSamples {
		return nil, errors.New("MAX_SAMPLES must be at least DEFAULT_SAMPLES")
	}
	if cfg.SimWorkers < 0 {
		return nil, errors.New("SIM_WORKERS must not be negative")
	}
	if cfg.BatchSize <= 0 {
		return nil, errors.New("BATCH_SIZE must be positive")
	}
	if cfg.KafkaEnabled {
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_BROKERS is empty")
		}
		if cfg.KafkaRequestTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_REQUEST_TOPIC is empty")
		}
		if cfg.KafkaSummaryTopic == "" {
			return nil, errors.New("KAFKA_ENABLED is true but KAFKA_SUMMARY_TOPIC is empty")
		}
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, fallback int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func parseBrokers(s string) []string {
	parts := strings.Split(s, ",")
	brokers := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			brokers = append(brokers, trimmed)
		}
	}
	return brokers
}
