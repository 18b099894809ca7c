package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10_000, cfg.DefaultSamples)
	assert.Equal(t, 1_000_000, cfg.MaxSamples)
	assert.Equal(t, 0, cfg.SimWorkers)
	assert.False(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "simulation-requests", cfg.KafkaRequestTopic)
	assert.Equal(t, "simulation-summaries", cfg.KafkaSummaryTopic)
	assert.Equal(t, "turbine-sim", cfg.KafkaGroupID)
	assert.Equal(t, 10, cfg.BatchSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DEFAULT_SAMPLES", "5000")
	t.Setenv("MAX_SAMPLES", "50000")
	t.Setenv("SIM_WORKERS", "4")
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", "broker1:9092, broker2:9092")
	t.Setenv("KAFKA_REQUEST_TOPIC", "custom-requests")
	t.Setenv("KAFKA_SUMMARY_TOPIC", "custom-summaries")
	t.Setenv("KAFKA_GROUP_ID", "custom-group")
	t.Setenv("BATCH_SIZE", "25")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5_000, cfg.DefaultSamples)
	assert.Equal(t, 50_000, cfg.MaxSamples)
	assert.Equal(t, 4, cfg.SimWorkers)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-requests", cfg.KafkaRequestTopic)
	assert.Equal(t, "custom-summaries", cfg.KafkaSummaryTopic)
	assert.Equal(t, "custom-group", cfg.KafkaGroupID)
	assert.Equal(t, 25, cfg.BatchSize)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_InvalidSamples(t *testing.T) {
	t.Setenv("DEFAULT_SAMPLES", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_SAMPLES")
}

func TestLoad_MaxBelowDefault(t *testing.T) {
	t.Setenv("DEFAULT_SAMPLES", "10000")
	t.Setenv("MAX_SAMPLES", "100")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_SAMPLES")
}

func TestLoad_KafkaEnabledRequiresBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	t.Setenv("KAFKA_BROKERS", " , ")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}
