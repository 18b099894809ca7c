package kafka

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/breezelabs/turbine-sim/internal/domain"
)

func TestMapMessageToEnvelope(t *testing.T) {
	now := time.Now()
	msg := kafkago.Message{
		Key:       []byte("key-1"),
		Value:     []byte(`{"preset":"medium-2mw"}`),
		Topic:     "simulation-requests",
		Partition: 2,
		Offset:    42,
		Time:      now,
	}

	var committed bool
	env := mapMessageToEnvelope(msg, func(context.Context) error {
		committed = true
		return nil
	})

	assert.Equal(t, []byte("key-1"), env.Key)
	assert.JSONEq(t, `{"preset":"medium-2mw"}`, string(env.Value))
	assert.Equal(t, "simulation-requests", env.Topic)
	assert.Equal(t, 2, env.Partition)
	assert.Equal(t, int64(42), env.Offset)
	assert.Equal(t, now, env.Timestamp)

	require.NotNil(t, env.Commit)
	require.NoError(t, env.Commit(context.Background()))
	assert.True(t, committed)
}

func TestSerializeToMessage(t *testing.T) {
	completedAt := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	summary := domain.RunSummary{
		RunID:  "run-0011223344556677",
		Params: domain.DefaultParams(),
		Metrics: domain.PerformanceMetrics{
			CapacityFactor: 0.31,
			AveragePower:   620_000,
		},
		SampleCount: 10_000,
		CompletedAt: completedAt,
	}

	msg, err := serializeToMessage(summary)
	require.NoError(t, err)

	assert.Equal(t, []byte("run-0011223344556677"), msg.Key)
	assert.Contains(t, string(msg.Value), `"capacity_factor":0.31`)
	assert.Contains(t, string(msg.Value), `"run_id":"run-0011223344556677"`)

	require.Len(t, msg.Headers, 2)
	assert.Equal(t, "sample_count", msg.Headers[0].Key)
	assert.Equal(t, []byte("10000"), msg.Headers[0].Value)
	assert.Equal(t, "completed_at", msg.Headers[1].Key)
	assert.Equal(t, []byte(completedAt.Format(time.RFC3339)), msg.Headers[1].Value)
}
