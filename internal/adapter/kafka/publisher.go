package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/breezelabs/turbine-sim/internal/config"
	"github.com/breezelabs/turbine-sim/internal/domain"
)

// Publisher produces run summaries to the summary topic.
// It implements simulation.SummaryPublisher.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured summary topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSummaryTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// PublishBatch serializes and publishes multiple run summaries in a single
// WriteMessages call for efficiency.
func (p *Publisher) PublishBatch(ctx context.Context, summaries []domain.RunSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(summaries))
	for i := range summaries {
		msg, err := serializeToMessage(summaries[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and shuts down the underlying producer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a RunSummary into a Kafka message keyed by run
// ID, so replayed summaries land in the same partition and downstream
// consumers can deduplicate.
func serializeToMessage(summary domain.RunSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summary)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize run summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(summary.RunID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "sample_count", Value: []byte(strconv.Itoa(summary.SampleCount))},
			{Key: "completed_at", Value: []byte(summary.CompletedAt.Format(time.RFC3339))},
		},
	}, nil
}
