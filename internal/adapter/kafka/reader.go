package kafka

import (
	"context"
	"errors"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/breezelabs/turbine-sim/internal/config"
	"github.com/breezelabs/turbine-sim/internal/simulation"
)

// pollTimeout bounds each fetch so partial batches flush promptly instead of
// waiting for the batch to fill.
const pollTimeout = 500 * time.Millisecond

// Reader consumes simulation requests from the request topic.
// It implements simulation.RequestExtractor.
type Reader struct {
	reader *kafkago.Reader
	logger *slog.Logger
}

// NewReader creates a Kafka consumer for the configured request topic.
func NewReader(cfg *config.Config, logger *slog.Logger) *Reader {
	r := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.KafkaBrokers,
		Topic:       cfg.KafkaRequestTopic,
		GroupID:     cfg.KafkaGroupID,
		StartOffset: kafkago.FirstOffset,
	})
	return &Reader{reader: r, logger: logger}
}

// ExtractBatch reads up to batchSize request envelopes. It returns early
// with a partial (possibly empty) batch when no further messages arrive
// within the poll timeout, so the worker never stalls on a quiet topic.
func (r *Reader) ExtractBatch(ctx context.Context, batchSize int) ([]simulation.RequestEnvelope, error) {
	batch := make([]simulation.RequestEnvelope, 0, batchSize)

	for len(batch) < batchSize {
		fetchCtx, cancel := context.WithTimeout(ctx, pollTimeout)
		msg, err := r.reader.FetchMessage(fetchCtx)
		cancel()
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
				break
			}
			return nil, err
		}
		batch = append(batch, mapMessageToEnvelope(msg, r.commitFunc(msg)))
	}

	return batch, nil
}

// Close shuts down the underlying consumer and leaves the group.
func (r *Reader) Close() error {
	return r.reader.Close()
}

func (r *Reader) commitFunc(msg kafkago.Message) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		return r.reader.CommitMessages(ctx, msg)
	}
}

// mapMessageToEnvelope converts a Kafka message into a request envelope.
func mapMessageToEnvelope(msg kafkago.Message, commit func(ctx context.Context) error) simulation.RequestEnvelope {
	return simulation.RequestEnvelope{
		Key:       msg.Key,
		Value:     msg.Value,
		Topic:     msg.Topic,
		Partition: msg.Partition,
		Offset:    msg.Offset,
		Timestamp: msg.Time,
		Commit:    commit,
	}
}
