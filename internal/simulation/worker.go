package simulation

import (
	"context"
	"log/slog"
	"time"

	"github.com/breezelabs/turbine-sim/internal/domain"
	"github.com/breezelabs/turbine-sim/internal/observability"
)

// RequestEnvelope is an unprocessed simulation request from the source topic.
type RequestEnvelope struct {
	Key       []byte
	Value     []byte
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
	Commit    func(ctx context.Context) error
}

// RequestExtractor reads up to batchSize request envelopes from the source.
type RequestExtractor interface {
	ExtractBatch(ctx context.Context, batchSize int) ([]RequestEnvelope, error)
}

// SummaryPublisher writes run summaries to the destination.
type SummaryPublisher interface {
	PublishBatch(ctx context.Context, summaries []domain.RunSummary) error
}

// Worker consumes simulation requests, runs them, and publishes summaries.
// Malformed or invalid requests are skipped and committed; transport
// failures are retried with backoff without committing.
type Worker struct {
	extractor  RequestExtractor
	runner     *Runner
	publisher  SummaryPublisher
	baseParams domain.SimulationParams
	logger     *slog.Logger
	metrics    *observability.Metrics
	batchSize  int
}

// NewWorker creates a Worker. baseParams supplies defaults for request
// fields left unset on the wire.
func NewWorker(e RequestExtractor, r *Runner, p SummaryPublisher, baseParams domain.SimulationParams, logger *slog.Logger, metrics *observability.Metrics, batchSize int) *Worker {
	return &Worker{
		extractor:  e,
		runner:     r,
		publisher:  p,
		baseParams: baseParams,
		logger:     logger,
		metrics:    metrics,
		batchSize:  batchSize,
	}
}

// Run executes the request loop until the context is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	w.logger.Info("simulation worker started", "batch_size", w.batchSize)
	w.metrics.WorkerRunning.Set(1)
	defer w.metrics.WorkerRunning.Set(0)

	// Exponential backoff: start at 200ms, double each retry, cap at 5s.
	// Keeps retry storms short while avoiding tight loops during Kafka outages.
	backoff := 200 * time.Millisecond
	maxBackoff := 5 * time.Second

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("simulation worker stopping", "reason", ctx.Err())
			return nil
		default:
		}

		if !w.processBatch(ctx, &backoff, maxBackoff) {
			return nil
		}
	}
}

// processBatch runs one extract-simulate-publish cycle. Returns false if the
// worker should stop.
func (w *Worker) processBatch(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	batch, err := w.extractor.ExtractBatch(ctx, w.batchSize)
	if err != nil {
		if ctx.Err() != nil {
			return false
		}
		w.logger.Error("extract batch failed", "error", err)
		return w.backoffOrStop(ctx, backoff, maxBackoff)
	}

	if len(batch) == 0 {
		return ctx.Err() == nil
	}

	w.metrics.RequestsConsumed.Add(float64(len(batch)))
	*backoff = 200 * time.Millisecond

	return w.simulateAndPublish(ctx, batch, backoff, maxBackoff)
}

// simulateAndPublish runs each request in the batch, publishes the
// successful summaries, and commits offsets. Invalid requests are committed
// immediately so they are not redelivered. Returns false if the worker
// should stop.
func (w *Worker) simulateAndPublish(ctx context.Context, batch []RequestEnvelope, backoff *time.Duration, maxBackoff time.Duration) bool {
	summaries := make([]domain.RunSummary, 0, len(batch))
	successful := make([]RequestEnvelope, 0, len(batch))

	for _, env := range batch {
		result, err := w.runRequest(ctx, env)
		if err != nil {
			if ctx.Err() != nil {
				return false
			}
			w.logger.Warn("request rejected, skipping message",
				"error", err,
				"topic", env.Topic,
				"partition", env.Partition,
				"offset", env.Offset,
			)
			w.metrics.RequestErrors.Inc()
			w.commitOffset(ctx, env)
			continue
		}
		summaries = append(summaries, result.Summary())
		successful = append(successful, env)
	}

	if len(summaries) == 0 {
		return true
	}

	if err := w.publisher.PublishBatch(ctx, summaries); err != nil {
		w.logger.Error("publish summaries failed", "error", err, "batch_size", len(summaries))
		return w.backoffOrStop(ctx, backoff, maxBackoff)
	}

	w.metrics.SummariesPublished.Add(float64(len(summaries)))

	for _, env := range successful {
		w.commitOffset(ctx, env)
	}

	return true
}

// runRequest resolves a request envelope against the base parameters and
// executes it.
func (w *Worker) runRequest(ctx context.Context, env RequestEnvelope) (domain.Result, error) {
	params, err := domain.ParseRunRequest(env.Value, w.baseParams)
	if err != nil {
		return domain.Result{}, err
	}
	return w.runner.Run(ctx, params)
}

// backoffOrStop checks for context cancellation, sleeps with the current
// backoff, and advances the backoff. Returns false if the worker should stop.
func (w *Worker) backoffOrStop(ctx context.Context, backoff *time.Duration, maxBackoff time.Duration) bool {
	if ctx.Err() != nil {
		return false
	}
	if !sleepWithContext(ctx, *backoff) {
		return false
	}
	*backoff = nextBackoff(*backoff, maxBackoff)
	return true
}

// commitOffset commits the message offset if a commit function is available.
func (w *Worker) commitOffset(ctx context.Context, env RequestEnvelope) {
	if env.Commit == nil {
		return
	}
	if err := env.Commit(ctx); err != nil {
		w.logger.Warn("commit offset failed", "error", err,
			"topic", env.Topic, "partition", env.Partition, "offset", env.Offset)
	}
}

func nextBackoff(current, maxBackoff time.Duration) time.Duration {
	next := current * 2
	if next > maxBackoff {
		return maxBackoff
	}
	return next
}

func sleepWithContext(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
