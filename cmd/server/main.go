package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpadapter "github.com/breezelabs/turbine-sim/internal/adapter/http"
	kafkaadapter "github.com/breezelabs/turbine-sim/internal/adapter/kafka"
	"github.com/breezelabs/turbine-sim/internal/config"
	"github.com/breezelabs/turbine-sim/internal/domain"
	"github.com/breezelabs/turbine-sim/internal/observability"
	"github.com/breezelabs/turbine-sim/internal/simulation"
	"github.com/breezelabs/turbine-sim/internal/wind"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	baseParams := domain.DefaultParams()
	baseParams.Samples = cfg.DefaultSamples

	samplers := func(shape, scale float64) simulation.WindSource {
		return wind.NewSampler(shape, scale, nil)
	}
	runner := simulation.NewRunner(samplers, logger, metrics, cfg.SimWorkers, cfg.MaxSamples)

	// Initialize Kafka transport (feature-flagged via KAFKA_ENABLED).
	var (
		reader    *kafkaadapter.Reader
		publisher *kafkaadapter.Publisher
		worker    *simulation.Worker
	)
	if cfg.KafkaEnabled {
		reader = kafkaadapter.NewReader(cfg, logger)
		publisher = kafkaadapter.NewPublisher(cfg, logger)
		worker = simulation.NewWorker(reader, runner, publisher, baseParams, logger, metrics, cfg.BatchSize)
		logger.Info("kafka transport enabled",
			"request_topic", cfg.KafkaRequestTopic,
			"summary_topic", cfg.KafkaSummaryTopic,
			"batch_size", cfg.BatchSize,
		)
	} else {
		logger.Info("kafka transport disabled")
	}

	var httpPublisher simulation.SummaryPublisher
	if publisher != nil {
		httpPublisher = publisher
	}
	srv := httpadapter.NewServer(cfg.HTTPAddr, runner, httpPublisher, baseParams, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Warm-up run: exercises the sampler and power model so readiness
	// reflects a working engine before traffic arrives.
	if _, err := runner.Run(ctx, baseParams); err != nil {
		logger.Error("warm-up run failed", "error", err)
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start request worker.
	if worker != nil {
		go func() {
			if err := worker.Run(ctx); err != nil {
				logger.Error("worker error", "error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if reader != nil {
		if err := reader.Close(); err != nil {
			logger.Error("kafka reader close error", "error", err)
		}
	}
	if publisher != nil {
		if err := publisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
