package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharebite/backend/config"
	"github.com/sharebite/backend/internal/domain"
	"github.com/sharebite/backend/internal/infrastructure/corpus"
	"github.com/sharebite/backend/internal/infrastructure/logging"
	"github.com/sharebite/backend/internal/infrastructure/metrics"
	"github.com/sharebite/backend/internal/infrastructure/model"
	"github.com/sharebite/backend/internal/infrastructure/store"
	"github.com/sharebite/backend/internal/usecase"
)

const serviceName = "sharebite-trainer"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(serviceName, cfg.Log.Level, cfg.Log.JSON)
	if err := run(cfg, logger); err != nil {
		logger.Error("training failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownMetrics := metrics.Init(ctx, serviceName, cfg.Metrics.OTLPEndpoint)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownMetrics(shutdownCtx); err != nil {
			logger.Warn("metrics shutdown failed", "error", err)
		}
	}()
	recorder := metrics.NewRecorder()

	if cfg.Store.Type != "bolt" {
		logger.Warn("store type is not bolt; trained models will not outlive this process", "store_type", cfg.Store.Type)
	}
	var artifacts domain.ArtifactStore = store.NewMemoryStore()
	if cfg.Store.Type == "bolt" {
		bolt, err := store.OpenBoltStore(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer bolt.Close()
		artifacts = bolt
	}

	sinks := []domain.CorpusSink{corpus.NewCSVSink(cfg.Training.CorpusPath)}
	if cfg.Training.PostgresURL != "" {
		pg, err := corpus.NewPostgresSink(ctx, cfg.Training.PostgresURL)
		if err != nil {
			return err
		}
		defer pg.Close()
		sinks = append(sinks, pg)
	}

	builder := usecase.NewFeatureBuilder(domain.DefaultEncoding())
	service := usecase.NewTrainingService(
		usecase.NewCorpusGenerator(builder, cfg.Training.Workers),
		model.NewFitter(model.FitterConfig{
			RidgeLambda:          cfg.Training.RidgeLambda,
			LogisticIterations:   cfg.Training.LogisticIterations,
			LogisticLearningRate: cfg.Training.LogisticLearningRate,
		}),
		artifacts,
		logger,
		sinks...,
	)

	start := time.Now()
	report, err := service.Run(ctx, usecase.TrainingConfig{
		Samples:        cfg.Training.Samples,
		Seed:           cfg.Training.Seed,
		SimulationDate: start,
	})
	if err != nil {
		return err
	}
	recorder.RecordCorpus(ctx, report.Samples)

	logger.Info("models saved",
		"store_path", cfg.Store.Path,
		"corpus_path", cfg.Training.CorpusPath,
		"elapsed", time.Since(start).Round(time.Millisecond))
	return nil
}
