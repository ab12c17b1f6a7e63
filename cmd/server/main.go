package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharebite/backend/config"
	httpDelivery "github.com/sharebite/backend/internal/delivery/http"
	"github.com/sharebite/backend/internal/domain"
	"github.com/sharebite/backend/internal/infrastructure/logging"
	"github.com/sharebite/backend/internal/infrastructure/metrics"
	"github.com/sharebite/backend/internal/infrastructure/model"
	"github.com/sharebite/backend/internal/infrastructure/remote"
	"github.com/sharebite/backend/internal/infrastructure/store"
	"github.com/sharebite/backend/internal/usecase"
)

const serviceName = "sharebite-ml-api"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.Init(serviceName, cfg.Log.Level, cfg.Log.JSON)
	logger.Info("starting Sharebite ML API v1.0.0",
		"environment", cfg.Server.Environment,
		"port", cfg.Server.Port,
		"model_source", cfg.Models.Source,
		"store_type", cfg.Store.Type)

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

	artifacts, closeStore, err := openArtifactStore(ctx, cfg, logger, recorder)
	if err != nil {
		logger.Error("failed to open artifact store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// Startup barrier: no request is served until all four predictors are loaded
	registry := usecase.NewModelRegistry(logger)
	if err := registry.Load(ctx, artifacts); err != nil {
		logger.Error("failed to load models", "error", err)
		os.Exit(1)
	}

	evaluationService := usecase.NewEvaluationService(registry, usecase.EvaluationServiceConfig{
		Logger:   logger,
		Recorder: recorder,
	})

	handler := httpDelivery.NewHandler(evaluationService, logger)
	router := httpDelivery.SetupRouter(cfg, handler, logger)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}

// openArtifactStore selects the predictor source. An in-memory store starts
// empty, so it is filled by an in-process training run.
func openArtifactStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, recorder *metrics.Recorder) (domain.ArtifactStore, func(), error) {
	if cfg.Models.Source == "remote" {
		client := remote.NewClient(cfg.Models.RemoteURL, float64(cfg.Models.RemoteRate), cfg.Models.RemoteTimeout)
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
		}
		logger.Info("using remote model server", "url", cfg.Models.RemoteURL)
		return client, func() {}, nil
	}

	if cfg.Store.Type == "bolt" {
		bolt, err := store.OpenBoltStore(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return bolt, func() {
			if err := bolt.Close(); err != nil {
				logger.Warn("closing artifact store", "error", err)
			}
		}, nil
	}

	memory := store.NewMemoryStore()
	logger.Info("training models in memory", "samples", cfg.Training.Samples)
	builder := usecase.NewFeatureBuilder(domain.DefaultEncoding())
	trainer := usecase.NewTrainingService(
		usecase.NewCorpusGenerator(builder, cfg.Training.Workers),
		model.NewFitter(model.FitterConfig{
			RidgeLambda:          cfg.Training.RidgeLambda,
			LogisticIterations:   cfg.Training.LogisticIterations,
			LogisticLearningRate: cfg.Training.LogisticLearningRate,
		}),
		memory,
		logger,
	)
	report, err := trainer.Run(ctx, usecase.TrainingConfig{
		Samples:        cfg.Training.Samples,
		Seed:           cfg.Training.Seed,
		SimulationDate: time.Now(),
	})
	if err != nil {
		return nil, nil, fmt.Errorf("bootstrap training: %w", err)
	}
	recorder.RecordCorpus(ctx, report.Samples)
	logger.Info("in-memory models ready", "artifacts", memory.Size())
	return memory, func() {}, nil
}
