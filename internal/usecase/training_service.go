package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/sharebite/backend/internal/domain"
)

// TrainingConfig holds parameters for one training run
type TrainingConfig struct {
	Samples        int
	Seed           uint64
	SimulationDate time.Time
}

// TrainingReport summarises a completed training run on its own corpus
type TrainingReport struct {
	Samples          int
	ExpirationMAE    float64
	WasteRiskMAE     float64
	PriorityMAE      float64
	DonationAccuracy float64
	WasteRate        float64
	DonationRate     float64
}

// TrainingService generates the corpus, fits the four predictors and persists them
type TrainingService struct {
	generator *CorpusGenerator
	fitter    domain.Fitter
	store     domain.ArtifactStore
	sinks     []domain.CorpusSink
	logger    *slog.Logger
}

// NewTrainingService creates a new training service with dependencies
func NewTrainingService(
	generator *CorpusGenerator,
	fitter domain.Fitter,
	store domain.ArtifactStore,
	logger *slog.Logger,
	sinks ...domain.CorpusSink,
) *TrainingService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TrainingService{
		generator: generator,
		fitter:    fitter,
		store:     store,
		sinks:     sinks,
		logger:    logger,
	}
}

// Run executes the full training pipeline
func (s *TrainingService) Run(ctx context.Context, config TrainingConfig) (*TrainingReport, error) {
	rows, err := s.generator.Generate(ctx, config.Samples, config.Seed, config.SimulationDate)
	if err != nil {
		return nil, err
	}
	s.logger.Info("corpus generated", "samples", len(rows), "seed", config.Seed)

	for _, sink := range s.sinks {
		if err := sink.Write(ctx, rows); err != nil {
			return nil, fmt.Errorf("write corpus: %w", err)
		}
	}

	X := make([]domain.FeatureVector, len(rows))
	yExpiration := make([]float64, len(rows))
	yWasteRisk := make([]float64, len(rows))
	yPriority := make([]float64, len(rows))
	yDonate := make([]bool, len(rows))
	for i, row := range rows {
		X[i] = row.Features
		yExpiration[i] = float64(row.DaysRemaining)
		yWasteRisk[i] = row.Labels.WasteRisk
		yPriority[i] = row.Labels.PriorityScore
		yDonate[i] = row.Labels.ShouldDonate
	}

	var set PredictorSet
	if set.Expiration, err = s.fitter.FitRegressor(X, yExpiration); err != nil {
		return nil, fmt.Errorf("fit %s: %w", domain.ArtifactExpiration, err)
	}
	if set.WasteRisk, err = s.fitter.FitRegressor(X, yWasteRisk); err != nil {
		return nil, fmt.Errorf("fit %s: %w", domain.ArtifactWasteRisk, err)
	}
	if set.Donation, err = s.fitter.FitClassifier(X, yDonate); err != nil {
		return nil, fmt.Errorf("fit %s: %w", domain.ArtifactDonation, err)
	}
	if set.Priority, err = s.fitter.FitRegressor(X, yPriority); err != nil {
		return nil, fmt.Errorf("fit %s: %w", domain.ArtifactPriority, err)
	}

	report, err := s.score(ctx, rows, set)
	if err != nil {
		return nil, err
	}

	for name, p := range map[string]domain.Predictor{
		domain.ArtifactExpiration: set.Expiration,
		domain.ArtifactWasteRisk:  set.WasteRisk,
		domain.ArtifactDonation:   set.Donation,
		domain.ArtifactPriority:   set.Priority,
	} {
		if err := s.store.Save(ctx, name, p); err != nil {
			return nil, fmt.Errorf("save %s: %w", name, err)
		}
	}

	meta := &domain.ModelMetadata{
		FeatureColumns: append([]string(nil), domain.FeatureColumns...),
		Encoding:       s.generator.builder.Encoding(),
		TrainedAt:      time.Now().UTC(),
		Samples:        len(rows),
		Seed:           config.Seed,
	}
	if err := s.store.SaveMetadata(ctx, meta); err != nil {
		return nil, fmt.Errorf("save metadata: %w", err)
	}

	s.logger.Info("training complete",
		"expiration_mae", report.ExpirationMAE,
		"waste_risk_mae", report.WasteRiskMAE,
		"priority_mae", report.PriorityMAE,
		"donation_accuracy", report.DonationAccuracy,
		"waste_rate", report.WasteRate,
		"donation_rate", report.DonationRate)
	return report, nil
}

// score evaluates the fitted predictors against the corpus they were trained on
func (s *TrainingService) score(ctx context.Context, rows []domain.CorpusRow, set PredictorSet) (*TrainingReport, error) {
	report := &TrainingReport{Samples: len(rows)}
	var correct, wasted, donated int

	for _, row := range rows {
		expiration, err := set.Expiration.Predict(ctx, row.Features)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", domain.ArtifactExpiration, err)
		}
		wasteRisk, err := set.WasteRisk.Predict(ctx, row.Features)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", domain.ArtifactWasteRisk, err)
		}
		priority, err := set.Priority.Predict(ctx, row.Features)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", domain.ArtifactPriority, err)
		}
		probability, err := set.Donation.PredictProbability(ctx, row.Features)
		if err != nil {
			return nil, fmt.Errorf("score %s: %w", domain.ArtifactDonation, err)
		}

		report.ExpirationMAE += math.Abs(expiration - float64(row.DaysRemaining))
		report.WasteRiskMAE += math.Abs(wasteRisk - row.Labels.WasteRisk)
		report.PriorityMAE += math.Abs(priority - row.Labels.PriorityScore)
		if (probability >= 0.5) == row.Labels.ShouldDonate {
			correct++
		}
		if row.Labels.WillExpire {
			wasted++
		}
		if row.Labels.WasDonated {
			donated++
		}
	}

	n := float64(len(rows))
	report.ExpirationMAE /= n
	report.WasteRiskMAE /= n
	report.PriorityMAE /= n
	report.DonationAccuracy = float64(correct) / n
	report.WasteRate = float64(wasted) / n
	report.DonationRate = float64(donated) / n
	return report, nil
}
