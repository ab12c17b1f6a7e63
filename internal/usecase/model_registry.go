package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/sharebite/backend/internal/domain"
)

var errRegistryLoaded = errors.New("model registry already loaded")

// PredictorSet holds the four served predictors
type PredictorSet struct {
	Expiration domain.Predictor
	WasteRisk  domain.Predictor
	Donation   domain.Classifier
	Priority   domain.Predictor
}

type loadedModels struct {
	predictors PredictorSet
	builder    *FeatureBuilder
	metadata   *domain.ModelMetadata
}

// ModelRegistry owns the process-wide predictors. It is written once by Load or
// Install and is read-only afterwards; Ready flips only when everything is in place.
type ModelRegistry struct {
	loaded atomic.Pointer[loadedModels]
	logger *slog.Logger
}

// NewModelRegistry creates an empty, not-ready registry
func NewModelRegistry(logger *slog.Logger) *ModelRegistry {
	if logger == nil {
		logger = slog.Default()
	}
	return &ModelRegistry{logger: logger}
}

// Load reads the metadata and the four named artifacts from store and publishes them
func (r *ModelRegistry) Load(ctx context.Context, store domain.ArtifactStore) error {
	meta, err := store.LoadMetadata(ctx)
	if err != nil {
		return fmt.Errorf("load metadata: %w", err)
	}

	var set PredictorSet
	for _, target := range []struct {
		name string
		dst  *domain.Predictor
	}{
		{domain.ArtifactExpiration, &set.Expiration},
		{domain.ArtifactWasteRisk, &set.WasteRisk},
		{domain.ArtifactPriority, &set.Priority},
	} {
		p, err := store.Load(ctx, target.name)
		if err != nil {
			return fmt.Errorf("load %s: %w", target.name, err)
		}
		*target.dst = p
	}

	donation, err := store.Load(ctx, domain.ArtifactDonation)
	if err != nil {
		return fmt.Errorf("load %s: %w", domain.ArtifactDonation, err)
	}
	classifier, ok := donation.(domain.Classifier)
	if !ok {
		return fmt.Errorf("load %s: %w", domain.ArtifactDonation, domain.ErrNotClassifier)
	}
	set.Donation = classifier

	return r.Install(meta, set)
}

// Install validates the schema metadata and publishes the predictor set
func (r *ModelRegistry) Install(meta *domain.ModelMetadata, set PredictorSet) error {
	if meta == nil {
		return fmt.Errorf("%w: metadata missing", domain.ErrSchemaMismatch)
	}
	if err := domain.CheckColumns(meta.FeatureColumns); err != nil {
		return err
	}
	if err := meta.Encoding.Validate(); err != nil {
		return err
	}
	if set.Expiration == nil || set.WasteRisk == nil || set.Donation == nil || set.Priority == nil {
		return fmt.Errorf("%w: predictor set incomplete", domain.ErrModelsNotLoaded)
	}

	loaded := &loadedModels{
		predictors: set,
		builder:    NewFeatureBuilder(meta.Encoding),
		metadata:   meta,
	}
	if !r.loaded.CompareAndSwap(nil, loaded) {
		return errRegistryLoaded
	}

	r.logger.Info("models loaded",
		"features", len(meta.FeatureColumns),
		"samples", meta.Samples,
		"trained_at", meta.TrainedAt)
	return nil
}

// Ready reports whether all four predictors are loaded
func (r *ModelRegistry) Ready() bool {
	return r.loaded.Load() != nil
}

// Metadata returns the schema metadata of the loaded models
func (r *ModelRegistry) Metadata() (*domain.ModelMetadata, error) {
	loaded := r.loaded.Load()
	if loaded == nil {
		return nil, domain.ErrModelsNotLoaded
	}
	return loaded.metadata, nil
}

func (r *ModelRegistry) snapshot() (*loadedModels, error) {
	loaded := r.loaded.Load()
	if loaded == nil {
		return nil, domain.ErrModelsNotLoaded
	}
	return loaded, nil
}
