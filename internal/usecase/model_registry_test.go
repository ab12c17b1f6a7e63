package usecase

import (
	"context"
	"testing"

	"github.com/sharebite/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completeSet() PredictorSet {
	return PredictorSet{
		Expiration: &MockPredictor{value: 5},
		WasteRisk:  &MockPredictor{value: 40},
		Donation:   &MockPredictor{value: 0.5},
		Priority:   &MockPredictor{value: 50},
	}
}

func TestModelRegistry_Install(t *testing.T) {
	registry := NewModelRegistry(nil)
	assert.False(t, registry.Ready())

	_, err := registry.Metadata()
	assert.ErrorIs(t, err, domain.ErrModelsNotLoaded)
	_, err = registry.snapshot()
	assert.ErrorIs(t, err, domain.ErrModelsNotLoaded)

	meta := testMetadata()
	require.NoError(t, registry.Install(meta, completeSet()))
	assert.True(t, registry.Ready())

	got, err := registry.Metadata()
	require.NoError(t, err)
	assert.Same(t, meta, got)

	err = registry.Install(testMetadata(), completeSet())
	assert.ErrorIs(t, err, errRegistryLoaded)
}

func TestModelRegistry_InstallRejects(t *testing.T) {
	tests := []struct {
		name    string
		meta    func() *domain.ModelMetadata
		set     func() PredictorSet
		wantErr error
	}{
		{
			name:    "missing metadata",
			meta:    func() *domain.ModelMetadata { return nil },
			set:     completeSet,
			wantErr: domain.ErrSchemaMismatch,
		},
		{
			name: "reordered columns",
			meta: func() *domain.ModelMetadata {
				m := testMetadata()
				m.FeatureColumns[0], m.FeatureColumns[1] = m.FeatureColumns[1], m.FeatureColumns[0]
				return m
			},
			set:     completeSet,
			wantErr: domain.ErrSchemaMismatch,
		},
		{
			name: "missing column",
			meta: func() *domain.ModelMetadata {
				m := testMetadata()
				m.FeatureColumns = m.FeatureColumns[:len(m.FeatureColumns)-1]
				return m
			},
			set:     completeSet,
			wantErr: domain.ErrSchemaMismatch,
		},
		{
			name: "duplicate encoding",
			meta: func() *domain.ModelMetadata {
				m := testMetadata()
				m.Encoding.Categories[domain.CategoryMeat] = m.Encoding.Categories[domain.CategoryFruits]
				return m
			},
			set:     completeSet,
			wantErr: domain.ErrSchemaMismatch,
		},
		{
			name: "incomplete set",
			meta: testMetadata,
			set: func() PredictorSet {
				s := completeSet()
				s.Priority = nil
				return s
			},
			wantErr: domain.ErrModelsNotLoaded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			registry := NewModelRegistry(nil)
			err := registry.Install(tt.meta(), tt.set())
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, registry.Ready())
		})
	}
}

func seededStore() *MockArtifactStore {
	store := NewMockArtifactStore()
	set := completeSet()
	store.predictors[domain.ArtifactExpiration] = set.Expiration
	store.predictors[domain.ArtifactWasteRisk] = set.WasteRisk
	store.predictors[domain.ArtifactDonation] = set.Donation
	store.predictors[domain.ArtifactPriority] = set.Priority
	store.metadata = testMetadata()
	return store
}

func TestModelRegistry_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("all artifacts present", func(t *testing.T) {
		store := seededStore()
		registry := NewModelRegistry(nil)

		require.NoError(t, registry.Load(ctx, store))
		assert.True(t, registry.Ready())

		models, err := registry.snapshot()
		require.NoError(t, err)
		assert.Same(t, store.predictors[domain.ArtifactPriority], models.predictors.Priority)
	})

	t.Run("missing metadata", func(t *testing.T) {
		store := seededStore()
		store.metadata = nil
		registry := NewModelRegistry(nil)

		err := registry.Load(ctx, store)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.False(t, registry.Ready())
	})

	t.Run("missing artifact", func(t *testing.T) {
		store := seededStore()
		delete(store.predictors, domain.ArtifactWasteRisk)
		registry := NewModelRegistry(nil)

		err := registry.Load(ctx, store)
		assert.ErrorIs(t, err, domain.ErrArtifactNotFound)
		assert.Contains(t, err.Error(), domain.ArtifactWasteRisk)
		assert.False(t, registry.Ready())
	})

	t.Run("donation without probabilities", func(t *testing.T) {
		store := seededStore()
		store.predictors[domain.ArtifactDonation] = regressorOnly{}
		registry := NewModelRegistry(nil)

		err := registry.Load(ctx, store)
		assert.ErrorIs(t, err, domain.ErrNotClassifier)
		assert.False(t, registry.Ready())
	})
}
