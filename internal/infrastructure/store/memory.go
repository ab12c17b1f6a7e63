package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/sharebite/backend/internal/domain"
	"github.com/sharebite/backend/internal/infrastructure/model"
)

// MemoryStore is a thread-safe in-memory artifact store
type MemoryStore struct {
	artifacts map[string][]byte
	metadata  []byte
	mutex     sync.RWMutex
}

// NewMemoryStore creates a new in-memory artifact store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		artifacts: make(map[string][]byte),
	}
}

// Save encodes and stores a predictor under name
func (s *MemoryStore) Save(ctx context.Context, name string, p domain.Predictor) error {
	// Store the encoded form so loads behave like the bolt store
	data, err := model.Marshal(p)
	if err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.artifacts[name] = data
	return nil
}

// Load decodes the predictor stored under name
func (s *MemoryStore) Load(ctx context.Context, name string) (domain.Predictor, error) {
	s.mutex.RLock()
	data, exists := s.artifacts[name]
	s.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	return model.Unmarshal(data)
}

// SaveMetadata stores the model schema metadata
func (s *MemoryStore) SaveMetadata(ctx context.Context, meta *domain.ModelMetadata) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("encode metadata: %w", err)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.metadata = data
	return nil
}

// LoadMetadata returns the stored model schema metadata
func (s *MemoryStore) LoadMetadata(ctx context.Context) (*domain.ModelMetadata, error) {
	s.mutex.RLock()
	data := s.metadata
	s.mutex.RUnlock()

	if data == nil {
		return nil, fmt.Errorf("%w: metadata", domain.ErrArtifactNotFound)
	}
	var meta domain.ModelMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}
	return &meta, nil
}

// Size returns the number of stored artifacts (for debugging/monitoring)
func (s *MemoryStore) Size() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.artifacts)
}
