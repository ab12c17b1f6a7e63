package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sharebite/backend/internal/domain"
)

// scriptedRand replays fixed Float64 draws and counts them
type scriptedRand struct {
	floats []float64
	draws  int
}

func (r *scriptedRand) Float64() float64 {
	if r.draws >= len(r.floats) {
		panic(fmt.Sprintf("scriptedRand: draw %d requested but only %d scripted", r.draws+1, len(r.floats)))
	}
	v := r.floats[r.draws]
	r.draws++
	return v
}

func (r *scriptedRand) IntN(n int) int { return 0 }

func (r *scriptedRand) NormFloat64() float64 { return 0 }

// MockPredictor returns a fixed value and records the last features it saw
type MockPredictor struct {
	value float64
	err   error

	mu       sync.Mutex
	calls    int
	features domain.FeatureVector
}

func (m *MockPredictor) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.features = features
	return m.value, m.err
}

func (m *MockPredictor) PredictProbability(ctx context.Context, features domain.FeatureVector) (float64, error) {
	return m.Predict(ctx, features)
}

func (m *MockPredictor) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

func (m *MockPredictor) LastFeatures() domain.FeatureVector {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.features
}

// regressorOnly lacks PredictProbability
type regressorOnly struct{}

func (regressorOnly) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	return 0, nil
}

// MockArtifactStore keeps predictors as-is without encoding
type MockArtifactStore struct {
	mu         sync.Mutex
	predictors map[string]domain.Predictor
	metadata   *domain.ModelMetadata
	saveError  error
}

func NewMockArtifactStore() *MockArtifactStore {
	return &MockArtifactStore{predictors: make(map[string]domain.Predictor)}
}

func (m *MockArtifactStore) Save(ctx context.Context, name string, p domain.Predictor) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saveError != nil {
		return m.saveError
	}
	m.predictors[name] = p
	return nil
}

func (m *MockArtifactStore) Load(ctx context.Context, name string) (domain.Predictor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.predictors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrArtifactNotFound, name)
	}
	return p, nil
}

func (m *MockArtifactStore) SaveMetadata(ctx context.Context, meta *domain.ModelMetadata) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metadata = meta
	return nil
}

func (m *MockArtifactStore) LoadMetadata(ctx context.Context) (*domain.ModelMetadata, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.metadata == nil {
		return nil, fmt.Errorf("%w: metadata", domain.ErrArtifactNotFound)
	}
	return m.metadata, nil
}

// MockFitter fits constant predictors equal to the target mean
type MockFitter struct {
	regressorFits  int
	classifierFits int
	err            error
}

func (m *MockFitter) FitRegressor(X []domain.FeatureVector, y []float64) (domain.Predictor, error) {
	m.regressorFits++
	if m.err != nil {
		return nil, m.err
	}
	var sum float64
	for _, v := range y {
		sum += v
	}
	return &MockPredictor{value: sum / float64(len(y))}, nil
}

func (m *MockFitter) FitClassifier(X []domain.FeatureVector, y []bool) (domain.Classifier, error) {
	m.classifierFits++
	if m.err != nil {
		return nil, m.err
	}
	var positives float64
	for _, v := range y {
		if v {
			positives++
		}
	}
	return &MockPredictor{value: positives / float64(len(y))}, nil
}

// MockSink records the rows it receives
type MockSink struct {
	rows []domain.CorpusRow
	err  error
}

func (m *MockSink) Write(ctx context.Context, rows []domain.CorpusRow) error {
	if m.err != nil {
		return m.err
	}
	m.rows = rows
	return nil
}

// MockRecorder counts recorded outcomes
type MockRecorder struct {
	mu          sync.Mutex
	ok          map[domain.Signal]int
	failed      map[domain.Signal]int
	evaluations int
}

func NewMockRecorder() *MockRecorder {
	return &MockRecorder{ok: make(map[domain.Signal]int), failed: make(map[domain.Signal]int)}
}

func (m *MockRecorder) RecordSignal(ctx context.Context, signal domain.Signal, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.ok[signal]++
	} else {
		m.failed[signal]++
	}
}

func (m *MockRecorder) RecordEvaluation(ctx context.Context, elapsed time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evaluations++
}

var errBoom = errors.New("boom")

func testMetadata() *domain.ModelMetadata {
	return &domain.ModelMetadata{
		FeatureColumns: append([]string(nil), domain.FeatureColumns...),
		Encoding:       domain.DefaultEncoding(),
	}
}
