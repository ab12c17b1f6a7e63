package domain

import "context"

// Predictor produces a numeric estimate from a feature vector.
// Implementations are immutable after fitting and safe for concurrent use.
type Predictor interface {
	Predict(ctx context.Context, features FeatureVector) (float64, error)
}

// Classifier is a Predictor that also exposes the positive-class probability
type Classifier interface {
	Predictor
	PredictProbability(ctx context.Context, features FeatureVector) (float64, error)
}

// Fitter trains predictors from a feature matrix and targets
type Fitter interface {
	FitRegressor(X []FeatureVector, y []float64) (Predictor, error)
	FitClassifier(X []FeatureVector, y []bool) (Classifier, error)
}

// ArtifactStore persists trained predictors and their schema metadata
type ArtifactStore interface {
	Save(ctx context.Context, name string, p Predictor) error
	Load(ctx context.Context, name string) (Predictor, error)
	SaveMetadata(ctx context.Context, meta *ModelMetadata) error
	LoadMetadata(ctx context.Context) (*ModelMetadata, error)
}

// CorpusSink receives generated training rows
type CorpusSink interface {
	Write(ctx context.Context, rows []CorpusRow) error
}

// RandomSource is the explicit randomness threaded through label generation
type RandomSource interface {
	Float64() float64
	IntN(n int) int
	NormFloat64() float64
}

// Artifact names of the four served predictors
const (
	ArtifactExpiration = "expiration_predictor"
	ArtifactWasteRisk  = "waste_risk_predictor"
	ArtifactDonation   = "donation_recommender"
	ArtifactPriority   = "priority_scorer"
)
