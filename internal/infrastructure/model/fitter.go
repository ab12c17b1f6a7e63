package model

import "github.com/sharebite/backend/internal/domain"

// FitterConfig holds hyperparameters for the reference predictors
type FitterConfig struct {
	RidgeLambda          float64
	LogisticIterations   int
	LogisticLearningRate float64
}

// Fitter fits ridge regressors and logistic classifiers
type Fitter struct {
	config FitterConfig
}

// NewFitter creates a new fitter
func NewFitter(config FitterConfig) *Fitter {
	return &Fitter{config: config}
}

// FitRegressor fits a ridge regression predictor
func (f *Fitter) FitRegressor(X []domain.FeatureVector, y []float64) (domain.Predictor, error) {
	r, err := FitRidge(X, y, f.config.RidgeLambda)
	if err != nil {
		return nil, err
	}
	return r, nil
}

// FitClassifier fits a logistic regression classifier
func (f *Fitter) FitClassifier(X []domain.FeatureVector, y []bool) (domain.Classifier, error) {
	l, err := FitLogistic(X, y, LogisticConfig{
		Iterations:   f.config.LogisticIterations,
		LearningRate: f.config.LogisticLearningRate,
		Lambda:       f.config.RidgeLambda,
	})
	if err != nil {
		return nil, err
	}
	return l, nil
}
