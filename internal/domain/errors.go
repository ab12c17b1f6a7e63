package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrModelsNotLoaded is returned when predictions are requested before the registry is ready
	ErrModelsNotLoaded = errors.New("models not loaded")

	// ErrArtifactNotFound is returned when a named model artifact does not exist
	ErrArtifactNotFound = errors.New("model artifact not found")

	// ErrSchemaMismatch is returned when a model's feature schema differs from the builder's
	ErrSchemaMismatch = errors.New("feature schema mismatch")

	// ErrNotClassifier is returned when a classification artifact cannot produce probabilities
	ErrNotClassifier = errors.New("artifact is not a classifier")

	// ErrPredictorFailure is returned when a predictor cannot produce an estimate
	ErrPredictorFailure = errors.New("predictor failed")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrEmptyCorpus is returned when fitting is attempted without training rows
	ErrEmptyCorpus = errors.New("training corpus is empty")
)
