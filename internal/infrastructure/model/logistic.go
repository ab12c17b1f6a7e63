package model

import (
	"context"
	"fmt"
	"math"

	"github.com/sharebite/backend/internal/domain"
	"gonum.org/v1/gonum/mat"
)

// Logistic is an L2-regularised logistic regression classifier
type Logistic struct {
	linear
}

// LogisticConfig controls gradient descent
type LogisticConfig struct {
	Iterations   int
	LearningRate float64
	Lambda       float64
}

// FitLogistic runs batch gradient descent on standardised features
func FitLogistic(X []domain.FeatureVector, y []bool, config LogisticConfig) (*Logistic, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit logistic: %d rows but %d targets", len(X), len(y))
	}
	data, means, scales, err := standardize(X)
	if err != nil {
		return nil, fmt.Errorf("fit logistic: %w", err)
	}
	if config.Iterations <= 0 {
		config.Iterations = 300
	}
	if config.LearningRate <= 0 {
		config.LearningRate = 0.1
	}

	n, p := len(X), len(domain.FeatureColumns)
	z := mat.NewDense(n, p, data)

	targets := make([]float64, n)
	positives := 0.0
	for i, v := range y {
		if v {
			targets[i] = 1
			positives++
		}
	}

	// start from the base rate so an uninformative model predicts it
	rate := math.Min(math.Max(positives/float64(n), 1e-6), 1-1e-6)
	intercept := math.Log(rate / (1 - rate))
	w := mat.NewVecDense(p, nil)

	var logits, grad mat.VecDense
	residual := mat.NewVecDense(n, nil)
	for iter := 0; iter < config.Iterations; iter++ {
		logits.MulVec(z, w)
		var residualSum float64
		for i := 0; i < n; i++ {
			r := sigmoid(logits.AtVec(i)+intercept) - targets[i]
			residual.SetVec(i, r)
			residualSum += r
		}
		grad.MulVec(z.T(), residual)
		for j := 0; j < p; j++ {
			g := grad.AtVec(j)/float64(n) + config.Lambda*w.AtVec(j)/float64(n)
			w.SetVec(j, w.AtVec(j)-config.LearningRate*g)
		}
		intercept -= config.LearningRate * residualSum / float64(n)
	}

	weights := make([]float64, p)
	for j := range weights {
		weights[j] = w.AtVec(j)
	}
	return &Logistic{linear{means: means, scales: scales, weights: weights, intercept: intercept}}, nil
}

// PredictProbability returns the probability of the positive class
func (l *Logistic) PredictProbability(_ context.Context, features domain.FeatureVector) (float64, error) {
	return sigmoid(l.apply(features)), nil
}

// Predict returns 1 for the positive class and 0 otherwise
func (l *Logistic) Predict(ctx context.Context, features domain.FeatureVector) (float64, error) {
	p, err := l.PredictProbability(ctx, features)
	if err != nil {
		return 0, err
	}
	if p >= 0.5 {
		return 1, nil
	}
	return 0, nil
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
