package model

import (
	"context"
	"fmt"

	"github.com/sharebite/backend/internal/domain"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// Ridge is an L2-regularised linear regressor
type Ridge struct {
	linear
}

// FitRidge solves (ZᵀZ + λI)w = Zᵀ(y - ȳ) on standardised features
func FitRidge(X []domain.FeatureVector, y []float64, lambda float64) (*Ridge, error) {
	if len(X) != len(y) {
		return nil, fmt.Errorf("fit ridge: %d rows but %d targets", len(X), len(y))
	}
	data, means, scales, err := standardize(X)
	if err != nil {
		return nil, fmt.Errorf("fit ridge: %w", err)
	}
	if lambda <= 0 {
		lambda = 1e-6
	}

	n, p := len(X), len(domain.FeatureColumns)
	z := mat.NewDense(n, p, data)

	yMean := stat.Mean(y, nil)
	centred := make([]float64, n)
	for i, v := range y {
		centred[i] = v - yMean
	}

	var gram mat.Dense
	gram.Mul(z.T(), z)
	for j := 0; j < p; j++ {
		gram.Set(j, j, gram.At(j, j)+lambda)
	}

	var rhs mat.VecDense
	rhs.MulVec(z.T(), mat.NewVecDense(n, centred))

	var w mat.VecDense
	if err := w.SolveVec(&gram, &rhs); err != nil {
		return nil, fmt.Errorf("fit ridge: solve: %w", err)
	}

	weights := make([]float64, p)
	for j := range weights {
		weights[j] = w.AtVec(j)
	}

	return &Ridge{linear{means: means, scales: scales, weights: weights, intercept: yMean}}, nil
}

// Predict returns the regression estimate
func (r *Ridge) Predict(_ context.Context, features domain.FeatureVector) (float64, error) {
	return r.apply(features), nil
}
