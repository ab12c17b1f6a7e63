package model

import (
	"fmt"
	"math"

	"github.com/sharebite/backend/internal/domain"
	"gonum.org/v1/gonum/stat"
)

// linear is a standardised linear function over the feature vector
type linear struct {
	means     []float64
	scales    []float64
	weights   []float64
	intercept float64
}

func (l *linear) apply(features domain.FeatureVector) float64 {
	x := features.Values()
	sum := l.intercept
	for j, v := range x {
		sum += l.weights[j] * (v - l.means[j]) / l.scales[j]
	}
	return sum
}

// standardize centres and scales each column; constant columns keep scale 1
func standardize(X []domain.FeatureVector) (data []float64, means, scales []float64, err error) {
	if len(X) == 0 {
		return nil, nil, nil, domain.ErrEmptyCorpus
	}
	n, p := len(X), len(domain.FeatureColumns)

	columns := make([][]float64, p)
	for j := range columns {
		columns[j] = make([]float64, n)
	}
	for i, fv := range X {
		for j, v := range fv.Values() {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, nil, fmt.Errorf("row %d column %s is not finite", i, domain.FeatureColumns[j])
			}
			columns[j][i] = v
		}
	}

	means = make([]float64, p)
	scales = make([]float64, p)
	for j, col := range columns {
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 || math.IsNaN(std) {
			std = 1
		}
		means[j], scales[j] = mean, std
	}

	data = make([]float64, n*p)
	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			data[i*p+j] = (columns[j][i] - means[j]) / scales[j]
		}
	}
	return data, means, scales, nil
}
