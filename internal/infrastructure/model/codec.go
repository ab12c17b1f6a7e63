package model

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sharebite/backend/internal/domain"
)

// ErrUnsupportedPredictor is returned when a predictor has no artifact encoding
var ErrUnsupportedPredictor = errors.New("unsupported predictor type")

const (
	kindRidge    = "ridge"
	kindLogistic = "logistic"
)

type artifact struct {
	Kind      string    `json:"kind"`
	Columns   []string  `json:"columns"`
	Means     []float64 `json:"means"`
	Scales    []float64 `json:"scales"`
	Weights   []float64 `json:"weights"`
	Intercept float64   `json:"intercept"`
}

// Marshal encodes a reference predictor as a JSON artifact
func Marshal(p domain.Predictor) ([]byte, error) {
	var a artifact
	switch m := p.(type) {
	case *Ridge:
		a = newArtifact(kindRidge, &m.linear)
	case *Logistic:
		a = newArtifact(kindLogistic, &m.linear)
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedPredictor, p)
	}
	return json.Marshal(a)
}

// Unmarshal decodes an artifact, rejecting any whose columns differ from FeatureColumns
func Unmarshal(data []byte) (domain.Predictor, error) {
	var a artifact
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("decode artifact: %w", err)
	}
	if err := domain.CheckColumns(a.Columns); err != nil {
		return nil, err
	}
	p := len(a.Columns)
	if len(a.Means) != p || len(a.Scales) != p || len(a.Weights) != p {
		return nil, fmt.Errorf("%w: artifact parameter lengths do not match %d columns", domain.ErrSchemaMismatch, p)
	}

	l := linear{means: a.Means, scales: a.Scales, weights: a.Weights, intercept: a.Intercept}
	switch a.Kind {
	case kindRidge:
		return &Ridge{l}, nil
	case kindLogistic:
		return &Logistic{l}, nil
	default:
		return nil, fmt.Errorf("%w: kind %q", ErrUnsupportedPredictor, a.Kind)
	}
}

func newArtifact(kind string, l *linear) artifact {
	return artifact{
		Kind:      kind,
		Columns:   domain.FeatureColumns,
		Means:     l.means,
		Scales:    l.scales,
		Weights:   l.weights,
		Intercept: l.intercept,
	}
}
