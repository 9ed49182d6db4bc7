package model

import (
	"math"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// RandSource yields uniform values in [0, 1). *math/rand.Rand and
// *math/rand/v2.Rand both satisfy it.
type RandSource interface {
	Float64() float64
}

// ClampProbability clamps p to [0, 1]. NaN becomes 0.
func ClampProbability(p float64) float64 {
	switch {
	case math.IsNaN(p), p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// NewRandomGrid creates a grid in which each cell is independently Alive with
// probability initial. Out-of-range probabilities are clamped to [0, 1].
func NewRandomGrid(width, height, depth int, initial float64, src RandSource) (*Grid, error) {
	if err := ValidateDimensions(width, height, depth); err != nil {
		return nil, errors.Wrap(err, "[NewRandomGrid]")
	}
	if src == nil {
		return nil, errors.New("[NewRandomGrid] nil randomness source")
	}

	p := ClampProbability(initial)
	if p != initial {
		logrus.WithFields(logrus.Fields{
			"initial": initial,
			"clamped": p,
		}).Warn("initial probability outside [0, 1], clamping")
	}

	g := newGrid(width, height, depth)
	for i := range g.cells {
		if src.Float64() < p {
			g.cells[i] = Alive
		}
	}
	g.seal()
	return g, nil
}
