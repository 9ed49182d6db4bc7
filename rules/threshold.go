package rules

import (
	"github.com/pkg/errors"
)

// MaxNeighbors is the size of the 3D Moore neighbourhood.
const MaxNeighbors = 26

// ErrInvalidRule is returned when a rule bound lies outside [0, MaxNeighbors].
var ErrInvalidRule = errors.New("invalid rule")

// Rule holds the neighbour-count thresholds of the automaton.
//
// A cell is Alive in the next generation when its Alive neighbour count is
// strictly greater than Min and not greater than Max. The cell's own state
// does not take part. Min > Max is a legal rule under which every cell dies.
type Rule struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

// Validate checks both bounds lie within [0, MaxNeighbors]
func (r Rule) Validate() error {
	if r.Min < 0 || r.Min > MaxNeighbors {
		return errors.Wrapf(ErrInvalidRule, "[Validate] min %d outside [0, %d]", r.Min, MaxNeighbors)
	}
	if r.Max < 0 || r.Max > MaxNeighbors {
		return errors.Wrapf(ErrInvalidRule, "[Validate] max %d outside [0, %d]", r.Max, MaxNeighbors)
	}
	return nil
}

/*
NextState applies the threshold rule to an Alive neighbour count.

A count above Max is Dead; neighbour counting may stop scanning as soon as the
running total exceeds Max, so any value above Max is treated the same. Otherwise
the cell is Alive when the count is strictly greater than Min.
*/
func NextState(neighbors int, rule Rule) bool {
	if neighbors > rule.Max {
		return false
	}
	return neighbors > rule.Min
}
