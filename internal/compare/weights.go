package compare

import (
	"fmt"

	"github.com/ayusman/sandow/internal/pose"
)

// weightTriple is the per-category weighting of the three sub-scores.
// Each triple sums to 1.
type weightTriple struct {
	symmetry   float64
	alignment  float64
	activation float64
}

// categoryWeights returns the sub-score weighting for a competition pose.
// Double-biceps poses reward balance, side poses reward matching the
// reference position, and most-muscular rewards raw engagement; the
// remaining poses weight all three equally.
func categoryWeights(category pose.Category) (weightTriple, error) {
	switch category {
	case pose.FrontDoubleBiceps, pose.BackDoubleBiceps:
		return weightTriple{symmetry: 0.45, alignment: 0.30, activation: 0.25}, nil
	case pose.SideChest, pose.SideTriceps:
		return weightTriple{symmetry: 0.20, alignment: 0.50, activation: 0.30}, nil
	case pose.MostMuscular:
		return weightTriple{symmetry: 0.25, alignment: 0.25, activation: 0.50}, nil
	case pose.FrontRelaxed, pose.AbdominalAndThigh:
		return weightTriple{symmetry: 1.0 / 3, alignment: 1.0 / 3, activation: 1.0 / 3}, nil
	}
	return weightTriple{}, fmt.Errorf("%w: %q", pose.ErrUnknownCategory, category)
}
