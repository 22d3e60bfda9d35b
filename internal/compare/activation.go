package compare

import (
	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/pose"
)

const (
	activationBase        = 70
	activationCrunchBonus = 8
	activationFlexBonus   = 5
)

// EstimateActivation is the default ActivationFunc. True activation
// cannot be read from a surface segmentation alone, so it returns a
// bounded, category-sensitive baseline until a real estimator is wired
// in through Config.Activation.
func EstimateActivation(_ *densemap.Map, category pose.Category) float64 {
	score := float64(activationBase)
	switch category {
	case pose.MostMuscular:
		score += activationCrunchBonus
	case pose.FrontDoubleBiceps, pose.BackDoubleBiceps:
		score += activationFlexBonus
	}
	return clamp100(score)
}
