package analyzer

import (
	"math"

	"github.com/ayusman/sandow/internal/pose"
)

const idealBicepsBend = 90

// MuscleScorer grades one muscle group from a snapshot. Strategies are
// registered per group name so a group can gain real geometry without
// touching the analysis flow.
type MuscleScorer func(snap *pose.Snapshot) MuscleGroupResult

// categoryMuscleGroups lists the judged groups per pose, in presentation order.
var categoryMuscleGroups = map[pose.Category][]string{
	pose.FrontRelaxed:      {"shoulders", "quads"},
	pose.FrontDoubleBiceps: {"biceps", "shoulders", "lats"},
	pose.SideChest:         {"chest", "biceps", "quads"},
	pose.BackDoubleBiceps:  {"biceps", "lats", "hamstrings"},
	pose.SideTriceps:       {"triceps", "chest", "quads"},
	pose.AbdominalAndThigh: {"abs", "quads"},
	pose.MostMuscular:      {"traps", "chest", "biceps"},
}

// legGroups are skipped for classes whose uniform hides the legs.
var legGroups = map[string]bool{
	"quads":      true,
	"hamstrings": true,
	"calves":     true,
	"glutes":     true,
}

// RegisterMuscleScorer replaces the scoring strategy for a muscle group.
// Nil strategies are ignored.
func (a *Analyzer) RegisterMuscleScorer(group string, fn MuscleScorer) {
	if fn == nil {
		return
	}
	a.muscleScorers[group] = fn
}

// scoreMuscleGroups runs the registered strategy for each judged group of
// the active pose.
func (a *Analyzer) scoreMuscleGroups(snap *pose.Snapshot) []MuscleGroupResult {
	groups := categoryMuscleGroups[a.category]
	results := make([]MuscleGroupResult, 0, len(groups))

	for _, group := range groups {
		if a.class.HidesLegs() && legGroups[group] {
			continue
		}
		scorer, ok := a.muscleScorers[group]
		if !ok {
			scorer = holdScorer(group)
		}
		results = append(results, scorer(snap))
	}

	return results
}

// holdScorer is the stand-in strategy for groups without an angle
// heuristic yet. It reports a fixed mid score so group results stay
// comparable while real estimators land group by group.
func holdScorer(group string) MuscleScorer {
	return func(*pose.Snapshot) MuscleGroupResult {
		return MuscleGroupResult{
			Name:  group,
			Score: engagementBase,
			Note:  "Keep constant tension through the hold.",
		}
	}
}

// scoreBiceps grades the elbow bend against the 90 degree show standard.
func (a *Analyzer) scoreBiceps(snap *pose.Snapshot) MuscleGroupResult {
	var angles []float64
	if angle, ok := a.bendAngle(snap, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist); ok {
		angles = append(angles, angle)
	}
	if angle, ok := a.bendAngle(snap, pose.RightShoulder, pose.RightElbow, pose.RightWrist); ok {
		angles = append(angles, angle)
	}

	score := engagementBase
	if len(angles) == 0 {
		return MuscleGroupResult{
			Name:  "biceps",
			Score: score,
			Note:  "Arms not visible enough to grade the flex.",
		}
	}

	var sum float64
	for _, angle := range angles {
		sum += angle
	}
	dev := math.Abs(sum/float64(len(angles)) - idealBicepsBend)

	note := "Hold the flex; bring the forearm toward a right angle."
	switch {
	case dev < 10:
		score += 20
		note = "Excellent peak position, keep squeezing."
	case dev < 20:
		score += 10
		note = "Close to the right angle, rotate the wrists in slightly."
	case dev > 30:
		score -= 15
		note = "Elbow bend is far off the right angle this pose calls for."
	}

	return MuscleGroupResult{
		Name:  "biceps",
		Score: clampScore(score),
		Note:  note,
	}
}
