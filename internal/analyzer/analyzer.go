// Package analyzer scores a single skeleton snapshot against the ideals of
// a named competition pose: overall alignment, left/right symmetry, muscle
// engagement, and per-muscle-group grades.
package analyzer

import (
	"fmt"
	"math"
	"time"

	"github.com/ayusman/sandow/internal/geometry"
	"github.com/ayusman/sandow/internal/pose"
)

const (
	// DefaultMinConfidence is the keypoint confidence below which a joint
	// is treated as not detected.
	DefaultMinConfidence = 0.25

	alignmentBase  = 80
	symmetryBase   = 85
	engagementBase = 75
)

// Ideal arm-bend angles per competition pose, in degrees. This is the one
// authoritative copy; every engagement check reads from here.
var idealArmAngles = map[pose.Category]float64{
	pose.FrontRelaxed:      175,
	pose.FrontDoubleBiceps: 90,
	pose.SideChest:         90,
	pose.BackDoubleBiceps:  90,
	pose.SideTriceps:       160,
	pose.AbdominalAndThigh: 60,
	pose.MostMuscular:      100,
}

// Ideal torso tilt from vertical per competition pose, in degrees.
var idealTorsoAngles = map[pose.Category]float64{
	pose.FrontRelaxed:      0,
	pose.FrontDoubleBiceps: 0,
	pose.SideChest:         10,
	pose.BackDoubleBiceps:  0,
	pose.SideTriceps:       10,
	pose.AbdominalAndThigh: 10,
	pose.MostMuscular:      15,
}

// MuscleGroupResult grades one muscle group for the active pose.
type MuscleGroupResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
	Note  string `json:"note"`
}

// Feedback is the full grading of one skeleton snapshot. It is always
// fully formed: a frame with no usable keypoints yields zero scores and an
// explanatory summary, never an error.
type Feedback struct {
	OverallScore          int                 `json:"overall_score"`
	AlignmentScore        int                 `json:"alignment_score"`
	SymmetryScore         int                 `json:"symmetry_score"`
	MuscleEngagementScore int                 `json:"muscle_engagement_score"`
	MuscleGroups          []MuscleGroupResult `json:"muscle_groups"`
	Summary               string              `json:"summary"`
	Tips                  string              `json:"tips"`
	Timestamp             time.Time           `json:"timestamp"`
}

// Config holds the analyzer configuration. Category is required; Class
// defaults to bodybuilding and MinConfidence to DefaultMinConfidence.
type Config struct {
	Category      pose.Category
	Class         pose.CompetitionClass
	MinConfidence float64
}

// Analyzer scores snapshots for one competition pose and class. It holds
// no per-frame state, so a single instance is safe for concurrent use.
type Analyzer struct {
	category      pose.Category
	class         pose.CompetitionClass
	minConf       float64
	muscleScorers map[string]MuscleScorer
}

// New creates an Analyzer for the given configuration. Unrecognized
// categories and classes are rejected here so every later table lookup is
// guaranteed to hit.
func New(cfg Config) (*Analyzer, error) {
	if !cfg.Category.Valid() {
		return nil, fmt.Errorf("%w: %q", pose.ErrUnknownCategory, cfg.Category)
	}
	if cfg.Class == "" {
		cfg.Class = pose.ClassBodybuilding
	}
	if !cfg.Class.Valid() {
		return nil, fmt.Errorf("%w: %q", pose.ErrUnknownClass, cfg.Class)
	}
	if cfg.MinConfidence <= 0 {
		cfg.MinConfidence = DefaultMinConfidence
	}

	a := &Analyzer{
		category:      cfg.Category,
		class:         cfg.Class,
		minConf:       cfg.MinConfidence,
		muscleScorers: make(map[string]MuscleScorer),
	}
	a.muscleScorers["biceps"] = a.scoreBiceps
	return a, nil
}

// Category returns the competition pose this analyzer grades.
func (a *Analyzer) Category() pose.Category {
	return a.category
}

// Analyze grades one snapshot against the configured pose ideals.
func (a *Analyzer) Analyze(snap *pose.Snapshot) *Feedback {
	now := time.Now()

	if snap == nil || len(snap.Keypoints) == 0 {
		return &Feedback{
			MuscleGroups: []MuscleGroupResult{},
			Summary:      "No pose detected. Step fully into frame and hold the pose.",
			Tips:         "Make sure your whole body is visible and the scene is well lit.",
			Timestamp:    now,
		}
	}

	alignment := a.alignmentScore(snap)
	symmetry := a.symmetryScore(snap)
	engagement := a.muscleEngagementScore(snap)
	overall := int(math.Round(0.4*float64(alignment) + 0.3*float64(symmetry) + 0.3*float64(engagement)))

	return &Feedback{
		OverallScore:          clampScore(overall),
		AlignmentScore:        alignment,
		SymmetryScore:         symmetry,
		MuscleEngagementScore: engagement,
		MuscleGroups:          a.scoreMuscleGroups(snap),
		Summary:               summaryFor(overall),
		Tips:                  tipsFor(alignment, symmetry, engagement),
		Timestamp:             now,
	}
}

// joint resolves a keypoint to a geometry point, treating low-confidence
// detections as missing.
func (a *Analyzer) joint(snap *pose.Snapshot, name pose.JointLabel) (geometry.Point, bool) {
	kp, ok := snap.Keypoint(name)
	if !ok || kp.Confidence < a.minConf {
		return geometry.Point{}, false
	}
	return geometry.Point{X: kp.X, Y: kp.Y}, true
}

// bendAngle computes the joint bend at vertex, skipping when any of the
// three joints is missing or the geometry is degenerate.
func (a *Analyzer) bendAngle(snap *pose.Snapshot, j1, vertex, j2 pose.JointLabel) (float64, bool) {
	p1, ok1 := a.joint(snap, j1)
	pv, ok2 := a.joint(snap, vertex)
	p2, ok3 := a.joint(snap, j2)
	if !ok1 || !ok2 || !ok3 {
		return 0, false
	}
	return geometry.AngleDegrees(p1, pv, p2)
}

// alignmentScore checks that shoulders and hips are level and the spine is
// centered. Checks whose joints are missing are skipped, not penalized.
func (a *Analyzer) alignmentScore(snap *pose.Snapshot) int {
	score := alignmentBase

	ls, lsok := a.joint(snap, pose.LeftShoulder)
	rs, rsok := a.joint(snap, pose.RightShoulder)
	if lsok && rsok {
		if width := geometry.Distance(ls, rs); width > 0 {
			ratio := math.Abs(ls.Y-rs.Y) / width
			if ratio > 0.1 {
				score -= cappedPenalty(ratio*200, 30)
			}
		}
	}

	lh, lhok := a.joint(snap, pose.LeftHip)
	rh, rhok := a.joint(snap, pose.RightHip)
	if lhok && rhok {
		if width := geometry.Distance(lh, rh); width > 0 {
			ratio := math.Abs(lh.Y-rh.Y) / width
			if ratio > 0.1 {
				score -= cappedPenalty(ratio*200, 30)
			}
		}
	}

	if nose, ok := a.joint(snap, pose.Nose); ok && lhok && rhok && snap.ImageWidth > 0 {
		midHip := geometry.Midpoint(lh, rh)
		ratio := math.Abs(nose.X-midHip.X) / float64(snap.ImageWidth)
		if ratio > 0.05 {
			score -= cappedPenalty(ratio*300, 20)
		}
	}

	return clampScore(score)
}

// symmetryScore compares left against right arm and leg bend angles.
func (a *Analyzer) symmetryScore(snap *pose.Snapshot) int {
	score := symmetryBase

	leftArm, lok := a.bendAngle(snap, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist)
	rightArm, rok := a.bendAngle(snap, pose.RightShoulder, pose.RightElbow, pose.RightWrist)
	if lok && rok {
		if delta := math.Abs(leftArm - rightArm); delta > 10 {
			score -= cappedPenalty(delta/2, 25)
		}
	}

	leftLeg, lok := a.bendAngle(snap, pose.LeftHip, pose.LeftKnee, pose.LeftAnkle)
	rightLeg, rok := a.bendAngle(snap, pose.RightHip, pose.RightKnee, pose.RightAnkle)
	if lok && rok {
		if delta := math.Abs(leftLeg - rightLeg); delta > 10 {
			score -= cappedPenalty(delta/2, 25)
		}
	}

	return clampScore(score)
}

// muscleEngagementScore compares the average arm bend and the torso tilt
// against the ideals for the active pose.
func (a *Analyzer) muscleEngagementScore(snap *pose.Snapshot) int {
	score := engagementBase

	var armAngles []float64
	if angle, ok := a.bendAngle(snap, pose.LeftShoulder, pose.LeftElbow, pose.LeftWrist); ok {
		armAngles = append(armAngles, angle)
	}
	if angle, ok := a.bendAngle(snap, pose.RightShoulder, pose.RightElbow, pose.RightWrist); ok {
		armAngles = append(armAngles, angle)
	}
	if len(armAngles) > 0 {
		var sum float64
		for _, angle := range armAngles {
			sum += angle
		}
		dev := math.Abs(sum/float64(len(armAngles)) - idealArmAngles[a.category])
		if dev > 20 {
			score -= cappedPenalty(dev/3, 20)
		}
	}

	if tilt, ok := a.torsoTilt(snap); ok {
		dev := math.Abs(tilt - idealTorsoAngles[a.category])
		if dev > 10 {
			score -= cappedPenalty(dev/2, 20)
		}
	}

	return clampScore(score)
}

// torsoTilt measures the angle of the mid-shoulder to mid-hip line from
// vertical, in degrees.
func (a *Analyzer) torsoTilt(snap *pose.Snapshot) (float64, bool) {
	ls, ok1 := a.joint(snap, pose.LeftShoulder)
	rs, ok2 := a.joint(snap, pose.RightShoulder)
	lh, ok3 := a.joint(snap, pose.LeftHip)
	rh, ok4 := a.joint(snap, pose.RightHip)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return 0, false
	}

	midShoulder := geometry.Midpoint(ls, rs)
	midHip := geometry.Midpoint(lh, rh)
	dx := math.Abs(midShoulder.X - midHip.X)
	dy := math.Abs(midShoulder.Y - midHip.Y)
	if dx == 0 && dy == 0 {
		return 0, false
	}

	return math.Atan2(dx, dy) * 180 / math.Pi, true
}

// cappedPenalty rounds a raw penalty and caps it at limit.
func cappedPenalty(raw float64, limit int) int {
	p := int(math.Round(raw))
	if p > limit {
		return limit
	}
	return p
}

// clampScore bounds a score to [0, 100].
func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
