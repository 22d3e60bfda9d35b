// Package motion tracks pose stability across successive snapshots so
// live clients can tell a held pose from a transition.
package motion

import (
	"math"
	"sync"

	"github.com/ayusman/sandow/internal/geometry"
	"github.com/ayusman/sandow/internal/pose"
)

// DefaultThreshold is the normalized displacement at or below which a
// pose counts as held, expressed as a fraction of the image diagonal.
const DefaultThreshold = 0.02

// Tracker reports whether a pose is being held steady by measuring joint
// displacement between consecutive snapshots.
type Tracker struct {
	threshold float64
	prev      map[pose.JointLabel]geometry.Point
	mu        sync.Mutex
}

// NewTracker creates a new Tracker with the given displacement threshold.
// Thresholds less than or equal to 0 fall back to DefaultThreshold.
func NewTracker(threshold float64) *Tracker {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Tracker{threshold: threshold}
}

// Observe compares a snapshot against the previous one.
// Returns whether the pose is held steady and the normalized displacement.
//
// Algorithm:
// 1. Empty or degenerate snapshots clear the baseline and are never steady
// 2. The first usable snapshot becomes the baseline and is never steady
// 3. Mean distance over joints shared with the baseline, divided by the
//    image diagonal, gives the displacement
// 4. The snapshot replaces the baseline
// 5. Steady means displacement at or below the threshold
func (t *Tracker) Observe(snap *pose.Snapshot) (bool, float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if snap == nil || len(snap.Keypoints) == 0 || snap.ImageWidth <= 0 || snap.ImageHeight <= 0 {
		t.prev = nil
		return false, 0
	}

	current := make(map[pose.JointLabel]geometry.Point, len(snap.Keypoints))
	for _, kp := range snap.Keypoints {
		if _, ok := current[kp.Name]; !ok {
			current[kp.Name] = geometry.Point{X: kp.X, Y: kp.Y}
		}
	}

	prev := t.prev
	t.prev = current

	if prev == nil {
		return false, 0
	}

	var sum float64
	shared := 0
	for name, p := range current {
		q, ok := prev[name]
		if !ok {
			continue
		}
		sum += geometry.Distance(p, q)
		shared++
	}
	if shared == 0 {
		return false, 0
	}

	diag := math.Hypot(float64(snap.ImageWidth), float64(snap.ImageHeight))
	displacement := sum / float64(shared) / diag

	return displacement <= t.threshold, displacement
}

// Reset clears the tracker state so the next snapshot starts a fresh
// baseline.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prev = nil
}

// SetThreshold sets the steadiness threshold as a fraction of the image
// diagonal. Values less than or equal to 0 are ignored.
func (t *Tracker) SetThreshold(threshold float64) {
	if threshold <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.threshold = threshold
}
