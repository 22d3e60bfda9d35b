package compare

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/pose"
)

func fill(parts []densemap.BodyPartID, id densemap.BodyPartID, n int) []densemap.BodyPartID {
	for i := 0; i < n; i++ {
		parts = append(parts, id)
	}
	return parts
}

// flatMap lays the given parts out on a single row with every pixel at
// surface coordinate (u, v).
func flatMap(parts []densemap.BodyPartID, u, v float64) *densemap.Map {
	us := make([]float64, len(parts))
	vs := make([]float64, len(parts))
	for i := range parts {
		us[i] = u
		vs[i] = v
	}
	return &densemap.Map{
		Width:  len(parts),
		Height: 1,
		Parts:  parts,
		U:      us,
		V:      vs,
		BBox:   [4]float64{0, 0, float64(len(parts)), 1},
		Score:  0.9,
	}
}

func balancedMap() *densemap.Map {
	parts := fill(nil, densemap.PartLeftUpperArm, 50)
	parts = fill(parts, densemap.PartRightUpperArm, 50)
	parts = fill(parts, densemap.PartTorso, 100)
	return flatMap(parts, 0.5, 0.5)
}

func lopsidedMap() *densemap.Map {
	parts := fill(nil, densemap.PartLeftUpperArm, 700)
	parts = fill(parts, densemap.PartRightUpperArm, 300)
	return flatMap(parts, 0.5, 0.5)
}

func approx(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %s %.6f, got %.6f", name, want, got)
	}
}

func TestCompareSelfBalanced(t *testing.T) {
	cmp := New(Config{})
	m := balancedMap()

	result, err := cmp.Compare(m, m, pose.FrontDoubleBiceps)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}

	approx(t, "alignment", result.AlignmentScore, 10)
	approx(t, "symmetry", result.SymmetryScore, 10)
	approx(t, "activation", result.MuscleActivationScore, 7.5)
	approx(t, "total", result.TotalScore, 9.375)
}

func TestCompareLopsidedSymmetry(t *testing.T) {
	cmp := New(Config{})
	m := lopsidedMap()

	result, err := cmp.Compare(m, m, pose.FrontDoubleBiceps)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}

	// 700 vs 300 pixels on the upper arms: ratio 0.7, pair score 60.
	approx(t, "symmetry", result.SymmetryScore, 6)
	approx(t, "alignment", result.AlignmentScore, 10)

	if len(result.Feedback) != 4 {
		t.Fatalf("expected 4 feedback items, got %d", len(result.Feedback))
	}
	first := result.Feedback[0]
	if first.Importance != ImportanceHigh {
		t.Errorf("expected HIGH symmetry feedback, got %s", first.Importance)
	}
	if first.BodyPart != "upper arms" {
		t.Errorf("expected feedback to name upper arms, got %q", first.BodyPart)
	}
}

func TestCompareOneSidedPartReadsMisaligned(t *testing.T) {
	cmp := New(Config{})
	user := flatMap([]densemap.BodyPartID{densemap.PartTorso, densemap.PartHead}, 0.5, 0.5)
	ref := flatMap([]densemap.BodyPartID{densemap.PartTorso}, 0.5, 0.5)

	result, err := cmp.Compare(user, ref, pose.FrontRelaxed)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}

	// Torso matches exactly (100); the head exists only in the user map,
	// so it scores against the zero vector (50). Mean is 75.
	approx(t, "alignment", result.AlignmentScore, 7.5)

	alignItem := result.Feedback[1]
	if alignItem.BodyPart != "head" {
		t.Errorf("expected worst part head, got %q", alignItem.BodyPart)
	}
	if alignItem.Importance != ImportanceMedium {
		t.Errorf("expected MEDIUM alignment feedback, got %s", alignItem.Importance)
	}
}

func TestCompareEmptyUserMap(t *testing.T) {
	cmp := New(Config{})

	for _, user := range []*densemap.Map{nil, flatMap(fill(nil, densemap.PartBackground, 4), 0, 0)} {
		result, err := cmp.Compare(user, balancedMap(), pose.SideChest)
		if err != nil {
			t.Fatalf("failed to compare: %v", err)
		}
		if result.TotalScore != 0 || result.SymmetryScore != 0 || result.AlignmentScore != 0 || result.MuscleActivationScore != 0 {
			t.Errorf("expected zero scores for empty user map, got %+v", result)
		}
		if len(result.Feedback) != 1 {
			t.Fatalf("expected 1 feedback item, got %d", len(result.Feedback))
		}
		if result.Feedback[0].BodyPart != "your pose" || result.Feedback[0].Importance != ImportanceHigh {
			t.Errorf("unexpected sentinel feedback %+v", result.Feedback[0])
		}
	}
}

func TestCompareEmptyReferenceMap(t *testing.T) {
	cmp := New(Config{})

	result, err := cmp.Compare(balancedMap(), nil, pose.SideChest)
	if err != nil {
		t.Fatalf("failed to compare: %v", err)
	}
	if result.TotalScore != 0 {
		t.Errorf("expected zero total, got %f", result.TotalScore)
	}
	if len(result.Feedback) != 1 || result.Feedback[0].BodyPart != "reference pose" {
		t.Errorf("unexpected sentinel feedback %+v", result.Feedback)
	}
}

func TestCompareUnknownCategory(t *testing.T) {
	cmp := New(Config{})

	_, err := cmp.Compare(balancedMap(), balancedMap(), pose.Category("crab"))
	if !errors.Is(err, pose.ErrUnknownCategory) {
		t.Errorf("expected unknown category error, got %v", err)
	}
}

func TestCompareCategoryWeights(t *testing.T) {
	// Fixed sub-scores: symmetry 60 from the lopsided map, alignment 100
	// from self-comparison, activation pinned at 80.
	cmp := New(Config{Activation: func(*densemap.Map, pose.Category) float64 { return 80 }})
	m := lopsidedMap()

	tests := []struct {
		category pose.Category
		want     float64
	}{
		{pose.FrontRelaxed, 8.0},
		{pose.FrontDoubleBiceps, 7.7},
		{pose.SideChest, 8.6},
		{pose.BackDoubleBiceps, 7.7},
		{pose.SideTriceps, 8.6},
		{pose.AbdominalAndThigh, 8.0},
		{pose.MostMuscular, 8.0},
	}
	for _, tt := range tests {
		result, err := cmp.Compare(m, m, tt.category)
		if err != nil {
			t.Fatalf("failed to compare for %s: %v", tt.category, err)
		}
		approx(t, string(tt.category)+" total", result.TotalScore, tt.want)
	}
}

func TestCompareCustomActivationClamped(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"plain", 42, 4.2},
		{"above range", 400, 10},
		{"below range", -5, 0},
		{"not a number", math.NaN(), 0},
	}
	for _, tt := range tests {
		cmp := New(Config{Activation: func(*densemap.Map, pose.Category) float64 { return tt.value }})
		result, err := cmp.Compare(balancedMap(), balancedMap(), pose.FrontRelaxed)
		if err != nil {
			t.Fatalf("failed to compare: %v", err)
		}
		approx(t, tt.name+" activation", result.MuscleActivationScore, tt.want)
	}
}

func TestCompareCategoryCue(t *testing.T) {
	cmp := New(Config{})
	m := balancedMap()

	tests := []struct {
		category pose.Category
		bodyPart string
	}{
		{pose.FrontRelaxed, "posture"},
		{pose.FrontDoubleBiceps, "arms"},
		{pose.SideChest, "chest"},
		{pose.BackDoubleBiceps, "arms"},
		{pose.SideTriceps, "chest"},
		{pose.AbdominalAndThigh, "abs"},
		{pose.MostMuscular, "traps"},
	}
	for _, tt := range tests {
		result, err := cmp.Compare(m, m, tt.category)
		if err != nil {
			t.Fatalf("failed to compare for %s: %v", tt.category, err)
		}
		cue := result.Feedback[len(result.Feedback)-1]
		if cue.BodyPart != tt.bodyPart {
			t.Errorf("expected %s cue to name %q, got %q", tt.category, tt.bodyPart, cue.BodyPart)
		}
		if cue.Importance != ImportanceMedium {
			t.Errorf("expected MEDIUM cue for %s, got %s", tt.category, cue.Importance)
		}
	}
}

func TestCompareScoreRanges(t *testing.T) {
	cmp := New(Config{})
	r := rand.New(rand.NewSource(42))

	randomMap := func() *densemap.Map {
		parts := make([]densemap.BodyPartID, 64)
		u := make([]float64, 64)
		v := make([]float64, 64)
		for i := range parts {
			parts[i] = densemap.BodyPartID(r.Intn(15))
			u[i] = r.Float64()
			v[i] = r.Float64()
		}
		parts[0] = densemap.PartTorso
		return &densemap.Map{Width: 8, Height: 8, Parts: parts, U: u, V: v, Score: 0.8}
	}

	for i := 0; i < 25; i++ {
		user := randomMap()
		ref := randomMap()
		for _, category := range pose.Categories() {
			result, err := cmp.Compare(user, ref, category)
			if err != nil {
				t.Fatalf("failed to compare iteration %d for %s: %v", i, category, err)
			}
			for name, score := range map[string]float64{
				"total":      result.TotalScore,
				"symmetry":   result.SymmetryScore,
				"alignment":  result.AlignmentScore,
				"activation": result.MuscleActivationScore,
			} {
				if score < 0 || score > 10 || math.IsNaN(score) {
					t.Errorf("%s score out of range for %s: %f", name, category, score)
				}
			}
			if len(result.Feedback) != 4 {
				t.Errorf("expected 4 feedback items, got %d", len(result.Feedback))
			}
		}
	}
}
