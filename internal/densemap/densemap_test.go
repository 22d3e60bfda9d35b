package densemap

import (
	"math"
	"testing"
)

// gridMap builds a map from a flat part layout with uniform u/v fill.
func gridMap(width, height int, parts []BodyPartID, score float64) *Map {
	u := make([]float64, len(parts))
	v := make([]float64, len(parts))
	for i := range parts {
		u[i] = 0.5
		v[i] = 0.5
	}
	return &Map{Width: width, Height: height, Parts: parts, U: u, V: v, Score: score}
}

func TestPrimary_HighestConfidenceWins(t *testing.T) {
	low := gridMap(1, 2, []BodyPartID{PartTorso, PartHead}, 0.4)
	high := gridMap(1, 2, []BodyPartID{PartTorso, PartHead}, 0.9)
	mid := gridMap(1, 2, []BodyPartID{PartTorso, PartHead}, 0.6)

	if got := Primary([]*Map{low, high, mid}); got != high {
		t.Errorf("expected the 0.9 instance, got score %v", got.Score)
	}
}

func TestPrimary_TieKeepsEarliest(t *testing.T) {
	first := gridMap(1, 1, []BodyPartID{PartTorso}, 0.8)
	second := gridMap(1, 1, []BodyPartID{PartHead}, 0.8)

	if got := Primary([]*Map{first, second}); got != first {
		t.Error("expected the earliest instance on a confidence tie")
	}
}

func TestPrimary_EmptyAndNil(t *testing.T) {
	if Primary(nil) != nil {
		t.Error("expected nil for no instances")
	}
	if Primary([]*Map{nil, nil}) != nil {
		t.Error("expected nil when all instances are nil")
	}
}

func TestMap_Empty(t *testing.T) {
	var nilMap *Map
	if !nilMap.Empty() {
		t.Error("nil map should be empty")
	}
	if !(&Map{}).Empty() {
		t.Error("map without grid should be empty")
	}
	if !gridMap(2, 1, []BodyPartID{PartBackground, PartBackground}, 0.9).Empty() {
		t.Error("all-background map should be empty")
	}
	if gridMap(2, 1, []BodyPartID{PartBackground, PartTorso}, 0.9).Empty() {
		t.Error("map with foreground should not be empty")
	}
}

func TestMap_Histogram(t *testing.T) {
	m := gridMap(2, 2, []BodyPartID{PartTorso, PartTorso, PartLeftUpperArm, PartBackground}, 0.9)
	hist := m.Histogram()

	if hist[PartTorso] != 2 {
		t.Errorf("expected 2 torso pixels, got %d", hist[PartTorso])
	}
	if hist[PartLeftUpperArm] != 1 {
		t.Errorf("expected 1 left upper arm pixel, got %d", hist[PartLeftUpperArm])
	}
	if hist[PartBackground] != 1 {
		t.Errorf("expected 1 background pixel, got %d", hist[PartBackground])
	}
}

func TestMap_MeanUV(t *testing.T) {
	m := &Map{
		Width:  2,
		Height: 2,
		Parts:  []BodyPartID{PartTorso, PartTorso, PartHead, PartBackground},
		U:      []float64{0.2, 0.4, 1.0, 0.9},
		V:      []float64{0.6, 0.8, 0.0, 0.9},
	}

	means := m.MeanUV()
	torso, ok := means[PartTorso]
	if !ok {
		t.Fatal("expected a torso mean")
	}
	if math.Abs(torso.X-0.3) > 1e-9 || math.Abs(torso.Y-0.7) > 1e-9 {
		t.Errorf("expected torso mean (0.3,0.7), got (%v,%v)", torso.X, torso.Y)
	}

	if _, ok := means[PartBackground]; ok {
		t.Error("background should not have a mean surface point")
	}
}

func TestMap_DigestStability(t *testing.T) {
	a := gridMap(2, 2, []BodyPartID{PartTorso, PartTorso, PartHead, PartBackground}, 0.9)
	b := gridMap(2, 2, []BodyPartID{PartTorso, PartTorso, PartHead, PartBackground}, 0.9)

	if a.Digest() == "" {
		t.Fatal("expected a non-empty digest")
	}
	if a.Digest() != b.Digest() {
		t.Error("identical maps should share a digest")
	}

	b.Parts[3] = PartTorso
	if a.Digest() == b.Digest() {
		t.Error("different part grids should produce different digests")
	}
}

func TestBodyPartID_Name(t *testing.T) {
	if PartLeftUpperArm.Name() != "left upper arm" {
		t.Errorf("unexpected name %q", PartLeftUpperArm.Name())
	}
	if BodyPartID(99).Name() != "part 99" {
		t.Errorf("unexpected fallback name %q", BodyPartID(99).Name())
	}
}

func TestSymmetryPairs_LiteralIDs(t *testing.T) {
	// The table preserves the upstream numbering, where hands, feet, and
	// legs assign the lower id to the right side but arms assign it to the
	// left side.
	want := map[string][2]BodyPartID{
		"upper arms": {10, 11},
		"lower arms": {12, 13},
		"hands":      {3, 2},
		"upper legs": {7, 6},
		"lower legs": {9, 8},
		"feet":       {4, 5},
	}

	pairs := SymmetryPairs()
	if len(pairs) != 6 {
		t.Fatalf("expected 6 symmetry pairs, got %d", len(pairs))
	}
	for _, p := range pairs {
		ids, ok := want[p.Label]
		if !ok {
			t.Errorf("unexpected pair label %q", p.Label)
			continue
		}
		if p.Left != ids[0] || p.Right != ids[1] {
			t.Errorf("pair %q: expected ids %v/%v, got %v/%v", p.Label, ids[0], ids[1], p.Left, p.Right)
		}
	}
}

func TestBodyPartID_MuscleGroups(t *testing.T) {
	groups := PartLeftUpperArm.MuscleGroups()
	if len(groups) != 2 || groups[0] != "biceps" {
		t.Errorf("unexpected upper arm groups %v", groups)
	}
	if PartHead.MuscleGroups() != nil {
		t.Error("head should carry no muscle groups")
	}
}
