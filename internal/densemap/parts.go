package densemap

import "fmt"

// BodyPartID identifies a canonical body surface region, following the
// DensePose coarse segmentation numbering. The numbering carries an
// inherited quirk: hand, foot, and leg ids place the right side first,
// while arm ids place the left side first. The literal ids are preserved
// as upstream defines them.
type BodyPartID int

const (
	PartBackground    BodyPartID = 0
	PartTorso         BodyPartID = 1
	PartRightHand     BodyPartID = 2
	PartLeftHand      BodyPartID = 3
	PartLeftFoot      BodyPartID = 4
	PartRightFoot     BodyPartID = 5
	PartRightUpperLeg BodyPartID = 6
	PartLeftUpperLeg  BodyPartID = 7
	PartRightLowerLeg BodyPartID = 8
	PartLeftLowerLeg  BodyPartID = 9
	PartLeftUpperArm  BodyPartID = 10
	PartRightUpperArm BodyPartID = 11
	PartLeftLowerArm  BodyPartID = 12
	PartRightLowerArm BodyPartID = 13
	PartHead          BodyPartID = 14
)

var partNames = map[BodyPartID]string{
	PartBackground:    "background",
	PartTorso:         "torso",
	PartRightHand:     "right hand",
	PartLeftHand:      "left hand",
	PartLeftFoot:      "left foot",
	PartRightFoot:     "right foot",
	PartRightUpperLeg: "right upper leg",
	PartLeftUpperLeg:  "left upper leg",
	PartRightLowerLeg: "right lower leg",
	PartLeftLowerLeg:  "left lower leg",
	PartLeftUpperArm:  "left upper arm",
	PartRightUpperArm: "right upper arm",
	PartLeftLowerArm:  "left lower arm",
	PartRightLowerArm: "right lower arm",
	PartHead:          "head",
}

// Name returns the human-readable name of the part.
func (id BodyPartID) Name() string {
	if name, ok := partNames[id]; ok {
		return name
	}
	return fmt.Sprintf("part %d", int(id))
}

// partMuscleGroups maps each surface part to the muscle groups it shows.
var partMuscleGroups = map[BodyPartID][]string{
	PartTorso:         {"chest", "abs", "obliques"},
	PartLeftUpperArm:  {"biceps", "triceps"},
	PartRightUpperArm: {"biceps", "triceps"},
	PartLeftLowerArm:  {"forearms"},
	PartRightLowerArm: {"forearms"},
	PartLeftUpperLeg:  {"quads", "hamstrings"},
	PartRightUpperLeg: {"quads", "hamstrings"},
	PartLeftLowerLeg:  {"calves"},
	PartRightLowerLeg: {"calves"},
}

// MuscleGroups returns the muscle groups represented by the part, or nil
// for parts with no judged musculature.
func (id BodyPartID) MuscleGroups() []string {
	return partMuscleGroups[id]
}

// SymmetryPair is a left/right part pair compared for mass balance.
type SymmetryPair struct {
	Label string
	Left  BodyPartID
	Right BodyPartID
}

// SymmetryPairs returns the six paired regions used for symmetry scoring,
// with the upstream numbering quirk intact.
func SymmetryPairs() []SymmetryPair {
	return []SymmetryPair{
		{Label: "upper arms", Left: PartLeftUpperArm, Right: PartRightUpperArm},
		{Label: "lower arms", Left: PartLeftLowerArm, Right: PartRightLowerArm},
		{Label: "hands", Left: PartLeftHand, Right: PartRightHand},
		{Label: "upper legs", Left: PartLeftUpperLeg, Right: PartRightUpperLeg},
		{Label: "lower legs", Left: PartLeftLowerLeg, Right: PartRightLowerLeg},
		{Label: "feet", Left: PartLeftFoot, Right: PartRightFoot},
	}
}
