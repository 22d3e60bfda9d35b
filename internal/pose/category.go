package pose

import "errors"

// ErrUnknownCategory is returned when a pose category is not one of the
// mandatory competition poses. Lookup tables never fall through to a
// default for unrecognized categories.
var ErrUnknownCategory = errors.New("unknown pose category")

// ErrUnknownClass is returned when a competition class is not recognized.
var ErrUnknownClass = errors.New("unknown competition class")

// Category identifies one of the mandatory competition poses. It drives
// every ideal-value and weight lookup in the scoring engines.
type Category string

const (
	FrontRelaxed      Category = "front-relaxed"
	FrontDoubleBiceps Category = "front-double-biceps"
	SideChest         Category = "side-chest"
	BackDoubleBiceps  Category = "back-double-biceps"
	SideTriceps       Category = "side-triceps"
	AbdominalAndThigh Category = "abdominal-and-thigh"
	MostMuscular      Category = "most-muscular"
)

// Categories returns every competition pose in judging round order.
func Categories() []Category {
	return []Category{
		FrontRelaxed,
		FrontDoubleBiceps,
		SideChest,
		BackDoubleBiceps,
		SideTriceps,
		AbdominalAndThigh,
		MostMuscular,
	}
}

// Valid reports whether c is one of the mandatory competition poses.
func (c Category) Valid() bool {
	switch c {
	case FrontRelaxed, FrontDoubleBiceps, SideChest, BackDoubleBiceps,
		SideTriceps, AbdominalAndThigh, MostMuscular:
		return true
	}
	return false
}

// CompetitionClass identifies the division whose judging criteria apply.
type CompetitionClass string

const (
	ClassBodybuilding    CompetitionClass = "bodybuilding"
	ClassClassicPhysique CompetitionClass = "classic-physique"
	ClassMensPhysique    CompetitionClass = "mens-physique"
	ClassFigure          CompetitionClass = "figure"
)

// Classes returns every supported competition class.
func Classes() []CompetitionClass {
	return []CompetitionClass{
		ClassBodybuilding,
		ClassClassicPhysique,
		ClassMensPhysique,
		ClassFigure,
	}
}

// Valid reports whether c is a supported competition class.
func (c CompetitionClass) Valid() bool {
	switch c {
	case ClassBodybuilding, ClassClassicPhysique, ClassMensPhysique, ClassFigure:
		return true
	}
	return false
}

// HidesLegs reports whether the class uniform covers the legs. Men's
// physique competitors wear board shorts, so leg muscle groups are not
// judged for that class.
func (c CompetitionClass) HidesLegs() bool {
	return c == ClassMensPhysique
}
