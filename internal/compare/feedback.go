package compare

import "github.com/ayusman/sandow/internal/pose"

// Sub-score thresholds on the 0-10 scale for feedback importance tiers.
const (
	feedbackHigh   = 7.0
	feedbackMedium = 8.5
)

// buildFeedback emits one ranked item per sub-score plus a single
// pose-specific cue. Items appear in a fixed order so identical inputs
// always produce identical feedback.
func buildFeedback(r Result, category pose.Category, worstPair, worstPart string) []FeedbackItem {
	items := make([]FeedbackItem, 0, 4)

	symPart := worstPair
	if symPart == "" {
		symPart = "left/right balance"
	}
	switch {
	case r.SymmetryScore < feedbackHigh:
		items = append(items, FeedbackItem{
			BodyPart:   symPart,
			Message:    "One side is carrying the pose. Even out your " + symPart + " before settling in.",
			Importance: ImportanceHigh,
			Score:      r.SymmetryScore,
		})
	case r.SymmetryScore < feedbackMedium:
		items = append(items, FeedbackItem{
			BodyPart:   symPart,
			Message:    "Nearly balanced; a small shift in your " + symPart + " will square the pose.",
			Importance: ImportanceMedium,
			Score:      r.SymmetryScore,
		})
	default:
		items = append(items, FeedbackItem{
			BodyPart:   "symmetry",
			Message:    "Left and right sides are well balanced.",
			Importance: ImportanceLow,
			Score:      r.SymmetryScore,
		})
	}

	alignPart := worstPart
	if alignPart == "" {
		alignPart = "overall position"
	}
	switch {
	case r.AlignmentScore < feedbackHigh:
		items = append(items, FeedbackItem{
			BodyPart:   alignPart,
			Message:    "Your " + alignPart + " sits far from the reference. Reset and match the target shape.",
			Importance: ImportanceHigh,
			Score:      r.AlignmentScore,
		})
	case r.AlignmentScore < feedbackMedium:
		items = append(items, FeedbackItem{
			BodyPart:   alignPart,
			Message:    "Close to the reference; nudge your " + alignPart + " toward the target position.",
			Importance: ImportanceMedium,
			Score:      r.AlignmentScore,
		})
	default:
		items = append(items, FeedbackItem{
			BodyPart:   "alignment",
			Message:    "Positioning tracks the reference closely.",
			Importance: ImportanceLow,
			Score:      r.AlignmentScore,
		})
	}

	switch {
	case r.MuscleActivationScore < feedbackHigh:
		items = append(items, FeedbackItem{
			BodyPart:   "overall musculature",
			Message:    "Flex harder. The pose needs visibly more muscle engagement.",
			Importance: ImportanceHigh,
			Score:      r.MuscleActivationScore,
		})
	case r.MuscleActivationScore < feedbackMedium:
		items = append(items, FeedbackItem{
			BodyPart:   "overall musculature",
			Message:    "Good engagement; squeeze a little harder at the peak.",
			Importance: ImportanceMedium,
			Score:      r.MuscleActivationScore,
		})
	default:
		items = append(items, FeedbackItem{
			BodyPart:   "overall musculature",
			Message:    "Muscle engagement reads strong.",
			Importance: ImportanceLow,
			Score:      r.MuscleActivationScore,
		})
	}

	return append(items, categoryCue(category))
}

// categoryCue returns the single pose-specific coaching item. The
// category was validated before scoring, so front-relaxed lands in the
// default branch.
func categoryCue(category pose.Category) FeedbackItem {
	switch category {
	case pose.SideChest, pose.SideTriceps:
		return FeedbackItem{
			BodyPart:   "chest",
			Message:    "Rotate the torso so the judges see the full chest line.",
			Importance: ImportanceMedium,
		}
	case pose.MostMuscular:
		return FeedbackItem{
			BodyPart:   "traps",
			Message:    "Squeeze the traps up and forward into the crunch.",
			Importance: ImportanceMedium,
		}
	case pose.FrontDoubleBiceps, pose.BackDoubleBiceps:
		return FeedbackItem{
			BodyPart:   "arms",
			Message:    "Keep both elbows at the same height through the hold.",
			Importance: ImportanceMedium,
		}
	case pose.AbdominalAndThigh:
		return FeedbackItem{
			BodyPart:   "abs",
			Message:    "Exhale fully and crunch down on the midsection.",
			Importance: ImportanceMedium,
		}
	default:
		return FeedbackItem{
			BodyPart:   "posture",
			Message:    "Stay tight and controlled; relaxed never means loose.",
			Importance: ImportanceMedium,
		}
	}
}
