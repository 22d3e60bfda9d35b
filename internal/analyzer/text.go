package analyzer

import "strings"

// tipThreshold is the sub-score below which a corrective tip is emitted.
const tipThreshold = 70

// summaryFor maps an overall score to its coaching summary band.
func summaryFor(overall int) string {
	switch {
	case overall >= 90:
		return "Outstanding stage presence. This pose is contest ready."
	case overall >= 80:
		return "Strong pose with minor points to tighten before the judges."
	case overall >= 70:
		return "Good foundation; a few corrections will lift your placing."
	case overall >= 60:
		return "Workable pose, but the judges will notice the rough edges."
	case overall >= 50:
		return "Keep drilling this one; the shape is there but not the control."
	default:
		return "This pose needs focused practice before it is stage ready."
	}
}

// tipsFor emits one fixed sentence per sub-score under the tip threshold,
// in alignment, symmetry, engagement order.
func tipsFor(alignment, symmetry, engagement int) string {
	var tips []string
	if alignment < tipThreshold {
		tips = append(tips, "Square your shoulders and hips to the judging panel.")
	}
	if symmetry < tipThreshold {
		tips = append(tips, "Match your left and right side angles before settling in.")
	}
	if engagement < tipThreshold {
		tips = append(tips, "Commit to the contraction and flex through the whole hold.")
	}
	return strings.Join(tips, " ")
}
