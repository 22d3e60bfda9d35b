// Package compare scores a user's dense correspondence map against a
// reference map for one competition pose, producing symmetry, alignment,
// and muscle-activation sub-scores with ranked feedback.
package compare

import (
	"math"
	"sort"

	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/geometry"
	"github.com/ayusman/sandow/internal/pose"
)

// Importance ranks a feedback item for the athlete.
type Importance string

const (
	ImportanceHigh   Importance = "HIGH"
	ImportanceMedium Importance = "MEDIUM"
	ImportanceLow    Importance = "LOW"
)

// FeedbackItem is one piece of ranked coaching feedback.
type FeedbackItem struct {
	BodyPart   string     `json:"body_part"`
	Message    string     `json:"message"`
	Importance Importance `json:"importance"`
	Score      float64    `json:"score,omitempty"`
}

// Result is the outcome of comparing a user map against a reference.
// Every score is on a 0-10 scale; sub-scores are computed on 0-100
// internally and rescaled once when the result is assembled.
type Result struct {
	TotalScore            float64        `json:"total_score"`
	SymmetryScore         float64        `json:"symmetry_score"`
	AlignmentScore        float64        `json:"alignment_score"`
	MuscleActivationScore float64        `json:"muscle_activation_score"`
	Feedback              []FeedbackItem `json:"feedback"`
}

// ActivationFunc estimates muscle activation from a dense map on a 0-100
// scale. Implementations must stay bounded and category sensitive.
type ActivationFunc func(m *densemap.Map, category pose.Category) float64

// Config holds the comparator configuration.
type Config struct {
	// Activation replaces the default activation estimate when set.
	Activation ActivationFunc
}

// Comparator scores user maps against references. It holds no per-call
// state, so one instance is safe for concurrent use.
type Comparator struct {
	activation ActivationFunc
}

// New creates a Comparator with the given configuration.
func New(cfg Config) *Comparator {
	if cfg.Activation == nil {
		cfg.Activation = EstimateActivation
	}
	return &Comparator{activation: cfg.Activation}
}

// Compare scores user against ref for the given pose. A map with no
// usable pixels produces a sentinel zero result with one high-importance
// feedback item, never an error; an unrecognized category is a programmer
// error and fails.
func (c *Comparator) Compare(user, ref *densemap.Map, category pose.Category) (Result, error) {
	weights, err := categoryWeights(category)
	if err != nil {
		return Result{}, err
	}

	if user.Empty() {
		return sentinelResult("your pose",
			"No body surface was detected in your photo. Retake it with your whole body in frame."), nil
	}
	if ref.Empty() {
		return sentinelResult("reference pose",
			"The reference image carries no usable body surface data."), nil
	}

	symmetry, worstPair := symmetryScore(user)
	alignment, worstPart := alignmentScore(user, ref)
	activation := clamp100(c.activation(user, category))

	total := weights.symmetry*symmetry + weights.alignment*alignment + weights.activation*activation

	result := Result{
		TotalScore:            clamp10(total / 10),
		SymmetryScore:         clamp10(symmetry / 10),
		AlignmentScore:        clamp10(alignment / 10),
		MuscleActivationScore: clamp10(activation / 10),
	}
	result.Feedback = buildFeedback(result, category, worstPair, worstPart)
	return result, nil
}

func sentinelResult(bodyPart, message string) Result {
	return Result{
		Feedback: []FeedbackItem{{
			BodyPart:   bodyPart,
			Message:    message,
			Importance: ImportanceHigh,
		}},
	}
}

// symmetryScore measures left/right mass balance on the user's own body
// over the fixed pair table. A pair with no pixels on either side is
// skipped; an evaluated pair scores 100 at perfect balance, falling
// linearly to 0 as one side takes over. Returns the mean pair score and
// the label of the worst pair.
func symmetryScore(m *densemap.Map) (float64, string) {
	hist := m.Histogram()

	var sum float64
	evaluated := 0
	worst := ""
	worstScore := math.MaxFloat64

	for _, pair := range densemap.SymmetryPairs() {
		left := hist[pair.Left]
		right := hist[pair.Right]
		if left+right == 0 {
			continue
		}

		ratio := float64(left) / float64(left+right)
		score := 100 - 200*math.Abs(ratio-0.5)
		if score < 0 {
			score = 0
		}

		sum += score
		evaluated++
		if score < worstScore {
			worstScore = score
			worst = pair.Label
		}
	}

	if evaluated == 0 {
		return 0, ""
	}
	return sum / float64(evaluated), worst
}

// alignmentScore measures how closely per-part mean surface coordinates
// agree between the two maps, averaged over the union of foreground
// parts. A part present in only one map is compared against the zero
// vector, so one-sided parts read as misaligned rather than being
// ignored. Returns the mean part score and the name of the worst part.
func alignmentScore(user, ref *densemap.Map) (float64, string) {
	userMeans := user.MeanUV()
	refMeans := ref.MeanUV()

	union := make(map[densemap.BodyPartID]bool, len(userMeans)+len(refMeans))
	for p := range userMeans {
		union[p] = true
	}
	for p := range refMeans {
		union[p] = true
	}
	if len(union) == 0 {
		return 0, ""
	}

	parts := make([]densemap.BodyPartID, 0, len(union))
	for p := range union {
		parts = append(parts, p)
	}
	sort.Slice(parts, func(i, j int) bool { return parts[i] < parts[j] })

	var sum float64
	worst := ""
	worstScore := math.MaxFloat64
	for _, p := range parts {
		dist := geometry.Distance(userMeans[p], refMeans[p])
		score := 100 * (1 - dist/math.Sqrt2)
		if score < 0 {
			score = 0
		}

		sum += score
		if score < worstScore {
			worstScore = score
			worst = p.Name()
		}
	}

	return sum / float64(len(parts)), worst
}

func clamp100(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func clamp10(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 10 {
		return 10
	}
	return v
}
