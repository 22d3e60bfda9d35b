package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/analyzer"
	"github.com/ayusman/sandow/internal/catalog"
	"github.com/ayusman/sandow/internal/coach"
	"github.com/ayusman/sandow/internal/compare"
	"github.com/ayusman/sandow/internal/pose"
)

// ScoreHandler handles pose analysis and comparison requests.
type ScoreHandler struct {
	coach    *coach.Coach
	validate *validator.Validate
	logger   *zap.Logger
}

// NewScoreHandler creates a new ScoreHandler. The coach may be nil when
// only the analyze endpoint is served.
func NewScoreHandler(c *coach.Coach, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{
		coach:    c,
		validate: validator.New(),
		logger:   logger.Named("api.scores"),
	}
}

type analyzeRequest struct {
	Category string         `json:"category" validate:"required"`
	Class    string         `json:"class"`
	Snapshot *pose.Snapshot `json:"snapshot" validate:"required"`
}

type compareRequest struct {
	DensePose json.RawMessage `json:"densepose" validate:"required"`
}

type bestMatchRequest struct {
	Category  string          `json:"category"`
	DensePose json.RawMessage `json:"densepose" validate:"required"`
}

type bestMatchResponse struct {
	ReferenceID string         `json:"reference_id"`
	Label       string         `json:"label"`
	Category    string         `json:"category"`
	Result      compare.Result `json:"result"`
}

// Analyze handles POST /api/analyze and scores a single pose snapshot.
func (h *ScoreHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	a, err := analyzer.New(analyzer.Config{
		Category: pose.Category(req.Category),
		Class:    pose.CompetitionClass(req.Class),
	})
	if err != nil {
		if errors.Is(err, pose.ErrUnknownCategory) || errors.Is(err, pose.ErrUnknownClass) {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		opLogger(h.logger, r, "scores.analyze").Error("failed to build analyzer", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to analyze pose")
		return
	}

	WriteJSON(w, http.StatusOK, a.Analyze(req.Snapshot))
}

// Compare handles POST /api/compare/{id} and scores the submitted dense
// pose against one stored reference.
func (h *ScoreHandler) Compare(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req compareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userMap, err := decodePrimaryMap(req.DensePose)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid dense pose payload: "+err.Error())
		return
	}

	// An empty user map is not an error; the comparator answers it with
	// a zero-score result telling the athlete to step into frame.
	result, err := h.coach.CompareWithReference(r.Context(), userMap, id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Reference pose not found")
			return
		}
		opLogger(h.logger, r, "scores.compare").Error("failed to compare", zap.String("id", id), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to compare against reference")
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// BestMatch handles POST /api/best-match and finds the stored reference
// the submitted dense pose scores highest against.
func (h *ScoreHandler) BestMatch(w http.ResponseWriter, r *http.Request) {
	var req bestMatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	userMap, err := decodePrimaryMap(req.DensePose)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid dense pose payload: "+err.Error())
		return
	}

	match, err := h.coach.FindBestMatch(r.Context(), userMap, pose.Category(req.Category))
	if err != nil {
		switch {
		case errors.Is(err, pose.ErrUnknownCategory):
			WriteError(w, http.StatusBadRequest, "Invalid category")
		case errors.Is(err, coach.ErrEmptyCatalog):
			WriteError(w, http.StatusNotFound, "No reference poses available for matching")
		default:
			opLogger(h.logger, r, "scores.best_match").Error("failed to find best match", zap.Error(err))
			WriteError(w, http.StatusInternalServerError, "Failed to find best match")
		}
		return
	}

	WriteJSON(w, http.StatusOK, bestMatchResponse{
		ReferenceID: match.Reference.ID,
		Label:       match.Reference.Label,
		Category:    string(match.Reference.Category),
		Result:      match.Result,
	})
}
