// Package api provides HTTP API handlers for the Sandow pose scoring
// service.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ayusman/sandow/internal/catalog"
	"github.com/ayusman/sandow/internal/densemap"
	"github.com/ayusman/sandow/internal/logging"
	"github.com/ayusman/sandow/internal/pose"
)

// ReferenceHandler handles HTTP requests for reference pose resources.
type ReferenceHandler struct {
	store    *catalog.Store
	validate *validator.Validate
	logger   *zap.Logger
}

// NewReferenceHandler creates a new ReferenceHandler with the given store.
func NewReferenceHandler(s *catalog.Store, logger *zap.Logger) *ReferenceHandler {
	return &ReferenceHandler{
		store:    s,
		validate: validator.New(),
		logger:   logger.Named("api.references"),
	}
}

// Request and response types

type createReferenceRequest struct {
	Label     string          `json:"label" validate:"required,min=1,max=120"`
	Category  string          `json:"category" validate:"required"`
	ImageRef  string          `json:"image_ref"`
	DensePose json.RawMessage `json:"densepose" validate:"required"`
}

type updateReferenceRequest struct {
	Label     string          `json:"label" validate:"omitempty,min=1,max=120"`
	Category  string          `json:"category"`
	ImageRef  string          `json:"image_ref"`
	DensePose json.RawMessage `json:"densepose,omitempty"`
}

type referenceResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Category  string `json:"category"`
	ImageRef  string `json:"image_ref"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type listReferencesResponse struct {
	References []referenceResponse `json:"references"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// toResponse converts a catalog.ReferencePose to a referenceResponse.
// The dense map stays server-side; clients work with ids and labels.
func toResponse(p *catalog.ReferencePose) referenceResponse {
	return referenceResponse{
		ID:        p.ID,
		Label:     p.Label,
		Category:  string(p.Category),
		ImageRef:  p.ImageRef,
		CreatedAt: p.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		UpdatedAt: p.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// WriteError writes a JSON error response.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, errorResponse{Error: message})
}

// opLogger enriches a handler logger with the operation name and the chi
// request id.
func opLogger(logger *zap.Logger, r *http.Request, operation string) *zap.Logger {
	return logging.WithOperation(logger, operation, middleware.GetReqID(r.Context()))
}

// decodePrimaryMap parses a detector payload and applies the
// highest-confidence instance policy.
func decodePrimaryMap(data json.RawMessage) (*densemap.Map, error) {
	maps, err := densemap.DecodeResponse(data)
	if err != nil {
		return nil, err
	}
	return densemap.Primary(maps), nil
}

// List handles GET /api/references and returns the catalog, optionally
// filtered with ?category=.
func (h *ReferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	category := pose.Category(r.URL.Query().Get("category"))
	if category != "" && !category.Valid() {
		WriteError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	refs, err := h.store.References().List(category)
	if err != nil {
		opLogger(h.logger, r, "references.list").Error("failed to list references", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to list reference poses")
		return
	}

	response := listReferencesResponse{
		References: make([]referenceResponse, 0, len(refs)),
	}
	for _, ref := range refs {
		response.References = append(response.References, toResponse(ref))
	}

	WriteJSON(w, http.StatusOK, response)
}

// Get handles GET /api/references/{id} and returns a single reference pose.
func (h *ReferenceHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ref, err := h.store.References().GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Reference pose not found")
			return
		}
		opLogger(h.logger, r, "references.get").Error("failed to get reference", zap.String("id", id), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to get reference pose")
		return
	}

	WriteJSON(w, http.StatusOK, toResponse(ref))
}

// Create handles POST /api/references and stores a new reference pose.
func (h *ReferenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	category := pose.Category(req.Category)
	if !category.Valid() {
		WriteError(w, http.StatusBadRequest, "Invalid category")
		return
	}

	primary, err := decodePrimaryMap(req.DensePose)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid dense pose payload: "+err.Error())
		return
	}
	if primary.Empty() {
		WriteError(w, http.StatusBadRequest, "Dense pose payload has no usable instances")
		return
	}

	ref := &catalog.ReferencePose{
		ID:       uuid.New().String(),
		Label:    req.Label,
		Category: category,
		ImageRef: req.ImageRef,
		DenseMap: primary,
	}

	if err := h.store.References().Create(ref); err != nil {
		opLogger(h.logger, r, "references.create").Error("failed to create reference", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to create reference pose")
		return
	}

	WriteJSON(w, http.StatusCreated, toResponse(ref))
}

// Update handles PUT /api/references/{id} and updates an existing
// reference pose. Absent fields keep their stored values.
func (h *ReferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ref, err := h.store.References().GetByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Reference pose not found")
			return
		}
		opLogger(h.logger, r, "references.update").Error("failed to get reference", zap.String("id", id), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to get reference pose")
		return
	}

	var req updateReferenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validate.Struct(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid request: "+err.Error())
		return
	}

	if req.Label != "" {
		ref.Label = req.Label
	}
	if req.Category != "" {
		category := pose.Category(req.Category)
		if !category.Valid() {
			WriteError(w, http.StatusBadRequest, "Invalid category")
			return
		}
		ref.Category = category
	}
	if req.ImageRef != "" {
		ref.ImageRef = req.ImageRef
	}
	if len(req.DensePose) > 0 {
		primary, err := decodePrimaryMap(req.DensePose)
		if err != nil {
			WriteError(w, http.StatusBadRequest, "Invalid dense pose payload: "+err.Error())
			return
		}
		if primary.Empty() {
			WriteError(w, http.StatusBadRequest, "Dense pose payload has no usable instances")
			return
		}
		ref.DenseMap = primary
	}

	if err := h.store.References().Update(ref); err != nil {
		opLogger(h.logger, r, "references.update").Error("failed to update reference", zap.String("id", id), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to update reference pose")
		return
	}

	WriteJSON(w, http.StatusOK, toResponse(ref))
}

// Delete handles DELETE /api/references/{id} and removes a reference pose.
func (h *ReferenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.store.References().Delete(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			WriteError(w, http.StatusNotFound, "Reference pose not found")
			return
		}
		opLogger(h.logger, r, "references.delete").Error("failed to delete reference", zap.String("id", id), zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "Failed to delete reference pose")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
