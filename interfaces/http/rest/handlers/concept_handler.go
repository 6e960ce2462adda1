package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"conceptcraft-backend/application/services"
	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/pkg/common"
	apperrors "conceptcraft-backend/pkg/errors"
	"conceptcraft-backend/pkg/utils"
)

// ConceptHandler handles admin concept CRUD
type ConceptHandler struct {
	content      *services.ContentService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewConceptHandler creates a new concept handler
func NewConceptHandler(content *services.ContentService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *ConceptHandler {
	return &ConceptHandler{
		content:      content,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

type createConceptRequest struct {
	ID            string         `json:"id" validate:"omitempty,slug,max=64"`
	Title         string         `json:"title" validate:"required,min=1,max=200"`
	Description   string         `json:"description" validate:"required,min=1"`
	Metaphor      string         `json:"metaphor" validate:"omitempty"`
	Difficulty    string         `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
	EstimatedTime string         `json:"estimatedTime" validate:"omitempty,max=32"`
	Framework     string         `json:"framework" validate:"omitempty,max=100"`
	Story         *content.Story `json:"story" validate:"omitempty"`
}

// updateConceptRequest carries optional fields; absent fields keep their
// stored values. A framework label triggers a reassign.
type updateConceptRequest struct {
	Title         *string        `json:"title" validate:"omitempty,min=1,max=200"`
	Description   *string        `json:"description" validate:"omitempty,min=1"`
	Metaphor      *string        `json:"metaphor"`
	Difficulty    *string        `json:"difficulty" validate:"omitempty,oneof=beginner intermediate advanced"`
	EstimatedTime *string        `json:"estimatedTime" validate:"omitempty,max=32"`
	Framework     *string        `json:"framework" validate:"omitempty,max=100"`
	Story         *content.Story `json:"story"`
}

// CreateConcept handles POST /admin/concepts
func (h *ConceptHandler) CreateConcept(w http.ResponseWriter, r *http.Request) {
	var req createConceptRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	estimatedTime := req.EstimatedTime
	if estimatedTime == "" {
		estimatedTime = content.EstimateTime(content.Difficulty(req.Difficulty))
	}

	draft := content.ConceptDraft{
		Title:         req.Title,
		Description:   req.Description,
		Metaphor:      req.Metaphor,
		Difficulty:    content.Difficulty(req.Difficulty),
		EstimatedTime: estimatedTime,
		Framework:     req.Framework,
		Story:         req.Story,
	}

	concept, err := h.content.CreateConcept(r.Context(), req.ID, draft)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, concept)
}

// ListConcepts handles GET /admin/concepts
func (h *ConceptHandler) ListConcepts(w http.ResponseWriter, r *http.Request) {
	concepts, err := h.content.ListConcepts(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"concepts": concepts,
	})
}

// GetConcept handles GET /admin/concepts/{id}
func (h *ConceptHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	concept, err := h.content.GetConcept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, concept)
}

// UpdateConcept handles PUT /admin/concepts/{id}
func (h *ConceptHandler) UpdateConcept(w http.ResponseWriter, r *http.Request) {
	var req updateConceptRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	update := content.ConceptUpdate{
		Title:         req.Title,
		Description:   req.Description,
		Metaphor:      req.Metaphor,
		EstimatedTime: req.EstimatedTime,
		Framework:     req.Framework,
		Story:         req.Story,
	}
	if req.Difficulty != nil {
		d := content.Difficulty(*req.Difficulty)
		update.Difficulty = &d
	}

	concept, err := h.content.UpdateConcept(r.Context(), chi.URLParam(r, "id"), update)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, concept)
}

// DeleteConcept handles DELETE /admin/concepts/{id}
func (h *ConceptHandler) DeleteConcept(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.content.DeleteConcept(r.Context(), id); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}
