package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"conceptcraft-backend/application/services"
	"conceptcraft-backend/pkg/common"
	apperrors "conceptcraft-backend/pkg/errors"
	"conceptcraft-backend/pkg/utils"
)

const maxBodyBytes = 64 << 10

// GenerationHandler handles AI-backed concept generation requests
type GenerationHandler struct {
	generator    *services.ConceptGenerationService
	popular      *services.PopularConceptsService
	content      *services.ContentService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(
	generator *services.ConceptGenerationService,
	popular *services.PopularConceptsService,
	content *services.ContentService,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *GenerationHandler {
	return &GenerationHandler{
		generator:    generator,
		popular:      popular,
		content:      content,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

type generateConceptRequest struct {
	Concept   string `json:"concept" validate:"required,min=1,max=200"`
	Framework string `json:"framework" validate:"required,min=1,max=100"`
}

type popularConceptsRequest struct {
	Search string `json:"search" validate:"omitempty,max=200"`
}

// GenerateConcept handles POST /admin/generate-concept. The draft is
// returned to the admin UI for review; nothing is persisted.
func (h *GenerationHandler) GenerateConcept(w http.ResponseWriter, r *http.Request) {
	var req generateConceptRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	draft := h.generator.GenerateDraft(r.Context(), req.Concept, req.Framework)

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"conceptData": draft,
	})
}

// AutoCreateConcept handles POST /admin/auto-create-concept: generate,
// persist, and link to the named framework in one admin action.
func (h *GenerationHandler) AutoCreateConcept(w http.ResponseWriter, r *http.Request) {
	var req generateConceptRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	concept, err := h.content.AutoCreateConcept(r.Context(), req.Concept, req.Framework)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, concept)
}

// GetPopularConcepts handles GET /admin/popular-concepts/{framework}
func (h *GenerationHandler) GetPopularConcepts(w http.ResponseWriter, r *http.Request) {
	framework := chi.URLParam(r, "framework")
	if framework == "" {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("framework is required"))
		return
	}

	concepts := h.popular.Find(r.Context(), framework, "")

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"concepts": concepts,
	})
}

// SearchPopularConcepts handles POST /admin/popular-concepts/{framework}
// with an optional freeform search refinement in the body
func (h *GenerationHandler) SearchPopularConcepts(w http.ResponseWriter, r *http.Request) {
	framework := chi.URLParam(r, "framework")
	if framework == "" {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError("framework is required"))
		return
	}

	var req popularConceptsRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	concepts := h.popular.Find(r.Context(), framework, req.Search)

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"concepts": concepts,
	})
}
