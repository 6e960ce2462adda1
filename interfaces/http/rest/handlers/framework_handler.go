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

// FrameworkHandler handles admin framework CRUD and relationship edits
type FrameworkHandler struct {
	content       *services.ContentService
	relationships *services.RelationshipService
	errorHandler  *apperrors.ErrorHandler
	logger        *zap.Logger
}

// NewFrameworkHandler creates a new framework handler
func NewFrameworkHandler(
	content *services.ContentService,
	relationships *services.RelationshipService,
	errorHandler *apperrors.ErrorHandler,
	logger *zap.Logger,
) *FrameworkHandler {
	return &FrameworkHandler{
		content:       content,
		relationships: relationships,
		errorHandler:  errorHandler,
		logger:        logger,
	}
}

type createFrameworkRequest struct {
	ID   string `json:"id" validate:"required,slug,max=64"`
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type renameFrameworkRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

type addConceptRequest struct {
	ConceptID string `json:"conceptId" validate:"required,min=1,max=64"`
}

// CreateFramework handles POST /admin/frameworks
func (h *FrameworkHandler) CreateFramework(w http.ResponseWriter, r *http.Request) {
	var req createFrameworkRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	framework, err := h.content.CreateFramework(r.Context(), req.ID, req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, framework)
}

// ListFrameworks handles GET /admin/frameworks
func (h *FrameworkHandler) ListFrameworks(w http.ResponseWriter, r *http.Request) {
	frameworks, err := h.content.ListFrameworks(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"frameworks": frameworks,
	})
}

// GetFramework handles GET /admin/frameworks/{frameworkId}
func (h *FrameworkHandler) GetFramework(w http.ResponseWriter, r *http.Request) {
	framework, err := h.content.GetFramework(r.Context(), chi.URLParam(r, "frameworkId"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, framework)
}

// RenameFramework handles PUT /admin/frameworks/{frameworkId}
func (h *FrameworkHandler) RenameFramework(w http.ResponseWriter, r *http.Request) {
	var req renameFrameworkRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	framework, err := h.content.RenameFramework(r.Context(), chi.URLParam(r, "frameworkId"), req.Name)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, framework)
}

// DeleteFramework handles DELETE /admin/frameworks/{frameworkId}. The
// framework must have no linked concepts.
func (h *FrameworkHandler) DeleteFramework(w http.ResponseWriter, r *http.Request) {
	frameworkID := chi.URLParam(r, "frameworkId")

	if err := h.relationships.DeleteFramework(r.Context(), frameworkID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"deleted": frameworkID,
	})
}

// AddConcept handles POST /admin/frameworks/{frameworkId}/concepts
func (h *FrameworkHandler) AddConcept(w http.ResponseWriter, r *http.Request) {
	var req addConceptRequest
	if err := common.ParseJSONBody(r, &req, maxBodyBytes); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewValidationError(err.Error()))
		return
	}

	frameworkID := chi.URLParam(r, "frameworkId")
	if err := h.relationships.AddConcept(r.Context(), frameworkID, req.ConceptID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"frameworkId": frameworkID,
		"conceptId":   req.ConceptID,
		"linked":      true,
	})
}

// RemoveConcept handles DELETE /admin/frameworks/{frameworkId}/concepts/{conceptId}
func (h *FrameworkHandler) RemoveConcept(w http.ResponseWriter, r *http.Request) {
	frameworkID := chi.URLParam(r, "frameworkId")
	conceptID := chi.URLParam(r, "conceptId")

	if err := h.relationships.RemoveConcept(r.Context(), frameworkID, conceptID); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"frameworkId": frameworkID,
		"conceptId":   conceptID,
		"linked":      false,
	})
}
