package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"conceptcraft-backend/application/services"
	"conceptcraft-backend/domain/content"
	"conceptcraft-backend/pkg/common"
	apperrors "conceptcraft-backend/pkg/errors"
)

// PublicHandler serves the unauthenticated read API consumed by the
// single-page front end
type PublicHandler struct {
	content      *services.ContentService
	errorHandler *apperrors.ErrorHandler
	logger       *zap.Logger
}

// NewPublicHandler creates a new public read handler
func NewPublicHandler(content *services.ContentService, errorHandler *apperrors.ErrorHandler, logger *zap.Logger) *PublicHandler {
	return &PublicHandler{
		content:      content,
		errorHandler: errorHandler,
		logger:       logger,
	}
}

type frameworkView struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Concepts []*content.Concept `json:"concepts"`
}

// ListFrameworks handles GET /api/frameworks: every framework with its
// linked concepts resolved, dangling references skipped.
func (h *PublicHandler) ListFrameworks(w http.ResponseWriter, r *http.Request) {
	entries, err := h.content.Catalog(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	views := make([]frameworkView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, frameworkView{
			ID:       entry.Framework.ID,
			Name:     entry.Framework.Name,
			Concepts: entry.Concepts,
		})
	}

	common.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"frameworks": views,
	})
}

// GetFramework handles GET /api/frameworks/{frameworkId}
func (h *PublicHandler) GetFramework(w http.ResponseWriter, r *http.Request) {
	frameworkID := chi.URLParam(r, "frameworkId")

	entries, err := h.content.Catalog(r.Context())
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	for _, entry := range entries {
		if entry.Framework.ID == frameworkID {
			common.RespondJSON(w, http.StatusOK, frameworkView{
				ID:       entry.Framework.ID,
				Name:     entry.Framework.Name,
				Concepts: entry.Concepts,
			})
			return
		}
	}

	h.errorHandler.Handle(w, r, apperrors.NewNotFoundError("Framework"))
}

// GetConcept handles GET /api/concepts/{id}
func (h *PublicHandler) GetConcept(w http.ResponseWriter, r *http.Request) {
	concept, err := h.content.GetConcept(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, concept)
}
