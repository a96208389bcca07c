package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder/internal/api/response"
	"github.com/pokebinder/pokebinder/internal/binder"
)

// TemplateHandler handles binder template API requests.
type TemplateHandler struct {
	templates TemplateStore
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templates TemplateStore) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

// ListTemplates returns the template catalog, default template first.
func (h *TemplateHandler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templates.List()
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, templates)
}

// GetTemplate returns a template by ID.
func (h *TemplateHandler) GetTemplate(w http.ResponseWriter, r *http.Request) {
	templateID := chi.URLParam(r, "templateID")
	if templateID == "" {
		response.BadRequest(w, errors.New("template ID is required"))
		return
	}

	tmpl, err := h.templates.Get(templateID)
	if err != nil {
		var notFound *binder.TemplateNotFoundError
		if errors.As(err, &notFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, tmpl)
}
