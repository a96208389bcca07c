package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pokebinder/pokebinder/internal/api/response"
	"github.com/pokebinder/pokebinder/internal/binder"
	"github.com/pokebinder/pokebinder/internal/export"
	"github.com/pokebinder/pokebinder/internal/storage"
)

// BinderStore persists binder layouts.
type BinderStore interface {
	Save(layout binder.Layout) error
	Get(id string) (binder.Layout, error)
	List() ([]binder.Layout, error)
	Delete(id string) error
}

// TemplateStore resolves binder templates.
type TemplateStore interface {
	List() ([]binder.Template, error)
	Get(id string) (binder.Template, error)
}

// BinderHandler handles binder CRUD and slot operations.
type BinderHandler struct {
	store     BinderStore
	templates TemplateStore
}

// NewBinderHandler creates a new BinderHandler.
func NewBinderHandler(store BinderStore, templates TemplateStore) *BinderHandler {
	return &BinderHandler{store: store, templates: templates}
}

// ListBinders returns all saved binders, most recently updated first.
func (h *BinderHandler) ListBinders(w http.ResponseWriter, r *http.Request) {
	binders, err := h.store.List()
	if err != nil {
		response.InternalError(w, err)
		return
	}
	response.Success(w, binders)
}

// CreateBinderRequest is the payload for creating a binder.
type CreateBinderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	TemplateID  string `json:"templateId"`
}

// CreateBinder creates a new one-page binder from a template.
func (h *BinderHandler) CreateBinder(w http.ResponseWriter, r *http.Request) {
	var req CreateBinderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("binder name is required"))
		return
	}

	tmpl := binder.DefaultTemplate()
	if req.TemplateID != "" {
		var err error
		tmpl, err = h.templates.Get(req.TemplateID)
		if err != nil {
			var notFound *binder.TemplateNotFoundError
			if errors.As(err, &notFound) {
				response.NotFound(w, err)
				return
			}
			response.InternalError(w, err)
			return
		}
	}

	layout := binder.NewLayout(tmpl, req.Name, req.Description)
	if err := h.store.Save(layout); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, layout)
}

// GetBinder returns a binder by ID.
func (h *BinderHandler) GetBinder(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}
	response.Success(w, layout)
}

// UpdateBinderRequest is the payload for renaming a binder.
type UpdateBinderRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateBinder renames a binder or updates its description.
func (h *BinderHandler) UpdateBinder(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	var req UpdateBinderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.Name == "" {
		response.BadRequest(w, errors.New("binder name is required"))
		return
	}

	layout.Name = req.Name
	layout.Description = req.Description
	if err := h.store.Save(layout); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, layout)
}

// DeleteBinder removes a binder.
func (h *BinderHandler) DeleteBinder(w http.ResponseWriter, r *http.Request) {
	binderID := chi.URLParam(r, "binderID")
	if err := h.store.Delete(binderID); err != nil {
		var notFound *storage.BinderNotFoundError
		if errors.As(err, &notFound) {
			response.NotFound(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}
	response.NoContent(w)
}

// PlaceCardRequest is the payload for placing a card.
type PlaceCardRequest struct {
	CardID      string `json:"cardId"`
	CurrentPage int    `json:"currentPage"`
}

// PlaceCardResponse reports the updated binder and the page the card landed on.
type PlaceCardResponse struct {
	Binder binder.Layout `json:"binder"`
	Page   int           `json:"page"`
}

// PlaceCard places a card into the first available slot, preferring the
// requested page. A full binder at its page cap answers 409.
func (h *BinderHandler) PlaceCard(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	var req PlaceCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}
	if req.CardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	updated, page, err := binder.PlaceCard(layout, req.CardID, req.CurrentPage)
	if err != nil {
		var capacity *binder.CapacityError
		if errors.As(err, &capacity) {
			response.Conflict(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	if err := h.store.Save(updated); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, PlaceCardResponse{Binder: updated, Page: page})
}

// SwapSlotsRequest is the payload for exchanging two slots.
type SwapSlotsRequest struct {
	IndexA int `json:"indexA"`
	IndexB int `json:"indexB"`
}

// SwapSlots exchanges the cards in two slots, possibly across pages.
func (h *BinderHandler) SwapSlots(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	var req SwapSlotsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	updated := binder.SwapSlots(layout, req.IndexA, req.IndexB)
	if err := h.store.Save(updated); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, updated)
}

// ClearPageRequest is the payload for clearing one page.
type ClearPageRequest struct {
	Page int `json:"page"`
}

// ClearPage empties every slot on one page.
func (h *BinderHandler) ClearPage(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	var req ClearPageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, errors.New("invalid request body"))
		return
	}

	updated := binder.ClearPage(layout, req.Page)
	if err := h.store.Save(updated); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, updated)
}

// ClearAll empties every slot in the binder.
func (h *BinderHandler) ClearAll(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	updated := binder.ClearAll(layout)
	if err := h.store.Save(updated); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, updated)
}

// AppendPage grows the binder by one empty page. A binder at its page cap
// answers 409.
func (h *BinderHandler) AppendPage(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	updated, err := binder.AppendPage(layout)
	if err != nil {
		var capacity *binder.CapacityError
		if errors.As(err, &capacity) {
			response.Conflict(w, err)
			return
		}
		response.InternalError(w, err)
		return
	}

	if err := h.store.Save(updated); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Success(w, updated)
}

// ExportBinder streams the binder as a downloadable JSON document.
func (h *BinderHandler) ExportBinder(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", layout.Name+".json"))
	if err := export.WriteLayout(w, layout); err != nil {
		response.InternalError(w, err)
	}
}

// ExportBinderChart streams an HTML occupancy chart for the binder.
func (h *BinderHandler) ExportBinderChart(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.loadBinder(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	config := export.DefaultChartConfig(layout.Name + " occupancy")
	if err := export.WriteOccupancyChart(w, layout, config); err != nil {
		response.InternalError(w, err)
	}
}

// ImportBinder restores a binder from a previously exported document.
func (h *BinderHandler) ImportBinder(w http.ResponseWriter, r *http.Request) {
	layout, err := export.ReadLayout(r.Body)
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	// Documents exported by other tools may omit the id.
	if layout.ID == "" {
		layout.ID = uuid.NewString()
	}

	if err := h.store.Save(layout); err != nil {
		response.InternalError(w, err)
		return
	}

	response.Created(w, layout)
}

// loadBinder resolves the binder named in the URL, writing the error response
// itself when the binder cannot be loaded.
func (h *BinderHandler) loadBinder(w http.ResponseWriter, r *http.Request) (binder.Layout, bool) {
	binderID := chi.URLParam(r, "binderID")
	if binderID == "" {
		response.BadRequest(w, errors.New("binder ID is required"))
		return binder.Layout{}, false
	}

	layout, err := h.store.Get(binderID)
	if err != nil {
		var notFound *storage.BinderNotFoundError
		if errors.As(err, &notFound) {
			response.NotFound(w, err)
			return binder.Layout{}, false
		}
		response.InternalError(w, err)
		return binder.Layout{}, false
	}

	return layout, true
}
