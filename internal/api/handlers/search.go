// Package handlers contains the HTTP handlers for the REST API.
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/pokebinder/pokebinder/internal/api/response"
	"github.com/pokebinder/pokebinder/internal/search"
	"github.com/pokebinder/pokebinder/internal/tcg"
)

// CardSearcher is the slice of the search service the handler needs.
type CardSearcher interface {
	Search(ctx context.Context, query string, strategy search.Strategy, page, pageSize int) (search.Result, error)
	ClearCache()
	CacheStats() search.Stats
}

// CardGetter fetches single cards from the catalog.
type CardGetter interface {
	GetCard(ctx context.Context, id string) (*tcg.Card, error)
}

// SearchHandler handles card search API requests.
type SearchHandler struct {
	searcher CardSearcher
	catalog  CardGetter
	logger   *log.Logger
}

// NewSearchHandler creates a new SearchHandler. A nil logger discards output.
func NewSearchHandler(searcher CardSearcher, catalog CardGetter, logger *log.Logger) *SearchHandler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &SearchHandler{searcher: searcher, catalog: catalog, logger: logger.WithPrefix("api")}
}

// SearchCards searches the catalog under a ranking strategy.
//
// Upstream transport failures degrade to an empty result rather than an error
// status, so a flaky catalog never breaks the binder view. The failure is
// still logged server-side.
func (h *SearchHandler) SearchCards(w http.ResponseWriter, r *http.Request) {
	strategy, err := search.ParseStrategy(r.URL.Query().Get("strategy"))
	if err != nil {
		response.BadRequest(w, err)
		return
	}

	query := r.URL.Query().Get("q")
	page := queryInt(r, "page", 1)
	pageSize := queryInt(r, "pageSize", search.DefaultPageSize)

	result, err := h.searcher.Search(r.Context(), query, strategy, page, pageSize)
	if err != nil {
		h.logger.Warn("search degraded to empty result", "query", query, "strategy", strategy, "err", err)
	}

	response.Paginated(w, result, page, pageSize, result.TotalCount)
}

// GetCard returns a single card by catalog ID.
func (h *SearchHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "cardID")
	if cardID == "" {
		response.BadRequest(w, errors.New("card ID is required"))
		return
	}

	card, err := h.catalog.GetCard(r.Context(), cardID)
	if err != nil {
		var notFound *tcg.NotFoundError
		if errors.As(err, &notFound) {
			response.NotFound(w, errors.New("card not found"))
			return
		}
		response.InternalError(w, err)
		return
	}

	response.Success(w, card)
}

// GetCacheStats reports the current search cache contents.
func (h *SearchHandler) GetCacheStats(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.searcher.CacheStats())
}

// ClearCache drops all cached search results.
func (h *SearchHandler) ClearCache(w http.ResponseWriter, r *http.Request) {
	h.searcher.ClearCache()
	response.NoContent(w)
}

// queryInt parses an integer query parameter, falling back to a default.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
