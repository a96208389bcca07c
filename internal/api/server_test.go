package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pokebinder/pokebinder/internal/api/handlers"
	"github.com/pokebinder/pokebinder/internal/binder"
	"github.com/pokebinder/pokebinder/internal/search"
	"github.com/pokebinder/pokebinder/internal/storage"
	"github.com/pokebinder/pokebinder/internal/tcg"
)

// stubSearcher satisfies handlers.CardSearcher with canned empty results.
type stubSearcher struct{}

func (stubSearcher) Search(_ context.Context, query string, strategy search.Strategy, _, _ int) (search.Result, error) {
	return search.Result{Cards: []tcg.Card{}, Query: query, Strategy: strategy}, nil
}
func (stubSearcher) ClearCache()              {}
func (stubSearcher) CacheStats() search.Stats { return search.Stats{} }

type stubCatalog struct{}

func (stubCatalog) GetCard(_ context.Context, id string) (*tcg.Card, error) {
	return nil, &tcg.NotFoundError{URL: id}
}

type stubBinderStore struct{}

func (stubBinderStore) Save(binder.Layout) error { return nil }
func (stubBinderStore) Get(id string) (binder.Layout, error) {
	return binder.Layout{}, &storage.BinderNotFoundError{ID: id}
}
func (stubBinderStore) List() ([]binder.Layout, error) { return nil, nil }
func (stubBinderStore) Delete(id string) error {
	return &storage.BinderNotFoundError{ID: id}
}

type stubTemplateStore struct{}

func (stubTemplateStore) List() ([]binder.Template, error) { return binder.BuiltinTemplates(), nil }
func (stubTemplateStore) Get(id string) (binder.Template, error) {
	return binder.TemplateByID(id)
}

type stubBackuper struct{}

func (stubBackuper) Backup(*storage.BackupConfig) (string, error) { return "/tmp/backup.db", nil }

func testServer() *Server {
	return NewServer(DefaultConfig(), &Handlers{
		Search:   handlers.NewSearchHandler(stubSearcher{}, stubCatalog{}, nil),
		Binder:   handlers.NewBinderHandler(stubBinderStore{}, stubTemplateStore{}),
		Template: handlers.NewTemplateHandler(stubTemplateStore{}),
		System:   handlers.NewSystemHandler(stubBackuper{}, "/tmp", "/tmp/test.db", "test"),
	}, nil)
}

func TestHealthCheck(t *testing.T) {
	server := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ok") {
		t.Errorf("body = %s", rec.Body.String())
	}
}

func TestRoutesAreRegistered(t *testing.T) {
	server := testServer()

	paths := []string{
		"/api/v1/cards?q=pika",
		"/api/v1/cards/cache/stats",
		"/api/v1/templates",
		"/api/v1/system/status",
		"/api/v1/binders",
	}
	for _, path := range paths {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		server.Router().ServeHTTP(rec, req)
		if rec.Code == http.StatusNotFound || rec.Code == http.StatusMethodNotAllowed {
			t.Errorf("GET %s = %d", path, rec.Code)
		}
	}
}

func TestContentTypeEnforcement(t *testing.T) {
	server := testServer()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/binders", strings.NewReader(`{"name":"x"}`))
	req.Header.Set("Content-Type", "text/plain")
	rec := httptest.NewRecorder()
	server.Router().ServeHTTP(rec, req)

	if rec.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d", rec.Code)
	}
}
