package tcg

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(serverURL string) *Client {
	return NewClient(Options{
		BaseURL:   serverURL,
		RateLimit: time.Millisecond,
	})
}

func TestNewClientDefaults(t *testing.T) {
	client := NewClient(Options{})

	if client.baseURL != DefaultBaseURL {
		t.Errorf("baseURL = %q, want %q", client.baseURL, DefaultBaseURL)
	}
	if client.httpClient.Timeout != requestTimeout {
		t.Errorf("timeout = %v, want %v", client.httpClient.Timeout, requestTimeout)
	}
	if client.rateLimiter == nil {
		t.Error("rateLimiter is nil")
	}
}

func TestClient_SearchCards(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("q") != "name:pikachu*" {
			t.Errorf("Unexpected q: %s", q.Get("q"))
		}
		if q.Get("page") != "1" || q.Get("pageSize") != "20" {
			t.Errorf("Unexpected paging: page=%s pageSize=%s", q.Get("page"), q.Get("pageSize"))
		}
		if q.Get("orderBy") != "-set.releaseDate,name" {
			t.Errorf("Unexpected orderBy: %s", q.Get("orderBy"))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{
			"data": [
				{"id":"sv8-57","name":"Pikachu","number":"57","rarity":"Rare",
				 "set":{"id":"sv8","name":"Surging Sparks","series":"Scarlet & Violet","releaseDate":"2024/11/08"},
				 "images":{"small":"https://img/s.png","large":"https://img/l.png"}},
				{"id":"sv3pt5-25","name":"Pikachu","number":"25",
				 "set":{"id":"sv3pt5","name":"151","series":"Scarlet & Violet","releaseDate":"2023/09/22"},
				 "images":{"small":"https://img/s2.png","large":"https://img/l2.png"}}
			],
			"page": 1, "pageSize": 20, "totalCount": 150
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	list, err := client.SearchCards(context.Background(), "name:pikachu*", 1, 20, OrderNewest)
	if err != nil {
		t.Fatalf("SearchCards failed: %v", err)
	}

	if len(list.Cards) != 2 {
		t.Fatalf("Expected 2 cards, got %d", len(list.Cards))
	}
	if list.TotalCount != 150 {
		t.Errorf("TotalCount = %d, want 150", list.TotalCount)
	}
	if list.Cards[0].Set.ID != "sv8" {
		t.Errorf("Set.ID = %q, want sv8", list.Cards[0].Set.ID)
	}
}

func TestClient_SearchCardsNormalizesEmptyResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	list, err := client.SearchCards(context.Background(), "name:zzz*", 1, 20, nil)
	if err != nil {
		t.Fatalf("SearchCards failed: %v", err)
	}

	if list.Cards == nil {
		t.Error("Cards slice is nil, want empty slice")
	}
	if len(list.Cards) != 0 || list.TotalCount != 0 {
		t.Errorf("Expected empty result, got %d cards / total %d", len(list.Cards), list.TotalCount)
	}
}

func TestClient_APIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-Api-Key")
		w.Write([]byte(`{"data":[],"totalCount":0}`))
	}))
	defer server.Close()

	client := NewClient(Options{BaseURL: server.URL, APIKey: "secret-key", RateLimit: time.Millisecond})
	if _, err := client.SearchCards(context.Background(), "name:a*", 1, 1, nil); err != nil {
		t.Fatalf("SearchCards failed: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("X-Api-Key = %q, want secret-key", gotKey)
	}

	// Absence of a key degrades to unauthenticated access, not an error.
	client.SetAPIKey("")
	if _, err := client.SearchCards(context.Background(), "name:a*", 1, 1, nil); err != nil {
		t.Fatalf("unauthenticated SearchCards failed: %v", err)
	}
	if gotKey != "" {
		t.Errorf("X-Api-Key = %q, want empty", gotKey)
	}
}

func TestClient_GetCard(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/sv8-57" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":{"id":"sv8-57","name":"Pikachu","number":"57","set":{"id":"sv8"},"images":{}}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	card, err := client.GetCard(context.Background(), "sv8-57")
	if err != nil {
		t.Fatalf("GetCard failed: %v", err)
	}
	if card.Name != "Pikachu" {
		t.Errorf("Name = %q, want Pikachu", card.Name)
	}
}

func TestClient_NotFoundError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":{"message":"Card not found.","code":404}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.GetCard(context.Background(), "missing-id")
	if err == nil {
		t.Fatal("Expected error for missing card")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("Expected NotFoundError, got %T: %v", err, err)
	}
}

func TestClient_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"message":"Invalid query."}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.SearchCards(context.Background(), "bogus::", 1, 20, nil)
	if err == nil {
		t.Fatal("Expected error for bad request")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("StatusCode = %d, want 400", apiErr.StatusCode)
	}
}

func TestClient_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [broken`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	if _, err := client.SearchCards(context.Background(), "name:a*", 1, 20, nil); err == nil {
		t.Fatal("Expected parse error for malformed JSON")
	}
}

func TestMarketPrice(t *testing.T) {
	market := 4.2
	card := Card{TCGPlayer: &TCGPlayerInfo{
		Prices: map[string]PriceRange{"holofoil": {Market: &market}},
	}}

	got := card.MarketPrice()
	if got == nil || *got != market {
		t.Errorf("MarketPrice() = %v, want %v", got, market)
	}

	bare := Card{}
	if bare.MarketPrice() != nil {
		t.Error("MarketPrice() on card without prices should be nil")
	}
}
