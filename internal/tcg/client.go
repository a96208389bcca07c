// Package tcg provides a client for the Pokémon TCG catalog API.
package tcg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

const (
	// DefaultBaseURL is the base URL for catalog API requests.
	DefaultBaseURL = "https://api.pokemontcg.io/v2"

	// rateLimitDelay spaces requests out to stay friendly to the
	// unauthenticated rate limit (1000 requests/day without a key).
	rateLimitDelay = 100 * time.Millisecond

	requestTimeout = 60 * time.Second
	maxRetries     = 3
	initialBackoff = 1 * time.Second
	maxBackoff     = 16 * time.Second
)

// NotFoundError indicates the requested resource does not exist in the catalog.
type NotFoundError struct {
	URL string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource not found: %s", e.URL)
}

// APIError is an error response returned by the catalog API.
type APIError struct {
	StatusCode int    `json:"-"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("catalog API error (status %d): %s", e.StatusCode, e.Message)
}

// Client represents a catalog API client with rate limiting.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	baseURL     string
	userAgent   string

	// apiKey is guarded so the config watcher can swap credentials while
	// requests are in flight.
	mu     sync.RWMutex
	apiKey string
}

// Options configures a catalog client. Zero values fall back to defaults.
type Options struct {
	BaseURL string
	// APIKey is the optional catalog credential. When empty, requests run
	// unauthenticated against the reduced rate limit; this is not an error.
	APIKey    string
	Timeout   time.Duration
	RateLimit time.Duration
}

// NewClient creates a new catalog API client.
func NewClient(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = requestTimeout
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = rateLimitDelay
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		rateLimiter: rate.NewLimiter(rate.Every(opts.RateLimit), 1),
		baseURL:     strings.TrimRight(opts.BaseURL, "/"),
		userAgent:   "PokeBinder-Companion/1.0",
		apiKey:      opts.APIKey,
	}
}

// SetAPIKey replaces the catalog credential for subsequent requests.
func (c *Client) SetAPIKey(key string) {
	c.mu.Lock()
	c.apiKey = key
	c.mu.Unlock()
}

// SearchCards queries the catalog with a q filter expression and returns one
// page of matches. Missing data/totalCount in the response normalize to an
// empty slice and zero.
func (c *Client) SearchCards(ctx context.Context, q string, page, pageSize int, orderBy []string) (*CardList, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("page", strconv.Itoa(page))
	params.Set("pageSize", strconv.Itoa(pageSize))
	if len(orderBy) > 0 {
		params.Set("orderBy", strings.Join(orderBy, ","))
	}

	var list CardList
	reqURL := fmt.Sprintf("%s/cards?%s", c.baseURL, params.Encode())
	if err := c.doRequest(ctx, reqURL, &list); err != nil {
		return nil, fmt.Errorf("failed to search cards with query %q: %w", q, err)
	}

	if list.Cards == nil {
		list.Cards = []Card{}
	}
	return &list, nil
}

// GetCard retrieves a single card by its catalog ID.
func (c *Client) GetCard(ctx context.Context, id string) (*Card, error) {
	reqURL := fmt.Sprintf("%s/cards/%s", c.baseURL, url.PathEscape(id))

	var resp cardResponse
	if err := c.doRequest(ctx, reqURL, &resp); err != nil {
		return nil, fmt.Errorf("failed to get card %s: %w", id, err)
	}

	return &resp.Data, nil
}

// doRequest performs an HTTP request with rate limiting and retry logic.
func (c *Client) doRequest(ctx context.Context, reqURL string, result interface{}) error {
	var lastErr error
	backoff := initialBackoff

	for attempt := 0; attempt <= maxRetries; attempt++ {
		// Wait for rate limiter
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter error: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Accept", "application/json")

		c.mu.RLock()
		if c.apiKey != "" {
			req.Header.Set("X-Api-Key", c.apiKey)
		}
		c.mu.RUnlock()

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)

			// Retry on network errors
			if attempt < maxRetries && ctx.Err() == nil {
				time.Sleep(backoff)
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr
		}

		switch resp.StatusCode {
		case http.StatusOK:
			body, err := io.ReadAll(resp.Body)
			_ = resp.Body.Close()
			if err != nil {
				return fmt.Errorf("failed to read response body: %w", err)
			}

			if err := json.Unmarshal(body, result); err != nil {
				return fmt.Errorf("failed to parse JSON response: %w", err)
			}

			return nil

		case http.StatusTooManyRequests:
			_ = resp.Body.Close()
			lastErr = fmt.Errorf("rate limited (HTTP 429)")

			if attempt < maxRetries {
				if retryAfter := resp.Header.Get("Retry-After"); retryAfter != "" {
					if duration, err := time.ParseDuration(retryAfter + "s"); err == nil {
						time.Sleep(duration)
					} else {
						time.Sleep(backoff)
					}
				} else {
					time.Sleep(backoff)
				}
				backoff = minDuration(backoff*2, maxBackoff)
				continue
			}
			return lastErr

		case http.StatusNotFound:
			_ = resp.Body.Close()
			return &NotFoundError{URL: reqURL}

		default:
			body, _ := io.ReadAll(resp.Body)
			_ = resp.Body.Close()

			var apiErr struct {
				Error APIError `json:"error"`
			}
			if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
				apiErr.Error.StatusCode = resp.StatusCode
				return &apiErr.Error
			}

			return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
		}
	}

	return fmt.Errorf("max retries exceeded: %w", lastErr)
}

func minDuration(a, b time.Duration) time.Duration {
	if a < b {
		return a
	}
	return b
}
