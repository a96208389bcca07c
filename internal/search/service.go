// Package search turns user queries into ranked card lists from the catalog,
// with result caching and in-flight request coalescing.
package search

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/singleflight"

	"github.com/pokebinder/pokebinder/internal/tcg"
)

// DefaultPageSize is used when a caller does not specify a page size.
const DefaultPageSize = 20

// CatalogClient is the slice of the catalog API the search service needs.
type CatalogClient interface {
	SearchCards(ctx context.Context, q string, page, pageSize int, orderBy []string) (*tcg.CardList, error)
}

// Result is one page of ranked cards, tagged with the query and strategy that
// produced it. Cards is never nil.
type Result struct {
	Cards      []tcg.Card `json:"cards"`
	TotalCount int        `json:"totalCount"`
	Query      string     `json:"query"`
	Strategy   Strategy   `json:"strategy"`
}

// Service orchestrates catalog searches across strategies.
type Service struct {
	client CatalogClient
	cache  *Cache
	group  singleflight.Group
	logger *log.Logger
}

// NewService creates a search service backed by the given catalog client and
// cache. A nil logger discards output.
func NewService(client CatalogClient, cache *Cache, logger *log.Logger) *Service {
	if cache == nil {
		cache = NewCache(DefaultTTL)
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Service{
		client: client,
		cache:  cache,
		logger: logger.WithPrefix("search"),
	}
}

// Search returns one page of cards for the query under the given strategy.
//
// An empty query returns an empty result without contacting the network.
// Transport and parse failures are returned as errors alongside an empty
// result so callers can decide whether to degrade to an empty display.
// Identical concurrent calls share a single upstream request, and successful
// non-empty results are cached for the cache's TTL.
func (s *Service) Search(ctx context.Context, query string, strategy Strategy, page, pageSize int) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return emptyResult(query, strategy), nil
	}
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	key := cacheKey(strategy, query, page, pageSize)
	if result, ok := s.cache.Get(key); ok {
		return result, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		result, err := s.fetch(ctx, query, strategy, page, pageSize)
		if err != nil {
			return nil, err
		}
		if len(result.Cards) > 0 {
			s.cache.Put(key, result)
		}
		return result, nil
	})
	if err != nil {
		s.logger.Warn("search failed", "query", query, "strategy", strategy, "err", err)
		return emptyResult(query, strategy), err
	}

	return v.(Result), nil
}

// fetch performs the strategy-specific catalog requests.
func (s *Service) fetch(ctx context.Context, query string, strategy Strategy, page, pageSize int) (Result, error) {
	switch strategy {
	case StrategyExact:
		return s.searchWith(ctx, query, strategy, page, pageSize, tcg.NameExact(query))

	case StrategyPopular, StrategyRare:
		for _, scope := range candidateFilters(strategy) {
			result, err := s.searchWith(ctx, query, strategy, page, pageSize, tcg.NamePrefix(query), scope)
			if err != nil {
				return Result{}, err
			}
			if len(result.Cards) > 0 {
				return result, nil
			}
		}
		// All scoped attempts came back empty.
		s.logger.Debug("no scoped matches, falling back to newest", "query", query, "strategy", strategy)
		result, err := s.searchWith(ctx, query, strategy, page, pageSize, tcg.NamePrefix(query))
		if err != nil {
			return Result{}, err
		}
		return result, nil

	default: // StrategyNewest
		return s.searchWith(ctx, query, strategy, page, pageSize, tcg.NamePrefix(query))
	}
}

// searchWith issues a single catalog request and normalizes the response.
func (s *Service) searchWith(ctx context.Context, query string, strategy Strategy, page, pageSize int, filters ...tcg.Filter) (Result, error) {
	list, err := s.client.SearchCards(ctx, tcg.BuildQuery(filters...), page, pageSize, tcg.OrderNewest)
	if err != nil {
		return Result{}, err
	}

	result := emptyResult(query, strategy)
	result.Cards = list.Cards
	result.TotalCount = list.TotalCount
	if result.Cards == nil {
		result.Cards = []tcg.Card{}
	}
	return result, nil
}

// ClearCache drops every cached search result.
func (s *Service) ClearCache() {
	s.cache.Clear()
}

// CacheStats reports the current cache size and key list.
func (s *Service) CacheStats() Stats {
	return s.cache.Stats()
}

func emptyResult(query string, strategy Strategy) Result {
	return Result{
		Cards:    []tcg.Card{},
		Query:    query,
		Strategy: strategy,
	}
}

func cacheKey(strategy Strategy, query string, page, pageSize int) string {
	return fmt.Sprintf("%s|%s|%d|%d", strategy, strings.ToLower(query), page, pageSize)
}
