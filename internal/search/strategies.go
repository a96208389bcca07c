package search

import (
	"fmt"

	"github.com/pokebinder/pokebinder/internal/tcg"
)

// Strategy is a named search-ranking approach.
type Strategy string

const (
	// StrategyNewest ranks prefix matches by descending set release date.
	StrategyNewest Strategy = "newest"
	// StrategyPopular scopes the query to recent sets, newest first, and
	// returns the first set with any matches.
	StrategyPopular Strategy = "popular"
	// StrategyRare walks rarity tiers from highest prestige down and returns
	// the first tier with any matches.
	StrategyRare Strategy = "rare"
	// StrategyExact requires an exact name match.
	StrategyExact Strategy = "exact"
)

// ParseStrategy maps a request parameter to a Strategy. An empty value
// defaults to newest.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyNewest, "":
		return StrategyNewest, nil
	case StrategyPopular:
		return StrategyPopular, nil
	case StrategyRare:
		return StrategyRare, nil
	case StrategyExact:
		return StrategyExact, nil
	default:
		return "", fmt.Errorf("unknown search strategy %q", s)
	}
}

// recentSetIDs is the hand-ordered candidate list for the popular strategy,
// newest sets first. Candidate lists are data consumed by the generic
// first-non-empty combinator, not control flow.
var recentSetIDs = []string{
	"sv8", // Surging Sparks
	"sv7", // Stellar Crown
	"sv6", // Twilight Masquerade
	"sv5", // Temporal Forces
	"sv4", // Paradox Rift
}

// rarityTiers is the candidate list for the rare strategy, highest prestige
// first. Rarity labels are free-form catalog strings.
var rarityTiers = []string{
	"Special Illustration Rare",
	"Hyper Rare",
	"Illustration Rare",
	"Ultra Rare",
	"Double Rare",
	"Rare Holo",
	"Rare",
}

// candidateFilters returns the ordered scoped filters a strategy tries before
// falling back to newest, or nil for single-request strategies.
func candidateFilters(strategy Strategy) []tcg.Filter {
	switch strategy {
	case StrategyPopular:
		filters := make([]tcg.Filter, len(recentSetIDs))
		for i, id := range recentSetIDs {
			filters[i] = tcg.SetID(id)
		}
		return filters
	case StrategyRare:
		filters := make([]tcg.Filter, len(rarityTiers))
		for i, tier := range rarityTiers {
			filters[i] = tcg.Rarity(tier)
		}
		return filters
	default:
		return nil
	}
}
