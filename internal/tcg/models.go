package tcg

// Card represents a card from the Pokémon TCG catalog.
// Catalog data is read-only; cards are never mutated locally.
type Card struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Number    string         `json:"number"`
	Rarity    string         `json:"rarity,omitempty"`
	Set       SetInfo        `json:"set"`
	Images    CardImages     `json:"images"`
	TCGPlayer *TCGPlayerInfo `json:"tcgplayer,omitempty"`
}

// SetInfo describes the set a card was printed in.
type SetInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Series      string `json:"series"`
	ReleaseDate string `json:"releaseDate"` // "2006/01/02" in the catalog API
}

// CardImages contains URLs for card images in the two sizes the catalog serves.
type CardImages struct {
	Small string `json:"small"`
	Large string `json:"large"`
}

// TCGPlayerInfo is a market price snapshot attached to some cards.
type TCGPlayerInfo struct {
	URL       string                `json:"url,omitempty"`
	UpdatedAt string                `json:"updatedAt,omitempty"`
	Prices    map[string]PriceRange `json:"prices,omitempty"`
}

// PriceRange holds price points for one printing variant (normal, holofoil, ...).
type PriceRange struct {
	Low    *float64 `json:"low,omitempty"`
	Mid    *float64 `json:"mid,omitempty"`
	High   *float64 `json:"high,omitempty"`
	Market *float64 `json:"market,omitempty"`
}

// MarketPrice returns the first available market price across printing
// variants, or nil if the card has no price snapshot.
func (c *Card) MarketPrice() *float64 {
	if c.TCGPlayer == nil {
		return nil
	}
	for _, variant := range []string{"normal", "holofoil", "reverseHolofoil"} {
		if pr, ok := c.TCGPlayer.Prices[variant]; ok && pr.Market != nil {
			return pr.Market
		}
	}
	for _, pr := range c.TCGPlayer.Prices {
		if pr.Market != nil {
			return pr.Market
		}
	}
	return nil
}

// CardList is a page of search results from the catalog.
type CardList struct {
	Cards      []Card `json:"data"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int    `json:"totalCount"`
}

// cardResponse is the envelope for single-card lookups.
type cardResponse struct {
	Data Card `json:"data"`
}
