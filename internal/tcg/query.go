package tcg

import (
	"fmt"
	"strings"
)

// Filter is a single field:value term in a catalog query expression.
// Terms are combined with implicit AND by the API when space-separated.
type Filter struct {
	Field string
	Value string
	// Prefix appends the catalog's "*" wildcard for prefix matching.
	Prefix bool
	// Exact quotes the value so multi-word names match as a phrase.
	Exact bool
}

// NamePrefix matches card names starting with q.
func NamePrefix(q string) Filter {
	return Filter{Field: "name", Value: q, Prefix: true}
}

// NameExact matches the card name exactly (quoted phrase).
func NameExact(q string) Filter {
	return Filter{Field: "name", Value: q, Exact: true}
}

// SetID scopes a query to a single set.
func SetID(id string) Filter {
	return Filter{Field: "set.id", Value: id}
}

// Rarity matches the card's rarity tier exactly.
func Rarity(tier string) Filter {
	return Filter{Field: "rarity", Value: tier, Exact: true}
}

// String renders the filter as a query token, e.g. `name:pika*` or
// `rarity:"Illustration Rare"`.
func (f Filter) String() string {
	value := f.Value
	if f.Exact {
		value = fmt.Sprintf("%q", value)
	} else if f.Prefix {
		value += "*"
	}
	return f.Field + ":" + value
}

// BuildQuery joins filters into the catalog's q expression.
func BuildQuery(filters ...Filter) string {
	tokens := make([]string, 0, len(filters))
	for _, f := range filters {
		if f.Value == "" {
			continue
		}
		tokens = append(tokens, f.String())
	}
	return strings.Join(tokens, " ")
}

// OrderNewest sorts by descending set release date, then card name. This is
// the ranking every strategy falls back to.
var OrderNewest = []string{"-set.releaseDate", "name"}
