// Package binder maintains slot occupancy and paging over binder layouts.
package binder

import (
	"time"

	"github.com/google/uuid"
)

// Position is a single slot in a binder page. CardID is a weak reference into
// the catalog; a slot never owns card data. Invariant: Empty == (CardID == "").
type Position struct {
	CardID string `json:"cardId,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
	Empty  bool   `json:"isEmpty"`
}

// Layout is the persistent unit: a named grid of slots spanning one or more
// logical pages. len(Positions) is always a multiple of Rows*Cols.
type Layout struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Rows        int        `json:"rows"`
	Cols        int        `json:"cols"`
	TemplateID  string     `json:"templateId"`
	// MaxPage caps how many pages the binder may grow to. Zero means no cap.
	MaxPage   int        `json:"maxPage,omitempty"`
	Positions []Position `json:"positions"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// NewLayout constructs a one-page empty layout from a template.
func NewLayout(tmpl Template, name, description string) Layout {
	now := time.Now().UTC()
	layout := Layout{
		ID:          uuid.NewString(),
		Name:        name,
		Description: description,
		Rows:        tmpl.Rows,
		Cols:        tmpl.Cols,
		TemplateID:  tmpl.ID,
		MaxPage:     tmpl.MaxPage,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	layout.Positions = appendEmptyPage(nil, layout.Rows, layout.Cols)
	return layout
}

// PageSize returns the number of slots per page.
func (l Layout) PageSize() int {
	return l.Rows * l.Cols
}

// TotalPages returns how many pages the layout currently spans.
func (l Layout) TotalPages() int {
	size := l.PageSize()
	if size == 0 {
		return 0
	}
	return (len(l.Positions) + size - 1) / size
}

// PageOf returns the 1-based page a position index falls on.
func (l Layout) PageOf(index int) int {
	return index/l.PageSize() + 1
}

// Coordinates maps a position index to its (page, row, col).
func (l Layout) Coordinates(index int) (page, row, col int) {
	size := l.PageSize()
	page = index/size + 1
	row = (index % size) / l.Cols
	col = (index % size) % l.Cols
	return page, row, col
}

// CardCount returns the number of occupied slots.
func (l Layout) CardCount() int {
	count := 0
	for _, pos := range l.Positions {
		if !pos.Empty {
			count++
		}
	}
	return count
}

// clone copies the layout with its own positions slice so transforms never
// mutate the caller's snapshot.
func (l Layout) clone() Layout {
	out := l
	out.Positions = make([]Position, len(l.Positions))
	copy(out.Positions, l.Positions)
	return out
}

// appendEmptyPage extends positions with one page of empty slots.
func appendEmptyPage(positions []Position, rows, cols int) []Position {
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			positions = append(positions, Position{Row: row, Col: col, Empty: true})
		}
	}
	return positions
}
