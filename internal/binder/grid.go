package binder

import "time"

// PlaceCard puts a card into the first available slot, preferring the current
// page. Placement order: first empty slot on currentPage, then the first
// empty slot anywhere (the returned page jumps the view there), then a fresh
// appended page — unless appending would exceed MaxPage, in which case a
// CapacityError is returned and the input layout is unchanged.
//
// The input is never mutated; callers keep their snapshot for undo/compare.
func PlaceCard(layout Layout, cardID string, currentPage int) (Layout, int, error) {
	size := layout.PageSize()
	if currentPage < 1 || currentPage > layout.TotalPages() {
		currentPage = 1
	}

	// First empty slot within the current page.
	start := (currentPage - 1) * size
	end := start + size
	if end > len(layout.Positions) {
		end = len(layout.Positions)
	}
	for i := start; i < end; i++ {
		if layout.Positions[i].Empty {
			return fillSlot(layout, i, cardID), currentPage, nil
		}
	}

	// First empty slot across the entire layout.
	for i := range layout.Positions {
		if layout.Positions[i].Empty {
			return fillSlot(layout, i, cardID), layout.PageOf(i), nil
		}
	}

	// Entirely full: grow by one page, respecting the ceiling.
	grown, err := AppendPage(layout)
	if err != nil {
		return layout, currentPage, err
	}
	index := len(grown.Positions) - size
	return fillSlot(grown, index, cardID), grown.PageOf(index), nil
}

// SwapSlots exchanges the card references of two slots. Equal or
// identical-content indices are the identity transform. Out-of-range indices
// are ignored rather than rejected, to tolerate stale drag events.
func SwapSlots(layout Layout, indexA, indexB int) Layout {
	if indexA == indexB {
		return layout
	}
	if indexA < 0 || indexA >= len(layout.Positions) ||
		indexB < 0 || indexB >= len(layout.Positions) {
		return layout
	}
	a, b := layout.Positions[indexA], layout.Positions[indexB]
	if a.CardID == b.CardID {
		return layout
	}

	out := layout.clone()
	out.Positions[indexA].CardID, out.Positions[indexB].CardID = b.CardID, a.CardID
	out.Positions[indexA].Empty, out.Positions[indexB].Empty = b.Empty, a.Empty
	out.UpdatedAt = time.Now().UTC()
	return out
}

// ClearPage empties every slot on the given 1-based page.
func ClearPage(layout Layout, page int) Layout {
	if page < 1 || page > layout.TotalPages() {
		return layout
	}

	out := layout.clone()
	size := out.PageSize()
	start := (page - 1) * size
	for i := start; i < start+size && i < len(out.Positions); i++ {
		out.Positions[i].CardID = ""
		out.Positions[i].Empty = true
	}
	out.UpdatedAt = time.Now().UTC()
	return out
}

// ClearAll empties every slot in the layout.
func ClearAll(layout Layout) Layout {
	out := layout.clone()
	for i := range out.Positions {
		out.Positions[i].CardID = ""
		out.Positions[i].Empty = true
	}
	out.UpdatedAt = time.Now().UTC()
	return out
}

// AppendPage adds one page of empty slots, rejecting with a CapacityError
// when the layout already spans MaxPage pages.
func AppendPage(layout Layout) (Layout, error) {
	if layout.MaxPage > 0 && layout.TotalPages() >= layout.MaxPage {
		return layout, &CapacityError{MaxPage: layout.MaxPage}
	}

	out := layout.clone()
	out.Positions = appendEmptyPage(out.Positions, out.Rows, out.Cols)
	out.UpdatedAt = time.Now().UTC()
	return out, nil
}

// fillSlot returns a copy of layout with the slot at index occupied by cardID.
func fillSlot(layout Layout, index int, cardID string) Layout {
	out := layout.clone()
	out.Positions[index].CardID = cardID
	out.Positions[index].Empty = false
	out.UpdatedAt = time.Now().UTC()
	return out
}
