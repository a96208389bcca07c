package binder

import (
	"errors"
	"testing"
)

func TestNewLayoutShape(t *testing.T) {
	tmpl, err := TemplateByID("jumbo-12")
	if err != nil {
		t.Fatal(err)
	}

	layout := NewLayout(tmpl, "My Binder", "chase cards")
	if layout.ID == "" {
		t.Error("layout has no id")
	}
	if layout.PageSize() != 12 {
		t.Errorf("PageSize() = %d, want 12", layout.PageSize())
	}
	if layout.TotalPages() != 1 {
		t.Errorf("TotalPages() = %d, want 1", layout.TotalPages())
	}
	if len(layout.Positions) != 12 {
		t.Errorf("positions = %d, want 12", len(layout.Positions))
	}
	for i, pos := range layout.Positions {
		if !pos.Empty || pos.CardID != "" {
			t.Errorf("slot %d not empty: %+v", i, pos)
		}
	}
	if layout.MaxPage != tmpl.MaxPage {
		t.Errorf("MaxPage = %d, want %d", layout.MaxPage, tmpl.MaxPage)
	}
}

func TestCoordinates(t *testing.T) {
	tmpl := Template{ID: "t", Rows: 3, Cols: 3}
	layout := NewLayout(tmpl, "Grid", "")

	tests := []struct {
		index          int
		page, row, col int
	}{
		{0, 1, 0, 0},
		{4, 1, 1, 1},
		{8, 1, 2, 2},
		{9, 2, 0, 0},
		{13, 2, 1, 1},
		{22, 3, 1, 1},
	}

	for _, tt := range tests {
		page, row, col := layout.Coordinates(tt.index)
		if page != tt.page || row != tt.row || col != tt.col {
			t.Errorf("Coordinates(%d) = (%d,%d,%d), want (%d,%d,%d)",
				tt.index, page, row, col, tt.page, tt.row, tt.col)
		}
	}
}

func TestTemplateByID(t *testing.T) {
	tmpl, err := TemplateByID("standard-9")
	if err != nil {
		t.Fatalf("TemplateByID failed: %v", err)
	}
	if tmpl.Rows != 3 || tmpl.Cols != 3 || !tmpl.Default {
		t.Errorf("unexpected template: %+v", tmpl)
	}

	_, err = TemplateByID("no-such-template")
	var notFound *TemplateNotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected TemplateNotFoundError, got %v", err)
	}
}

func TestDefaultTemplate(t *testing.T) {
	if got := DefaultTemplate(); got.ID != "standard-9" {
		t.Errorf("DefaultTemplate() = %q, want standard-9", got.ID)
	}
}
