package tcg

import "testing"

func TestFilterString(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   string
	}{
		{"prefix wildcard", NamePrefix("pikachu"), "name:pikachu*"},
		{"exact quoted", NameExact("Mr. Mime"), `name:"Mr. Mime"`},
		{"set scope", SetID("sv8"), "set.id:sv8"},
		{"rarity quoted", Rarity("Illustration Rare"), `rarity:"Illustration Rare"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBuildQuery(t *testing.T) {
	got := BuildQuery(NamePrefix("pikachu"), SetID("sv8"))
	want := "name:pikachu* set.id:sv8"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}

func TestBuildQuerySkipsEmptyValues(t *testing.T) {
	got := BuildQuery(NamePrefix("eevee"), SetID(""))
	want := "name:eevee*"
	if got != want {
		t.Errorf("BuildQuery() = %q, want %q", got, want)
	}
}
