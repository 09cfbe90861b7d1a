package lookup

import "testing"

func TestResolveSpecies(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{name: "full name", token: "minotaur", want: "Mi", ok: true},
		{name: "full name mixed case", token: "Minotaur", want: "Mi", ok: true},
		{name: "two word name", token: "hill orc", want: "HO", ok: true},
		{name: "abbreviation", token: "mi", want: "Mi", ok: true},
		{name: "abbreviation canonical case", token: "VS", want: "VS", ok: true},
		{name: "unknown passes through", token: "xx", want: "xx", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tables.ResolveSpecies(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ResolveSpecies(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveBackground(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{name: "single word", token: "berserker", want: "Be", ok: true},
		{name: "delver", token: "delver", want: "De", ok: true},
		{name: "abbreviation de", token: "de", want: "De", ok: true},
		{name: "two word phrase", token: "earth elementalist", want: "EE", ok: true},
		{name: "abbreviation", token: "be", want: "Be", ok: true},
		{name: "abbreviation ee", token: "ee", want: "EE", ok: true},
		{name: "unknown phrase passes through", token: "grave robber", want: "grave robber", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, ok := tables.ResolveBackground(tt.token)
			if got != tt.want || ok != tt.ok {
				t.Errorf("ResolveBackground(%q) = (%q, %v), want (%q, %v)", tt.token, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestResolveGod(t *testing.T) {
	t.Parallel()

	tables := Default()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "canonical name", in: "okawaru", want: "okawaru"},
		{name: "shorthand", in: "oka", want: "okawaru"},
		{name: "final word of multi-word god", in: "xobeh", want: "nemelex xobeh"},
		{name: "the shining one by final word", in: "one", want: "the shining one"},
		{name: "unknown god unchanged", in: "cthulhu", want: "cthulhu"},
		{name: "empty stays empty", in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tables.ResolveGod(tt.in); got != tt.want {
				t.Errorf("ResolveGod(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSpeciesName(t *testing.T) {
	t.Parallel()

	tables := Default()

	if code, ok := tables.SpeciesName("octopode"); !ok || code != "Op" {
		t.Errorf("SpeciesName(octopode) = (%q, %v)", code, ok)
	}
	// Abbreviations must not resolve through the full-name table: the
	// classifier relies on this to tell the two build spellings apart.
	if _, ok := tables.SpeciesName("op"); ok {
		t.Error("SpeciesName resolved an abbreviation; full-name table must not contain codes")
	}
}
