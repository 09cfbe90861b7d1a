package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dcss-tools/morguelib/internal/lookup"
	"github.com/dcss-tools/morguelib/internal/model"
)

// Criteria narrows a set of winning games. Nil or empty fields do not
// constrain the result.
type Criteria struct {
	// Species are two-letter species codes.
	Species []string

	// Backgrounds are two-letter background codes.
	Backgrounds []string

	// Gods are full lowercase deity names. An empty string entry
	// matches godless games.
	Gods []string

	// RuneMin and RuneMax bound the rune count when non-nil.
	RuneMin *int
	RuneMax *int

	// VersionMin and VersionMax bound the numeric game version when
	// non-nil.
	VersionMin *float64
	VersionMax *float64
}

// ParseCriteria builds Criteria from comma-separated user arguments.
// Species and backgrounds accept full names or codes; gods accept
// names or common shorthand. Range arguments accept a single value
// ("3") or an inclusive range ("3-15"); an empty argument means
// unconstrained.
func ParseCriteria(tables *lookup.Tables, species, backgrounds, gods, runes, versions string) (Criteria, error) {
	var c Criteria

	for _, token := range splitList(species) {
		code, ok := tables.ResolveSpecies(token)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: unknown species %q", ErrBadCriteria, token)
		}
		c.Species = append(c.Species, code)
	}
	for _, token := range splitList(backgrounds) {
		code, ok := tables.ResolveBackground(token)
		if !ok {
			return Criteria{}, fmt.Errorf("%w: unknown background %q", ErrBadCriteria, token)
		}
		c.Backgrounds = append(c.Backgrounds, code)
	}
	for _, token := range splitList(gods) {
		if token == "none" {
			c.Gods = append(c.Gods, "")
			continue
		}
		c.Gods = append(c.Gods, tables.ResolveGod(token))
	}

	if runes != "" {
		lo, hi, err := parseIntRange(runes)
		if err != nil {
			return Criteria{}, err
		}
		c.RuneMin, c.RuneMax = &lo, &hi
	}
	if versions != "" {
		lo, hi, err := parseFloatRange(versions)
		if err != nil {
			return Criteria{}, err
		}
		c.VersionMin, c.VersionMax = &lo, &hi
	}

	return c, nil
}

// String renders the criteria the way they appear in result headers.
func (c Criteria) String() string {
	var parts []string
	if len(c.Species) > 0 {
		parts = append(parts, "species="+strings.Join(c.Species, ","))
	}
	if len(c.Backgrounds) > 0 {
		parts = append(parts, "background="+strings.Join(c.Backgrounds, ","))
	}
	if len(c.Gods) > 0 {
		gods := make([]string, len(c.Gods))
		for i, g := range c.Gods {
			if g == "" {
				g = "none"
			}
			gods[i] = g
		}
		parts = append(parts, "god="+strings.Join(gods, ","))
	}
	if c.RuneMin != nil && c.RuneMax != nil {
		parts = append(parts, fmt.Sprintf("runes=%d-%d", *c.RuneMin, *c.RuneMax))
	}
	if c.VersionMin != nil && c.VersionMax != nil {
		parts = append(parts, fmt.Sprintf("version=%g-%g", *c.VersionMin, *c.VersionMax))
	}
	if len(parts) == 0 {
		return "all wins"
	}
	return strings.Join(parts, " ")
}

// Matches reports whether one winning game satisfies every constraint.
func (c Criteria) Matches(e *model.WinnerEntry) bool {
	r := e.Record
	if len(c.Species) > 0 && !contains(c.Species, r.Species) {
		return false
	}
	if len(c.Backgrounds) > 0 && !contains(c.Backgrounds, r.Background) {
		return false
	}
	if len(c.Gods) > 0 && !contains(c.Gods, r.God) {
		return false
	}
	if c.RuneMin != nil && r.Runes < *c.RuneMin {
		return false
	}
	if c.RuneMax != nil && r.Runes > *c.RuneMax {
		return false
	}
	if c.VersionMin != nil || c.VersionMax != nil {
		value, err := r.VersionValue()
		if err != nil {
			return false
		}
		if c.VersionMin != nil && value < *c.VersionMin {
			return false
		}
		if c.VersionMax != nil && value > *c.VersionMax {
			return false
		}
	}
	return true
}

func splitList(arg string) []string {
	var out []string
	for _, token := range strings.Split(arg, ",") {
		token = strings.TrimSpace(token)
		if token != "" {
			out = append(out, token)
		}
	}
	return out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

func parseIntRange(arg string) (int, int, error) {
	lo, hi, found := strings.Cut(arg, "-")
	low, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: rune count %q", ErrBadCriteria, arg)
	}
	if !found {
		return low, low, nil
	}
	high, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || high < low {
		return 0, 0, fmt.Errorf("%w: rune range %q", ErrBadCriteria, arg)
	}
	return low, high, nil
}

func parseFloatRange(arg string) (float64, float64, error) {
	lo, hi, found := strings.Cut(arg, "-")
	low, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: version %q", ErrBadCriteria, arg)
	}
	if !found {
		return low, low, nil
	}
	high, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil || high < low {
		return 0, 0, fmt.Errorf("%w: version range %q", ErrBadCriteria, arg)
	}
	return low, high, nil
}
