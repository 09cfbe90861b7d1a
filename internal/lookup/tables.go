package lookup

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// lower folds names to the lookup key form. We use x/text rather than
// strings.ToLower so tokens copied out of morgues with non-ASCII
// player formatting still fold predictably.
var lower = cases.Lower(language.Und)

// Normalize trims a token and folds it to lower case, the key form used
// by every table in this package.
func Normalize(s string) string {
	return lower.String(strings.TrimSpace(s))
}

// Tables holds the species, background, and god name mappings.
// All lookups are case-insensitive; construct with Default.
type Tables struct {
	species         map[string]string
	speciesAbbr     map[string]string
	backgrounds     map[string]string
	backgroundsAbbr map[string]string
	gods            map[string]string
	godsAbbr        map[string]string
}

// SpeciesName resolves a full species name ("minotaur", "hill orc") to
// its two-letter code. Only the full-name table is consulted.
func (t *Tables) SpeciesName(name string) (string, bool) {
	code, ok := t.species[Normalize(name)]
	return code, ok
}

// ResolveSpecies resolves a species token through the full-name table
// first, then the abbreviation table. Unknown tokens are returned
// unchanged with ok=false; the caller decides whether the raw token is
// acceptable (a two-character token is, per the morgue format).
func (t *Tables) ResolveSpecies(token string) (string, bool) {
	key := Normalize(token)
	if code, ok := t.species[key]; ok {
		return code, true
	}
	if code, ok := t.speciesAbbr[key]; ok {
		return code, true
	}
	return token, false
}

// ResolveBackground resolves a background token or phrase through the
// full-name table first, then the abbreviation table. Unknown tokens
// are returned unchanged with ok=false.
func (t *Tables) ResolveBackground(token string) (string, bool) {
	key := Normalize(token)
	if code, ok := t.backgrounds[key]; ok {
		return code, true
	}
	if code, ok := t.backgroundsAbbr[key]; ok {
		return code, true
	}
	return token, false
}

// ResolveGod canonicalizes a god name. Morgues name gods by their final
// word ("Was the Champion of Okawaru." yields "okawaru", "... of Nemelex
// Xobeh." yields "xobeh"), so the abbreviation table maps final-word and
// shorthand forms back to the canonical lower-case name. Names found in
// neither table pass through unchanged.
func (t *Tables) ResolveGod(name string) string {
	key := Normalize(name)
	if god, ok := t.gods[key]; ok {
		return god
	}
	if god, ok := t.godsAbbr[key]; ok {
		return god
	}
	return name
}

// Default builds the tables for the DCSS versions this tool targets
// (roughly 0.14 through 0.25). Removed species such as High Elf stay in
// the tables because their morgues remain published.
func Default() *Tables {
	t := &Tables{
		species: map[string]string{
			"barachi":      "Ba",
			"centaur":      "Ce",
			"deep dwarf":   "DD",
			"deep elf":     "DE",
			"demigod":      "Dg",
			"demonspawn":   "Ds",
			"draconian":    "Dr",
			"felid":        "Fe",
			"formicid":     "Fo",
			"gargoyle":     "Gr",
			"ghoul":        "Gh",
			"gnoll":        "Gn",
			"halfling":     "Ha",
			"high elf":     "HE",
			"hill orc":     "HO",
			"human":        "Hu",
			"kobold":       "Ko",
			"merfolk":      "Mf",
			"minotaur":     "Mi",
			"mummy":        "Mu",
			"naga":         "Na",
			"octopode":     "Op",
			"ogre":         "Og",
			"spriggan":     "Sp",
			"tengu":        "Te",
			"troll":        "Tr",
			"vampire":      "Vp",
			"vine stalker": "VS",
		},
		backgrounds: map[string]string{
			"abyssal knight":     "AK",
			"air elementalist":   "AE",
			"arcane marksman":    "AM",
			"artificer":          "Ar",
			"assassin":           "As",
			"berserker":          "Be",
			"chaos knight":       "CK",
			"conjurer":           "Cj",
			"death knight":       "DK",
			"delver":             "De",
			"earth elementalist": "EE",
			"enchanter":          "En",
			"fighter":            "Fi",
			"fire elementalist":  "FE",
			"gladiator":          "Gl",
			"hunter":             "Hu",
			"ice elementalist":   "IE",
			"monk":               "Mo",
			"necromancer":        "Ne",
			"skald":              "Sk",
			"summoner":           "Su",
			"transmuter":         "Tm",
			"venom mage":         "VM",
			"wanderer":           "Wn",
			"warper":             "Wr",
			"wizard":             "Wz",
		},
		gods: map[string]string{
			"ashenzari":       "ashenzari",
			"beogh":           "beogh",
			"cheibriados":     "cheibriados",
			"dithmenos":       "dithmenos",
			"elyvilon":        "elyvilon",
			"fedhas":          "fedhas",
			"gozag":           "gozag",
			"hepliaklqana":    "hepliaklqana",
			"jiyva":           "jiyva",
			"kikubaaqudgha":   "kikubaaqudgha",
			"lugonu":          "lugonu",
			"makhleb":         "makhleb",
			"nemelex xobeh":   "nemelex xobeh",
			"okawaru":         "okawaru",
			"qazlal":          "qazlal",
			"ru":              "ru",
			"sif muna":        "sif muna",
			"the shining one": "the shining one",
			"trog":            "trog",
			"uskayaw":         "uskayaw",
			"vehumet":         "vehumet",
			"wu jian":         "wu jian",
			"xom":             "xom",
			"yredelemnul":     "yredelemnul",
			"zin":             "zin",
		},
		godsAbbr: map[string]string{
			// Shorthand forms the community uses.
			"ash":  "ashenzari",
			"chei": "cheibriados",
			"ely":  "elyvilon",
			"hep":  "hepliaklqana",
			"kiku": "kikubaaqudgha",
			"oka":  "okawaru",
			"sif":  "sif muna",
			"tso":  "the shining one",
			"usk":  "uskayaw",
			"yred": "yredelemnul",
			// Final-word forms produced by the "Was ... of <god>." line
			// for multi-word god names.
			"jian":  "wu jian",
			"muna":  "sif muna",
			"one":   "the shining one",
			"xobeh": "nemelex xobeh",
		},
	}

	// The abbreviation tables map the lower-cased two-letter codes back
	// to their canonical capitalization, covering the compact "MiBe"
	// build spelling.
	t.speciesAbbr = make(map[string]string, len(t.species))
	for _, code := range t.species {
		t.speciesAbbr[lower.String(code)] = code
	}
	t.backgroundsAbbr = make(map[string]string, len(t.backgrounds))
	for _, code := range t.backgrounds {
		t.backgroundsAbbr[lower.String(code)] = code
	}

	return t
}
