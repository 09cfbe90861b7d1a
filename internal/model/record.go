package model

import (
	"fmt"
	"strconv"
	"strings"
)

// BuildRecord describes the character build of a single winning run.
//
// Species and Background are always exactly two characters once a record
// has been resolved through the lookup tables (e.g. "Mi" and "Be").
// God may be empty for godless runs and is stored lower-cased.
// Version keeps only the major.minor components of the game version.
type BuildRecord struct {
	// Species is the two-letter species code (e.g. "Mi" for Minotaur).
	Species string `json:"species"`

	// Background is the two-letter background code (e.g. "Be" for Berserker).
	Background string `json:"background"`

	// God is the deity the character worshipped at the end of the run,
	// lower-cased. Empty for godless runs.
	God string `json:"god,omitempty"`

	// Runes is the number of runes collected before the win. Never negative
	// in a valid record.
	Runes int `json:"runes"`

	// Version is the game version the run was played on, truncated to
	// "major.minor" (e.g. "0.23").
	Version string `json:"version"`
}

// BuildCode returns the compact build token, e.g. "MiBe" or "MiBe^okawaru".
func (r *BuildRecord) BuildCode() string {
	code := r.Species + r.Background
	if r.God != "" {
		code += "^" + r.God
	}
	return code
}

// VersionValue returns the version as a comparable number, e.g. 0.23.
// The winners-file format guarantees a "major.minor" shape, so a plain
// float parse is sufficient for range filtering.
func (r *BuildRecord) VersionValue() (float64, error) {
	return strconv.ParseFloat(r.Version, 64)
}

// WinnerEntry pairs a winning build record with the URL (or local path)
// of the morgue it was extracted from.
type WinnerEntry struct {
	// URL is the morgue location the record was parsed from.
	URL string `json:"url"`

	// Record is the extracted character build.
	Record BuildRecord `json:"record"`
}

// FormatWinnerLine renders the winners-file line for a record:
//
//	<url>  <species><background>[^<god>],<runes>,<version>\n
//
// The god segment and its leading caret are omitted when God is empty.
// This format is stable: ParseWinnerLine and the external reporting tools
// both read it back.
func FormatWinnerLine(url string, r *BuildRecord) string {
	return fmt.Sprintf("%s  %s,%d,%s\n", strings.TrimSpace(url), r.BuildCode(), r.Runes, r.Version)
}

// ParseWinnerLine reads back a winners-file line produced by
// FormatWinnerLine. It returns ErrMalformedLine (wrapped with detail)
// when the line does not have the expected shape.
func ParseWinnerLine(line string) (*WinnerEntry, error) {
	url, info, found := strings.Cut(strings.TrimSpace(line), "  ")
	if !found {
		return nil, fmt.Errorf("%w: expected url and build info: %q", ErrMalformedLine, line)
	}
	info = strings.TrimSpace(info)

	// God names may contain spaces ("nemelex xobeh") but never commas,
	// so the rune count and version are cut off the right-hand end.
	j := strings.LastIndex(info, ",")
	if j < 0 {
		return nil, fmt.Errorf("%w: expected build,runes,version: %q", ErrMalformedLine, info)
	}
	version := info[j+1:]
	if version == "" || strings.ContainsAny(version, " \t") {
		return nil, fmt.Errorf("%w: version: %q", ErrMalformedLine, version)
	}
	i := strings.LastIndex(info[:j], ",")
	if i < 0 {
		return nil, fmt.Errorf("%w: expected build,runes,version: %q", ErrMalformedLine, info)
	}

	code := info[:i]
	god := ""
	if k := strings.Index(code, "^"); k >= 0 {
		god = code[k+1:]
		code = code[:k]
	}
	if len(code) != 4 {
		return nil, fmt.Errorf("%w: build code must be 4 characters: %q", ErrMalformedLine, code)
	}

	runes, err := strconv.Atoi(info[i+1 : j])
	if err != nil {
		return nil, fmt.Errorf("%w: rune count: %q", ErrMalformedLine, info[i+1:j])
	}

	return &WinnerEntry{
		URL: url,
		Record: BuildRecord{
			Species:    code[:2],
			Background: code[2:],
			God:        god,
			Runes:      runes,
			Version:    version,
		},
	}, nil
}
