package classifier

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/dcss-tools/morguelib/internal/lookup"
	"github.com/dcss-tools/morguelib/internal/model"
)

// Fixed phrases of the morgue format. These are stable across every
// game version this tool targets.
const (
	// versionPrefix is the first line of every morgue, leading space
	// included.
	versionPrefix = " Dungeon Crawl Stone Soup version "

	// victoryPhrase appears somewhere in the morgue of every winning run.
	victoryPhrase = "Escaped with the Orb"

	// preEndMarker terminates the embedded log in HTML-wrapped morgues.
	preEndMarker = "</pre>"

	// runeLinePrefix starts the collected-runes line.
	runeLinePrefix = "... and "

	// runeLineMarker follows the rune count on that line.
	runeLineMarker = " runes"

	// headerLines is how many lines of the morgue carry the summary
	// block; nothing past this window is scanned.
	headerLines = 20

	// minLines is the minimum length of a plausible morgue. Shorter
	// text is rejected before any field extraction.
	minLines = 13
)

// Parse failure reasons recorded in the errors file.
const (
	reasonTooShort      = "invalid file, not long enough"
	reasonNoHeader      = "invalid file, starting line not found"
	reasonNoVersion     = "invalid file, version not found"
	reasonMissingFields = "error parsing file"
	reasonBuildPrefix   = "build info: "
)

// Archiver persists the unwrapped text of winning morgues. Implemented
// by report.Archive; nil disables archiving.
type Archiver interface {
	Save(url, text string) error
}

// Classifier parses morgue text into classification outcomes.
// It is stateless apart from the injected lookup tables, so a single
// instance serves an entire run.
type Classifier struct {
	tables  *lookup.Tables
	archive Archiver
	logger  *slog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithArchiver enables save-mode: the unwrapped text of every network
// morgue containing the victory phrase is handed to a, even when build
// extraction subsequently fails.
func WithArchiver(a Archiver) Option {
	return func(c *Classifier) {
		c.archive = a
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// New creates a Classifier using the given lookup tables.
func New(tables *lookup.Tables, opts ...Option) *Classifier {
	c := &Classifier{
		tables: tables,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify determines whether raw is a winning morgue and extracts the
// build record if so. source is the URL or file path the text came
// from; it is used only for archiving and logging. Classifying the same
// text twice yields the same outcome.
func (c *Classifier) Classify(raw, source string) model.Outcome {
	text := unwrap(raw)

	lines := strings.Split(text, "\n")
	if len(lines) > headerLines {
		lines = lines[:headerLines]
	}

	switch {
	case len(lines) < minLines:
		return model.ParseFailure(reasonTooShort)
	case !strings.HasPrefix(lines[0], versionPrefix):
		return model.ParseFailure(reasonNoHeader)
	case !strings.Contains(text, victoryPhrase):
		// A loss is terminal here: losing morgues are never parsed for
		// build info.
		return model.Loser()
	}

	// Save-mode keeps every victory morgue, including those whose build
	// info below turns out to be unparseable.
	if c.archive != nil && strings.HasPrefix(source, "http") {
		if err := c.archive.Save(source, text); err != nil {
			c.logger.Warn("failed to archive winning morgue", "url", source, "error", err)
		}
	}

	version, ok := extractVersion(lines[0])
	if !ok {
		return model.ParseFailure(reasonNoVersion)
	}

	god, runes, buildLine := scanFields(lines[1:])
	if buildLine == "" || runes < 0 {
		return model.ParseFailure(reasonMissingFields)
	}

	record, failure := c.resolveBuild(buildLine, god)
	if failure != "" {
		return model.ParseFailure(failure)
	}
	record.Runes = runes
	record.Version = version

	return model.Winner(record)
}

// unwrap strips the HTML wrapper from a non-raw morgue dump, if any.
// The embedded log runs from the version header to the closing </pre>.
// When the header cannot be located the empty string is returned, which
// the structural validation then rejects for insufficient length.
func unwrap(text string) string {
	if !strings.Contains(text, "<!DOCTYPE html>") && !strings.Contains(text, "<html>") {
		return text
	}

	i := strings.Index(text, versionPrefix)
	if i < 21 {
		// Covers both a missing header and a header inside what must be
		// HTML preamble.
		return ""
	}

	unwrapped := text[i:]
	if j := strings.Index(unwrapped, preEndMarker); j >= 0 {
		unwrapped = unwrapped[:j]
	}
	return unwrapped
}

// extractVersion pulls the major.minor version from the header line.
// The token sits between the version prefix and an optional pre-release
// suffix ("0.23.1-rc1-..." yields "0.23").
func extractVersion(headerLine string) (string, bool) {
	token := strings.TrimPrefix(headerLine, versionPrefix)
	if i := strings.Index(token, "-"); i >= 0 {
		token = token[:i]
	}
	fields := strings.Fields(token)
	if len(fields) == 0 {
		return "", false
	}
	parts := strings.Split(fields[0], ".")
	if len(parts) < 2 {
		return "", false
	}
	return parts[0] + "." + parts[1], true
}

// scanFields walks the summary lines looking for the rune count, the
// deity line, and the build-description line. The scan stops at the
// first build-description match; the other two keep the last value
// seen. runes is -1 when no rune line was found.
func scanFields(lines []string) (god string, runes int, buildLine string) {
	runes = -1

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case trimmed == "":
			continue

		case strings.HasPrefix(trimmed, runeLinePrefix):
			rest := strings.TrimPrefix(trimmed, runeLinePrefix)
			i := strings.Index(rest, runeLineMarker)
			if i < 0 {
				continue
			}
			if n, err := strconv.Atoi(strings.TrimSpace(rest[:i])); err == nil {
				runes = n
			}

		case strings.HasPrefix(trimmed, "Was ") && strings.HasSuffix(trimmed, "."):
			god = deityName(line)

		case strings.Contains(line, "the") &&
			strings.Contains(line, "(") && strings.Contains(line, ")") &&
			strings.Contains(line, "Turns:") && strings.Contains(line, "Time:"):
			return god, runes, line
		}
	}

	return god, runes, ""
}

// deityName extracts the deity from a "Was the Champion of Okawaru."
// style line: lower-case, text before the first period, "(penitent)"
// qualifier stripped, final word.
func deityName(line string) string {
	s := strings.ToLower(line)
	if i := strings.Index(s, "."); i >= 0 {
		s = s[:i]
	}
	s = strings.ReplaceAll(s, " (penitent)", "")
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// resolveBuild turns the parenthesized build token from the description
// line into species and background codes, and canonicalizes the god.
// On failure it returns a non-empty reason for the ParseError outcome.
//
// Two shapes are accepted, depending on game version:
//
//	(MiBe)               four letters, no space: split in the middle
//	(Minotaur Berserker) full phrase: species name (one or two words)
//	                     followed by the background phrase
//
// Both tokens then pass through the lookup tables, full-name table
// before abbreviation table.
func (c *Classifier) resolveBuild(buildLine, god string) (*model.BuildRecord, string) {
	_, after, found := strings.Cut(buildLine, "(")
	if !found {
		return nil, reasonBuildPrefix + buildLine
	}
	build, _, _ := strings.Cut(after, ")")
	build = strings.ToLower(build)

	var species, background string
	if !strings.Contains(build, " ") && len(build) == 4 {
		species = build[:2]
		background = build[2:]
	} else {
		words := strings.Fields(build)
		switch {
		case len(words) > 0 && c.speciesKnown(words[0]):
			species, _ = c.tables.SpeciesName(words[0])
			background = strings.Join(words[1:], " ")
		case len(words) > 1 && c.speciesKnown(words[0]+" "+words[1]):
			species, _ = c.tables.SpeciesName(words[0] + " " + words[1])
			background = strings.Join(words[2:], " ")
		default:
			return nil, reasonBuildPrefix + build
		}
	}

	background, _ = c.tables.ResolveBackground(background)
	species, _ = c.tables.ResolveSpecies(species)
	god = c.tables.ResolveGod(god)

	if len(species) != 2 || len(background) != 2 {
		return nil, reasonBuildPrefix + build
	}

	return &model.BuildRecord{
		Species:    species,
		Background: background,
		God:        god,
	}, ""
}

// speciesKnown reports whether name is in the full-name species table.
func (c *Classifier) speciesKnown(name string) bool {
	_, ok := c.tables.SpeciesName(name)
	return ok
}
