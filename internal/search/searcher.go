package search

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dcss-tools/morguelib/internal/fetch"
	"github.com/dcss-tools/morguelib/internal/model"
	"github.com/dcss-tools/morguelib/internal/report"
)

// Searcher loads and queries the winners files of a data directory.
type Searcher struct {
	dirs   []string
	logger *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithLogger sets the logger used for progress and skipped lines.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger
	}
}

// NewSearcher creates a Searcher over the winners files found in the
// given directories.
func NewSearcher(dirs []string, opts ...Option) *Searcher {
	s := &Searcher{
		dirs:   append([]string(nil), dirs...),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load reads every winners file, including compressed ones, and
// returns the recorded games sorted by URL. A URL recorded more than
// once yields a single entry. Lines that do not parse are logged and
// skipped rather than failing the whole load.
func (s *Searcher) Load() ([]model.WinnerEntry, error) {
	byURL := make(map[string]model.WinnerEntry)
	var mu sync.Mutex

	var g errgroup.Group
	for _, dir := range s.dirs {
		matches, err := filepath.Glob(filepath.Join(dir, report.WinnersPrefix+"*"))
		if err != nil {
			return nil, fmt.Errorf("failed to glob %s: %w", dir, err)
		}
		for _, path := range matches {
			g.Go(func() error {
				entries, err := s.loadFile(path)
				if err != nil {
					return err
				}
				mu.Lock()
				for _, e := range entries {
					byURL[e.URL] = e
				}
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	entries := make([]model.WinnerEntry, 0, len(byURL))
	for _, e := range byURL {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].URL < entries[j].URL
	})
	return entries, nil
}

// loadFile parses the winner lines of one file.
func (s *Searcher) loadFile(path string) ([]model.WinnerEntry, error) {
	text, err := fetch.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read winners file: %w", err)
	}

	var entries []model.WinnerEntry
	for line := range strings.Lines(text) {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		entry, err := model.ParseWinnerLine(line)
		if err != nil {
			s.logger.Warn("skipping malformed winner line", "file", path, "error", err)
			continue
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// Search loads the winners files, applies the criteria, and ranks
// build popularity among the matches. topN bounds the popularity list;
// zero omits it.
func (s *Searcher) Search(c Criteria, topN int) (*report.SearchResults, error) {
	entries, err := s.Load()
	if err != nil {
		return nil, err
	}

	matches := Filter(entries, c)
	s.logger.Info("search finished",
		"loaded", len(entries),
		"matched", len(matches))

	return &report.SearchResults{
		Query:   c.String(),
		Entries: matches,
		Popular: Popular(matches, topN),
	}, nil
}

// Filter returns the entries satisfying the criteria, preserving
// order.
func Filter(entries []model.WinnerEntry, c Criteria) []model.WinnerEntry {
	out := make([]model.WinnerEntry, 0, len(entries))
	for _, e := range entries {
		if c.Matches(&e) {
			out = append(out, e)
		}
	}
	return out
}

// Popular counts wins per species+background pair and returns the
// topN most frequent, most wins first. Pairs with equal counts are
// ordered by build code.
func Popular(entries []model.WinnerEntry, topN int) []report.BuildCount {
	if topN <= 0 {
		return nil
	}

	counts := make(map[string]int)
	for _, e := range entries {
		counts[e.Record.Species+e.Record.Background]++
	}

	ranked := make([]report.BuildCount, 0, len(counts))
	for build, count := range counts {
		ranked = append(ranked, report.BuildCount{Build: build, Count: count})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return ranked[i].Build < ranked[j].Build
	})

	if len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}
