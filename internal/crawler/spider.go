package crawler

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/dcss-tools/morguelib/internal/pacer"
)

// Spider defaults. The wait is deliberately long: DCSS servers are
// volunteer-run and a crawl is never urgent.
const (
	DefaultWait             = 60 * time.Second
	DefaultAutoSaveInterval = 30 * time.Minute
	DefaultPageSuffix       = ".html"
)

// DefaultTerms are the substrings a URL must contain, besides the page
// suffix, to be considered part of a DCSS server's morgue tree.
func DefaultTerms() []string {
	return []string{"crawl", "dcss", "morgue"}
}

// Fetcher retrieves the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Checkpoint receives batches of discovered URLs.
type Checkpoint interface {
	AppendURLs(urls []string) error
}

// KnownSet reports URLs already recorded by previous runs. Find
// refreshes the set from disk.
type KnownSet interface {
	Find() error
	Includes(url string) bool
}

// Spider crawls DCSS server pages breadth-first and reports the morgue
// URLs it finds.
type Spider struct {
	fetcher    Fetcher
	checkpoint Checkpoint
	known      KnownSet
	wait       time.Duration
	jitter     float64
	autoSave   time.Duration
	terms      []string
	pageSuffix string
	logger     *slog.Logger
}

// SpiderOption configures a Spider.
type SpiderOption func(*Spider)

// WithWait sets the delay between page fetches.
func WithWait(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.wait = d
	}
}

// WithJitter spreads each delay by a random fraction of the wait.
func WithJitter(fraction float64) SpiderOption {
	return func(s *Spider) {
		s.jitter = fraction
	}
}

// WithAutoSaveInterval sets how often discovered URLs are flushed to
// the checkpoint mid-round. Zero disables mid-round saves.
func WithAutoSaveInterval(d time.Duration) SpiderOption {
	return func(s *Spider) {
		s.autoSave = d
	}
}

// WithTerms replaces the relevance terms.
func WithTerms(terms []string) SpiderOption {
	return func(s *Spider) {
		s.terms = terms
	}
}

// WithPageSuffix replaces the suffix a URL must carry to be fetched.
func WithPageSuffix(suffix string) SpiderOption {
	return func(s *Spider) {
		s.pageSuffix = suffix
	}
}

// WithCheckpoint sets the writer that receives discovered URLs.
func WithCheckpoint(c Checkpoint) SpiderOption {
	return func(s *Spider) {
		s.checkpoint = c
	}
}

// WithKnownSet drops URLs already recorded by previous runs before
// they reach the checkpoint.
func WithKnownSet(k KnownSet) SpiderOption {
	return func(s *Spider) {
		s.known = k
	}
}

// WithSpiderLogger sets the logger used for crawl progress.
func WithSpiderLogger(logger *slog.Logger) SpiderOption {
	return func(s *Spider) {
		s.logger = logger
	}
}

// NewSpider creates a Spider that fetches pages through the given
// Fetcher.
func NewSpider(fetcher Fetcher, opts ...SpiderOption) *Spider {
	s := &Spider{
		fetcher:    fetcher,
		wait:       DefaultWait,
		autoSave:   DefaultAutoSaveInterval,
		terms:      DefaultTerms(),
		pageSuffix: DefaultPageSuffix,
		logger:     slog.New(slog.DiscardHandler),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// crawlState tracks one Crawl invocation.
type crawlState struct {
	// visited holds every URL that has been part of a frontier.
	visited map[string]struct{}

	// saved holds URLs already flushed to the checkpoint, so auto-save
	// and the end-of-round flush never write a URL twice.
	saved map[string]struct{}
}

// Crawl walks the link graph breadth-first from the seed URLs for
// maxDepth rounds and returns every URL visited or discovered. With
// maxDepth 0 no page is fetched and the result is the seed set.
//
// Pages that fail to fetch or parse are skipped; a crawl keeps going
// as long as the frontier is not empty. Crawl returns early only when
// the context is cancelled or the checkpoint cannot be written.
func (s *Spider) Crawl(ctx context.Context, seeds []string, maxDepth int) (map[string]struct{}, error) {
	st := &crawlState{
		visited: make(map[string]struct{}, len(seeds)),
		saved:   make(map[string]struct{}),
	}

	frontier := make([]string, 0, len(seeds))
	for _, u := range seeds {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		if _, ok := st.visited[u]; ok {
			continue
		}
		st.visited[u] = struct{}{}
		frontier = append(frontier, u)
	}

	for depth := maxDepth; depth > 0 && len(frontier) > 0; depth-- {
		s.logger.Info("starting crawl round",
			"remaining_depth", depth,
			"frontier", len(frontier))

		discovered, roundErr := s.crawlRound(ctx, frontier, st)

		fresh := make([]string, 0, len(discovered))
		for u := range discovered {
			if _, ok := st.visited[u]; ok {
				continue
			}
			st.visited[u] = struct{}{}
			fresh = append(fresh, u)
		}
		sort.Strings(fresh)

		if err := s.flush(fresh, st); err != nil {
			return st.visited, err
		}
		if roundErr != nil {
			return st.visited, roundErr
		}

		frontier = fresh
	}

	return st.visited, nil
}

// crawlRound fetches every relevant page of the frontier and returns
// the union of their links.
func (s *Spider) crawlRound(ctx context.Context, frontier []string, st *crawlState) (map[string]struct{}, error) {
	pages := make([]string, 0, len(frontier))
	for _, u := range frontier {
		if s.relevant(u) {
			pages = append(pages, u)
		}
	}

	discovered := make(map[string]struct{})
	src := pacer.New(pages, s.wait, pacer.WithJitter(s.jitter))
	lastSave := time.Now()

	for {
		pageURL, err := src.Next(ctx)
		if errors.Is(err, pacer.ErrExhausted) {
			break
		}
		if err != nil {
			return discovered, err
		}

		links, err := s.pageLinks(ctx, pageURL)
		if err != nil {
			s.logger.Debug("skipping page", "url", pageURL, "error", err)
			continue
		}
		for _, l := range links {
			discovered[l] = struct{}{}
		}

		if s.autoSave > 0 && time.Since(lastSave) >= s.autoSave {
			if err := s.flush(s.unvisited(discovered, st), st); err != nil {
				return discovered, err
			}
			lastSave = time.Now()
		}
	}

	return discovered, nil
}

// pageLinks fetches one page and extracts its links.
func (s *Spider) pageLinks(ctx context.Context, pageURL string) ([]string, error) {
	body, err := s.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	parser, err := NewParser(pageURL)
	if err != nil {
		return nil, err
	}
	return parser.Links(strings.NewReader(body))
}

// unvisited returns the URLs of the set that are in neither the
// visited nor the saved set, sorted.
func (s *Spider) unvisited(urls map[string]struct{}, st *crawlState) []string {
	out := make([]string, 0, len(urls))
	for u := range urls {
		if _, ok := st.visited[u]; ok {
			continue
		}
		if _, ok := st.saved[u]; ok {
			continue
		}
		out = append(out, u)
	}
	sort.Strings(out)
	return out
}

// flush writes new URLs to the checkpoint, dropping URLs recorded by
// previous runs. Without a checkpoint writer flush is a no-op.
func (s *Spider) flush(urls []string, st *crawlState) error {
	if s.checkpoint == nil {
		return nil
	}

	fresh := make([]string, 0, len(urls))
	if s.known != nil {
		if err := s.known.Find(); err != nil {
			return err
		}
	}
	for _, u := range urls {
		if _, ok := st.saved[u]; ok {
			continue
		}
		if s.known != nil && s.known.Includes(u) {
			continue
		}
		fresh = append(fresh, u)
	}
	if len(fresh) == 0 {
		s.logger.Info("no new morgues found")
		return nil
	}

	if err := s.checkpoint.AppendURLs(fresh); err != nil {
		return err
	}
	for _, u := range fresh {
		st.saved[u] = struct{}{}
	}
	s.logger.Info("saved discovered urls", "count", len(fresh))
	return nil
}

// relevant reports whether a URL looks like a DCSS server page worth
// fetching: it must end with the page suffix and mention one of the
// relevance terms.
func (s *Spider) relevant(rawURL string) bool {
	lower := strings.ToLower(rawURL)
	if !strings.HasSuffix(lower, s.pageSuffix) {
		return false
	}
	for _, term := range s.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
