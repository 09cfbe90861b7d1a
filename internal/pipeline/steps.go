package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dcss-tools/morguelib/internal/classifier"
	"github.com/dcss-tools/morguelib/internal/fetch"
	"github.com/dcss-tools/morguelib/internal/model"
	"github.com/dcss-tools/morguelib/internal/pacer"
)

// ContentReader retrieves the text of a morgue from a URL or local
// path. Implemented by fetch.Client.
type ContentReader interface {
	Read(ctx context.Context, source string) (string, error)
}

// RecordWriter receives one line per classified URL. Implemented by
// report.Files.
type RecordWriter interface {
	AppendWinner(url string, record *model.BuildRecord) error
	AppendLoser(url string) error
	AppendParseError(url, reason string) error
	AppendConnectionError(url string) error
	AppendUnknownError(url, message string) error
}

// KnownIndex reports URLs recorded by previous runs. Implemented by
// known.Index.
type KnownIndex interface {
	Find() error
	Includes(url string) bool
}

// Catalog mirrors winning games into persistent storage. Implemented
// by database.CatalogDB.
type Catalog interface {
	InsertWinner(ctx context.Context, entry *model.WinnerEntry) error
}

// LoadStep reads the run's master files and fills run.URLs.
type LoadStep struct{}

// NewLoadStep creates a LoadStep.
func NewLoadStep() *LoadStep {
	return &LoadStep{}
}

// Name returns the step's name for logging.
func (s *LoadStep) Name() string {
	return "load"
}

// Do reads every master file in order. A missing or unreadable master
// file is critical: the run was asked to process it.
func (s *LoadStep) Do(_ context.Context, run *model.ParseRun) error {
	for _, path := range run.MasterFiles {
		urls, err := fetch.ReadMasterFile(path)
		if err != nil {
			return err
		}
		run.URLs = append(run.URLs, urls...)
	}
	return nil
}

// FilterKnownStep drops URLs already recorded by previous runs,
// leaving the remainder in run.Pending.
type FilterKnownStep struct {
	known KnownIndex
}

// NewFilterKnownStep creates a FilterKnownStep over the given index.
func NewFilterKnownStep(known KnownIndex) *FilterKnownStep {
	return &FilterKnownStep{known: known}
}

// Name returns the step's name for logging.
func (s *FilterKnownStep) Name() string {
	return "filter-known"
}

// Do refreshes the index and partitions run.URLs. URLs repeated in the
// master files are also collapsed to their first occurrence.
func (s *FilterKnownStep) Do(_ context.Context, run *model.ParseRun) error {
	if err := s.known.Find(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(run.URLs))
	for _, u := range run.URLs {
		if _, ok := seen[u]; ok {
			run.Skipped++
			continue
		}
		seen[u] = struct{}{}
		if s.known.Includes(u) {
			run.Skipped++
			continue
		}
		run.Pending = append(run.Pending, u)
	}
	return nil
}

// ClassifyStep fetches and classifies every pending URL, writing one
// output line per URL. This is the only step that touches the network,
// and it does so one URL at a time through the pacer.
type ClassifyStep struct {
	reader     ContentReader
	classifier *classifier.Classifier
	files      RecordWriter
	catalog    Catalog
	wait       time.Duration
	jitter     float64
	logger     *slog.Logger
}

// ClassifyOption configures a ClassifyStep.
type ClassifyOption func(*ClassifyStep)

// WithCatalog mirrors winners into persistent storage as they are
// found.
func WithCatalog(c Catalog) ClassifyOption {
	return func(s *ClassifyStep) {
		s.catalog = c
	}
}

// WithWait sets the pause between successive URL fetches.
func WithWait(d time.Duration) ClassifyOption {
	return func(s *ClassifyStep) {
		s.wait = d
	}
}

// WithJitter spreads each pause by a random fraction of the wait.
func WithJitter(fraction float64) ClassifyOption {
	return func(s *ClassifyStep) {
		s.jitter = fraction
	}
}

// WithStepLogger sets the logger used for per-URL progress.
func WithStepLogger(logger *slog.Logger) ClassifyOption {
	return func(s *ClassifyStep) {
		s.logger = logger
	}
}

// NewClassifyStep creates a ClassifyStep reading morgues through
// reader and writing outcomes through files.
func NewClassifyStep(reader ContentReader, cls *classifier.Classifier, files RecordWriter, opts ...ClassifyOption) *ClassifyStep {
	s := &ClassifyStep{
		reader:     reader,
		classifier: cls,
		files:      files,
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the step's name for logging.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do processes run.Pending sequentially. A fetch or parse problem
// consumes the URL and updates a counter; only a failed output write
// or cancellation aborts the run.
func (s *ClassifyStep) Do(ctx context.Context, run *model.ParseRun) error {
	src := pacer.New(run.Pending, s.wait, pacer.WithJitter(s.jitter))

	for {
		url, err := src.Next(ctx)
		if errors.Is(err, pacer.ErrExhausted) {
			return nil
		}
		if err != nil {
			return err
		}

		text, err := s.reader.Read(ctx, url)
		if err != nil {
			if writeErr := s.recordFailure(run, url, err); writeErr != nil {
				return writeErr
			}
			continue
		}

		outcome := s.classifier.Classify(text, url)
		switch outcome.Kind {
		case model.KindWinner:
			if err := s.files.AppendWinner(url, outcome.Record); err != nil {
				return err
			}
			run.Winners++
			s.saveToCatalog(ctx, url, outcome.Record)
		case model.KindLoser:
			if err := s.files.AppendLoser(url); err != nil {
				return err
			}
			run.Losers++
		case model.KindParseError:
			if err := s.files.AppendParseError(url, outcome.Reason); err != nil {
				return err
			}
			run.ParseErrors++
		}

		s.logger.Debug("classified morgue",
			"url", url,
			"outcome", outcome.Kind.String(),
			"remaining", src.Remaining())
	}
}

// recordFailure writes the error line for a URL whose text could not
// be read.
func (s *ClassifyStep) recordFailure(run *model.ParseRun, url string, err error) error {
	if errors.Is(err, fetch.ErrConnection) {
		run.ConnectionErrors++
		s.logger.Debug("connection failed", "url", url, "error", err)
		return s.files.AppendConnectionError(url)
	}
	run.UnknownErrors++
	s.logger.Debug("read failed", "url", url, "error", err)
	return s.files.AppendUnknownError(url, err.Error())
}

// saveToCatalog mirrors one winner into the catalog. Catalog problems
// are logged, not fatal: the winners file already has the record.
func (s *ClassifyStep) saveToCatalog(ctx context.Context, url string, record *model.BuildRecord) {
	if s.catalog == nil {
		return
	}
	entry := &model.WinnerEntry{URL: url, Record: *record}
	if err := s.catalog.InsertWinner(ctx, entry); err != nil {
		s.logger.Warn("failed to catalog winner", "url", url, "error", err)
	}
}

// SummaryStep logs the final counters of a run.
type SummaryStep struct {
	logger *slog.Logger
}

// NewSummaryStep creates a SummaryStep logging through the given
// logger.
func NewSummaryStep(logger *slog.Logger) *SummaryStep {
	if logger == nil {
		logger = slog.Default()
	}
	return &SummaryStep{logger: logger}
}

// Name returns the step's name for logging.
func (s *SummaryStep) Name() string {
	return "summary"
}

// Do logs what the run did.
func (s *SummaryStep) Do(_ context.Context, run *model.ParseRun) error {
	s.logger.Info("run finished",
		"master_files", len(run.MasterFiles),
		"urls", len(run.URLs),
		"skipped", run.Skipped,
		"processed", run.Processed(),
		"winners", run.Winners,
		"losers", run.Losers,
		"parse_errors", run.ParseErrors,
		"connection_errors", run.ConnectionErrors,
		"unknown_errors", run.UnknownErrors,
	)
	return nil
}
