package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dcss-tools/morguelib/internal/model"
)

// Prefixes of the per-category output files. A run's files are the
// prefix plus a shared timestamp, e.g. winners_20190103_120000.txt.
const (
	WinnersPrefix      = "winners_"
	LosersPrefix       = "losers_"
	ParserErrorsPrefix = "parser_errors_"
	MorgueURLsPrefix   = "morgue_urls_"
)

// stampFormat is the timestamp suffix shared by all files of one run.
const stampFormat = "20060102_150405"

// filePerm is the permission used for output files and directories.
const (
	filePerm = 0o600
	dirPerm  = 0o700
)

// CategoryPrefixes returns the prefixes of all category files that
// carry a morgue URL in their first field. The deduplication index
// scans files matching these prefixes.
func CategoryPrefixes() []string {
	return []string{WinnersPrefix, LosersPrefix, ParserErrorsPrefix, MorgueURLsPrefix}
}

// Files appends classification results and discovered URLs to the
// per-category output files of a single run.
type Files struct {
	dataDir string
	stamp   string
}

// NewFiles returns a Files whose output lands in dataDir, with all
// file names stamped from started.
func NewFiles(dataDir string, started time.Time) *Files {
	return &Files{
		dataDir: dataDir,
		stamp:   started.Format(stampFormat),
	}
}

// Path returns the full path of the category file for the given prefix.
func (f *Files) Path(prefix string) string {
	return filepath.Join(f.dataDir, prefix+f.stamp+".txt")
}

// AppendWinner records a winning morgue together with its build record.
func (f *Files) AppendWinner(url string, record *model.BuildRecord) error {
	return f.appendLine(WinnersPrefix, model.FormatWinnerLine(url, record))
}

// AppendLoser records a morgue that parsed cleanly but did not win.
func (f *Files) AppendLoser(url string) error {
	return f.appendLine(LosersPrefix, strings.TrimSpace(url)+"\n")
}

// AppendParseError records a morgue that failed structural validation.
func (f *Files) AppendParseError(url, reason string) error {
	return f.appendError(url, "ParserError", reason)
}

// AppendUnknownError records a morgue that failed for an unforeseen
// reason, keeping the message for later inspection.
func (f *Files) AppendUnknownError(url, message string) error {
	return f.appendError(url, "UnknownError", message)
}

// AppendConnectionError records a URL that could not be fetched. The
// line carries no message so the URL can be retried in a later run.
func (f *Files) AppendConnectionError(url string) error {
	return f.appendLine(ParserErrorsPrefix, strings.TrimSpace(url)+" ConnectionError\n")
}

func (f *Files) appendError(url, kind, message string) error {
	message = strings.ReplaceAll(strings.TrimSpace(message), "\n", "    ")
	line := fmt.Sprintf("%s  %s: %s\n", strings.TrimSpace(url), kind, message)
	return f.appendLine(ParserErrorsPrefix, line)
}

// AppendURLs writes discovered morgue URLs, one per line, sorted.
// URLs that do not start with "http" are dropped.
func (f *Files) AppendURLs(urls []string) error {
	lines := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimSpace(u)
		if !strings.HasPrefix(u, "http") {
			continue
		}
		lines = append(lines, u)
	}
	if len(lines) == 0 {
		return nil
	}
	sort.Strings(lines)
	return f.appendLine(MorgueURLsPrefix, strings.Join(lines, "\n")+"\n")
}

func (f *Files) appendLine(prefix, line string) error {
	if err := os.MkdirAll(f.dataDir, dirPerm); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	file, err := os.OpenFile(f.Path(prefix), os.O_APPEND|os.O_CREATE|os.O_WRONLY, filePerm)
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}
