package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values. The long waits are deliberate: DCSS
// servers are volunteer-run, and none of this work is urgent.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "morguelib"

	// DefaultWait is the pause between successive network requests,
	// applied both while crawling and while fetching morgues to parse.
	DefaultWait = 60 * time.Second

	// DefaultJitter spreads each wait by up to this fraction of
	// DefaultWait so repeated runs do not hit a server on a fixed beat.
	DefaultJitter = 0.25

	// DefaultTimeout is the per-request HTTP timeout. Morgue files are
	// small; a fetch that takes longer than this is not coming back.
	DefaultTimeout = 30 * time.Second

	// DefaultCrawlDepth is how many link-following rounds a crawl
	// performs from its seed pages.
	DefaultCrawlDepth = 3

	// DefaultAutoSaveInterval is how often a long crawl flushes
	// discovered URLs to disk mid-round.
	DefaultAutoSaveInterval = 30 * time.Minute

	// DefaultPageSuffix is the suffix a URL must carry to be fetched
	// as a server index page during crawling.
	DefaultPageSuffix = ".html"

	// DefaultPopularCount is how many top builds the search command
	// shows when popularity ranking is requested.
	DefaultPopularCount = 5

	// savedDirName is the subdirectory of the data directory where
	// winning morgue text is archived.
	savedDirName = "saved"
)

// Config holds all runtime options. It is populated from defaults,
// then the optional config file, then CLI flags.
type Config struct {
	// DataDir is where all output files live: category files, the
	// winner archive, and the catalog database.
	DataDir string

	// MasterFiles are the files holding morgue URLs to parse, one URL
	// per line. Plain, gzip, and bzip2 files are accepted.
	MasterFiles []string

	// Seeds are the crawl starting pages.
	Seeds []string

	// CrawlDepth is the number of link-following rounds per crawl.
	CrawlDepth int

	// Wait is the pause between successive network requests.
	Wait time.Duration

	// Jitter widens each wait by up to this fraction of Wait.
	Jitter float64

	// AutoSaveInterval is how often a crawl flushes discovered URLs
	// mid-round. Zero disables mid-round saves.
	AutoSaveInterval time.Duration

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration

	// CrawlTerms are the substrings a URL must contain to be fetched
	// during crawling.
	CrawlTerms []string

	// PageSuffix is the suffix a URL must carry to be fetched during
	// crawling.
	PageSuffix string

	// UserAgents, when set, replace the built-in browser User-Agent
	// pool used for HTTP requests.
	UserAgents []string

	// SaveMorgues archives the raw text of winning morgues fetched
	// over the network.
	SaveMorgues bool

	// SaveToDB mirrors winning games into the SQLite catalog.
	SaveToDB bool

	// Verbose enables debug-level log output.
	Verbose bool

	// ConfigFilePath is an explicit config file location. Empty means
	// search the working directory and then the home directory.
	ConfigFilePath string
}

// NewConfig creates a Config with all defaults applied.
func NewConfig() *Config {
	return &Config{
		DataDir:          XDGDataDir(),
		CrawlDepth:       DefaultCrawlDepth,
		Wait:             DefaultWait,
		Jitter:           DefaultJitter,
		AutoSaveInterval: DefaultAutoSaveInterval,
		Timeout:          DefaultTimeout,
		CrawlTerms:       []string{"crawl", "dcss", "morgue"},
		PageSuffix:       DefaultPageSuffix,
	}
}

// SavedDir returns the directory where winning morgue text is
// archived.
func (c *Config) SavedDir() string {
	return filepath.Join(c.DataDir, savedDirName)
}

// XDGDataDir returns the XDG data directory for morguelib.
// On Linux: ~/.local/share/morguelib
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for morguelib.
// On Linux: ~/.config/morguelib
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks the configuration and returns the first problem
// found as a sentinel error.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return ErrNoDataDir
	}
	if c.CrawlDepth < 0 {
		return ErrInvalidDepth
	}
	if c.Wait < 0 {
		return ErrInvalidWait
	}
	if c.Jitter < 0 || c.Jitter > 1 {
		return ErrInvalidJitter
	}
	if c.AutoSaveInterval < 0 {
		return ErrInvalidAutoSave
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	return nil
}
