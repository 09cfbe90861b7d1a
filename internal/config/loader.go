package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".morguelib"

// ErrConfigNotFound is returned when the configuration file does not
// exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File mirrors the YAML configuration file. All fields are optional;
// durations are given in seconds.
type File struct {
	// DataDir overrides the output directory.
	DataDir string `yaml:"dataDir"`

	// Seeds are crawl starting pages.
	Seeds []string `yaml:"seeds"`

	// MasterFiles are URL list files to parse.
	MasterFiles []string `yaml:"masterFiles"`

	// CrawlDepth overrides the number of crawl rounds.
	CrawlDepth *int `yaml:"crawlDepth"`

	// WaitSeconds overrides the pause between requests.
	WaitSeconds *int `yaml:"waitSeconds"`

	// AutoSaveMinutes overrides the mid-crawl save interval.
	AutoSaveMinutes *int `yaml:"autoSaveMinutes"`

	// TimeoutSeconds overrides the per-request HTTP timeout.
	TimeoutSeconds *int `yaml:"timeoutSeconds"`

	// CrawlTerms replaces the URL relevance terms.
	CrawlTerms []string `yaml:"crawlTerms"`

	// UserAgents replaces the built-in User-Agent pool.
	UserAgents []string `yaml:"userAgents"`

	// SaveMorgues archives winning morgue text.
	SaveMorgues *bool `yaml:"saveMorgues"`

	// SaveToDB mirrors winners into the SQLite catalog.
	SaveToDB *bool `yaml:"saveToDB"`
}

// LoadConfigFile reads a YAML configuration file. A missing file
// yields ErrConfigNotFound so callers can decide whether that matters.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Apply copies the file's set fields onto the config. Unset fields
// leave the config untouched.
func (f *File) Apply(c *Config) {
	if f.DataDir != "" {
		c.DataDir = f.DataDir
	}
	if len(f.Seeds) > 0 {
		c.Seeds = append([]string(nil), f.Seeds...)
	}
	if len(f.MasterFiles) > 0 {
		c.MasterFiles = append([]string(nil), f.MasterFiles...)
	}
	if f.CrawlDepth != nil {
		c.CrawlDepth = *f.CrawlDepth
	}
	if f.WaitSeconds != nil {
		c.Wait = time.Duration(*f.WaitSeconds) * time.Second
	}
	if f.AutoSaveMinutes != nil {
		c.AutoSaveInterval = time.Duration(*f.AutoSaveMinutes) * time.Minute
	}
	if f.TimeoutSeconds != nil {
		c.Timeout = time.Duration(*f.TimeoutSeconds) * time.Second
	}
	if len(f.CrawlTerms) > 0 {
		c.CrawlTerms = append([]string(nil), f.CrawlTerms...)
	}
	if len(f.UserAgents) > 0 {
		c.UserAgents = append([]string(nil), f.UserAgents...)
	}
	if f.SaveMorgues != nil {
		c.SaveMorgues = *f.SaveMorgues
	}
	if f.SaveToDB != nil {
		c.SaveToDB = *f.SaveToDB
	}
}

// FindConfigFile locates the configuration file. An explicit path
// wins; otherwise the working directory is checked, then the home
// directory. Empty means no file was found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
