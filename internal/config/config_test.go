package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestNewConfigDefaults(t *testing.T) {
	t.Parallel()

	c := NewConfig()
	if c.Wait != DefaultWait {
		t.Errorf("Wait = %v, want %v", c.Wait, DefaultWait)
	}
	if c.CrawlDepth != DefaultCrawlDepth {
		t.Errorf("CrawlDepth = %d, want %d", c.CrawlDepth, DefaultCrawlDepth)
	}
	if c.AutoSaveInterval != DefaultAutoSaveInterval {
		t.Errorf("AutoSaveInterval = %v, want %v", c.AutoSaveInterval, DefaultAutoSaveInterval)
	}
	if c.DataDir == "" {
		t.Error("DataDir should default to the XDG data directory")
	}
	if c.SavedDir() != filepath.Join(c.DataDir, "saved") {
		t.Errorf("SavedDir = %q", c.SavedDir())
	}
	if err := c.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"no data dir", func(c *Config) { c.DataDir = "" }, ErrNoDataDir},
		{"negative depth", func(c *Config) { c.CrawlDepth = -1 }, ErrInvalidDepth},
		{"negative wait", func(c *Config) { c.Wait = -time.Second }, ErrInvalidWait},
		{"jitter above one", func(c *Config) { c.Jitter = 1.5 }, ErrInvalidJitter},
		{"negative auto-save", func(c *Config) { c.AutoSaveInterval = -time.Minute }, ErrInvalidAutoSave},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewConfig()
			tt.mutate(c)
			if err := c.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, DefaultConfigFile)
	content := `
dataDir: /tmp/morgues
seeds:
  - http://crawl.akrasiac.org/rawdata/index.html
crawlDepth: 5
waitSeconds: 10
saveMorgues: true
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		t.Fatalf("failed to load config file: %v", err)
	}

	c := NewConfig()
	cf.Apply(c)

	if c.DataDir != "/tmp/morgues" {
		t.Errorf("DataDir = %q", c.DataDir)
	}
	if len(c.Seeds) != 1 || c.Seeds[0] != "http://crawl.akrasiac.org/rawdata/index.html" {
		t.Errorf("Seeds = %v", c.Seeds)
	}
	if c.CrawlDepth != 5 {
		t.Errorf("CrawlDepth = %d, want 5", c.CrawlDepth)
	}
	if c.Wait != 10*time.Second {
		t.Errorf("Wait = %v, want 10s", c.Wait)
	}
	if !c.SaveMorgues {
		t.Error("SaveMorgues should be true")
	}
	// Fields absent from the file keep their defaults.
	if c.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want default %v", c.Timeout, DefaultTimeout)
	}
}

func TestLoadConfigFileMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("err = %v, want ErrConfigNotFound", err)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	explicit := filepath.Join(dir, "custom.yml")
	if err := os.WriteFile(explicit, []byte("dataDir: /tmp\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if got := FindConfigFile(explicit); got != explicit {
		t.Errorf("FindConfigFile(explicit) = %q, want %q", got, explicit)
	}
	if got := FindConfigFile(filepath.Join(dir, "missing.yml")); got != "" {
		t.Errorf("FindConfigFile(missing) = %q, want empty", got)
	}
}
