package main

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "morguelib" {
			t.Errorf("expected use 'morguelib', got %q", cmd.Use)
		}
	})

	t.Run("has descriptions", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" || cmd.Long == "" {
			t.Error("expected non-empty descriptions")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()
		want := map[string]bool{
			"spider [seed-url...]":   false,
			"parse [master-file...]": false,
			"search":                 false,
			"catalog":                false,
			"version":                false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := want[sub.Use]; ok {
				want[sub.Use] = true
			}
		}
		for use, found := range want {
			if !found {
				t.Errorf("expected subcommand %q", use)
			}
		}
	})

	t.Run("silences usage and errors", func(t *testing.T) {
		t.Parallel()
		if !cmd.SilenceUsage || !cmd.SilenceErrors {
			t.Error("expected SilenceUsage and SilenceErrors to be true")
		}
	})
}

func TestVersionCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"version"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("failed to execute version command: %v", err)
	}
	if !strings.Contains(out.String(), "morguelib version") {
		t.Errorf("version output = %q", out.String())
	}
}

func TestSpiderCmdRequiresSeeds(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"spider", "--data-dir", t.TempDir()})

	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "no seed URLs") {
		t.Errorf("err = %v, want seed-URL error", err)
	}
}

func TestParseCmdRequiresMasterFiles(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"parse", "--data-dir", t.TempDir()})

	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "no master files") {
		t.Errorf("err = %v, want master-file error", err)
	}
}

func TestSearchCmdEmptyDataDir(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"search", "--data-dir", t.TempDir()})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("search over an empty data dir should succeed: %v", err)
	}
	if !strings.Contains(out.String(), "0 matching game(s)") {
		t.Errorf("search output = %q", out.String())
	}
}

func TestSearchCmdRejectsUnknownSpecies(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"search", "--data-dir", t.TempDir(), "--species", "balrog"})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for unknown species")
	}
}

func TestCatalogQueryMissingCatalog(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()
	cmd.SetArgs([]string{"catalog", "query", "--data-dir", filepath.Join(t.TempDir(), "empty")})

	if err := cmd.Execute(); err == nil {
		t.Error("expected error for missing catalog")
	}
}
