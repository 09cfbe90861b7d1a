package report

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestArchiveSave(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := NewArchive(dir)
	url := "http://crawl.akrasiac.org/rawdata/Demo/morgue-Demo-20190103-120000.txt"
	text := " Dungeon Crawl Stone Soup version 0.23.1\nEscaped with the Orb\n"

	if err := a.Save(url, text); err != nil {
		t.Fatalf("failed to save archive: %v", err)
	}

	wantName := "crawl.akrasiac.org_rawdata_Demo_morgue-Demo-20190103-120000.txt.txt.gz"
	path := a.Path(url)
	if filepath.Base(path) != wantName {
		t.Errorf("archive name = %q, want %q", filepath.Base(path), wantName)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer file.Close() //nolint:errcheck

	zr, err := gzip.NewReader(file)
	if err != nil {
		t.Fatalf("failed to open gzip reader: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read archive: %v", err)
	}
	if string(data) != text {
		t.Errorf("archive content = %q, want %q", string(data), text)
	}
}

func TestArchiveSaveOverwrites(t *testing.T) {
	t.Parallel()

	a := NewArchive(t.TempDir())
	url := "https://example.com/morgue.txt"

	if err := a.Save(url, "first"); err != nil {
		t.Fatalf("failed to save archive: %v", err)
	}
	if err := a.Save(url, "second"); err != nil {
		t.Fatalf("failed to save archive again: %v", err)
	}

	file, err := os.Open(a.Path(url))
	if err != nil {
		t.Fatalf("failed to open archive: %v", err)
	}
	defer file.Close() //nolint:errcheck

	zr, err := gzip.NewReader(file)
	if err != nil {
		t.Fatalf("failed to open gzip reader: %v", err)
	}
	data, err := io.ReadAll(zr)
	if err != nil {
		t.Fatalf("failed to read archive: %v", err)
	}
	if !strings.Contains(string(data), "second") {
		t.Errorf("archive content = %q, want the later save", string(data))
	}
}
