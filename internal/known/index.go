package known

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dcss-tools/morguelib/internal/fetch"
)

// Index is the deduplication index over previously-written output
// files. Construct with New, populate with Find, then query with
// Includes. Find may be called again to pick up files written since the
// last call; it rebuilds the whole index.
type Index struct {
	prefixes []string
	dirs     []string

	mu   sync.Mutex
	keys map[string]struct{}
}

// New creates an Index that scans the given directories for files whose
// base name starts with any of the given prefixes. Plain, ".gz", and
// ".bz2" files are all read.
func New(prefixes, dirs []string) *Index {
	return &Index{
		prefixes: append([]string(nil), prefixes...),
		dirs:     append([]string(nil), dirs...),
		keys:     make(map[string]struct{}),
	}
}

// Find loads the known URL set from disk, replacing any previously
// loaded state. Files are read concurrently; this is purely local I/O,
// so the politeness constraints on network access do not apply.
func (i *Index) Find() error {
	keys := make(map[string]struct{})
	var mu sync.Mutex

	var g errgroup.Group
	for _, dir := range i.dirs {
		for _, prefix := range i.prefixes {
			matches, err := filepath.Glob(filepath.Join(dir, prefix+"*"))
			if err != nil {
				return fmt.Errorf("failed to glob %s/%s*: %w", dir, prefix, err)
			}
			for _, path := range matches {
				g.Go(func() error {
					urls, err := loadURLs(path)
					if err != nil {
						return err
					}
					mu.Lock()
					for _, u := range urls {
						keys[hashKey(u)] = struct{}{}
					}
					mu.Unlock()
					return nil
				})
			}
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	i.mu.Lock()
	i.keys = keys
	i.mu.Unlock()
	return nil
}

// Includes reports whether url was recorded by any previous run.
func (i *Index) Includes(url string) bool {
	i.mu.Lock()
	defer i.mu.Unlock()
	_, ok := i.keys[hashKey(url)]
	return ok
}

// Len returns the number of known URLs.
func (i *Index) Len() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return len(i.keys)
}

// loadURLs extracts the leading URL field from every line of one
// output file.
func loadURLs(path string) ([]string, error) {
	text, err := fetch.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read known-morgue file: %w", err)
	}

	var urls []string
	for line := range strings.Lines(text) {
		fields := strings.Fields(line)
		if len(fields) > 0 {
			urls = append(urls, fields[0])
		}
	}
	return urls, nil
}

// hashKey maps a URL to its in-memory key. URLs are compared after
// trimming only; a trailing slash or query string difference is a
// different URL.
func hashKey(url string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(url)))
	return hex.EncodeToString(sum[:])
}
