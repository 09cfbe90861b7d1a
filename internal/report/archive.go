package report

import (
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Archive stores the raw text of winning morgues as gzip files so a
// build can be re-examined without fetching the morgue again.
type Archive struct {
	dir string
}

// NewArchive returns an Archive that writes under dir.
func NewArchive(dir string) *Archive {
	return &Archive{dir: dir}
}

// Path derives the archive file name from the morgue URL: the scheme
// is stripped and path separators become underscores.
func (a *Archive) Path(url string) string {
	name := strings.TrimSpace(url)
	name = strings.TrimPrefix(name, "https://")
	name = strings.TrimPrefix(name, "http://")
	name = strings.ReplaceAll(name, "/", "_")
	return filepath.Join(a.dir, name+".txt.gz")
}

// Save writes the morgue text compressed. An existing archive for the
// same URL is overwritten.
func (a *Archive) Save(url, text string) error {
	if err := os.MkdirAll(a.dir, dirPerm); err != nil {
		return fmt.Errorf("failed to create archive directory: %w", err)
	}

	file, err := os.Create(a.Path(url))
	if err != nil {
		return fmt.Errorf("failed to create archive file: %w", err)
	}
	defer file.Close() //nolint:errcheck

	zw := gzip.NewWriter(file)
	if _, err := zw.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write archive file: %w", err)
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to close archive file: %w", err)
	}
	return file.Close()
}
