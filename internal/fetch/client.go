package fetch

import (
	"compress/bzip2"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"net/http"
	"os"
	"strings"
	"time"
)

// DefaultMaxBodySize limits how much of a response body is read.
// Morgue files are a few hundred kilobytes at most; anything larger is
// not a morgue.
const DefaultMaxBodySize = 2 * 1024 * 1024 // 2MB

// defaultUserAgents is the rotation list used when none is configured.
// Plain browser strings: morgue servers occasionally reject obvious
// bot agents.
var defaultUserAgents = []string{
	"Mozilla/5.0 (X11; Linux x86_64; rv:109.0) Gecko/20100101 Firefox/115.0",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (Version/17.0 Safari/605.1.15)",
}

// Client reads morgue text from URLs and local paths.
// A single Client serves an entire run; it holds no per-request state
// beyond the shared http.Client.
type Client struct {
	hc          *http.Client
	userAgents  []string
	maxBodySize int64
}

// Option configures a Client.
type Option func(*Client)

// WithUserAgents replaces the User-Agent rotation list.
func WithUserAgents(agents []string) Option {
	return func(c *Client) {
		if len(agents) > 0 {
			c.userAgents = agents
		}
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(c *Client) {
		c.maxBodySize = size
	}
}

// WithHTTPClient replaces the underlying HTTP client. Used by tests and
// by callers that need custom transport settings.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.hc = hc
	}
}

// New creates a Client with the given per-request timeout.
func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		hc:          &http.Client{Timeout: timeout},
		userAgents:  defaultUserAgents,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch retrieves the body of a single URL. Transport failures are
// wrapped with ErrConnection. The HTTP status is deliberately ignored:
// an error page is returned as text and fails classification on its
// own, exactly like any other non-morgue page.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimSpace(rawURL), nil)
	if err != nil {
		return "", fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", c.userAgents[rand.IntN(len(c.userAgents))])

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrConnection, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	if err != nil {
		return "", fmt.Errorf("%w: reading body: %v", ErrConnection, err)
	}
	return string(body), nil
}

// Read returns the morgue text behind source: URLs are fetched over
// HTTP, everything else is treated as a local path, decompressed by
// extension.
func (c *Client) Read(ctx context.Context, source string) (string, error) {
	source = strings.TrimSpace(source)
	if strings.HasPrefix(source, "http") {
		return c.Fetch(ctx, source)
	}
	return ReadFile(source)
}

// ReadFile reads a plain, gzip, or bzip2 file from disk, decompressing
// by extension. Shared by the dedup index and the reporting tools,
// which read the same output files this tool writes.
func ReadFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	var r io.Reader = f
	switch {
	case strings.HasSuffix(path, ".bz2"):
		r = bzip2.NewReader(f)
	case strings.HasSuffix(path, ".gz"):
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("failed to read gzip file: %w", err)
		}
		defer gz.Close()
		r = gz
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return string(data), nil
}

// ReadMasterFile reads a master file listing one morgue URL or path per
// line. Blank lines are dropped and each entry is trimmed. Master files
// may be plain text, gzip, or bzip2.
func ReadMasterFile(path string) ([]string, error) {
	text, err := ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read master file: %w", err)
	}

	var urls []string
	for line := range strings.Lines(text) {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			urls = append(urls, trimmed)
		}
	}
	return urls, nil
}
