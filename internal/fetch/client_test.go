package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns body", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("morgue text"))
		}))
		defer srv.Close()

		got, err := New(5*time.Second).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "morgue text" {
			t.Errorf("body = %q", got)
		}
	})

	t.Run("sends a rotated user agent", func(t *testing.T) {
		t.Parallel()

		var ua string
		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		client := New(5*time.Second, WithUserAgents([]string{"morguelib-test/1.0"}))
		if _, err := client.Fetch(context.Background(), srv.URL); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ua != "morguelib-test/1.0" {
			t.Errorf("user agent = %q", ua)
		}
	})

	t.Run("error pages are returned as text", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "not found", http.StatusNotFound)
		}))
		defer srv.Close()

		got, err := New(5*time.Second).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("a 404 must not be a connection error, got: %v", err)
		}
		if got == "" {
			t.Error("expected error page body")
		}
	})

	t.Run("network failure wraps ErrConnection", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
		srv.Close() // refuse all connections

		_, err := New(time.Second).Fetch(context.Background(), srv.URL)
		if !errors.Is(err, ErrConnection) {
			t.Errorf("error = %v, want ErrConnection", err)
		}
	})

	t.Run("body is truncated at the size limit", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			for range 100 {
				_, _ = w.Write([]byte("0123456789"))
			}
		}))
		defer srv.Close()

		got, err := New(5*time.Second, WithMaxBodySize(64)).Fetch(context.Background(), srv.URL)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 64 {
			t.Errorf("body length = %d, want 64", len(got))
		}
	})
}

func TestRead(t *testing.T) {
	t.Parallel()

	t.Run("plain local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "morgue.txt")
		if err := os.WriteFile(path, []byte("local morgue"), 0600); err != nil {
			t.Fatal(err)
		}

		got, err := New(time.Second).Read(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "local morgue" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("gzip local file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "morgue.txt.gz")
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		gz := gzip.NewWriter(f)
		if _, err := gz.Write([]byte("compressed morgue")); err != nil {
			t.Fatal(err)
		}
		if err := gz.Close(); err != nil {
			t.Fatal(err)
		}
		if err := f.Close(); err != nil {
			t.Fatal(err)
		}

		got, err := New(time.Second).Read(context.Background(), path)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != "compressed morgue" {
			t.Errorf("content = %q", got)
		}
	})

	t.Run("missing local file", func(t *testing.T) {
		t.Parallel()

		_, err := New(time.Second).Read(context.Background(), filepath.Join(t.TempDir(), "nope.txt"))
		if err == nil {
			t.Fatal("expected error")
		}
		if errors.Is(err, ErrConnection) {
			t.Error("local read failure must not be a connection error")
		}
	})
}

func TestReadMasterFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "master.txt")
	content := "http://crawl.example/morgue-a.txt\n\n  http://crawl.example/morgue-b.txt  \n/local/morgue-c.txt\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	urls, err := ReadMasterFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"http://crawl.example/morgue-a.txt",
		"http://crawl.example/morgue-b.txt",
		"/local/morgue-c.txt",
	}
	if len(urls) != len(want) {
		t.Fatalf("got %d urls, want %d: %v", len(urls), len(want), urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Errorf("urls[%d] = %q, want %q", i, urls[i], want[i])
		}
	}
}
