package pacer

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNextDeliversInOrder(t *testing.T) {
	t.Parallel()

	urls := []string{"a", "b", "c"}
	src := New(urls, 0)

	ctx := context.Background()
	for _, want := range urls {
		got, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != want {
			t.Errorf("got %q, want %q", got, want)
		}
	}

	if _, err := src.Next(ctx); !errors.Is(err, ErrExhausted) {
		t.Errorf("error = %v, want ErrExhausted", err)
	}
	// Exhaustion is terminal.
	if _, err := src.Next(ctx); !errors.Is(err, ErrExhausted) {
		t.Errorf("second call after exhaustion = %v, want ErrExhausted", err)
	}
}

func TestNextEnforcesInterval(t *testing.T) {
	t.Parallel()

	const interval = 50 * time.Millisecond
	src := New([]string{"a", "b"}, interval)
	ctx := context.Background()

	start := time.Now()
	if _, err := src.Next(ctx); err != nil {
		t.Fatal(err)
	}
	first := time.Since(start)
	if first >= interval {
		t.Errorf("first delivery waited %v; it should be immediate", first)
	}

	if _, err := src.Next(ctx); err != nil {
		t.Fatal(err)
	}
	if elapsed := time.Since(start); elapsed < interval {
		t.Errorf("second delivery after %v, want at least %v", elapsed, interval)
	}
}

func TestNextHonorsCancellation(t *testing.T) {
	t.Parallel()

	src := New([]string{"a", "b"}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())

	if _, err := src.Next(ctx); err != nil {
		t.Fatal(err)
	}

	cancel()
	if _, err := src.Next(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestSourceCopiesInput(t *testing.T) {
	t.Parallel()

	urls := []string{"a"}
	src := New(urls, 0)
	urls[0] = "mutated"

	got, err := src.Next(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got != "a" {
		t.Errorf("got %q, want %q", got, "a")
	}
}

func TestRemaining(t *testing.T) {
	t.Parallel()

	src := New([]string{"a", "b"}, 0)
	if src.Remaining() != 2 {
		t.Errorf("remaining = %d, want 2", src.Remaining())
	}
	if _, err := src.Next(context.Background()); err != nil {
		t.Fatal(err)
	}
	if src.Remaining() != 1 {
		t.Errorf("remaining = %d, want 1", src.Remaining())
	}
}
