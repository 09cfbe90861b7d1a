package pacer

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// ErrExhausted is returned by Next once every URL has been delivered.
var ErrExhausted = errors.New("url source exhausted")

// Source yields the members of a URL collection one at a time, blocking
// between deliveries so that successive deliveries are at least the
// configured interval apart. The first delivery is immediate.
type Source struct {
	urls     []string
	interval time.Duration
	jitter   float64
	next     int
	last     time.Time
}

// Option configures a Source.
type Option func(*Source)

// WithJitter adds up to fraction*interval of random extra wait to each
// delivery, so repeated runs do not hit a server on a fixed beat.
// Fractions outside [0, 1] are clamped.
func WithJitter(fraction float64) Option {
	return func(s *Source) {
		s.jitter = min(max(fraction, 0), 1)
	}
}

// New creates a Source over urls with the given minimum interval.
// The slice is copied; later mutation of urls does not affect the
// Source.
func New(urls []string, interval time.Duration, opts ...Option) *Source {
	s := &Source{
		urls:     append([]string(nil), urls...),
		interval: interval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Remaining returns how many URLs have not yet been delivered.
func (s *Source) Remaining() int {
	return len(s.urls) - s.next
}

// Next blocks until the minimum interval since the previous delivery
// has elapsed, then returns the next URL. It returns ErrExhausted after
// the final URL, or the context error if ctx is cancelled while
// waiting.
func (s *Source) Next(ctx context.Context) (string, error) {
	if s.next >= len(s.urls) {
		return "", ErrExhausted
	}

	if !s.last.IsZero() {
		wait := s.interval
		if s.jitter > 0 {
			wait += time.Duration(rand.Float64() * s.jitter * float64(s.interval))
		}
		if elapsed := time.Since(s.last); elapsed < wait {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(wait - elapsed):
			}
		}
	}

	url := s.urls[s.next]
	s.next++
	s.last = time.Now()
	return url, nil
}
