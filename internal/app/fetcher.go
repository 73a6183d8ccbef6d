package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/five82/leaflet/internal/bookstore"
)

const (
	defaultRetryBase = 500 * time.Millisecond
	maxBackoff       = 30 * time.Second
)

// Fetcher wraps a bookstore.Service with retries and record validation.
// It is what the UI talks to.
type Fetcher struct {
	svc     bookstore.Service
	retries int
	base    time.Duration
	sleep   func(ctx context.Context, d time.Duration) error
}

var _ bookstore.Service = (*Fetcher)(nil)

// NewFetcher retries failed reads up to retries extra times.
func NewFetcher(svc bookstore.Service, retries int) *Fetcher {
	if retries < 0 {
		retries = 0
	}
	return &Fetcher{
		svc:     svc,
		retries: retries,
		base:    defaultRetryBase,
		sleep:   sleepContext,
	}
}

// FetchBooks retrieves the catalog, dropping records that fail validation.
func (f *Fetcher) FetchBooks(ctx context.Context) ([]bookstore.Book, error) {
	return f.fetch(ctx, "catalog", f.svc.FetchBooks)
}

// FetchNewBooks retrieves the new arrivals, dropping records that fail validation.
func (f *Fetcher) FetchNewBooks(ctx context.Context) ([]bookstore.Book, error) {
	return f.fetch(ctx, "new arrivals", f.svc.FetchNewBooks)
}

// FetchBook retrieves one book with the same retry policy as the list
// fetches. A record that fails validation is an error.
func (f *Fetcher) FetchBook(ctx context.Context, id int64) (*bookstore.Book, error) {
	books, err := f.fetch(ctx, "book", func(ctx context.Context) ([]bookstore.Book, error) {
		book, err := f.svc.FetchBook(ctx, id)
		if err != nil {
			return nil, err
		}
		return []bookstore.Book{*book}, nil
	})
	if err != nil {
		return nil, err
	}
	if len(books) == 0 {
		return nil, fmt.Errorf("book %d failed validation", id)
	}
	return &books[0], nil
}

// DeleteBook removes a book. Deletes are never retried.
func (f *Fetcher) DeleteBook(ctx context.Context, id int64) error {
	if err := f.svc.DeleteBook(ctx, id); err != nil {
		log.Error().Err(err).Int64("book_id", id).Msg("delete failed")
		return err
	}
	log.Info().Int64("book_id", id).Msg("book deleted")
	return nil
}

func (f *Fetcher) fetch(ctx context.Context, what string, call func(context.Context) ([]bookstore.Book, error)) ([]bookstore.Book, error) {
	var lastErr error
	for attempt := 0; attempt <= f.retries; attempt++ {
		if attempt > 0 {
			wait := calculateBackoff(attempt-1, f.base)
			log.Warn().Err(lastErr).Str("fetch", what).Int("attempt", attempt).Dur("backoff", wait).Msg("retrying fetch")
			if err := f.sleep(ctx, wait); err != nil {
				return nil, lastErr
			}
		}

		books, err := call(ctx)
		if err == nil {
			kept := validBooks(books)
			log.Debug().Str("fetch", what).Int("books", len(kept)).Int("dropped", len(books)-len(kept)).Msg("fetch complete")
			return kept, nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			break
		}
	}
	log.Error().Err(lastErr).Str("fetch", what).Msg("fetch failed")
	return nil, lastErr
}

func validBooks(books []bookstore.Book) []bookstore.Book {
	kept := make([]bookstore.Book, 0, len(books))
	for _, b := range books {
		if err := b.Validate(); err != nil {
			log.Warn().Err(err).Int64("book_id", b.ID).Msg("dropping invalid record")
			continue
		}
		kept = append(kept, b)
	}
	return kept
}

// retryable reports whether another attempt could succeed. Client errors
// other than 408 and 429 are final.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var statusErr *bookstore.StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusRequestTimeout, statusErr.StatusCode == http.StatusTooManyRequests:
			return true
		case statusErr.StatusCode >= 400 && statusErr.StatusCode < 500:
			return false
		}
	}
	return true
}

// calculateBackoff doubles base for each consecutive failure, capped at maxBackoff.
func calculateBackoff(failures int, base time.Duration) time.Duration {
	if failures <= 0 {
		return base
	}
	d := base
	for i := 0; i < failures; i++ {
		d *= 2
		if d >= maxBackoff {
			return maxBackoff
		}
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
