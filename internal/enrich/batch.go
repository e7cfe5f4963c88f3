package enrich

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/lepinkainen/bibliotheca/internal/library"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
	"github.com/lepinkainen/bibliotheca/internal/ratelimit"
)

const (
	// DefaultMaxPerRun caps remote lookups in a single batch run.
	DefaultMaxPerRun = 5
	// DefaultPause is the fixed delay between successive remote calls.
	DefaultPause = time.Second
)

// BookStore is the slice of the storage gateway the driver needs.
type BookStore interface {
	LoadBooks() ([]library.Book, error)
	SaveBooks(books []library.Book) error
}

// Lookup is the slice of the metadata client the driver needs.
type Lookup interface {
	GetBookDetails(ctx context.Context, isbn string) (*openlibrary.BookDetail, error)
	SearchByTitle(ctx context.Context, title string, limit int) ([]openlibrary.SearchHit, error)
}

// Batch opportunistically backfills metadata for books lacking it. Runs are
// strictly sequential, capped and best-effort: nothing is retried, a failed
// candidate is skipped, and there is no persistent cursor between runs.
type Batch struct {
	store     BookStore
	client    Lookup
	maxPerRun int
	pause     time.Duration
	sleep     func(ctx context.Context, d time.Duration) error
	refresh   func(enriched int)
}

// BatchOption configures a Batch driver.
type BatchOption func(*Batch)

// WithMaxPerRun overrides the per-run lookup cap.
func WithMaxPerRun(n int) BatchOption {
	return func(b *Batch) {
		if n > 0 {
			b.maxPerRun = n
		}
	}
}

// WithPause overrides the fixed inter-call delay.
func WithPause(pause time.Duration) BatchOption {
	return func(b *Batch) {
		if pause >= 0 {
			b.pause = pause
		}
	}
}

// WithSleep replaces the sleep function. Tests use this to observe pauses
// without waiting for them.
func WithSleep(sleep func(ctx context.Context, d time.Duration) error) BatchOption {
	return func(b *Batch) {
		if sleep != nil {
			b.sleep = sleep
		}
	}
}

// WithRefresh registers a hook invoked after a run that enriched at least
// one record, receiving the count.
func WithRefresh(refresh func(enriched int)) BatchOption {
	return func(b *Batch) {
		b.refresh = refresh
	}
}

// NewBatch creates a batch driver over the given store and client.
func NewBatch(store BookStore, client Lookup, opts ...BatchOption) *Batch {
	b := &Batch{
		store:     store,
		client:    client,
		maxPerRun: DefaultMaxPerRun,
		pause:     DefaultPause,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.sleep == nil {
		b.sleep = limiterSleep(b.pause)
	}
	return b
}

// limiterSleep paces successive remote calls through a fixed-interval rate
// limiter. The initial token is drained so the first wait already pauses
// for the full interval.
func limiterSleep(pause time.Duration) func(ctx context.Context, d time.Duration) error {
	limiter := ratelimit.NewEvery("OpenLibrary batch", pause)
	limiter.Allow()
	return func(ctx context.Context, _ time.Duration) error {
		return limiter.Wait(ctx)
	}
}

// Run walks the collection once and returns the number of records enriched.
// Candidates are unenriched books that carry an ISBN or a title, taken in
// collection order up to the cap. A per-candidate failure is logged and
// skipped; it never aborts the batch.
func (b *Batch) Run(ctx context.Context) (int, error) {
	books, err := b.store.LoadBooks()
	if err != nil {
		return 0, err
	}

	var candidates []library.Book
	for _, book := range books {
		if !book.EnrichedFromAPI && (book.ISBN != "" || book.Title != "") {
			candidates = append(candidates, book)
		}
	}
	if len(candidates) == 0 {
		return 0, nil
	}
	if len(candidates) > b.maxPerRun {
		candidates = candidates[:b.maxPerRun]
	}

	enriched := 0
	for _, candidate := range candidates {
		remote, found, err := b.lookup(ctx, candidate)
		switch {
		case err != nil:
			slog.Warn("Enrichment failed, skipping", "title", candidate.Title, "error", err)
		case found:
			if err := b.persist(books, candidate.ID, remote); err != nil {
				slog.Warn("Persisting enriched book failed, skipping", "title", candidate.Title, "error", err)
			} else {
				enriched++
				slog.Info("Enriched book", "title", candidate.Title)
			}
		}

		// Fixed pause after every remote call, success or not, to bound
		// the request rate against the service.
		if err := b.sleep(ctx, b.pause); err != nil {
			return enriched, err
		}
	}

	if enriched > 0 && b.refresh != nil {
		b.refresh(enriched)
	}
	return enriched, nil
}

// lookup fetches remote metadata for one candidate: by ISBN when present,
// otherwise by a single-hit title search. A candidate with neither is
// skipped without counting as a failure. Not-found is a skip, not an error.
func (b *Batch) lookup(ctx context.Context, candidate library.Book) (Remote, bool, error) {
	switch {
	case candidate.ISBN != "":
		detail, err := b.client.GetBookDetails(ctx, candidate.ISBN)
		if errors.Is(err, openlibrary.ErrNotFound) {
			return Remote{}, false, nil
		}
		if err != nil {
			return Remote{}, false, err
		}
		return FromDetail(detail), true, nil

	case candidate.Title != "":
		hits, err := b.client.SearchByTitle(ctx, candidate.Title, 1)
		if err != nil {
			return Remote{}, false, err
		}
		if len(hits) == 0 {
			return Remote{}, false, nil
		}
		return FromHit(hits[0]), true, nil

	default:
		return Remote{}, false, nil
	}
}

func (b *Batch) persist(books []library.Book, id library.ID, remote Remote) error {
	idx := library.FindBook(books, id)
	if idx < 0 {
		return nil
	}
	merged := Merge(books[idx], remote)
	merged.Touch()
	books[idx] = merged
	return b.store.SaveBooks(books)
}
