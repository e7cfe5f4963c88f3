package enrich

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bibliotheca/internal/library"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
)

type fakeStore struct {
	books   []library.Book
	saves   int
	loadErr error
}

func (s *fakeStore) LoadBooks() ([]library.Book, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return s.books, nil
}

func (s *fakeStore) SaveBooks(books []library.Book) error {
	s.books = books
	s.saves++
	return nil
}

type fakeLookup struct {
	detailCalls []string
	searchCalls []string
	detailErr   error
	searchHits  []openlibrary.SearchHit
}

func (l *fakeLookup) GetBookDetails(ctx context.Context, isbn string) (*openlibrary.BookDetail, error) {
	l.detailCalls = append(l.detailCalls, isbn)
	if l.detailErr != nil {
		return nil, l.detailErr
	}
	return &openlibrary.BookDetail{Description: "remote description"}, nil
}

func (l *fakeLookup) SearchByTitle(ctx context.Context, title string, limit int) ([]openlibrary.SearchHit, error) {
	l.searchCalls = append(l.searchCalls, title)
	return l.searchHits, nil
}

func noSleep(ctx context.Context, d time.Duration) error { return nil }

func makeBook(t *testing.T, title, isbn string, enriched bool) library.Book {
	t.Helper()
	book, err := library.NewBook(title, "author", isbn, "", 2000, 0, "", true)
	require.NoError(t, err)
	book.EnrichedFromAPI = enriched
	return book
}

func TestRunEnrichesByISBN(t *testing.T) {
	store := &fakeStore{books: []library.Book{makeBook(t, "Dune", "9780441013593", false)}}
	lookup := &fakeLookup{}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"9780441013593"}, lookup.detailCalls)
	assert.Empty(t, lookup.searchCalls)

	assert.True(t, store.books[0].EnrichedFromAPI)
	assert.Equal(t, "remote description", store.books[0].Description)
}

func TestRunFallsBackToTitleSearch(t *testing.T) {
	store := &fakeStore{books: []library.Book{makeBook(t, "Dune", "", false)}}
	lookup := &fakeLookup{searchHits: []openlibrary.SearchHit{{Title: "Dune", CoverURL: "https://x/c.jpg"}}}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"Dune"}, lookup.searchCalls)
	assert.Equal(t, "https://x/c.jpg", store.books[0].CoverURL)
}

func TestRunSkipsEnrichedBooks(t *testing.T) {
	store := &fakeStore{books: []library.Book{
		makeBook(t, "Done", "111", true),
		makeBook(t, "Pending", "222", false),
	}}
	lookup := &fakeLookup{}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, []string{"222"}, lookup.detailCalls)
}

func TestRunNoCandidatesIsNoOp(t *testing.T) {
	store := &fakeStore{books: []library.Book{makeBook(t, "Done", "111", true)}}
	lookup := &fakeLookup{}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, store.saves)
	assert.Empty(t, lookup.detailCalls)
}

func TestRunCapsLookupsPerRun(t *testing.T) {
	var books []library.Book
	for _, isbn := range []string{"1", "2", "3", "4", "5", "6", "7"} {
		books = append(books, makeBook(t, "Book "+isbn, isbn, false))
	}
	store := &fakeStore{books: books}
	lookup := &fakeLookup{}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, DefaultMaxPerRun, count)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, lookup.detailCalls, "collection order up to the cap")
}

func TestRunPausesAfterEveryCall(t *testing.T) {
	store := &fakeStore{books: []library.Book{
		makeBook(t, "a", "1", false),
		makeBook(t, "b", "2", false),
	}}
	lookup := &fakeLookup{}

	var pauses []time.Duration
	sleep := func(ctx context.Context, d time.Duration) error {
		pauses = append(pauses, d)
		return nil
	}
	batch := NewBatch(store, lookup, WithSleep(sleep), WithPause(250*time.Millisecond))

	_, err := batch.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, pauses, 2, "one pause per remote call, including the last")
	assert.Equal(t, 250*time.Millisecond, pauses[0])
}

func TestRunDefaultPacingBoundsRequestRate(t *testing.T) {
	store := &fakeStore{books: []library.Book{
		makeBook(t, "a", "1", false),
		makeBook(t, "b", "2", false),
	}}
	lookup := &fakeLookup{}

	// No sleep override: the driver paces itself through its rate limiter.
	pause := 20 * time.Millisecond
	start := time.Now()
	batch := NewBatch(store, lookup, WithPause(pause))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.GreaterOrEqual(t, time.Since(start), 2*pause,
		"every remote call is followed by the full pause")
}

func TestRunSkipsFailedCandidate(t *testing.T) {
	store := &fakeStore{books: []library.Book{
		makeBook(t, "broken", "1", false),
		makeBook(t, "fine", "", false),
	}}
	lookup := &fakeLookup{
		detailErr:  errors.New("boom"),
		searchHits: []openlibrary.SearchHit{{Title: "fine"}},
	}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err, "a per-candidate failure never aborts the batch")
	assert.Equal(t, 1, count)
	assert.False(t, store.books[0].EnrichedFromAPI)
	assert.True(t, store.books[1].EnrichedFromAPI)
}

func TestRunTreatsNotFoundAsSkip(t *testing.T) {
	store := &fakeStore{books: []library.Book{makeBook(t, "ghost", "404", false)}}
	lookup := &fakeLookup{detailErr: openlibrary.ErrNotFound}
	batch := NewBatch(store, lookup, WithSleep(noSleep))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Zero(t, store.saves)
}

func TestRunRefreshHook(t *testing.T) {
	store := &fakeStore{books: []library.Book{makeBook(t, "a", "1", false)}}
	lookup := &fakeLookup{}

	refreshed := -1
	batch := NewBatch(store, lookup, WithSleep(noSleep), WithRefresh(func(n int) { refreshed = n }))

	_, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)
}

func TestRunStopsWhenContextCancelled(t *testing.T) {
	store := &fakeStore{books: []library.Book{
		makeBook(t, "a", "1", false),
		makeBook(t, "b", "2", false),
	}}
	lookup := &fakeLookup{}

	sleep := func(ctx context.Context, d time.Duration) error { return context.Canceled }
	batch := NewBatch(store, lookup, WithSleep(sleep))

	count, err := batch.Run(context.Background())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, count, "the first candidate completed before the cancel")
	assert.Len(t, lookup.detailCalls, 1)
}

func TestRunPropagatesLoadError(t *testing.T) {
	store := &fakeStore{loadErr: errors.New("db gone")}
	batch := NewBatch(store, &fakeLookup{}, WithSleep(noSleep))

	_, err := batch.Run(context.Background())
	assert.Error(t, err)
}

func TestWithMaxPerRun(t *testing.T) {
	var books []library.Book
	for _, isbn := range []string{"1", "2", "3"} {
		books = append(books, makeBook(t, "Book "+isbn, isbn, false))
	}
	store := &fakeStore{books: books}
	lookup := &fakeLookup{}
	batch := NewBatch(store, lookup, WithSleep(noSleep), WithMaxPerRun(2))

	count, err := batch.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}
