package storage

import (
	"encoding/json"
	"fmt"

	"github.com/lepinkainen/bibliotheca/internal/library"
)

// Storage keys. Books and Authors live under independent keys and are never
// transactionally linked.
const (
	BooksKey    = "bibliotheca_books"
	AuthorsKey  = "bibliotheca_authors"
	SettingsKey = "bibliotheca_settings"
)

// Settings holds user preferences stored alongside the collections.
type Settings struct {
	Theme        string `json:"theme"`
	Language     string `json:"language"`
	ItemsPerPage int    `json:"itemsPerPage"`
}

// DefaultSettings returns the settings written on first use.
func DefaultSettings() Settings {
	return Settings{Theme: "light", Language: "en", ItemsPerPage: 10}
}

// Gateway loads and saves the Book and Author collections against their
// fixed keys, seeding sample data when a key is absent or empty.
type Gateway struct {
	store Store
}

// NewGateway wraps an already connected Store.
func NewGateway(store Store) *Gateway {
	return &Gateway{store: store}
}

// Open connects a SQLite-backed Gateway at the given path and seeds
// default data where needed.
func Open(dbPath string) (*Gateway, error) {
	store := NewSQLiteStore(dbPath)
	if err := store.Connect(); err != nil {
		return nil, err
	}
	g := NewGateway(store)
	if err := g.Seed(); err != nil {
		_ = store.Close()
		return nil, err
	}
	return g, nil
}

// Close releases the underlying store.
func (g *Gateway) Close() error {
	return g.store.Close()
}

// Seed writes sample data for any collection key that is absent or decodes
// to an empty collection, and default settings when none are stored. A load
// error is propagated untouched: unreadable or inconsistent stored data is
// never replaced with samples.
func (g *Gateway) Seed() error {
	books, err := g.LoadBooks()
	if err != nil {
		return err
	}
	if len(books) == 0 {
		if err := g.SaveBooks(SampleBooks()); err != nil {
			return fmt.Errorf("seeding books: %w", err)
		}
	}

	authors, err := g.LoadAuthors()
	if err != nil {
		return err
	}
	if len(authors) == 0 {
		if err := g.SaveAuthors(SampleAuthors()); err != nil {
			return fmt.Errorf("seeding authors: %w", err)
		}
	}

	if _, ok, err := g.store.Get(SettingsKey); err == nil && !ok {
		if err := g.SaveSettings(DefaultSettings()); err != nil {
			return fmt.Errorf("seeding settings: %w", err)
		}
	}

	return nil
}

// Reset overwrites both collections with the sample data.
func (g *Gateway) Reset() error {
	if err := g.SaveBooks(SampleBooks()); err != nil {
		return err
	}
	return g.SaveAuthors(SampleAuthors())
}

// LoadBooks returns the stored book collection. Identifier integrity is
// checked at load time: empty or duplicated identifiers are data errors.
func (g *Gateway) LoadBooks() ([]library.Book, error) {
	value, ok, err := g.store.Get(BooksKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []library.Book{}, nil
	}

	var books []library.Book
	if err := json.Unmarshal([]byte(value), &books); err != nil {
		return nil, fmt.Errorf("decoding stored books: %w", err)
	}
	if err := library.ValidateIDs(books); err != nil {
		return nil, fmt.Errorf("book data integrity: %w", err)
	}
	return books, nil
}

// SaveBooks persists the book collection. The input is validated as
// serializable before anything is written.
func (g *Gateway) SaveBooks(books []library.Book) error {
	if books == nil {
		books = []library.Book{}
	}
	data, err := json.Marshal(books)
	if err != nil {
		return &SerializationError{Key: BooksKey, Err: err}
	}
	return g.store.Put(BooksKey, string(data))
}

// LoadAuthors returns the stored author collection.
func (g *Gateway) LoadAuthors() ([]library.Author, error) {
	value, ok, err := g.store.Get(AuthorsKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []library.Author{}, nil
	}

	var authors []library.Author
	if err := json.Unmarshal([]byte(value), &authors); err != nil {
		return nil, fmt.Errorf("decoding stored authors: %w", err)
	}
	if err := library.ValidateAuthorIDs(authors); err != nil {
		return nil, fmt.Errorf("author data integrity: %w", err)
	}
	return authors, nil
}

// SaveAuthors persists the author collection.
func (g *Gateway) SaveAuthors(authors []library.Author) error {
	if authors == nil {
		authors = []library.Author{}
	}
	data, err := json.Marshal(authors)
	if err != nil {
		return &SerializationError{Key: AuthorsKey, Err: err}
	}
	return g.store.Put(AuthorsKey, string(data))
}

// LoadSettings returns the stored settings, or defaults when absent.
func (g *Gateway) LoadSettings() (Settings, error) {
	value, ok, err := g.store.Get(SettingsKey)
	if err != nil {
		return Settings{}, err
	}
	if !ok {
		return DefaultSettings(), nil
	}

	var settings Settings
	if err := json.Unmarshal([]byte(value), &settings); err != nil {
		return Settings{}, fmt.Errorf("decoding stored settings: %w", err)
	}
	return settings, nil
}

// SaveSettings persists the settings blob.
func (g *Gateway) SaveSettings(settings Settings) error {
	data, err := json.Marshal(settings)
	if err != nil {
		return &SerializationError{Key: SettingsKey, Err: err}
	}
	return g.store.Put(SettingsKey, string(data))
}
