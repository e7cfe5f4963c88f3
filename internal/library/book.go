// Package library defines the Book and Author records of the local catalog
// and the operations that work on in-memory collections of them.
package library

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// nowFunc is swappable in tests.
var nowFunc = time.Now

// Timestamp returns the current time in the storage format (RFC 3339, UTC).
func Timestamp() string {
	return nowFunc().UTC().Format(time.RFC3339)
}

// Book represents a single catalog entry. The JSON tags match the storage
// schema, so previously stored collections decode without migration.
type Book struct {
	ID          ID     `json:"id"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	ISBN        string `json:"isbn,omitempty"`
	Genre       string `json:"genre,omitempty"`
	Year        int    `json:"year,omitempty"`
	Rating      int    `json:"rating,omitempty"`
	Description string `json:"description,omitempty"`
	Available   bool   `json:"available"`
	CoverURL    string `json:"coverUrl,omitempty"`

	DateAdded    string `json:"dateAdded"`
	LastModified string `json:"lastModified"`

	// Enrichment provenance and auxiliary remote metadata.
	EnrichedFromAPI bool     `json:"enrichedFromAPI,omitempty"`
	APISubjects     []string `json:"apiSubjects,omitempty"`
	Publishers      []string `json:"publishers,omitempty"`
	LastEnriched    string   `json:"lastEnriched,omitempty"`
}

// NewBook creates a Book from user-entered fields, assigning the identifier
// and both timestamps in one step. A Book is never partially constructed.
func NewBook(title, author, isbn, genre string, year, rating int, description string, available bool) (Book, error) {
	book := Book{
		ID:          NewID(),
		Title:       strings.TrimSpace(title),
		Author:      strings.TrimSpace(author),
		ISBN:        strings.TrimSpace(isbn),
		Genre:       strings.TrimSpace(genre),
		Year:        year,
		Rating:      rating,
		Description: strings.TrimSpace(description),
		Available:   available,
	}
	now := Timestamp()
	book.DateAdded = now
	book.LastModified = now

	if err := book.Validate(); err != nil {
		return Book{}, err
	}
	return book, nil
}

// Validate checks the fields a Book must carry to enter the collection.
func (b Book) Validate() error {
	if b.ID == "" {
		return fmt.Errorf("book %q: missing identifier", b.Title)
	}
	if b.Title == "" {
		return fmt.Errorf("book %s: title is required", b.ID)
	}
	if b.Author == "" {
		return fmt.Errorf("book %q: author is required", b.Title)
	}
	if b.Rating < 0 || b.Rating > 5 {
		return fmt.Errorf("book %q: rating %d out of range 1-5", b.Title, b.Rating)
	}
	return nil
}

// Touch updates the last-modified timestamp.
func (b *Book) Touch() {
	b.LastModified = Timestamp()
}

// Matches reports whether the book matches a free-text keyword across
// title, author, genre and ISBN. An empty keyword matches everything.
func (b Book) Matches(keyword string) bool {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return true
	}
	for _, field := range []string{b.Title, b.Author, b.Genre, b.ISBN} {
		if strings.Contains(strings.ToLower(field), keyword) {
			return true
		}
	}
	return false
}

// FilterBooks returns the books matching the keyword, preserving collection order.
func FilterBooks(books []Book, keyword string) []Book {
	matched := make([]Book, 0, len(books))
	for _, b := range books {
		if b.Matches(keyword) {
			matched = append(matched, b)
		}
	}
	return matched
}

// Sort criteria for book listings.
const (
	SortByTitle  = "title"
	SortByAuthor = "author"
	SortByYear   = "year"
	SortByRating = "rating"
)

// SortBooks sorts a copy of the book list by the given criteria. Unknown
// criteria fall back to title order. descending reverses the ordering.
func SortBooks(books []Book, criteria string, descending bool) []Book {
	sorted := make([]Book, len(books))
	copy(sorted, books)

	less := func(a, b Book) bool {
		switch criteria {
		case SortByAuthor:
			return strings.ToLower(a.Author) < strings.ToLower(b.Author)
		case SortByYear:
			return a.Year < b.Year
		case SortByRating:
			return a.Rating < b.Rating
		default:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})
	return sorted
}

// FindBook returns the index of the book with the given identifier, or -1.
func FindBook(books []Book, id ID) int {
	for i, b := range books {
		if b.ID == id {
			return i
		}
	}
	return -1
}
