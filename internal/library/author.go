package library

import (
	"fmt"
	"strings"
)

// Author represents an author record. Linkage to books is by name-string
// equality only; renaming an author does not cascade to its books.
type Author struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Nationality string `json:"nationality,omitempty"`
	BirthDate   string `json:"birthDate,omitempty"`
	Biography   string `json:"biography,omitempty"`
	PhotoURL    string `json:"photoUrl,omitempty"`

	DateAdded    string `json:"dateAdded"`
	LastModified string `json:"lastModified"`
}

// NewAuthor creates an Author, assigning the identifier and both timestamps
// in one step.
func NewAuthor(name, nationality, birthDate, biography, photoURL string) (Author, error) {
	author := Author{
		ID:          NewID(),
		Name:        strings.TrimSpace(name),
		Nationality: strings.TrimSpace(nationality),
		BirthDate:   strings.TrimSpace(birthDate),
		Biography:   strings.TrimSpace(biography),
		PhotoURL:    strings.TrimSpace(photoURL),
	}
	now := Timestamp()
	author.DateAdded = now
	author.LastModified = now

	if author.Name == "" {
		return Author{}, fmt.Errorf("author name is required")
	}
	return author, nil
}

// Touch updates the last-modified timestamp.
func (a *Author) Touch() {
	a.LastModified = Timestamp()
}

// BookCount returns the number of books attributed to the author. The count
// is always derived from the book collection, never stored.
func (a Author) BookCount(books []Book) int {
	return len(BooksByAuthor(books, a.Name))
}

// BooksByAuthor returns the books whose author field matches the given name.
func BooksByAuthor(books []Book, name string) []Book {
	name = strings.TrimSpace(name)
	var matched []Book
	for _, b := range books {
		if strings.TrimSpace(b.Author) == name {
			matched = append(matched, b)
		}
	}
	return matched
}

// FindAuthor returns the index of the author with the given identifier, or -1.
func FindAuthor(authors []Author, id ID) int {
	for i, a := range authors {
		if a.ID == id {
			return i
		}
	}
	return -1
}
