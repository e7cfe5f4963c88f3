package storage

import "github.com/lepinkainen/bibliotheca/internal/library"

// SampleBooks returns the book collection seeded into an empty store.
func SampleBooks() []library.Book {
	now := library.Timestamp()
	return []library.Book{
		{
			ID:          library.NewID(),
			Title:       "Le Petit Prince",
			Author:      "Antoine de Saint-Exupéry",
			ISBN:        "978-2-07-040809-8",
			Genre:       "Fiction",
			Year:        1943,
			Rating:      5,
			Description: "A poetic and philosophical tale in the guise of a children's story. A little prince travels from planet to planet.",
			Available:   true,

			DateAdded:    now,
			LastModified: now,
		},
		{
			ID:          library.NewID(),
			Title:       "1984",
			Author:      "George Orwell",
			ISBN:        "978-0-452-28423-4",
			Genre:       "Science Fiction",
			Year:        1949,
			Rating:      5,
			Description: "A dystopian novel depicting a totalitarian society where freedom of thought is abolished.",
			Available:   true,

			DateAdded:    now,
			LastModified: now,
		},
	}
}

// SampleAuthors returns the author collection seeded into an empty store.
func SampleAuthors() []library.Author {
	now := library.Timestamp()
	return []library.Author{
		{
			ID:          library.NewID(),
			Name:        "Antoine de Saint-Exupéry",
			Nationality: "French",
			BirthDate:   "1900-06-29",
			Biography:   "French writer, poet and pioneering aviator, best known for Le Petit Prince.",

			DateAdded:    now,
			LastModified: now,
		},
		{
			ID:          library.NewID(),
			Name:        "George Orwell",
			Nationality: "British",
			BirthDate:   "1903-06-25",
			Biography:   "British novelist and journalist, famous for the dystopian novels 1984 and Animal Farm.",

			DateAdded:    now,
			LastModified: now,
		},
	}
}
