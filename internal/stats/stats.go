// Package stats computes the dashboard aggregates over the local catalog
// and an optional sample of remote search results.
package stats

import (
	"sort"

	"github.com/lepinkainen/bibliotheca/internal/library"
)

// Summary holds the aggregates shown on the dashboard.
type Summary struct {
	TotalBooks       int            `json:"totalBooks" yaml:"totalBooks"`
	TotalAuthors     int            `json:"totalAuthors" yaml:"totalAuthors"`
	Available        int            `json:"available" yaml:"available"`
	Enriched         int            `json:"enriched" yaml:"enriched"`
	AverageRating    float64        `json:"averageRating" yaml:"averageRating"`
	Genres           map[string]int `json:"genres" yaml:"genres"`
	MostPopularGenre string         `json:"mostPopularGenre,omitempty" yaml:"mostPopularGenre,omitempty"`
	Decades          map[int]int    `json:"decades" yaml:"decades"`
}

// Compute derives the summary from the collections. Author book counts and
// every other figure are recomputed from scratch, never read from storage.
func Compute(books []library.Book, authors []library.Author) Summary {
	summary := Summary{
		TotalBooks:   len(books),
		TotalAuthors: len(authors),
		Genres:       make(map[string]int),
		Decades:      make(map[int]int),
	}

	rated := 0
	ratingSum := 0
	for _, b := range books {
		if b.Available {
			summary.Available++
		}
		if b.EnrichedFromAPI {
			summary.Enriched++
		}
		if b.Genre != "" {
			summary.Genres[b.Genre]++
		}
		if b.Rating > 0 {
			rated++
			ratingSum += b.Rating
		}
		if b.Year != 0 {
			summary.Decades[decadeOf(b.Year)]++
		}
	}

	if rated > 0 {
		summary.AverageRating = float64(ratingSum) / float64(rated)
	}
	summary.MostPopularGenre = mostPopular(summary.Genres)

	return summary
}

// decadeOf floors a year to its decade, rounding toward negative infinity
// so BCE years group correctly.
func decadeOf(year int) int {
	if year >= 0 {
		return year / 10 * 10
	}
	return (year - 9) / 10 * 10
}

func mostPopular(genres map[string]int) string {
	best := ""
	bestCount := 0
	// Deterministic pick for equal counts.
	names := make([]string, 0, len(genres))
	for name := range genres {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if genres[name] > bestCount {
			best = name
			bestCount = genres[name]
		}
	}
	return best
}

// TopGenres returns the n most frequent genres in descending count order.
func TopGenres(genres map[string]int, n int) []GenreCount {
	counts := make([]GenreCount, 0, len(genres))
	for genre, count := range genres {
		counts = append(counts, GenreCount{Genre: genre, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Genre < counts[j].Genre
	})
	if len(counts) > n {
		counts = counts[:n]
	}
	return counts
}

// GenreCount pairs a genre tag with its occurrence count.
type GenreCount struct {
	Genre string `json:"genre" yaml:"genre"`
	Count int    `json:"count" yaml:"count"`
}
