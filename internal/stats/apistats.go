package stats

import (
	"context"

	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
)

// apiSampleSize is how many search hits feed the remote statistics sample.
const apiSampleSize = 50

// APIStats aggregates a sample of remote search results.
type APIStats struct {
	TotalResults     int          `json:"totalResults" yaml:"totalResults"`
	TopGenres        []GenreCount `json:"topGenres" yaml:"topGenres"`
	YearDistribution map[int]int  `json:"yearDistribution" yaml:"yearDistribution"`
}

// Searcher is the slice of the metadata client the sampler needs.
type Searcher interface {
	SearchByTitle(ctx context.Context, title string, limit int) ([]openlibrary.SearchHit, error)
}

// FetchAPIStats samples popular search results and aggregates their subject
// tags and publication decades.
func FetchAPIStats(ctx context.Context, client Searcher) (*APIStats, error) {
	hits, err := client.SearchByTitle(ctx, "popular", apiSampleSize)
	if err != nil {
		return nil, err
	}

	genres := make(map[string]int)
	decades := make(map[int]int)
	for _, hit := range hits {
		for _, subject := range hit.Subjects {
			genres[subject]++
		}
		if hit.PublishYear != 0 {
			decades[decadeOf(hit.PublishYear)]++
		}
	}

	return &APIStats{
		TotalResults:     len(hits),
		TopGenres:        TopGenres(genres, 5),
		YearDistribution: decades,
	}, nil
}
