package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bibliotheca/internal/library"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
)

func TestMergeFillsEmptyFieldsOnly(t *testing.T) {
	book, err := library.NewBook("Dune", "Frank Herbert", "9780441013593", "Sci-Fi", 1965, 5, "My own notes.", true)
	require.NoError(t, err)
	book.CoverURL = "https://local.example/cover.jpg"

	remote := Remote{
		CoverURL:    "https://remote.example/other.jpg",
		Description: "Remote description.",
		Subjects:    []string{"Science fiction"},
		Publishers:  []string{"Chilton Books"},
	}

	merged := Merge(book, remote)

	assert.Equal(t, "https://local.example/cover.jpg", merged.CoverURL, "local value wins")
	assert.Equal(t, "My own notes.", merged.Description, "local value wins")
	assert.Equal(t, []string{"Science fiction"}, merged.APISubjects)
	assert.Equal(t, []string{"Chilton Books"}, merged.Publishers)
}

func TestMergeFillsGaps(t *testing.T) {
	book, err := library.NewBook("Dune", "Frank Herbert", "", "", 1965, 0, "", true)
	require.NoError(t, err)

	merged := Merge(book, Remote{CoverURL: "https://remote.example/c.jpg", Description: "Remote."})

	assert.Equal(t, "https://remote.example/c.jpg", merged.CoverURL)
	assert.Equal(t, "Remote.", merged.Description)
}

func TestMergeAlwaysStampsProvenance(t *testing.T) {
	book, err := library.NewBook("Dune", "Frank Herbert", "", "", 1965, 0, "", true)
	require.NoError(t, err)
	require.False(t, book.EnrichedFromAPI)

	// An empty remote record still marks the book as enriched.
	merged := Merge(book, Remote{})

	assert.True(t, merged.EnrichedFromAPI)
	assert.NotEmpty(t, merged.LastEnriched)
	assert.Empty(t, merged.APISubjects, "empty remote lists leave local fields untouched")
}

func TestMergeDoesNotMutateInput(t *testing.T) {
	book, err := library.NewBook("Dune", "Frank Herbert", "", "", 1965, 0, "", true)
	require.NoError(t, err)

	_ = Merge(book, Remote{Description: "Remote."})

	assert.Empty(t, book.Description)
	assert.False(t, book.EnrichedFromAPI)
}

func TestFromDetail(t *testing.T) {
	detail := &openlibrary.BookDetail{
		CoverURL:    "https://covers.example/b/id/1-M.jpg",
		Description: "desc",
		Subjects:    []string{"a"},
		Publishers:  []string{"p"},
	}

	remote := FromDetail(detail)
	assert.Equal(t, detail.CoverURL, remote.CoverURL)
	assert.Equal(t, detail.Description, remote.Description)
	assert.Equal(t, detail.Subjects, remote.Subjects)
	assert.Equal(t, detail.Publishers, remote.Publishers)

	assert.Equal(t, Remote{}, FromDetail(nil))
}

func TestFromHitCarriesNoDescription(t *testing.T) {
	hit := openlibrary.SearchHit{
		Title:    "Dune",
		Subjects: []string{"Science fiction"},
		CoverURL: "https://covers.example/b/id/1-M.jpg",
	}

	remote := FromHit(hit)
	assert.Equal(t, hit.CoverURL, remote.CoverURL)
	assert.Equal(t, hit.Subjects, remote.Subjects)
	assert.Empty(t, remote.Description)
	assert.Empty(t, remote.Publishers)
}
