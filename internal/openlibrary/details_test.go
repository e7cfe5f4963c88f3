package openlibrary

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetBookDetails(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{
			"title": "Dune",
			"authors": [{"key": "/authors/OL79034A", "name": "Frank Herbert"}],
			"publish_date": "1965",
			"publishers": ["Chilton Books"],
			"description": {"type": "/type/text", "value": "A desert planet."},
			"subjects": ["Science fiction", {"name": "Ecology"}],
			"isbn_10": ["0441013597"],
			"isbn_13": ["9780441013593"],
			"number_of_pages": 412,
			"covers": [12345, 67890]
		}`))
	})

	detail, err := client.GetBookDetails(context.Background(), " 9780441013593 ")
	require.NoError(t, err)

	assert.Equal(t, "/isbn/9780441013593.json", path, "isbn is trimmed")
	assert.Equal(t, "Dune", detail.Title)
	assert.Equal(t, []string{"Frank Herbert"}, detail.Authors)
	assert.Equal(t, "1965", detail.PublishDate)
	assert.Equal(t, []string{"Chilton Books"}, detail.Publishers)
	assert.Equal(t, "A desert planet.", detail.Description, "wrapped text unwrapped")
	assert.Equal(t, []string{"Science fiction", "Ecology"}, detail.Subjects)
	assert.Equal(t, "0441013597", detail.ISBN, "isbn_10 preferred")
	assert.Equal(t, 412, detail.Pages)
	assert.Equal(t, "https://covers.example.org/b/id/12345-M.jpg", detail.CoverURL)
}

func TestGetBookDetailsDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"isbn_13": ["9780441013593"], "description": "plain text"}`))
	})

	detail, err := client.GetBookDetails(context.Background(), "9780441013593")
	require.NoError(t, err)

	assert.Equal(t, UnknownTitle, detail.Title)
	assert.Equal(t, []string{UnknownAuthor}, detail.Authors)
	assert.NotNil(t, detail.Publishers)
	assert.Empty(t, detail.Publishers)
	assert.Equal(t, "plain text", detail.Description, "plain string accepted as is")
	assert.Equal(t, "9780441013593", detail.ISBN, "isbn_13 used when isbn_10 absent")
	assert.Empty(t, detail.CoverURL)
}

func TestGetBookDetailsNotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetBookDetails(context.Background(), "000-INVALID")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetAuthorInfo(t *testing.T) {
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		path = r.URL.Path
		_, _ = w.Write([]byte(`{
			"name": "Frank Herbert",
			"birth_date": "8 October 1920",
			"death_date": "11 February 1986",
			"bio": "American science fiction author.",
			"photos": [987],
			"alternate_names": ["Franklin Patrick Herbert, Jr."]
		}`))
	})

	detail, err := client.GetAuthorInfo(context.Background(), "authors/OL79034A")
	require.NoError(t, err)

	assert.Equal(t, "/authors/OL79034A.json", path, "missing leading slash added")
	assert.Equal(t, "Frank Herbert", detail.Name)
	assert.Equal(t, "8 October 1920", detail.BirthDate)
	assert.Equal(t, "11 February 1986", detail.DeathDate)
	assert.Equal(t, "American science fiction author.", detail.Biography)
	assert.Equal(t, "https://covers.example.org/a/id/987-M.jpg", detail.PhotoURL)
	assert.Equal(t, []string{"Franklin Patrick Herbert, Jr."}, detail.AlternateNames)
}

func TestGetAuthorInfoDefaults(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"bio": {"type": "/type/text", "value": "wrapped"}}`))
	})

	detail, err := client.GetAuthorInfo(context.Background(), "/authors/OL0A")
	require.NoError(t, err)

	assert.Equal(t, UnknownName, detail.Name)
	assert.Equal(t, "wrapped", detail.Biography)
	assert.NotNil(t, detail.AlternateNames)
	assert.Empty(t, detail.PhotoURL)
}
