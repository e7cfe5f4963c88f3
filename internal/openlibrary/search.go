package openlibrary

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// searchFields limits a search response to the fields the normalizer reads.
const searchFields = "key,title,author_name,first_publish_year,isbn,subject,cover_i"

// SearchByTitle searches for books by title, returning normalized hits in
// the relevance order the service produced (no local re-ranking).
func (c *Client) SearchByTitle(ctx context.Context, title string, limit int) ([]SearchHit, error) {
	return c.search(ctx, "title", title, limit)
}

// SearchByAuthor searches for books by author name.
func (c *Client) SearchByAuthor(ctx context.Context, author string, limit int) ([]SearchHit, error) {
	return c.search(ctx, "author", author, limit)
}

func (c *Client) search(ctx context.Context, field, query string, limit int) ([]SearchHit, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set(field, query)
	params.Set("limit", strconv.Itoa(limit))
	params.Set("fields", searchFields)

	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	var response searchResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	hits := make([]SearchHit, 0, len(response.Docs))
	for _, doc := range response.Docs {
		hits = append(hits, c.normalizeDoc(doc))
	}
	return hits, nil
}

// normalizeDoc projects a raw search document into a SearchHit, substituting
// literal defaults so required-looking fields are never empty.
func (c *Client) normalizeDoc(doc searchDoc) SearchHit {
	hit := SearchHit{
		Key:         doc.Key,
		Title:       doc.Title,
		Authors:     doc.AuthorName,
		PublishYear: doc.FirstPublishYear,
		Subjects:    doc.Subject,
		CoverURL:    c.coverImageURL(doc.CoverID),
	}

	if hit.Title == "" {
		hit.Title = UnknownTitle
	}
	if len(hit.Authors) == 0 {
		hit.Authors = []string{UnknownAuthor}
	}
	if len(doc.ISBN) > 0 {
		hit.ISBN = doc.ISBN[0]
	}
	if hit.Subjects == nil {
		hit.Subjects = []string{}
	}
	if len(hit.Subjects) > maxHitSubjects {
		hit.Subjects = hit.Subjects[:maxHitSubjects]
	}

	return hit
}
