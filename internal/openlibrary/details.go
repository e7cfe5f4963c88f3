package openlibrary

import (
	"context"
	"fmt"
	"strings"
)

// GetBookDetails looks up a single book by ISBN and returns its normalized
// detail record. A book unknown to the service surfaces ErrNotFound.
func (c *Client) GetBookDetails(ctx context.Context, isbn string) (*BookDetail, error) {
	endpoint := fmt.Sprintf("%s/isbn/%s.json", c.baseURL, strings.TrimSpace(isbn))

	var response bookResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	detail := &BookDetail{
		Title:       response.Title,
		PublishDate: response.PublishDate,
		Publishers:  response.Publishers,
		Description: string(response.Description),
		Subjects:    extractStrings(response.Subjects),
		Pages:       response.NumberOfPages,
	}

	if detail.Title == "" {
		detail.Title = UnknownTitle
	}

	for _, author := range response.Authors {
		if author.Name != "" {
			detail.Authors = append(detail.Authors, author.Name)
		}
	}
	if len(detail.Authors) == 0 {
		detail.Authors = []string{UnknownAuthor}
	}

	if detail.Publishers == nil {
		detail.Publishers = []string{}
	}

	// Whichever of ISBN-10 and ISBN-13 is present.
	if len(response.ISBN10) > 0 {
		detail.ISBN = response.ISBN10[0]
	} else if len(response.ISBN13) > 0 {
		detail.ISBN = response.ISBN13[0]
	}

	if len(response.Covers) > 0 {
		detail.CoverURL = c.coverImageURL(response.Covers[0])
	}

	return detail, nil
}

// GetAuthorInfo looks up an author by OpenLibrary key (e.g. "/authors/OL23919A").
func (c *Client) GetAuthorInfo(ctx context.Context, authorKey string) (*AuthorDetail, error) {
	key := strings.TrimSpace(authorKey)
	if !strings.HasPrefix(key, "/") {
		key = "/" + key
	}
	endpoint := fmt.Sprintf("%s%s.json", c.baseURL, key)

	var response authorResponse
	if err := c.getJSON(ctx, endpoint, &response); err != nil {
		return nil, err
	}

	detail := &AuthorDetail{
		Name:           response.Name,
		BirthDate:      response.BirthDate,
		DeathDate:      response.DeathDate,
		Biography:      string(response.Bio),
		AlternateNames: response.AlternateNames,
	}

	if detail.Name == "" {
		detail.Name = UnknownName
	}
	if detail.AlternateNames == nil {
		detail.AlternateNames = []string{}
	}
	if len(response.Photos) > 0 {
		detail.PhotoURL = c.photoImageURL(response.Photos[0])
	}

	return detail, nil
}
