package openlibrary

import (
	"encoding/json"
	"fmt"
)

// Literal defaults substituted for missing remote fields. Normalized records
// never carry an empty title or author list; only genuinely optional fields
// (year, ISBN, cover URL) may be absent.
const (
	UnknownTitle  = "Unknown Title"
	UnknownAuthor = "Unknown Author"
	UnknownName   = "Unknown Name"
)

// maxHitSubjects caps the subject tags kept on a search hit.
const maxHitSubjects = 5

// SearchHit is the normalized projection of one remote search result.
type SearchHit struct {
	Key         string   `json:"key"`
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	PublishYear int      `json:"publishYear,omitempty"`
	ISBN        string   `json:"isbn,omitempty"`
	Subjects    []string `json:"subjects"`
	CoverURL    string   `json:"coverUrl,omitempty"`
}

// BookDetail is the normalized projection of a single-book lookup.
type BookDetail struct {
	Title       string   `json:"title"`
	Authors     []string `json:"authors"`
	PublishDate string   `json:"publishDate,omitempty"`
	Publishers  []string `json:"publishers"`
	Description string   `json:"description,omitempty"`
	Subjects    []string `json:"subjects"`
	ISBN        string   `json:"isbn,omitempty"`
	Pages       int      `json:"pages,omitempty"`
	CoverURL    string   `json:"coverUrl,omitempty"`
}

// AuthorDetail is the normalized projection of an author lookup.
type AuthorDetail struct {
	Name           string   `json:"name"`
	BirthDate      string   `json:"birthDate,omitempty"`
	DeathDate      string   `json:"deathDate,omitempty"`
	Biography      string   `json:"biography,omitempty"`
	PhotoURL       string   `json:"photoUrl,omitempty"`
	AlternateNames []string `json:"alternateNames"`
}

// Text decodes remote fields that arrive either as a plain JSON string or
// wrapped as {"type": ..., "value": "..."}. The ambiguity is resolved here
// at the deserialization boundary and never carried further.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	var plain string
	if err := json.Unmarshal(data, &plain); err == nil {
		*t = Text(plain)
		return nil
	}

	var wrapped struct {
		Value string `json:"value"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil {
		*t = Text(wrapped.Value)
		return nil
	}

	return fmt.Errorf("text field is neither a string nor a value wrapper: %s", data)
}

// Raw response shapes, normalized immediately after decoding.

type searchResponse struct {
	Docs []searchDoc `json:"docs"`
}

type searchDoc struct {
	Key              string   `json:"key"`
	Title            string   `json:"title"`
	AuthorName       []string `json:"author_name"`
	FirstPublishYear int      `json:"first_publish_year"`
	ISBN             []string `json:"isbn"`
	Subject          []string `json:"subject"`
	CoverID          int      `json:"cover_i"`
}

type bookResponse struct {
	Title         string    `json:"title"`
	Authors       []nameRef `json:"authors"`
	PublishDate   string    `json:"publish_date"`
	Publishers    []string  `json:"publishers"`
	Description   Text      `json:"description"`
	Subjects      []any     `json:"subjects"`
	ISBN10        []string  `json:"isbn_10"`
	ISBN13        []string  `json:"isbn_13"`
	NumberOfPages int       `json:"number_of_pages"`
	Covers        []int     `json:"covers"`
}

type nameRef struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type authorResponse struct {
	Name           string   `json:"name"`
	BirthDate      string   `json:"birth_date"`
	DeathDate      string   `json:"death_date"`
	Bio            Text     `json:"bio"`
	Photos         []int    `json:"photos"`
	AlternateNames []string `json:"alternate_names"`
}

// extractStrings converts []any to []string, keeping plain strings and the
// "name" field of object entries.
func extractStrings(items []any) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			result = append(result, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				result = append(result, name)
			}
		}
	}
	return result
}
