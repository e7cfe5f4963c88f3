package library

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// ID is an opaque record identifier. Identifiers are always strings in the
// data model; historical data stored numeric identifiers, so decoding
// normalizes numbers to their decimal string form on ingestion.
type ID string

// NewID returns a fresh unique identifier.
func NewID() ID {
	return ID(uuid.NewString())
}

// UnmarshalJSON accepts either a JSON string or a JSON number and
// normalizes to the string representation.
func (id *ID) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}

	switch v := raw.(type) {
	case string:
		*id = ID(v)
	case json.Number:
		*id = ID(v.String())
	case nil:
		*id = ""
	default:
		return fmt.Errorf("identifier must be a string or number, got %T", raw)
	}
	return nil
}

// ValidateIDs checks a decoded book collection for identifier integrity:
// every book must carry a non-empty identifier and no two books may share
// one. Violations are data errors surfaced at load time.
func ValidateIDs(books []Book) error {
	seen := make(map[ID]string, len(books))
	for _, b := range books {
		if b.ID == "" {
			return fmt.Errorf("book %q has no identifier", b.Title)
		}
		if other, dup := seen[b.ID]; dup {
			return fmt.Errorf("duplicate identifier %s shared by %q and %q", b.ID, other, b.Title)
		}
		seen[b.ID] = b.Title
	}
	return nil
}

// ValidateAuthorIDs performs the same integrity check for authors.
func ValidateAuthorIDs(authors []Author) error {
	seen := make(map[ID]string, len(authors))
	for _, a := range authors {
		if a.ID == "" {
			return fmt.Errorf("author %q has no identifier", a.Name)
		}
		if other, dup := seen[a.ID]; dup {
			return fmt.Errorf("duplicate identifier %s shared by %q and %q", a.ID, other, a.Name)
		}
		seen[a.ID] = a.Name
	}
	return nil
}
