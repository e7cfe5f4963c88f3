// Package enrich fills gaps in local book records with metadata fetched
// from OpenLibrary, either one record at a time or as a capped batch run.
package enrich

import (
	"github.com/lepinkainen/bibliotheca/internal/library"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
)

// Remote carries the remote metadata the merger consumes, regardless of
// whether it came from a detail lookup or a search hit.
type Remote struct {
	CoverURL    string
	Description string
	Subjects    []string
	Publishers  []string
}

// FromDetail projects a book detail lookup into mergeable form.
func FromDetail(detail *openlibrary.BookDetail) Remote {
	if detail == nil {
		return Remote{}
	}
	return Remote{
		CoverURL:    detail.CoverURL,
		Description: detail.Description,
		Subjects:    detail.Subjects,
		Publishers:  detail.Publishers,
	}
}

// FromHit projects a search hit into mergeable form. Hits carry no
// description or publishers.
func FromHit(hit openlibrary.SearchHit) Remote {
	return Remote{
		CoverURL: hit.CoverURL,
		Subjects: hit.Subjects,
	}
}

// Merge returns the local record plus additive corrections from the remote
// record. Local non-empty values always win; list-valued remote data is
// attached under auxiliary fields and never shrinks existing local data.
// The provenance fields are stamped on every call, even when no content
// field changed.
func Merge(book library.Book, remote Remote) library.Book {
	enriched := book

	if enriched.CoverURL == "" && remote.CoverURL != "" {
		enriched.CoverURL = remote.CoverURL
	}
	if enriched.Description == "" && remote.Description != "" {
		enriched.Description = remote.Description
	}
	if len(remote.Subjects) > 0 {
		enriched.APISubjects = remote.Subjects
	}
	if len(remote.Publishers) > 0 {
		enriched.Publishers = remote.Publishers
	}

	enriched.EnrichedFromAPI = true
	enriched.LastEnriched = library.Timestamp()

	return enriched
}
