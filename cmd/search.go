package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lepinkainen/bibliotheca/internal/library"
	"github.com/lepinkainen/bibliotheca/internal/openlibrary"
	"github.com/lepinkainen/bibliotheca/internal/tui"
)

// SearchCmd searches OpenLibrary and optionally imports a hit into the
// local catalog via an interactive picker.
type SearchCmd struct {
	Query  string `arg:"" help:"Search terms"`
	Author bool   `help:"Search by author name instead of title"`
	Limit  int    `default:"10" help:"Maximum number of results"`
	Import bool   `help:"Interactively pick a result and import it as a local book"`
}

func (c *SearchCmd) Run(app *App) error {
	ctx := context.Background()

	var (
		hits []openlibrary.SearchHit
		err  error
	)
	if c.Author {
		hits, err = app.Client.SearchByAuthor(ctx, c.Query, c.Limit)
	} else {
		hits, err = app.Client.SearchByTitle(ctx, c.Query, c.Limit)
	}
	if err != nil {
		return err
	}

	if len(hits) == 0 {
		fmt.Println("No results.")
		return nil
	}

	if c.Import {
		return c.importHit(app, hits)
	}

	for i, hit := range hits {
		fmt.Printf("%2d. %s (%s)\n", i+1, hit.Title, yearString(hit.PublishYear))
		fmt.Printf("    by %s\n", strings.Join(hit.Authors, ", "))
		if hit.ISBN != "" {
			fmt.Printf("    ISBN %s\n", hit.ISBN)
		}
		if len(hit.Subjects) > 0 {
			fmt.Printf("    %s\n", strings.Join(hit.Subjects, ", "))
		}
	}
	return nil
}

func (c *SearchCmd) importHit(app *App, hits []openlibrary.SearchHit) error {
	result, err := tui.Select(c.Query, hits)
	if err != nil {
		return err
	}
	if result.Action != tui.ActionSelected || result.Selection == nil {
		fmt.Println("Import cancelled.")
		return nil
	}

	book := bookFromHit(*result.Selection)
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}
	books = append(books, book)
	if err := app.Gateway.SaveBooks(books); err != nil {
		return err
	}

	fmt.Printf("Imported %q from OpenLibrary (%s)\n", book.Title, book.ID)
	return nil
}

// bookFromHit turns a remote search hit into a local book record. Imported
// records count as already enriched.
func bookFromHit(hit openlibrary.SearchHit) library.Book {
	author := openlibrary.UnknownAuthor
	if len(hit.Authors) > 0 {
		author = hit.Authors[0]
	}

	genre := "Uncategorized"
	if len(hit.Subjects) > 0 {
		genre = hit.Subjects[0]
	}

	year := hit.PublishYear
	if year == 0 {
		year = time.Now().Year()
	}

	now := library.Timestamp()
	return library.Book{
		ID:        library.NewID(),
		Title:     hit.Title,
		Author:    author,
		ISBN:      hit.ISBN,
		Genre:     genre,
		Year:      year,
		Available: true,
		CoverURL:  hit.CoverURL,

		DateAdded:    now,
		LastModified: now,

		EnrichedFromAPI: true,
		APISubjects:     hit.Subjects,
		LastEnriched:    now,
	}
}
