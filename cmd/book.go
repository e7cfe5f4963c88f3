package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lepinkainen/bibliotheca/internal/enrich"
	"github.com/lepinkainen/bibliotheca/internal/library"
)

// BookCmd groups the local book catalog commands.
type BookCmd struct {
	Add    BookAddCmd    `cmd:"" help:"Add a book to the catalog"`
	List   BookListCmd   `cmd:"" help:"List books in the catalog"`
	Show   BookShowCmd   `cmd:"" help:"Show a single book"`
	Update BookUpdateCmd `cmd:"" help:"Update fields of a book"`
	Rm     BookRmCmd     `cmd:"" help:"Delete a book from the catalog"`
}

// BookAddCmd adds a new book, enriching it from OpenLibrary when an ISBN
// is available. Enrichment failure never prevents the save.
type BookAddCmd struct {
	Title       string `arg:"" help:"Book title"`
	Author      string `required:"" help:"Author name"`
	ISBN        string `help:"ISBN (used for OpenLibrary enrichment)"`
	Genre       string `help:"Genre"`
	Year        int    `help:"Publication year (negative for BCE)"`
	Rating      int    `help:"Rating 1-5"`
	Description string `help:"Description"`
	Unavailable bool   `help:"Mark the book as not available"`
	NoEnrich    bool   `help:"Skip OpenLibrary enrichment"`
}

func (c *BookAddCmd) Run(app *App) error {
	book, err := library.NewBook(c.Title, c.Author, c.ISBN, c.Genre, c.Year, c.Rating, c.Description, !c.Unavailable)
	if err != nil {
		return err
	}

	if book.ISBN != "" && !c.NoEnrich {
		detail, err := app.Client.GetBookDetails(context.Background(), book.ISBN)
		if err != nil {
			slog.Info("Enrichment failed, saving without it", "isbn", book.ISBN, "error", err)
		} else {
			book = enrich.Merge(book, enrich.FromDetail(detail))
		}
	}

	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}
	books = append(books, book)
	if err := app.Gateway.SaveBooks(books); err != nil {
		return err
	}

	fmt.Printf("Added %q by %s (%s)\n", book.Title, book.Author, book.ID)
	return nil
}

// BookListCmd lists books, optionally filtered by keyword and sorted.
type BookListCmd struct {
	Search string `short:"s" help:"Filter by keyword across title, author, genre and ISBN"`
	Sort   string `enum:"title,author,year,rating" default:"title" help:"Sort criteria"`
	Desc   bool   `help:"Sort in descending order"`
}

func (c *BookListCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	books = library.FilterBooks(books, c.Search)
	books = library.SortBooks(books, c.Sort, c.Desc)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tAUTHOR\tYEAR\tRATING\tAVAILABLE\tENRICHED")
	for _, b := range books {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%v\t%v\n",
			b.ID, b.Title, b.Author, yearString(b.Year), ratingString(b.Rating), b.Available, b.EnrichedFromAPI)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d book(s)\n", len(books))
	return nil
}

// BookShowCmd prints every stored field of one book.
type BookShowCmd struct {
	ID string `arg:"" help:"Book identifier"`
}

func (c *BookShowCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	idx := library.FindBook(books, library.ID(c.ID))
	if idx < 0 {
		return fmt.Errorf("book not found: %s", c.ID)
	}
	b := books[idx]

	fmt.Printf("%s\n", b.Title)
	fmt.Printf("  ID:           %s\n", b.ID)
	fmt.Printf("  Author:       %s\n", b.Author)
	fmt.Printf("  ISBN:         %s\n", b.ISBN)
	fmt.Printf("  Genre:        %s\n", b.Genre)
	fmt.Printf("  Year:         %s\n", yearString(b.Year))
	fmt.Printf("  Rating:       %s\n", ratingString(b.Rating))
	fmt.Printf("  Available:    %v\n", b.Available)
	if b.Description != "" {
		fmt.Printf("  Description:  %s\n", b.Description)
	}
	if b.CoverURL != "" {
		fmt.Printf("  Cover:        %s\n", b.CoverURL)
	}
	fmt.Printf("  Added:        %s\n", b.DateAdded)
	fmt.Printf("  Modified:     %s\n", b.LastModified)
	if b.EnrichedFromAPI {
		fmt.Printf("  Enriched:     %s\n", b.LastEnriched)
		if len(b.APISubjects) > 0 {
			fmt.Printf("  Subjects:     %s\n", strings.Join(b.APISubjects, ", "))
		}
		if len(b.Publishers) > 0 {
			fmt.Printf("  Publishers:   %s\n", strings.Join(b.Publishers, ", "))
		}
	}
	return nil
}

// BookUpdateCmd updates the provided fields of a book. Changing the ISBN
// triggers a fresh best-effort enrichment.
type BookUpdateCmd struct {
	ID          string  `arg:"" help:"Book identifier"`
	Title       *string `help:"New title"`
	Author      *string `help:"New author name"`
	ISBN        *string `help:"New ISBN"`
	Genre       *string `help:"New genre"`
	Year        *int    `help:"New publication year"`
	Rating      *int    `help:"New rating 1-5"`
	Description *string `help:"New description"`
	Available   *bool   `help:"New availability"`
}

func (c *BookUpdateCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	idx := library.FindBook(books, library.ID(c.ID))
	if idx < 0 {
		return fmt.Errorf("book not found: %s", c.ID)
	}
	book := books[idx]
	previousISBN := book.ISBN

	if c.Title != nil {
		book.Title = strings.TrimSpace(*c.Title)
	}
	if c.Author != nil {
		book.Author = strings.TrimSpace(*c.Author)
	}
	if c.ISBN != nil {
		book.ISBN = strings.TrimSpace(*c.ISBN)
	}
	if c.Genre != nil {
		book.Genre = strings.TrimSpace(*c.Genre)
	}
	if c.Year != nil {
		book.Year = *c.Year
	}
	if c.Rating != nil {
		book.Rating = *c.Rating
	}
	if c.Description != nil {
		book.Description = strings.TrimSpace(*c.Description)
	}
	if c.Available != nil {
		book.Available = *c.Available
	}

	if err := book.Validate(); err != nil {
		return err
	}

	if book.ISBN != "" && book.ISBN != previousISBN {
		detail, err := app.Client.GetBookDetails(context.Background(), book.ISBN)
		if err != nil {
			slog.Info("Enrichment failed, saving without it", "isbn", book.ISBN, "error", err)
		} else {
			book = enrich.Merge(book, enrich.FromDetail(detail))
		}
	}

	book.Touch()
	books[idx] = book
	if err := app.Gateway.SaveBooks(books); err != nil {
		return err
	}

	fmt.Printf("Updated %q (%s)\n", book.Title, book.ID)
	return nil
}

// BookRmCmd deletes a book. Records are destroyed only by this explicit action.
type BookRmCmd struct {
	ID string `arg:"" help:"Book identifier"`
}

func (c *BookRmCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	idx := library.FindBook(books, library.ID(c.ID))
	if idx < 0 {
		return fmt.Errorf("book not found: %s", c.ID)
	}
	removed := books[idx]
	books = append(books[:idx], books[idx+1:]...)
	if err := app.Gateway.SaveBooks(books); err != nil {
		return err
	}

	fmt.Printf("Deleted %q (%s)\n", removed.Title, removed.ID)
	return nil
}

func yearString(year int) string {
	if year == 0 {
		return "-"
	}
	return fmt.Sprintf("%d", year)
}

func ratingString(rating int) string {
	if rating == 0 {
		return "-"
	}
	return strings.Repeat("*", rating)
}
