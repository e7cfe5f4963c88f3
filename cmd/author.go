package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/lepinkainen/bibliotheca/internal/library"
)

// AuthorCmd groups the local author catalog commands.
type AuthorCmd struct {
	Add  AuthorAddCmd  `cmd:"" help:"Add an author to the catalog"`
	List AuthorListCmd `cmd:"" help:"List authors with derived book counts"`
	Show AuthorShowCmd `cmd:"" help:"Show a single author and their books"`
	Info AuthorInfoCmd `cmd:"" help:"Look up an author on OpenLibrary"`
	Rm   AuthorRmCmd   `cmd:"" help:"Delete an author from the catalog"`
}

// AuthorAddCmd adds a new author record.
type AuthorAddCmd struct {
	Name        string `arg:"" help:"Author name"`
	Nationality string `help:"Nationality"`
	BirthDate   string `help:"Birth date (ISO 8601)"`
	Biography   string `help:"Short biography"`
	PhotoURL    string `help:"Photo URL"`
}

func (c *AuthorAddCmd) Run(app *App) error {
	author, err := library.NewAuthor(c.Name, c.Nationality, c.BirthDate, c.Biography, c.PhotoURL)
	if err != nil {
		return err
	}

	authors, err := app.Gateway.LoadAuthors()
	if err != nil {
		return err
	}
	authors = append(authors, author)
	if err := app.Gateway.SaveAuthors(authors); err != nil {
		return err
	}

	fmt.Printf("Added author %q (%s)\n", author.Name, author.ID)
	return nil
}

// AuthorListCmd lists authors. Book counts are recomputed from the book
// collection by name match, never stored.
type AuthorListCmd struct{}

func (c *AuthorListCmd) Run(app *App) error {
	authors, err := app.Gateway.LoadAuthors()
	if err != nil {
		return err
	}
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tNATIONALITY\tBOOKS")
	for _, a := range authors {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", a.ID, a.Name, a.Nationality, a.BookCount(books))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d author(s)\n", len(authors))
	return nil
}

// AuthorShowCmd prints one author and the books attributed to them.
type AuthorShowCmd struct {
	ID string `arg:"" help:"Author identifier"`
}

func (c *AuthorShowCmd) Run(app *App) error {
	authors, err := app.Gateway.LoadAuthors()
	if err != nil {
		return err
	}

	idx := library.FindAuthor(authors, library.ID(c.ID))
	if idx < 0 {
		return fmt.Errorf("author not found: %s", c.ID)
	}
	a := authors[idx]

	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", a.Name)
	fmt.Printf("  ID:           %s\n", a.ID)
	if a.Nationality != "" {
		fmt.Printf("  Nationality:  %s\n", a.Nationality)
	}
	if a.BirthDate != "" {
		fmt.Printf("  Born:         %s\n", a.BirthDate)
	}
	if a.Biography != "" {
		fmt.Printf("  Biography:    %s\n", a.Biography)
	}
	fmt.Printf("  Added:        %s\n", a.DateAdded)

	owned := library.BooksByAuthor(books, a.Name)
	fmt.Printf("  Books:        %d\n", len(owned))
	for _, b := range owned {
		fmt.Printf("    - %s (%s)\n", b.Title, yearString(b.Year))
	}
	return nil
}

// AuthorInfoCmd fetches a remote author record by OpenLibrary key.
type AuthorInfoCmd struct {
	Key string `arg:"" help:"OpenLibrary author key, e.g. /authors/OL23919A"`
}

func (c *AuthorInfoCmd) Run(app *App) error {
	detail, err := app.Client.GetAuthorInfo(context.Background(), c.Key)
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", detail.Name)
	if detail.BirthDate != "" {
		fmt.Printf("  Born:         %s\n", detail.BirthDate)
	}
	if detail.DeathDate != "" {
		fmt.Printf("  Died:         %s\n", detail.DeathDate)
	}
	if detail.Biography != "" {
		fmt.Printf("  Biography:    %s\n", detail.Biography)
	}
	if detail.PhotoURL != "" {
		fmt.Printf("  Photo:        %s\n", detail.PhotoURL)
	}
	if len(detail.AlternateNames) > 0 {
		fmt.Printf("  Also known:   %s\n", strings.Join(detail.AlternateNames, ", "))
	}
	return nil
}

// AuthorRmCmd deletes an author. Books keep their author name string; the
// linkage is by name only and never cascades.
type AuthorRmCmd struct {
	ID string `arg:"" help:"Author identifier"`
}

func (c *AuthorRmCmd) Run(app *App) error {
	authors, err := app.Gateway.LoadAuthors()
	if err != nil {
		return err
	}

	idx := library.FindAuthor(authors, library.ID(c.ID))
	if idx < 0 {
		return fmt.Errorf("author not found: %s", c.ID)
	}
	removed := authors[idx]
	authors = append(authors[:idx], authors[idx+1:]...)
	if err := app.Gateway.SaveAuthors(authors); err != nil {
		return err
	}

	fmt.Printf("Deleted author %q (%s)\n", removed.Name, removed.ID)
	return nil
}
