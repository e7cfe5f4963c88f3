package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/lepinkainen/bibliotheca/internal/stats"
)

// StatsCmd shows the dashboard aggregates, optionally including a sample
// of remote statistics, and can export the report to a file.
type StatsCmd struct {
	Format string `enum:"text,json,yaml" default:"text" help:"Output format"`
	Output string `short:"o" help:"Write the report to a file instead of stdout"`
	API    bool   `help:"Include statistics sampled from OpenLibrary"`
}

func (c *StatsCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}
	authors, err := app.Gateway.LoadAuthors()
	if err != nil {
		return err
	}

	summary := stats.Compute(books, authors)

	var apiStats *stats.APIStats
	if c.API {
		apiStats, err = stats.FetchAPIStats(context.Background(), app.Client)
		if err != nil {
			// Remote statistics are decoration; the local dashboard
			// still renders without them.
			fmt.Printf("OpenLibrary statistics unavailable: %v\n", err)
		}
	}

	if c.Format == "text" && c.Output == "" {
		printSummary(summary, apiStats)
		return nil
	}

	report := stats.NewReport(summary, apiStats)
	format := c.Format
	if format == "text" {
		format = "json"
	}

	out := os.Stdout
	if c.Output != "" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("creating report file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := report.Encode(out, format); err != nil {
		return err
	}
	if c.Output != "" {
		fmt.Printf("Report written to %s\n", c.Output)
	}
	return nil
}

func printSummary(summary stats.Summary, apiStats *stats.APIStats) {
	fmt.Printf("Books:          %d\n", summary.TotalBooks)
	fmt.Printf("Authors:        %d\n", summary.TotalAuthors)
	fmt.Printf("Available:      %d\n", summary.Available)
	fmt.Printf("Enriched:       %d\n", summary.Enriched)
	if summary.AverageRating > 0 {
		fmt.Printf("Avg rating:     %.1f\n", summary.AverageRating)
	}
	if summary.MostPopularGenre != "" {
		fmt.Printf("Top genre:      %s\n", summary.MostPopularGenre)
	}
	if len(summary.Genres) > 0 {
		fmt.Println("By genre:")
		for _, gc := range stats.TopGenres(summary.Genres, len(summary.Genres)) {
			fmt.Printf("  %-20s %d\n", gc.Genre, gc.Count)
		}
	}

	if apiStats != nil {
		fmt.Printf("\nOpenLibrary sample (%d results):\n", apiStats.TotalResults)
		for _, gc := range apiStats.TopGenres {
			fmt.Printf("  %-20s %d\n", gc.Genre, gc.Count)
		}
	}
}
