package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lepinkainen/bibliotheca/internal/config"
	"github.com/lepinkainen/bibliotheca/internal/covers"
)

// CoversCmd downloads cover images for every book carrying a cover URL.
type CoversCmd struct {
	Update bool `help:"Re-download covers that already exist"`
}

func (c *CoversCmd) Run(app *App) error {
	books, err := app.Gateway.LoadBooks()
	if err != nil {
		return err
	}

	downloader := covers.NewDownloader(
		&http.Client{Timeout: 30 * time.Second},
		config.CoversDir,
		c.Update,
	)

	downloaded := 0
	skipped := 0
	for _, book := range books {
		if book.CoverURL == "" {
			continue
		}
		result, err := downloader.Download(context.Background(), book.Title, book.CoverURL)
		if err != nil {
			slog.Warn("Cover download failed", "title", book.Title, "error", err)
			continue
		}
		if result != nil && result.Downloaded {
			downloaded++
		} else {
			skipped++
		}
	}

	fmt.Printf("Downloaded %d cover(s), %d already present\n", downloaded, skipped)
	return nil
}
