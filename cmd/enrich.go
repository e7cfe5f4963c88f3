package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lepinkainen/bibliotheca/internal/config"
	"github.com/lepinkainen/bibliotheca/internal/enrich"
)

// EnrichCmd runs one batch auto-enrichment pass over the catalog.
type EnrichCmd struct {
	Max   int           `help:"Maximum remote lookups this run (defaults to config enrich.maxperrun)"`
	Pause time.Duration `help:"Pause between remote calls (defaults to config enrich.pause)"`
}

func (c *EnrichCmd) Run(app *App) error {
	maxPerRun := c.Max
	if maxPerRun <= 0 {
		maxPerRun = config.EnrichMaxPerRun
	}
	pause := c.Pause
	if pause <= 0 {
		pause = config.EnrichPause
	}

	batch := enrich.NewBatch(app.Gateway, app.Client,
		enrich.WithMaxPerRun(maxPerRun),
		enrich.WithPause(pause),
		enrich.WithRefresh(func(enriched int) {
			slog.Info("Catalog updated", "enriched", enriched)
		}),
	)

	enriched, err := batch.Run(context.Background())
	if err != nil {
		return err
	}

	if enriched == 0 {
		fmt.Println("Nothing to enrich.")
		return nil
	}
	fmt.Printf("Enriched %d book(s) from OpenLibrary\n", enriched)
	return nil
}
