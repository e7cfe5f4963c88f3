package cmd

import (
	"context"
	"fmt"
)

// StatusCmd probes OpenLibrary connectivity.
type StatusCmd struct{}

func (c *StatusCmd) Run(app *App) error {
	if app.Client.TestConnectivity(context.Background()) {
		fmt.Println("OpenLibrary: online")
		return nil
	}
	fmt.Println("OpenLibrary: unavailable")
	return nil
}
