package cmd

import "fmt"

// ResetCmd overwrites both collections with the sample data.
type ResetCmd struct {
	Force bool `help:"Skip the confirmation prompt"`
}

func (c *ResetCmd) Run(app *App) error {
	if !c.Force {
		fmt.Print("This replaces all books and authors with the sample data. Continue? [y/N] ")
		var answer string
		if _, err := fmt.Scanln(&answer); err != nil || (answer != "y" && answer != "Y") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.Gateway.Reset(); err != nil {
		return err
	}
	fmt.Println("Catalog reset to sample data.")
	return nil
}
