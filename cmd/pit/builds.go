package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/cyber-pit/internal/console"
)

var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "List the robot builds on sale",
	RunE: func(cmd *cobra.Command, _ []string) error {
		catalog, err := loadCatalog(settings.Catalog)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range catalog.BuildNames() {
			tmpl, err := catalog.Template(name)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s - %d BTC - %s\n  %s\n",
				tmpl.Name, tmpl.Cost, tmpl.Description, console.DescribeBuild(catalog, tmpl))
		}
		return nil
	},
}
