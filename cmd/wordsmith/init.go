// Init command for the wordsmith CLI.
package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the configuration file and vocabulary database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// setup has already written a default config.yaml; attaching
			// creates the data directory and schema.
			store, err := a.attachStore()
			if err != nil {
				return err
			}
			defer store.Detach()

			fmt.Fprintln(a.stdout, "Wordsmith initialized successfully")
			fmt.Fprintln(a.stdout, "  config:", filepath.Join(a.configDir, configFileExt))
			fmt.Fprintln(a.stdout, "  data:  ", store.Path())
			return nil
		},
	}
}
