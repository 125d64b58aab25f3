package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"hellodemo/internal/app"
	"hellodemo/internal/logging"
)

var componentsCmd = &cobra.Command{
	Use:   "components",
	Short: "Print the components the current configuration registers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _ := loadConfig()

		// Built without resources; only the registry is read.
		a, err := app.New(cfg, logging.Discard(), app.Deps{})
		if err != nil {
			return err
		}
		for _, name := range a.Components() {
			fmt.Fprintln(cmd.OutOrStdout(), name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(componentsCmd)
}
