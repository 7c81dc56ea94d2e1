// Package cli holds the sketchdeck command tree.
package cli

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the sketchdeck command tree. Without a subcommand it
// opens the slideshow window.
func NewRootCommand() *cobra.Command {
	var configFlag string
	ctx := newCommandContext(&configFlag)

	runCmd := newRunCommand(ctx)

	rootCmd := &cobra.Command{
		Use:           "sketchdeck",
		Short:         "Timed figure-drawing slideshow",
		Long:          "sketchdeck shows random reference images from the categories you pick, one at a time, with an optional per-image timer and completion limit.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Credentials may live in .env; a missing file is fine.
			_ = godotenv.Load()
			if shouldSkipConfig(cmd) {
				return nil
			}
			_, err := ctx.ensureConfig()
			return err
		},
		RunE: runCmd.RunE,
	}
	rootCmd.Flags().AddFlagSet(runCmd.Flags())

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(newCatalogCommand(ctx))
	rootCmd.AddCommand(newSettingsCommand(ctx))
	rootCmd.AddCommand(newHistoryCommand(ctx))
	rootCmd.AddCommand(newTogglCommand(ctx))
	rootCmd.AddCommand(newConfigCommand(ctx))

	return rootCmd
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}
