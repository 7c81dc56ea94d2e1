package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/sketchdeck/internal/settings"
)

func newSettingsCommand(ctx *commandContext) *cobra.Command {
	settingsCmd := &cobra.Command{
		Use:   "settings",
		Short: "Inspect and change persisted settings",
	}
	settingsCmd.AddCommand(newSettingsShowCommand(ctx))
	settingsCmd.AddCommand(newSettingsSetCommand(ctx))
	settingsCmd.AddCommand(newSettingsResetCommand(ctx))
	return settingsCmd
}

func newSettingsShowCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show stored settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *settings.Store) error {
				rows := make([][]string, 0, len(settings.KnownKeys))
				for _, key := range settings.KnownKeys {
					value, ok, err := store.Get(cmd.Context(), key)
					if err != nil {
						return err
					}
					switch {
					case !ok:
						value = "(unset)"
					case key == settings.KeyTogglAPIKey:
						value = maskSecret(value)
					}
					rows = append(rows, []string{key, value})
				}
				stored, err := store.Keys(cmd.Context())
				if err != nil {
					return err
				}
				for _, key := range stored {
					if slices.Contains(settings.KnownKeys, key) {
						continue
					}
					value, _, err := store.Get(cmd.Context(), key)
					if err != nil {
						return err
					}
					rows = append(rows, []string{key + " (unused)", value})
				}
				w := cmd.OutOrStdout()
				fmt.Fprintln(w, renderTable(w, []string{"Key", "Value"}, rows, nil))
				fmt.Fprintf(w, "Stored in %s\n", store.Path())
				return nil
			})
		},
	}
}

func newSettingsSetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Store a setting",
		Long:  "Store a setting. Known keys: " + strings.Join(settings.KnownKeys, ", "),
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]
			if !slices.Contains(settings.KnownKeys, key) {
				return fmt.Errorf("unknown setting %q", key)
			}
			if err := settings.Validate(key, value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", key, err)
			}
			return ctx.withStore(func(store *settings.Store) error {
				if err := store.Set(cmd.Context(), key, value); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Set %s\n", key)
				return nil
			})
		},
	}
}

func newSettingsResetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Remove every stored setting",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *settings.Store) error {
				if err := store.Clear(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Settings reset to defaults")
				return nil
			})
		},
	}
}

// maskSecret keeps the last four characters of secret.
func maskSecret(secret string) string {
	if len(secret) <= 4 {
		return strings.Repeat("*", len(secret))
	}
	return strings.Repeat("*", len(secret)-4) + secret[len(secret)-4:]
}
