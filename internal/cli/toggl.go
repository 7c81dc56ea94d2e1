package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/sketchdeck/internal/settings"
	"github.com/iburimskiy/sketchdeck/internal/toggl"
)

func newTogglCommand(ctx *commandContext) *cobra.Command {
	togglCmd := &cobra.Command{
		Use:   "toggl",
		Short: "Manage the Toggl time-tracking connection",
	}
	togglCmd.AddCommand(newTogglLoginCommand(ctx))
	togglCmd.AddCommand(newTogglLogoutCommand(ctx))
	return togglCmd
}

func newTogglLoginCommand(ctx *commandContext) *cobra.Command {
	var apiKey string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store a Toggl API token and resolve its workspace",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			key := strings.TrimSpace(apiKey)
			if key == "" {
				key = cfg.Toggl.APIKey
			}
			if key == "" {
				return errors.New("pass --api-key or set TOGGL_API_KEY")
			}

			client, err := toggl.New(toggl.Config{
				APIKey:      key,
				BaseURL:     cfg.Toggl.BaseURL,
				CreatedWith: cfg.Toggl.CreatedWith,
				Timeout:     time.Duration(cfg.Toggl.RequestTimeout) * time.Second,
			})
			if err != nil {
				return err
			}

			return ctx.withStore(func(store *settings.Store) error {
				s, err := ctx.loadSettings(cmd.Context(), store)
				if err != nil {
					return err
				}
				candidate := settings.Settings{TogglAPIKey: key}
				reqCtx, cancel := contextWithTimeout(cmd, time.Duration(cfg.Toggl.RequestTimeout)*time.Second)
				defer cancel()
				if _, err := toggl.ResolveWorkspace(reqCtx, client, &candidate); err != nil {
					var apiErr *toggl.APIError
					if errors.As(err, &apiErr) && apiErr.Unauthorized() {
						return errors.New("toggl rejected the API token")
					}
					return fmt.Errorf("resolve toggl workspace: %w", err)
				}

				s.TogglAPIKey = key
				s.TogglWorkspaceID = candidate.TogglWorkspaceID
				if err := s.Flush(cmd.Context(), store); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Connected to Toggl workspace %d\n", s.TogglWorkspaceID)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&apiKey, "api-key", "", "Toggl API token (default $TOGGL_API_KEY)")
	return cmd
}

func newTogglLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored Toggl token",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *settings.Store) error {
				s, err := ctx.loadSettings(cmd.Context(), store)
				if err != nil {
					return err
				}
				s.TogglAPIKey = ""
				s.TogglWorkspaceID = 0
				if err := s.Flush(cmd.Context(), store); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Toggl disconnected")
				return nil
			})
		},
	}
}
