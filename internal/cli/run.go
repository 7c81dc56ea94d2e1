package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/audio"
	"github.com/iburimskiy/sketchdeck/internal/catalog"
	"github.com/iburimskiy/sketchdeck/internal/settings"
	"github.com/iburimskiy/sketchdeck/internal/slideshow"
)

const catalogTimeout = 30 * time.Second

func newRunCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var timerSeconds int
	var start bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the slideshow window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger := ctx.ensureLogger()
			defer func() { _ = logger.Sync() }()

			loadCtx, cancel := contextWithTimeout(cmd, catalogTimeout)
			cat := catalog.LoadCatalog(loadCtx, cfg.Paths.Catalog, nil, logger)
			cancel()

			return ctx.withStore(func(store *settings.Store) error {
				s, err := ctx.loadSettings(cmd.Context(), store)
				if err != nil {
					return err
				}
				if cmd.Flags().Changed("limit") {
					if limit < 0 {
						return fmt.Errorf("--limit must not be negative")
					}
					s.Limit = limit
				}
				if cmd.Flags().Changed("timer") {
					if timerSeconds < 0 {
						return fmt.Errorf("--timer must not be negative")
					}
					s.TimerSeconds = timerSeconds
				}
				if !s.TogglConfigured() && cfg.Toggl.APIKey != "" {
					s.TogglAPIKey = cfg.Toggl.APIKey
				}
				if err := s.Flush(cmd.Context(), store); err != nil {
					return err
				}

				game, err := slideshow.New(slideshow.Options{
					Config:    cfg,
					Catalog:   cat,
					Settings:  s,
					Store:     store,
					Player:    audio.NewPlayer(cfg.Audio, logger),
					Logger:    logger,
					AutoStart: start && len(cat.Select(s.SelectedCategories)) > 0,
				})
				if err != nil {
					return err
				}
				logger.Info("window opening",
					zap.Int("categories", cat.Len()),
					zap.Int("images", cat.Total()))
				return slideshow.Run(game)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Completion limit for this and later sessions (0 disables)")
	cmd.Flags().IntVar(&timerSeconds, "timer", 0, "Seconds per image for this and later sessions (0 disables)")
	cmd.Flags().BoolVar(&start, "start", false, "Skip the picker and start with the stored selection")
	return cmd
}
