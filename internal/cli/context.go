package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/config"
	"github.com/iburimskiy/sketchdeck/internal/logging"
	"github.com/iburimskiy/sketchdeck/internal/settings"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error

	loggerOnce sync.Once
	logger     *zap.Logger
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// ensureLogger builds the logger from config, falling back to a no-op logger
// when the log sink cannot be opened.
func (c *commandContext) ensureLogger() *zap.Logger {
	c.loggerOnce.Do(func() {
		cfg, _ := c.ensureConfig()
		logger, err := logging.NewFromConfig(cfg)
		if err != nil {
			logger = zap.NewNop()
		}
		c.logger = logger
	})
	return c.logger
}

// withStore opens the settings store for the duration of fn.
func (c *commandContext) withStore(fn func(*settings.Store) error) error {
	cfg, err := c.ensureConfig()
	if err != nil {
		return err
	}
	store, err := settings.Open(cfg.Paths.StateDir)
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	defer store.Close()
	return fn(store)
}

// loadSettings reads the typed settings from store on top of the defaults.
func (c *commandContext) loadSettings(ctx context.Context, store *settings.Store) (*settings.Settings, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	s := settings.Defaults(cfg.Slideshow.DefaultHistorySize)
	if err := s.Load(ctx, store); err != nil {
		var invalid *settings.InvalidValuesError
		if !errors.As(err, &invalid) {
			return nil, err
		}
		c.ensureLogger().Warn("ignoring malformed stored settings", zap.Strings("keys", invalid.Keys()), zap.Error(err))
	}
	return &s, nil
}

func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return context.WithTimeout(parent, d)
}
