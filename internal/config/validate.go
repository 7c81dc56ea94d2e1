package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Paths.ImageRoot) == "" {
		return errors.New("paths.image_root must be set (or export SKETCHDECK_IMAGE_ROOT)")
	}
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errors.New("paths.state_dir must be set")
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return errors.New("window.width and window.height must be positive")
	}
	if err := c.validateSlideshow(); err != nil {
		return err
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return errors.New("audio.volume must be between 0 and 1")
	}
	if c.Toggl.RequestTimeout <= 0 {
		return errors.New("toggl.request_timeout must be positive (seconds)")
	}
	if !IsRemote(c.Toggl.BaseURL) {
		return fmt.Errorf("toggl.base_url must be an http(s) URL, got %q", c.Toggl.BaseURL)
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSlideshow() error {
	if c.Slideshow.TickIntervalMS <= 0 || c.Slideshow.TickIntervalMS > 1000 {
		return errors.New("slideshow.tick_interval_ms must be between 1 and 1000")
	}
	if c.Slideshow.DefaultHistorySize < 2 {
		return errors.New("slideshow.default_history_size must be at least 2")
	}
	if c.Slideshow.MaxTextureSize < 256 {
		return errors.New("slideshow.max_texture_size must be at least 256")
	}
	if c.Slideshow.RecentTimers < 1 {
		return errors.New("slideshow.recent_timers must be positive")
	}
	return nil
}
