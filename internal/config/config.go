package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths locates images, the image list and local state.
type Paths struct {
	// ImageRoot is a directory or an http(s) base URL that image identifiers
	// are resolved against.
	ImageRoot string `toml:"image_root"`
	// Catalog is the JSON image list. Empty means <image_root>/image-list.json.
	Catalog  string `toml:"catalog"`
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Window holds the initial window geometry.
type Window struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
}

// Slideshow tunes the viewer behaviour.
type Slideshow struct {
	TickIntervalMS     int `toml:"tick_interval_ms"`
	DefaultHistorySize int `toml:"default_history_size"`
	MaxTextureSize     int `toml:"max_texture_size"`
	RecentTimers       int `toml:"recent_timers"`
}

// Audio configures the cue sounds.
type Audio struct {
	Enabled  bool    `toml:"enabled"`
	NextCue  string  `toml:"next_cue"`
	LimitCue string  `toml:"limit_cue"`
	Volume   float64 `toml:"volume"`
}

// Toggl configures the optional time-tracking integration. The API key itself
// is user state and lives in the settings store.
type Toggl struct {
	BaseURL        string `toml:"base_url"`
	RequestTimeout int    `toml:"request_timeout"`
	CreatedWith    string `toml:"created_with"`
	APIKey         string `toml:"-"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for sketchdeck.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Window    Window    `toml:"window"`
	Slideshow Slideshow `toml:"slideshow"`
	Audio     Audio     `toml:"audio"`
	Toggl     Toggl     `toml:"toggl"`
	Logging   Logging   `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. A missing file is
// not an error; defaults and environment overrides apply instead.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.applyEnv()

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("sketchdeck.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

func (c *Config) applyEnv() {
	if value, ok := os.LookupEnv("SKETCHDECK_IMAGE_ROOT"); ok && strings.TrimSpace(value) != "" {
		c.Paths.ImageRoot = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("TOGGL_API_KEY"); ok {
		c.Toggl.APIKey = strings.TrimSpace(value)
	}
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// RemoteImages reports whether images are fetched over HTTP.
func (c *Config) RemoteImages() bool {
	return IsRemote(c.Paths.ImageRoot)
}

// IsRemote reports whether location is an http(s) URL.
func IsRemote(location string) bool {
	u, err := url.Parse(strings.TrimSpace(location))
	if err != nil {
		return false
	}
	return u.Scheme == "http" || u.Scheme == "https"
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
