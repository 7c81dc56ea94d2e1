package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("SKETCHDECK_IMAGE_ROOT", "")
	t.Setenv("TOGGL_API_KEY", "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.Equal(t, filepath.Join(tempHome, ".config", "sketchdeck", "config.toml"), resolved)

	assert.Equal(t, filepath.Join(tempHome, "Pictures", "references"), cfg.Paths.ImageRoot)
	assert.Equal(t, filepath.Join(tempHome, "Pictures", "references", "image-list.json"), cfg.Paths.Catalog)
	assert.Equal(t, filepath.Join(tempHome, ".local", "share", "sketchdeck"), cfg.Paths.StateDir)
	assert.Equal(t, filepath.Join(tempHome, "Pictures", "references", "next.mp3"), cfg.Audio.NextCue)
	assert.Equal(t, 100, cfg.Slideshow.TickIntervalMS)
	assert.Equal(t, 50, cfg.Slideshow.DefaultHistorySize)
	assert.Equal(t, "https://api.track.toggl.com/api/v9", cfg.Toggl.BaseURL)
	assert.Empty(t, cfg.Toggl.APIKey)
}

func TestLoadParsesFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sketchdeck.toml")
	contents := `
[paths]
image_root = "https://cdn.example.com/refs/"
state_dir = "` + filepath.ToSlash(filepath.Join(dir, "state")) + `"

[slideshow]
tick_interval_ms = 250
default_history_size = 10

[logging]
format = "JSON"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	t.Setenv("TOGGL_API_KEY", "  secret  ")
	t.Setenv("SKETCHDECK_IMAGE_ROOT", "")

	cfg, resolved, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, path, resolved)

	assert.True(t, cfg.RemoteImages())
	assert.Equal(t, "https://cdn.example.com/refs", cfg.Paths.ImageRoot)
	assert.Equal(t, "https://cdn.example.com/refs/image-list.json", cfg.Paths.Catalog)
	assert.Equal(t, "https://cdn.example.com/refs/limit-reached.mp3", cfg.Audio.LimitCue)
	assert.Equal(t, 250, cfg.Slideshow.TickIntervalMS)
	assert.Equal(t, 10, cfg.Slideshow.DefaultHistorySize)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "secret", cfg.Toggl.APIKey)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "tick interval",
			body:    "[slideshow]\ntick_interval_ms = 0\n",
			wantErr: "slideshow.tick_interval_ms",
		},
		{
			name:    "history size",
			body:    "[slideshow]\ndefault_history_size = 1\n",
			wantErr: "slideshow.default_history_size",
		},
		{
			name:    "volume",
			body:    "[audio]\nvolume = 2.5\n",
			wantErr: "audio.volume",
		},
		{
			name:    "log format",
			body:    "[logging]\nformat = \"xml\"\n",
			wantErr: "logging.format",
		},
		{
			name:    "toggl url",
			body:    "[toggl]\nbase_url = \"ftp://toggl\"\n",
			wantErr: "toggl.base_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, _, _, err := config.Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	require.NoError(t, config.CreateSample(path))

	cfg, _, exists, err := config.Load(path)
	require.NoError(t, err)
	assert.True(t, exists)
	assert.Equal(t, config.Default().Slideshow, cfg.Slideshow)
}

func TestIsRemote(t *testing.T) {
	assert.True(t, config.IsRemote("https://example.com/img"))
	assert.True(t, config.IsRemote("http://localhost:8080"))
	assert.False(t, config.IsRemote("/srv/images"))
	assert.False(t, config.IsRemote("~/images"))
	assert.False(t, config.IsRemote(""))
}
