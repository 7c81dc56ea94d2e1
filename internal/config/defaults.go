package config

const (
	defaultConfigPath         = "~/.config/sketchdeck/config.toml"
	defaultImageRoot          = "~/Pictures/references"
	defaultStateDir           = "~/.local/share/sketchdeck"
	defaultLogDir             = "~/.local/share/sketchdeck/logs"
	defaultWindowTitle        = "sketchdeck"
	defaultTickIntervalMS     = 100
	defaultHistorySize        = 50
	defaultMaxTextureSize     = 4096
	defaultRecentTimers       = 5
	defaultAudioVolume        = 1.0
	defaultTogglBaseURL       = "https://api.track.toggl.com/api/v9"
	defaultTogglTimeout       = 10
	defaultTogglCreatedWith   = "sketchdeck"
	defaultLogFormat          = "console"
	defaultLogLevel           = "info"
	defaultCatalogFileName    = "image-list.json"
	defaultNextCueFileName    = "next.mp3"
	defaultLimitCueFileName   = "limit-reached.mp3"
	defaultWindowWidthPixels  = WindowWidth
	defaultWindowHeightPixels = WindowHeight
)

// Window and control bar geometry shared by the renderer.
const (
	WindowWidth  = 1024
	WindowHeight = 768

	// Control bar
	ControlBarHeight = 56
	ButtonWidth      = 96
	ButtonHeight     = 36
	ButtonGap        = 12

	// Picker
	PickerLineHeight = 18
	PickerMarginX    = 24
	PickerMarginY    = 24

	// Overlay
	OverlayMessageSeconds = 3
	CountdownBarHeight    = 6
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			ImageRoot: defaultImageRoot,
			StateDir:  defaultStateDir,
			LogDir:    defaultLogDir,
		},
		Window: Window{
			Width:  defaultWindowWidthPixels,
			Height: defaultWindowHeightPixels,
			Title:  defaultWindowTitle,
		},
		Slideshow: Slideshow{
			TickIntervalMS:     defaultTickIntervalMS,
			DefaultHistorySize: defaultHistorySize,
			MaxTextureSize:     defaultMaxTextureSize,
			RecentTimers:       defaultRecentTimers,
		},
		Audio: Audio{
			Enabled: true,
			Volume:  defaultAudioVolume,
		},
		Toggl: Toggl{
			BaseURL:        defaultTogglBaseURL,
			RequestTimeout: defaultTogglTimeout,
			CreatedWith:    defaultTogglCreatedWith,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
