package config

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	root := strings.TrimSpace(c.Paths.ImageRoot)
	if IsRemote(root) {
		c.Paths.ImageRoot = strings.TrimRight(root, "/")
	} else {
		expanded, err := expandPath(root)
		if err != nil {
			return fmt.Errorf("paths.image_root: %w", err)
		}
		c.Paths.ImageRoot = expanded
	}

	catalog := strings.TrimSpace(c.Paths.Catalog)
	switch {
	case catalog == "" && IsRemote(c.Paths.ImageRoot):
		c.Paths.Catalog = c.Paths.ImageRoot + "/" + defaultCatalogFileName
	case catalog == "":
		c.Paths.Catalog = filepath.Join(c.Paths.ImageRoot, defaultCatalogFileName)
	case IsRemote(catalog):
		c.Paths.Catalog = catalog
	default:
		expanded, err := expandPath(catalog)
		if err != nil {
			return fmt.Errorf("paths.catalog: %w", err)
		}
		c.Paths.Catalog = expanded
	}

	for _, target := range []*string{&c.Paths.StateDir, &c.Paths.LogDir} {
		expanded, err := expandPath(strings.TrimSpace(*target))
		if err != nil {
			return err
		}
		*target = expanded
	}

	// Cue paths are relative to the image root unless absolute, mirroring the
	// way the cues ship next to the image list.
	if c.Audio.NextCue == "" {
		c.Audio.NextCue = joinLocation(c.Paths.ImageRoot, defaultNextCueFileName)
	}
	if c.Audio.LimitCue == "" {
		c.Audio.LimitCue = joinLocation(c.Paths.ImageRoot, defaultLimitCueFileName)
	}
	for _, target := range []*string{&c.Audio.NextCue, &c.Audio.LimitCue} {
		if IsRemote(*target) {
			continue
		}
		expanded, err := expandPath(strings.TrimSpace(*target))
		if err != nil {
			return err
		}
		*target = expanded
	}

	c.Toggl.BaseURL = strings.TrimRight(strings.TrimSpace(c.Toggl.BaseURL), "/")
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Window.Title == "" {
		c.Window.Title = defaultWindowTitle
	}
	return nil
}

func joinLocation(base, name string) string {
	if IsRemote(base) {
		return strings.TrimRight(base, "/") + "/" + path.Clean(name)
	}
	return filepath.Join(base, name)
}
