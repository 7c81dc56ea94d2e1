package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
)

// ErrEmptySource is returned when no catalog location is configured.
var ErrEmptySource = errors.New("catalog source not configured")

var imageExts = map[string]struct{}{
	".png":  {},
	".jpg":  {},
	".jpeg": {},
	".gif":  {},
	".webp": {},
	".bmp":  {},
	".tif":  {},
	".tiff": {},
}

// IsImage reports whether path has a supported image extension.
func IsImage(path string) bool {
	_, ok := imageExts[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Load reads the JSON image list from a local file or an http(s) URL.
func Load(ctx context.Context, source string, client *http.Client) ([]string, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, ErrEmptySource
	}

	var body io.ReadCloser
	if u, err := url.Parse(source); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		if client == nil {
			client = &http.Client{Timeout: 30 * time.Second}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		resp, err := client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch catalog: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			resp.Body.Close()
			return nil, fmt.Errorf("fetch catalog: %s returned %d", source, resp.StatusCode)
		}
		body = resp.Body
	} else {
		file, err := os.Open(source)
		if err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		body = file
	}
	defer body.Close()

	var paths []string
	if err := json.NewDecoder(body).Decode(&paths); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return paths, nil
}

// LoadCatalog loads and builds the catalog. Failures are logged and yield an
// empty catalog so the picker can still open.
func LoadCatalog(ctx context.Context, source string, client *http.Client, logger *zap.Logger) *Catalog {
	paths, err := Load(ctx, source, client)
	if err != nil {
		if logger != nil {
			logger.Error("catalog unavailable", zap.String("source", source), zap.Error(err))
		}
		return Build(nil)
	}
	c := Build(paths)
	if logger != nil {
		logger.Info("catalog loaded",
			zap.String("source", source),
			zap.Int("categories", c.Len()),
			zap.Int("images", c.Total()))
	}
	return c
}

// Scan walks root and returns slash-separated paths of image files relative
// to root, sorted.
func Scan(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat image root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("image root %s is not a directory", root)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if !IsImage(path) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

// WriteList stores paths as an indented JSON array.
func WriteList(path string, paths []string) error {
	if paths == nil {
		paths = []string{}
	}
	data, err := json.MarshalIndent(paths, "", "  ")
	if err != nil {
		return fmt.Errorf("encode image list: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create image list directory: %w", err)
		}
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write image list: %w", err)
	}
	return nil
}
