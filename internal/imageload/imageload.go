// Package imageload fetches and decodes reference images off the render
// goroutine, downscaling anything larger than the texture limit.
package imageload

import (
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nfnt/resize"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const (
	defaultMaxSize = 4096
	resultBuffer   = 4
	fetchTimeout   = 30 * time.Second
)

// ErrOutsideRoot is returned for names that resolve outside the image root.
var ErrOutsideRoot = errors.New("image path escapes the image root")

// Result is the outcome of an asynchronous load.
type Result struct {
	Name  string
	Image image.Image
	Err   error
}

// Loader resolves image names against a directory or http(s) base URL.
type Loader struct {
	root    string
	remote  *url.URL
	maxSize int
	client  *http.Client
	results chan Result
	logger  *zap.Logger
}

// New returns a loader for root. Images wider or taller than maxSize are
// downscaled to fit.
func New(root string, maxSize int, client *http.Client, logger *zap.Logger) (*Loader, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if maxSize <= 0 {
		maxSize = defaultMaxSize
	}
	if client == nil {
		client = &http.Client{Timeout: fetchTimeout}
	}
	l := &Loader{
		root:    root,
		maxSize: maxSize,
		client:  client,
		results: make(chan Result, resultBuffer),
		logger:  logger.Named("imageload"),
	}
	if u, err := url.Parse(root); err == nil && (u.Scheme == "http" || u.Scheme == "https") {
		l.remote = u
	} else if strings.TrimSpace(root) == "" {
		return nil, errors.New("image root not configured")
	}
	return l, nil
}

// Locate returns the file path or URL for name.
func (l *Loader) Locate(name string) (string, error) {
	segments := strings.Split(strings.TrimLeft(name, "/"), "/")
	if l.remote != nil {
		return l.remote.JoinPath(segments...).String(), nil
	}
	target := filepath.Join(append([]string{l.root}, segments...)...)
	rel, err := filepath.Rel(l.root, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, name)
	}
	return target, nil
}

// Load fetches and decodes name.
func (l *Loader) Load(ctx context.Context, name string) (image.Image, error) {
	location, err := l.Locate(name)
	if err != nil {
		return nil, err
	}
	rc, err := l.open(ctx, location)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, format, err := Decode(rc, l.maxSize)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	l.logger.Debug("image loaded",
		zap.String("image", name),
		zap.String("format", format),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return img, nil
}

// Request loads name on a new goroutine and delivers the outcome on Results.
// The send is abandoned when ctx is done.
func (l *Loader) Request(ctx context.Context, name string) {
	go func() {
		img, err := l.Load(ctx, name)
		select {
		case l.results <- Result{Name: name, Image: img, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Results delivers the outcomes of Request.
func (l *Loader) Results() <-chan Result { return l.results }

func (l *Loader) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if l.remote == nil {
		file, err := os.Open(location)
		if err != nil {
			return nil, fmt.Errorf("open image: %w", err)
		}
		return file, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch image: %s returned %d", location, resp.StatusCode)
	}
	return resp.Body, nil
}

// Decode reads any registered image format and shrinks the result so neither
// side exceeds maxSize.
func Decode(r io.Reader, maxSize int) (image.Image, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", err
	}
	b := img.Bounds()
	if maxSize > 0 && (b.Dx() > maxSize || b.Dy() > maxSize) {
		img = resize.Thumbnail(uint(maxSize), uint(maxSize), img, resize.Lanczos3)
	}
	return img, format, nil
}
