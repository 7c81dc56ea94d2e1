package imageload_test

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iburimskiy/sketchdeck/internal/imageload"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestDecodeDownscalesLargeImages(t *testing.T) {
	img, format, err := imageload.Decode(bytes.NewReader(encodePNG(t, 400, 100)), 200)
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 50, img.Bounds().Dy())

	small, _, err := imageload.Decode(bytes.NewReader(encodePNG(t, 40, 30)), 200)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 40, 30), small.Bounds())

	_, _, err = imageload.Decode(bytes.NewReader([]byte("not an image")), 200)
	assert.Error(t, err)
}

func TestLoadFromDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "poses", "standing"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "poses", "standing", "01.png"), encodePNG(t, 20, 10), 0o644))

	l, err := imageload.New(root, 0, nil, nil)
	require.NoError(t, err)

	img, err := l.Load(context.Background(), "poses/standing/01.png")
	require.NoError(t, err)
	assert.Equal(t, 20, img.Bounds().Dx())

	_, err = l.Load(context.Background(), "poses/missing.png")
	assert.Error(t, err)

	_, err = l.Locate("../secrets/key.png")
	assert.ErrorIs(t, err, imageload.ErrOutsideRoot)
}

func TestLoadFromURL(t *testing.T) {
	data := encodePNG(t, 12, 12)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/hands/open palm.png" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	l, err := imageload.New(srv.URL+"/img", 0, srv.Client(), nil)
	require.NoError(t, err)

	location, err := l.Locate("hands/open palm.png")
	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/img/hands/open%20palm.png", location)

	img, err := l.Load(context.Background(), "hands/open palm.png")
	require.NoError(t, err)
	assert.Equal(t, 12, img.Bounds().Dy())

	_, err = l.Load(context.Background(), "hands/fist.png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestRequestDeliversResult(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.png"), encodePNG(t, 8, 8), 0o644))
	l, err := imageload.New(root, 0, nil, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	l.Request(ctx, "a.png")
	l.Request(ctx, "b.png")

	got := map[string]error{}
	for len(got) < 2 {
		select {
		case res := <-l.Results():
			got[res.Name] = res.Err
		case <-time.After(5 * time.Second):
			t.Fatal("no result delivered")
		}
	}
	assert.NoError(t, got["a.png"])
	assert.Error(t, got["b.png"])
}

func TestNewRequiresRoot(t *testing.T) {
	_, err := imageload.New("  ", 0, nil, nil)
	assert.Error(t, err)
}
