package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iburimskiy/sketchdeck/internal/catalog"
)

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image-list.json")
	require.NoError(t, catalog.WriteList(path, []string{"a/1.png", "2.png"}))

	paths, err := catalog.Load(context.Background(), path, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.png", "2.png"}, paths)
}

func TestLoadFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/refs/image-list.json" {
			http.NotFound(w, r)
			return
		}
		_ = json.NewEncoder(w).Encode([]string{"poses/1.jpg"})
	}))
	defer server.Close()

	paths, err := catalog.Load(context.Background(), server.URL+"/refs/image-list.json", server.Client())
	require.NoError(t, err)
	assert.Equal(t, []string{"poses/1.jpg"}, paths)

	_, err = catalog.Load(context.Background(), server.URL+"/missing.json", server.Client())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestLoadErrors(t *testing.T) {
	_, err := catalog.Load(context.Background(), "  ", nil)
	assert.ErrorIs(t, err, catalog.ErrEmptySource)

	_, err = catalog.Load(context.Background(), filepath.Join(t.TempDir(), "nope.json"), nil)
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"not":"a list"}`), 0o644))
	_, err = catalog.Load(context.Background(), bad, nil)
	assert.Error(t, err)
}

func TestLoadCatalogFallsBackToEmpty(t *testing.T) {
	c := catalog.LoadCatalog(context.Background(), filepath.Join(t.TempDir(), "nope.json"), nil, zap.NewNop())
	require.NotNil(t, c)
	assert.Zero(t, c.Len())
}

func TestScanFindsImagesRecursively(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{
		"poses/standing/b.PNG",
		"poses/standing/a.jpg",
		"hands/c.webp",
		"loose.png",
		"notes.txt",
		".cache/thumb.png",
	} {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0o644))
	}

	paths, err := catalog.Scan(root)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"hands/c.webp",
		"loose.png",
		"poses/standing/a.jpg",
		"poses/standing/b.PNG",
	}, paths)

	_, err = catalog.Scan(filepath.Join(root, "loose.png"))
	assert.Error(t, err)
}
