package catalog

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nexus/internal/assets"
	"nexus/models"
)

const themesJSON = `{"themes":{"nord":{"accent":"#88C0D0","background":"#2E3440","surface":"#3B4252","textPrimary":"#ECEFF4","textSecondary":"#D8DEE9","textAccent":"#2E3440","border":"#4C566A","hover":"#434C5E","shadow":"rgba(0,0,0,0.35)","error":"#BF616A"},"broken":{"accent":"#000"},"blank":{"accent":"#88C0D0","background":"#2E3440","surface":"#3B4252","textPrimary":"#ECEFF4","textSecondary":"#D8DEE9","textAccent":"#2E3440","border":"#4C566A","hover":"#434C5E","shadow":"","error":"#BF616A"}}}`

const imagesJSON = `{"images":{"dunes":{"id":"dunes","name":"Dunes","src":"/img/dunes.jpg","credit":"A. Photographer"},"uncredited":{"id":"uncredited","name":"Uncredited","src":"/img/u.jpg"}}}`

func serve(t *testing.T, handler http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestFetchThemesOverHTTPSkipsInvalidEntries(t *testing.T) {
	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(themesJSON))
	})

	loader := New(nil, nil, base+"/assets/themes.json", base+"/assets/images.json", time.Second)
	themes := loader.FetchThemes(context.Background())

	require.Len(t, themes, 1)
	assert.Equal(t, "#88C0D0", themes["nord"].Accent)
	assert.NotContains(t, themes, "broken")
	assert.NotContains(t, themes, "blank")
}

func TestFetchImagesDecodesBrotli(t *testing.T) {
	var compressed bytes.Buffer
	writer := brotli.NewWriter(&compressed)
	_, err := writer.Write([]byte(imagesJSON))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("Accept-Encoding"), "br")
		w.Header().Set("Content-Encoding", "br")
		_, _ = w.Write(compressed.Bytes())
	})

	loader := New(nil, nil, "", base+"/images.json", time.Second)
	images := loader.FetchImages(context.Background())

	require.Len(t, images, 1, "uncredited image should be skipped")
	assert.Equal(t, "Dunes", images["dunes"].Name)
}

func TestFetchThemesDecodesGzip(t *testing.T) {
	var compressed bytes.Buffer
	writer := gzip.NewWriter(&compressed)
	_, err := writer.Write([]byte(themesJSON))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	base := serve(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(compressed.Bytes())
	})

	themes := New(nil, nil, base+"/themes.json", "", time.Second).FetchThemes(context.Background())
	assert.Contains(t, themes, "nord")
}

func TestFetchFailuresYieldEmptyCatalogs(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		}},
		{"malformed json", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("{not valid json"))
		}},
		{"missing field", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"catalog":{}}`))
		}},
		{"unknown encoding", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Encoding", "zstd")
			_, _ = w.Write([]byte(themesJSON))
		}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			base := serve(t, tt.handler)
			loader := New(nil, nil, base+"/themes.json", base+"/images.json", time.Second)

			themes := loader.FetchThemes(context.Background())
			images := loader.FetchImages(context.Background())

			assert.NotNil(t, themes)
			assert.Empty(t, themes)
			assert.NotNil(t, images)
			assert.Empty(t, images)
		})
	}
}

func TestFetchUnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	location := srv.URL + "/themes.json"
	srv.Close()

	themes := New(nil, nil, location, "", time.Second).FetchThemes(context.Background())
	assert.Empty(t, themes)
}

func TestFetchFromFilesystem(t *testing.T) {
	fsys := fstest.MapFS{
		"catalogs/themes.json": {Data: []byte(themesJSON)},
		"catalogs/images.json": {Data: []byte(imagesJSON)},
	}

	loader := New(nil, fsys, "/catalogs/themes.json", "catalogs/images.json", 0)
	assert.Contains(t, loader.FetchThemes(context.Background()), "nord")
	assert.Contains(t, loader.FetchImages(context.Background()), "dunes")
}

func TestFetchFromFileURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "images.json")
	require.NoError(t, os.WriteFile(path, []byte(imagesJSON), 0o600))

	images := New(nil, nil, "", "file://"+path, 0).FetchImages(context.Background())
	assert.Contains(t, images, "dunes")
}

func TestFetchWithoutFilesystemIsEmpty(t *testing.T) {
	loader := New(nil, nil, "", "", 0)
	assert.Empty(t, loader.FetchThemes(context.Background()))
	assert.Empty(t, loader.FetchImages(context.Background()))
}

func TestEmbeddedCatalogsAreValid(t *testing.T) {
	loader := New(nil, assets.FS(), DefaultThemesLocation, DefaultImagesLocation, 0)

	themes := loader.FetchThemes(context.Background())
	require.NotEmpty(t, themes)
	for name, theme := range themes {
		assert.True(t, models.ValidateTheme(theme), "theme %s", name)
	}

	images := loader.FetchImages(context.Background())
	require.NotEmpty(t, images)
	for id, image := range images {
		assert.Equal(t, id, image.ID)
	}
}
