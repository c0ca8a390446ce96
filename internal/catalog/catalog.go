// Package catalog loads the theme and background image catalogs. Loading
// never fails: an unreachable or malformed catalog is reported as empty.
package catalog

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/andybalholm/brotli"

	applog "nexus/internal/log"
	"nexus/models"
)

const (
	// DefaultThemesLocation and DefaultImagesLocation resolve against the
	// loader's filesystem.
	DefaultThemesLocation = "themes.json"
	DefaultImagesLocation = "images.json"

	defaultTimeout  = 10 * time.Second
	maxCatalogBytes = 4 << 20
)

var errNoFilesystem = errors.New("no catalog filesystem configured")

// Loader fetches catalogs from http(s) URLs, file:// URLs or paths inside FS.
type Loader struct {
	Client         *http.Client
	FS             fs.FS
	ThemesLocation string
	ImagesLocation string
}

// New builds a Loader. A nil client gets a default one with the given
// timeout; blank locations fall back to the defaults.
func New(client *http.Client, fsys fs.FS, themes, images string, timeout time.Duration) *Loader {
	if client == nil {
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	if strings.TrimSpace(themes) == "" {
		themes = DefaultThemesLocation
	}
	if strings.TrimSpace(images) == "" {
		images = DefaultImagesLocation
	}
	return &Loader{Client: client, FS: fsys, ThemesLocation: themes, ImagesLocation: images}
}

type themeDocument struct {
	Themes map[string]json.RawMessage `json:"themes"`
}

type imageDocument struct {
	Images map[string]json.RawMessage `json:"images"`
}

// FetchThemes reads the theme catalog keyed by theme name.
func (l *Loader) FetchThemes(ctx context.Context) map[string]models.Theme {
	themes := map[string]models.Theme{}

	data, err := l.read(ctx, l.ThemesLocation)
	if err != nil {
		applog.Error(ctx, "failed to load themes", "location", l.ThemesLocation, "error", err)
		return themes
	}

	var doc themeDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		applog.Error(ctx, "failed to decode theme catalog", "location", l.ThemesLocation, "error", err)
		return themes
	}
	if doc.Themes == nil {
		applog.Error(ctx, "theme catalog has no themes field", "location", l.ThemesLocation)
		return themes
	}

	for name, raw := range doc.Themes {
		if !models.ValidateTheme(raw) {
			applog.Warn(ctx, "skipping invalid theme", "name", name)
			continue
		}
		var theme models.Theme
		if err := json.Unmarshal(raw, &theme); err != nil {
			applog.Warn(ctx, "skipping undecodable theme", "name", name, "error", err)
			continue
		}
		themes[name] = theme
	}

	applog.Debug(ctx, "theme catalog loaded", "location", l.ThemesLocation, "count", len(themes))
	return themes
}

// FetchImages reads the background image catalog. Entries are keyed by
// their id field.
func (l *Loader) FetchImages(ctx context.Context) map[string]models.BackgroundImage {
	images := map[string]models.BackgroundImage{}

	data, err := l.read(ctx, l.ImagesLocation)
	if err != nil {
		applog.Error(ctx, "failed to load background images", "location", l.ImagesLocation, "error", err)
		return images
	}

	var doc imageDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		applog.Error(ctx, "failed to decode image catalog", "location", l.ImagesLocation, "error", err)
		return images
	}
	if doc.Images == nil {
		applog.Error(ctx, "image catalog has no images field", "location", l.ImagesLocation)
		return images
	}

	for id, raw := range doc.Images {
		if !models.ValidateBackgroundImage(raw) {
			applog.Warn(ctx, "skipping invalid background image", "id", id)
			continue
		}
		var image models.BackgroundImage
		if err := json.Unmarshal(raw, &image); err != nil {
			applog.Warn(ctx, "skipping undecodable background image", "id", id, "error", err)
			continue
		}
		if image.ID != id {
			applog.Debug(ctx, "re-keying background image by its id", "key", id, "id", image.ID)
		}
		images[image.ID] = image
	}

	applog.Debug(ctx, "image catalog loaded", "location", l.ImagesLocation, "count", len(images))
	return images
}

func (l *Loader) read(ctx context.Context, location string) ([]byte, error) {
	parsed, err := url.Parse(location)
	if err != nil {
		return nil, fmt.Errorf("parse location: %w", err)
	}

	switch parsed.Scheme {
	case "http", "https":
		return l.fetch(ctx, location)
	case "file":
		return os.ReadFile(parsed.Path)
	default:
		if l.FS == nil {
			return nil, errNoFilesystem
		}
		return fs.ReadFile(l.FS, strings.TrimPrefix(parsed.Path, "/"))
	}
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Accept-Encoding", "br, gzip")

	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch catalog: unexpected status %d", resp.StatusCode)
	}

	body, err := decodeBody(resp)
	if err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(body, maxCatalogBytes))
}

func decodeBody(resp *http.Response) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "br":
		return brotli.NewReader(resp.Body), nil
	case "gzip":
		reader, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("open gzip body: %w", err)
		}
		return reader, nil
	case "", "identity":
		return resp.Body, nil
	default:
		return nil, fmt.Errorf("unsupported content encoding %q", resp.Header.Get("Content-Encoding"))
	}
}
