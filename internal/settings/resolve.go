package settings

import (
	"context"
	"sort"

	"nexus/models"
)

// ColorSchemeDetector reports the colour scheme preferred by the viewer.
type ColorSchemeDetector interface {
	PrefersDark(ctx context.Context) bool
}

// DetectorFunc adapts a function to ColorSchemeDetector.
type DetectorFunc func(ctx context.Context) bool

func (f DetectorFunc) PrefersDark(ctx context.Context) bool {
	return f(ctx)
}

// StaticScheme always reports the same preference.
type StaticScheme bool

func (s StaticScheme) PrefersDark(context.Context) bool {
	return bool(s)
}

// ResolveTheme maps a theme mode to a concrete palette. It returns nil when
// a preset, custom or catalog theme cannot be found. Modes other than the
// five built-in ones are looked up as catalog names.
func ResolveTheme(ctx context.Context, mode models.ThemeMode, preset string, custom *models.Theme, catalog map[string]models.Theme, detector ColorSchemeDetector) *models.Theme {
	switch {
	case mode == models.ThemeModeLight:
		return themeRef(models.DefaultLightTheme)
	case mode == models.ThemeModeDark:
		return themeRef(models.DefaultDarkTheme)
	case mode == models.ThemeModeSystem:
		if detector != nil && detector.PrefersDark(ctx) {
			return themeRef(models.DefaultDarkTheme)
		}
		return themeRef(models.DefaultLightTheme)
	case mode == models.ThemeModePreset && preset != "":
		return lookupTheme(catalog, preset)
	case mode == models.ThemeModeCustom && custom != nil && models.ValidateTheme(custom):
		return themeRef(*custom)
	default:
		return lookupTheme(catalog, string(mode))
	}
}

// ResolveBackground returns the effective background image. In image mode
// it reports ErrCatalogNotReady until the catalog has loaded; a selection
// missing from the catalog yields nil.
func ResolveBackground(background models.BackgroundSettings, catalog map[string]models.BackgroundImage, loaded bool) (*models.BackgroundImage, error) {
	switch background.Type {
	case models.BackgroundTypeCustom:
		if background.CustomImage == nil {
			return nil, nil
		}
		image := *background.CustomImage
		return &image, nil
	case models.BackgroundTypeImage:
		if !loaded {
			return nil, ErrCatalogNotReady
		}
		image, ok := catalog[background.SelectedImage]
		if !ok {
			return nil, nil
		}
		return &image, nil
	default:
		return nil, nil
	}
}

// firstImageID returns the smallest image id in the catalog, or "".
func firstImageID(catalog map[string]models.BackgroundImage) string {
	ids := sortedImageIDs(catalog)
	if len(ids) == 0 {
		return ""
	}
	return ids[0]
}

func sortedImageIDs(catalog map[string]models.BackgroundImage) []string {
	ids := make([]string, 0, len(catalog))
	for id := range catalog {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func lookupTheme(catalog map[string]models.Theme, name string) *models.Theme {
	theme, ok := catalog[name]
	if !ok {
		return nil
	}
	return &theme
}

func themeRef(theme models.Theme) *models.Theme {
	return &theme
}
