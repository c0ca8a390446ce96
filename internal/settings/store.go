// Package settings owns the live dashboard settings: it loads them from
// durable storage, resolves the current theme and background image, and
// persists every change made through its setters.
package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	applog "nexus/internal/log"
	"nexus/models"
)

// CatalogSource supplies the theme and background image catalogs.
type CatalogSource interface {
	FetchThemes(ctx context.Context) map[string]models.Theme
	FetchImages(ctx context.Context) map[string]models.BackgroundImage
}

// Options wires a Store. Every field is optional: a nil Persistence keeps
// settings in memory only, a nil Catalog yields empty catalogs and a nil
// Detector makes the system mode resolve to light.
type Options struct {
	Persistence *Persistence
	Catalog     CatalogSource
	Detector    ColorSchemeDetector
}

// Store is the single owner of the live settings document and the loaded
// catalogs. It is safe for concurrent use.
type Store struct {
	persistence *Persistence
	catalog     CatalogSource
	detector    ColorSchemeDetector

	// writeMu serialises writes to the medium. It is taken before mu.
	writeMu sync.Mutex

	mu           sync.RWMutex
	settings     models.Settings
	themes       map[string]models.Theme
	images       map[string]models.BackgroundImage
	imagesLoaded bool
	current      *models.Theme
}

// New builds a Store and initialises it: the image catalog is loaded first,
// then the stored settings, then the theme catalog.
func New(ctx context.Context, opts Options) *Store {
	s := &Store{
		persistence: opts.Persistence,
		catalog:     opts.Catalog,
		detector:    opts.Detector,
		settings:    models.DefaultSettings(),
		themes:      map[string]models.Theme{},
		images:      map[string]models.BackgroundImage{},
	}

	s.ReloadImages(ctx)
	s.LoadSettings(ctx)
	s.ReloadThemes(ctx)

	applog.Debug(ctx, "settings store initialised",
		"themeMode", s.settings.Theme.Theme,
		"themes", len(s.themes),
		"images", len(s.images),
	)
	return s
}

// LoadSettings replaces the live settings with the stored document. An empty
// image selection is defaulted to the first catalog image, and the current
// theme is resolved for the loaded mode.
func (s *Store) LoadSettings(ctx context.Context) {
	loaded := s.persistence.Load(ctx)

	s.mu.Lock()
	s.settings = loaded
	defaulted := ""
	if s.settings.Background.SelectedImage == "" && len(s.images) > 0 {
		defaulted = firstImageID(s.images)
		s.settings.Background.SelectedImage = defaulted
	}
	mode := s.settings.Theme.Theme
	preset := s.settings.Theme.PresetTheme
	custom := s.settings.Theme.CustomTheme
	s.mu.Unlock()

	resolved, fetched := s.resolveFresh(ctx, mode, preset, custom)

	s.mu.Lock()
	if len(fetched) > 0 {
		s.themes = fetched
	}
	if resolved != nil {
		s.current = resolved
	}
	s.mu.Unlock()

	if defaulted != "" {
		applog.Debug(ctx, "defaulted background image selection", "image", defaulted)
		s.persist(ctx)
	}
}

// resolveFresh resolves a theme mode, fetching the theme catalog when the
// mode needs one. The fetched catalog is returned alongside the result.
func (s *Store) resolveFresh(ctx context.Context, mode models.ThemeMode, preset string, custom *models.Theme) (*models.Theme, map[string]models.Theme) {
	switch {
	case mode == models.ThemeModeLight, mode == models.ThemeModeDark, mode == models.ThemeModeSystem:
		return ResolveTheme(ctx, mode, "", nil, nil, s.detector), nil
	case mode == models.ThemeModeCustom && custom != nil && models.ValidateTheme(custom):
		return ResolveTheme(ctx, mode, "", custom, nil, s.detector), nil
	default:
		fetched := s.fetchThemes(ctx)
		return ResolveTheme(ctx, mode, preset, custom, fetched, s.detector), fetched
	}
}

// SetTheme switches the theme mode. Preset and catalog-name modes re-fetch
// the theme catalog. When resolution finds nothing the previously applied
// theme stays current, but the mode is stored regardless.
func (s *Store) SetTheme(ctx context.Context, mode models.ThemeMode, presetName string, custom *models.Theme) error {
	mode = models.ThemeMode(strings.TrimSpace(string(mode)))
	if mode == "" {
		return ErrInvalidThemeMode
	}
	if mode == models.ThemeModeCustom && custom != nil && !models.ValidateTheme(custom) {
		return ErrInvalidTheme
	}

	if mode == models.ThemeModeCustom && custom == nil {
		s.mu.RLock()
		if s.settings.Theme.CustomTheme != nil {
			stored := *s.settings.Theme.CustomTheme
			custom = &stored
		}
		s.mu.RUnlock()
	}

	preset := ""
	if mode == models.ThemeModePreset {
		preset = presetName
	}
	resolved, fetched := s.resolveFresh(ctx, mode, preset, custom)

	s.mu.Lock()
	if len(fetched) > 0 {
		s.themes = fetched
	}
	if resolved != nil {
		s.current = resolved
		switch mode {
		case models.ThemeModePreset:
			s.settings.Theme.PresetTheme = presetName
		case models.ThemeModeCustom:
			applied := *resolved
			s.settings.Theme.CustomTheme = &applied
		}
	} else {
		applog.Warn(ctx, "theme could not be resolved", "mode", mode, "preset", presetName)
	}
	s.settings.Theme.Theme = mode
	s.mu.Unlock()

	applog.Debug(ctx, "theme updated", "mode", mode, "preset", presetName, "resolved", resolved != nil)
	s.persist(ctx)
	return nil
}

// CurrentTheme resolves the theme for the stored mode against the cached
// catalog. It never fetches.
func (s *Store) CurrentTheme(ctx context.Context) *models.Theme {
	s.mu.RLock()
	theme := s.settings.Theme
	catalog := s.themes
	s.mu.RUnlock()

	return ResolveTheme(ctx, theme.Theme, theme.PresetTheme, theme.CustomTheme, catalog, s.detector)
}

// AppliedTheme returns the theme most recently applied by a load or a
// SetTheme call, or nil if none resolved yet.
func (s *Store) AppliedTheme() *models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	theme := *s.current
	return &theme
}

// CurrentImage returns the effective background image.
func (s *Store) CurrentImage() (*models.BackgroundImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return ResolveBackground(s.settings.Background, s.images, s.imagesLoaded)
}

// SetCurrentImage selects the catalog image whose source is src and switches
// the background to image mode.
func (s *Store) SetCurrentImage(ctx context.Context, src string) error {
	s.mu.Lock()
	if !s.imagesLoaded {
		s.mu.Unlock()
		return ErrCatalogNotReady
	}

	var selected string
	for _, id := range sortedImageIDs(s.images) {
		image := s.images[id]
		if image.Src == src && image.ID != "" {
			selected = image.ID
			break
		}
	}
	if selected == "" {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrImageNotFound, src)
	}

	s.settings.Background.SelectedImage = selected
	s.settings.Background.Type = models.BackgroundTypeImage
	s.mu.Unlock()

	applog.Debug(ctx, "background image selected", "image", selected)
	s.persist(ctx)
	return nil
}

// SetCustomImage stores a user-supplied background image and switches the
// background to custom mode. Incomplete images are rejected untouched.
func (s *Store) SetCustomImage(ctx context.Context, image models.BackgroundImage) error {
	if !models.ValidateBackgroundImage(image) {
		return ErrInvalidImage
	}

	s.mutate(ctx, func(settings *models.Settings) {
		settings.Background.CustomImage = &image
		settings.Background.Type = models.BackgroundTypeCustom
	})
	return nil
}

func (s *Store) SetBackgroundType(ctx context.Context, kind models.BackgroundType) error {
	if !models.ValidBackgroundType(kind) {
		return fmt.Errorf("%w: background type %q", ErrInvalidValue, kind)
	}
	s.mutate(ctx, func(settings *models.Settings) {
		settings.Background.Type = kind
	})
	return nil
}

func (s *Store) SetShowCredit(ctx context.Context, show bool) {
	s.mutate(ctx, func(settings *models.Settings) {
		settings.Background.ShowCredit = show
	})
}

// UpdateBackground applies a background type and credit visibility in one
// write. A blank kind keeps the current type and a nil showCredit keeps the
// current visibility.
func (s *Store) UpdateBackground(ctx context.Context, kind models.BackgroundType, showCredit *bool) error {
	if kind != "" && !models.ValidBackgroundType(kind) {
		return fmt.Errorf("%w: background type %q", ErrInvalidValue, kind)
	}
	s.mutate(ctx, func(settings *models.Settings) {
		if kind != "" {
			settings.Background.Type = kind
		}
		if showCredit != nil {
			settings.Background.ShowCredit = *showCredit
		}
	})
	return nil
}

func (s *Store) SetLayout(ctx context.Context, layout models.Layout) error {
	if !models.ValidLayout(layout) {
		return fmt.Errorf("%w: layout %q", ErrInvalidValue, layout)
	}
	s.mutate(ctx, func(settings *models.Settings) {
		settings.General.Layout = layout
	})
	return nil
}

// SetDateTime replaces the clock settings. The timezone must be "auto" or
// an IANA zone name.
func (s *Store) SetDateTime(ctx context.Context, datetime models.DateTimeSettings) error {
	if !models.ValidDateFormat(datetime.Format) {
		return fmt.Errorf("%w: date format %q", ErrInvalidValue, datetime.Format)
	}
	if datetime.Timezone == "" {
		datetime.Timezone = "auto"
	}
	if datetime.Timezone != "auto" {
		if _, err := time.LoadLocation(datetime.Timezone); err != nil {
			return fmt.Errorf("%w: timezone %q", ErrInvalidValue, datetime.Timezone)
		}
	}
	s.mutate(ctx, func(settings *models.Settings) {
		settings.DateTime = datetime
	})
	return nil
}

// SetSearchEngine selects the default search engine. Selecting the custom
// engine requires customKey to name a registered custom engine.
func (s *Store) SetSearchEngine(ctx context.Context, engine models.SearchEngine, customKey string) error {
	if !models.ValidSearchEngine(engine) {
		return fmt.Errorf("%w: search engine %q", ErrInvalidValue, engine)
	}

	s.mu.Lock()
	if engine == models.SearchEngineCustom {
		if _, ok := s.settings.Search.CustomEngines[customKey]; !ok {
			s.mu.Unlock()
			return fmt.Errorf("%w: %q", ErrEngineNotFound, customKey)
		}
		s.settings.Search.SelectedCustomEngine = customKey
	}
	s.settings.Search.DefaultEngine = engine
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// PutCustomEngine adds or replaces a custom search engine.
func (s *Store) PutCustomEngine(ctx context.Context, key string, engine models.CustomEngine) error {
	key = strings.TrimSpace(key)
	if key == "" || strings.TrimSpace(engine.Name) == "" || strings.TrimSpace(engine.URL) == "" {
		return fmt.Errorf("%w: custom engine needs a key, name and url", ErrInvalidValue)
	}
	s.mutate(ctx, func(settings *models.Settings) {
		if settings.Search.CustomEngines == nil {
			settings.Search.CustomEngines = map[string]models.CustomEngine{}
		}
		settings.Search.CustomEngines[key] = engine
	})
	return nil
}

// RemoveCustomEngine deletes a custom search engine. Removing the selected
// engine while it is the default falls back to the default provider.
func (s *Store) RemoveCustomEngine(ctx context.Context, key string) error {
	s.mu.Lock()
	if _, ok := s.settings.Search.CustomEngines[key]; !ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrEngineNotFound, key)
	}
	delete(s.settings.Search.CustomEngines, key)
	if s.settings.Search.SelectedCustomEngine == key {
		s.settings.Search.SelectedCustomEngine = ""
		if s.settings.Search.DefaultEngine == models.SearchEngineCustom {
			s.settings.Search.DefaultEngine = models.DefaultSettings().Search.DefaultEngine
		}
	}
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

func (s *Store) SetIntegrations(ctx context.Context, integrations models.IntegrationSettings) error {
	if integrations.GitHub.FeedItems < 1 {
		return fmt.Errorf("%w: github feed items must be positive", ErrInvalidValue)
	}
	if strings.TrimSpace(integrations.WakaTime.DefaultTimeframe) == "" {
		return fmt.Errorf("%w: wakatime timeframe must not be empty", ErrInvalidValue)
	}
	s.mutate(ctx, func(settings *models.Settings) {
		settings.Integrations = integrations
	})
	return nil
}

// ResetSettings discards every preference in favour of the defaults.
func (s *Store) ResetSettings(ctx context.Context) {
	defaults := models.DefaultSettings()
	current := ResolveTheme(ctx, defaults.Theme.Theme, "", nil, nil, s.detector)

	s.mu.Lock()
	s.settings = defaults
	s.current = current
	s.mu.Unlock()

	applog.Info(ctx, "settings reset to defaults")
	s.persist(ctx)
}

// Replace installs a whole settings document, merged over the defaults the
// same way a stored document is.
func (s *Store) Replace(ctx context.Context, document []byte) error {
	merged, err := Merge(ctx, document)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.settings = merged
	theme := merged.Theme
	if resolved := ResolveTheme(ctx, theme.Theme, theme.PresetTheme, theme.CustomTheme, s.themes, s.detector); resolved != nil {
		s.current = resolved
	}
	s.mu.Unlock()

	applog.Info(ctx, "settings replaced")
	s.persist(ctx)
	return nil
}

// Settings returns a copy of the live settings.
func (s *Store) Settings() models.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings.Clone()
}

// Themes returns a copy of the cached theme catalog.
func (s *Store) Themes() map[string]models.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.Theme, len(s.themes))
	for name, theme := range s.themes {
		out[name] = theme
	}
	return out
}

// Images returns a copy of the cached image catalog and whether it has
// finished loading.
func (s *Store) Images() (map[string]models.BackgroundImage, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]models.BackgroundImage, len(s.images))
	for id, image := range s.images {
		out[id] = image
	}
	return out, s.imagesLoaded
}

// ReloadThemes re-fetches the theme catalog. An empty result keeps a
// previously loaded catalog, since a failed fetch also yields nothing.
func (s *Store) ReloadThemes(ctx context.Context) {
	themes := s.fetchThemes(ctx)
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(themes) == 0 && len(s.themes) > 0 {
		applog.Warn(ctx, "theme catalog refresh returned nothing, keeping cached catalog", "themes", len(s.themes))
		return
	}
	s.themes = themes
}

// ReloadImages re-fetches the background image catalog. As with themes, an
// empty result keeps a previously loaded catalog.
func (s *Store) ReloadImages(ctx context.Context) {
	images := map[string]models.BackgroundImage{}
	if s.catalog != nil {
		images = s.catalog.FetchImages(ctx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.imagesLoaded = true
	if len(images) == 0 && len(s.images) > 0 {
		applog.Warn(ctx, "image catalog refresh returned nothing, keeping cached catalog", "images", len(s.images))
		return
	}
	s.images = images
}

func (s *Store) fetchThemes(ctx context.Context) map[string]models.Theme {
	if s.catalog == nil {
		return map[string]models.Theme{}
	}
	return s.catalog.FetchThemes(ctx)
}

func (s *Store) mutate(ctx context.Context, change func(*models.Settings)) {
	s.mu.Lock()
	change(&s.settings)
	s.mu.Unlock()

	s.persist(ctx)
}

// persist writes the live settings. The snapshot is taken while holding
// writeMu, so the last write to finish carries every change made before it.
// Failures are logged and leave the in-memory state as it is.
func (s *Store) persist(ctx context.Context) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	snapshot := s.settings.Clone()
	s.mu.RUnlock()

	if err := s.persistence.Save(ctx, &snapshot); err != nil {
		applog.Error(ctx, "settings change not persisted", "error", err)
	}
}
