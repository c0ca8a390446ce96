package models

// Layout controls how dashboard widgets are arranged.
type Layout string

const (
	LayoutGrid Layout = "grid"
	LayoutList Layout = "list"
)

// ThemeMode selects how the current theme is resolved. Values outside the
// constants below are treated as theme catalog names.
type ThemeMode string

const (
	ThemeModeLight  ThemeMode = "light"
	ThemeModeDark   ThemeMode = "dark"
	ThemeModeSystem ThemeMode = "system"
	ThemeModePreset ThemeMode = "preset"
	ThemeModeCustom ThemeMode = "custom"
)

// DateFormat is the clock display format.
type DateFormat string

const (
	DateFormat12h DateFormat = "12h"
	DateFormat24h DateFormat = "24h"
)

// SearchEngine identifies the default search provider.
type SearchEngine string

const (
	SearchEngineGoogle     SearchEngine = "google"
	SearchEngineBing       SearchEngine = "bing"
	SearchEngineDuckDuckGo SearchEngine = "duckduckgo"
	SearchEngineYahoo      SearchEngine = "yahoo"
	SearchEngineBaidu      SearchEngine = "baidu"
	SearchEngineYandex     SearchEngine = "yandex"
	SearchEngineCustom     SearchEngine = "custom"
)

// BackgroundType selects where the dashboard background comes from.
type BackgroundType string

const (
	BackgroundTypeImage  BackgroundType = "image"
	BackgroundTypeCustom BackgroundType = "custom"
)

// Settings is the persisted dashboard preference document.
type Settings struct {
	General      GeneralSettings     `json:"general" yaml:"general"`
	Theme        ThemeSettings       `json:"theme" yaml:"theme"`
	DateTime     DateTimeSettings    `json:"datetime" yaml:"datetime"`
	Search       SearchSettings      `json:"search" yaml:"search"`
	Background   BackgroundSettings  `json:"background" yaml:"background"`
	Integrations IntegrationSettings `json:"integrations" yaml:"integrations"`
}

type GeneralSettings struct {
	Layout Layout `json:"layout" yaml:"layout"`
}

type ThemeSettings struct {
	Theme       ThemeMode `json:"theme" yaml:"theme"`
	PresetTheme string    `json:"presetTheme,omitempty" yaml:"presetTheme,omitempty"`
	CustomTheme *Theme    `json:"customTheme,omitempty" yaml:"customTheme,omitempty"`
}

type DateTimeSettings struct {
	Format      DateFormat `json:"format" yaml:"format"`
	Timezone    string     `json:"timezone" yaml:"timezone"`
	ShowSeconds bool       `json:"showSeconds" yaml:"showSeconds"`
}

// CustomEngine is a user-defined search provider. URL contains the query
// placeholder understood by the page.
type CustomEngine struct {
	Name    string `json:"name" yaml:"name"`
	URL     string `json:"url" yaml:"url"`
	Keyword string `json:"keyword" yaml:"keyword"`
}

type SearchSettings struct {
	DefaultEngine        SearchEngine            `json:"defaultEngine" yaml:"defaultEngine"`
	SelectedCustomEngine string                  `json:"selectedCustomEngine,omitempty" yaml:"selectedCustomEngine,omitempty"`
	CustomEngines        map[string]CustomEngine `json:"customEngines,omitempty" yaml:"customEngines,omitempty"`
}

type BackgroundSettings struct {
	Type          BackgroundType   `json:"type" yaml:"type"`
	SelectedImage string           `json:"selectedImage,omitempty" yaml:"selectedImage,omitempty"`
	CustomImage   *BackgroundImage `json:"customImage,omitempty" yaml:"customImage,omitempty"`
	ShowCredit    bool             `json:"showCredit" yaml:"showCredit"`
}

type SpotifySettings struct {
	Enabled      bool `json:"enabled" yaml:"enabled"`
	ShowControls bool `json:"showControls" yaml:"showControls"`
}

type GitHubSettings struct {
	Enabled   bool `json:"enabled" yaml:"enabled"`
	FeedItems int  `json:"feedItems" yaml:"feedItems"`
}

type WakaTimeSettings struct {
	Enabled          bool   `json:"enabled" yaml:"enabled"`
	DefaultTimeframe string `json:"defaultTimeframe" yaml:"defaultTimeframe"`
}

type IntegrationSettings struct {
	Spotify  SpotifySettings  `json:"spotify" yaml:"spotify"`
	GitHub   GitHubSettings   `json:"github" yaml:"github"`
	WakaTime WakaTimeSettings `json:"wakatime" yaml:"wakatime"`
}

// SettingsKeys lists the top-level blocks of a settings document.
var SettingsKeys = []string{"general", "theme", "datetime", "search", "background", "integrations"}

// DefaultSettings returns a fresh copy of the default preferences.
func DefaultSettings() Settings {
	return Settings{
		General: GeneralSettings{Layout: LayoutGrid},
		Theme:   ThemeSettings{Theme: ThemeModeSystem},
		DateTime: DateTimeSettings{
			Format:   DateFormat24h,
			Timezone: "auto",
		},
		Search: SearchSettings{DefaultEngine: SearchEngineGoogle},
		Background: BackgroundSettings{
			Type:       BackgroundTypeImage,
			ShowCredit: true,
		},
		Integrations: IntegrationSettings{
			Spotify:  SpotifySettings{},
			GitHub:   GitHubSettings{FeedItems: 10},
			WakaTime: WakaTimeSettings{DefaultTimeframe: "week"},
		},
	}
}

// Clone returns a deep copy that shares no pointers or maps with s.
func (s Settings) Clone() Settings {
	out := s
	if s.Theme.CustomTheme != nil {
		theme := *s.Theme.CustomTheme
		out.Theme.CustomTheme = &theme
	}
	if s.Background.CustomImage != nil {
		image := *s.Background.CustomImage
		out.Background.CustomImage = &image
	}
	if s.Search.CustomEngines != nil {
		out.Search.CustomEngines = make(map[string]CustomEngine, len(s.Search.CustomEngines))
		for key, engine := range s.Search.CustomEngines {
			out.Search.CustomEngines[key] = engine
		}
	}
	return out
}

// ValidateSettings performs the top-level structural check: every block in
// SettingsKeys must exist and be an object. Nested fields are not inspected.
func ValidateSettings(candidate any) bool {
	switch v := candidate.(type) {
	case Settings:
		return true
	case *Settings:
		return v != nil
	default:
		return hasObjectKeys(candidate, SettingsKeys)
	}
}

var themeModes = map[ThemeMode]struct{}{
	ThemeModeLight: {}, ThemeModeDark: {}, ThemeModeSystem: {}, ThemeModePreset: {}, ThemeModeCustom: {},
}

// IsBuiltinThemeMode reports whether mode is one of the five selection modes
// rather than a catalog name.
func IsBuiltinThemeMode(mode ThemeMode) bool {
	_, ok := themeModes[mode]
	return ok
}

func ValidLayout(value Layout) bool {
	return value == LayoutGrid || value == LayoutList
}

func ValidDateFormat(value DateFormat) bool {
	return value == DateFormat12h || value == DateFormat24h
}

func ValidBackgroundType(value BackgroundType) bool {
	return value == BackgroundTypeImage || value == BackgroundTypeCustom
}

// ValidSearchEngine reports whether value is one of the supported providers.
func ValidSearchEngine(value SearchEngine) bool {
	switch value {
	case SearchEngineGoogle, SearchEngineBing, SearchEngineDuckDuckGo, SearchEngineYahoo,
		SearchEngineBaidu, SearchEngineYandex, SearchEngineCustom:
		return true
	}
	return false
}
