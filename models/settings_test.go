package models

import (
	"encoding/json"
	"testing"
)

func TestValidateTheme(t *testing.T) {
	t.Parallel()

	custom := DefaultDarkTheme
	custom.Accent = ""

	cases := []struct {
		name      string
		candidate any
		want      bool
	}{
		{"builtin light", DefaultLightTheme, true},
		{"pointer", &DefaultDarkTheme, true},
		{"nil pointer", (*Theme)(nil), false},
		{"missing accent", custom, false},
		{"nil", nil, false},
		{"string", "dark", false},
		{"raw json", json.RawMessage(`{"accent":"a","background":"b","surface":"c","textPrimary":"d","textSecondary":"e","textAccent":"f","border":"g","hover":"h","shadow":"i","error":"j"}`), true},
		{"raw json with empty shadow", json.RawMessage(`{"accent":"a","background":"b","surface":"c","textPrimary":"d","textSecondary":"e","textAccent":"f","border":"g","hover":"h","shadow":"","error":"j"}`), false},
		{"raw json with number", []byte(`{"accent":1,"background":"b","surface":"c","textPrimary":"d","textSecondary":"e","textAccent":"f","border":"g","hover":"h","shadow":"i","error":"j"}`), false},
		{"generic map missing keys", map[string]any{"accent": "#fff"}, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidateTheme(tt.candidate); got != tt.want {
				t.Fatalf("ValidateTheme(%v) = %t, want %t", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestValidateBackgroundImageRequiresCredit(t *testing.T) {
	t.Parallel()

	complete := BackgroundImage{ID: "dunes", Name: "Dunes", Src: "/img/dunes.jpg", Credit: "A. Photographer"}
	if !ValidateBackgroundImage(complete) {
		t.Fatal("expected complete image to validate")
	}

	missing := complete
	missing.Credit = ""
	if ValidateBackgroundImage(missing) {
		t.Fatal("expected image without credit to be rejected")
	}

	raw := map[string]any{"id": "dunes", "name": "Dunes", "src": "/img/dunes.jpg"}
	if ValidateBackgroundImage(raw) {
		t.Fatal("expected raw image without credit key to be rejected")
	}

	raw["credit"] = ""
	if ValidateBackgroundImage(raw) {
		t.Fatal("expected raw image with empty credit to be rejected like the typed value")
	}
}

func TestValidateSettingsIsShallow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want bool
	}{
		{"all blocks", `{"general":{},"theme":{},"datetime":{},"search":{},"background":{},"integrations":{}}`, true},
		{"wrong leaf types still pass", `{"general":{"layout":7},"theme":{"theme":false},"datetime":{},"search":{},"background":{},"integrations":{}}`, true},
		{"missing block", `{"general":{},"theme":{},"datetime":{},"search":{},"background":{}}`, false},
		{"block not object", `{"general":"grid","theme":{},"datetime":{},"search":{},"background":{},"integrations":{}}`, false},
		{"null block", `{"general":null,"theme":{},"datetime":{},"search":{},"background":{},"integrations":{}}`, false},
		{"array", `[]`, false},
	}

	for _, tt := range cases {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ValidateSettings([]byte(tt.raw)); got != tt.want {
				t.Fatalf("ValidateSettings(%s) = %t, want %t", tt.raw, got, tt.want)
			}
		})
	}

	if ValidateSettings((*Settings)(nil)) {
		t.Fatal("expected nil settings pointer to be rejected")
	}
	if !ValidateSettings(DefaultSettings()) {
		t.Fatal("expected defaults to validate")
	}
}

func TestDefaultSettingsMarshalToValidDocument(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(DefaultSettings())
	if err != nil {
		t.Fatalf("marshal defaults: %v", err)
	}
	if !ValidateSettings(data) {
		t.Fatalf("expected marshalled defaults to pass top-level validation: %s", data)
	}
}

func TestCloneDoesNotShareState(t *testing.T) {
	t.Parallel()

	original := DefaultSettings()
	original.Theme.CustomTheme = &Theme{Accent: "#123456"}
	original.Search.CustomEngines = map[string]CustomEngine{"wiki": {Name: "Wiki"}}

	clone := original.Clone()
	clone.Theme.CustomTheme.Accent = "#000000"
	clone.Search.CustomEngines["wiki"] = CustomEngine{Name: "Changed"}

	if original.Theme.CustomTheme.Accent != "#123456" {
		t.Fatal("expected custom theme to be copied")
	}
	if original.Search.CustomEngines["wiki"].Name != "Wiki" {
		t.Fatal("expected custom engines map to be copied")
	}
}

func TestEnumHelpers(t *testing.T) {
	t.Parallel()

	if !IsBuiltinThemeMode(ThemeModePreset) || IsBuiltinThemeMode("solarized") {
		t.Fatal("unexpected builtin theme mode classification")
	}
	if !ValidLayout(LayoutList) || ValidLayout("masonry") {
		t.Fatal("unexpected layout validation")
	}
	if !ValidDateFormat(DateFormat12h) || ValidDateFormat("iso") {
		t.Fatal("unexpected date format validation")
	}
	if !ValidSearchEngine(SearchEngineCustom) || ValidSearchEngine("altavista") {
		t.Fatal("unexpected search engine validation")
	}
	if !ValidBackgroundType(BackgroundTypeCustom) || ValidBackgroundType("slideshow") {
		t.Fatal("unexpected background type validation")
	}
}
