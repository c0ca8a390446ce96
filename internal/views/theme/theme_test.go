package theme

import (
	"strings"
	"testing"

	"nexus/models"
)

func TestOptionsListBuiltinsBeforeCatalog(t *testing.T) {
	options := Options(map[string]models.Theme{
		"solarized-light": models.DefaultLightTheme,
		"dracula":         models.DefaultDarkTheme,
	})

	if len(options) != len(builtinOptions)+2 {
		t.Fatalf("expected %d options, got %d", len(builtinOptions)+2, len(options))
	}
	if options[0].Value != string(models.ThemeModeSystem) {
		t.Fatalf("expected system mode first, got %q", options[0].Value)
	}
	tail := options[len(builtinOptions):]
	if tail[0].Value != "dracula" || tail[1].Label != "Solarized Light" {
		t.Fatalf("expected catalog themes sorted by label, got %v", tail)
	}
}

func TestLabel(t *testing.T) {
	tests := map[string]string{
		"nord":              "Nord",
		"solarized-light":   "Solarized Light",
		"gruvbox_dark_hard": "Gruvbox Dark Hard",
		"":                  "",
	}
	for in, want := range tests {
		if got := Label(in); got != want {
			t.Fatalf("Label(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOrFallsBackToBuiltins(t *testing.T) {
	if got := Or(nil, true); got != models.DefaultDarkTheme {
		t.Fatalf("expected dark fallback, got %+v", got)
	}
	if got := Or(nil, false); got != models.DefaultLightTheme {
		t.Fatalf("expected light fallback, got %+v", got)
	}
	custom := models.DefaultDarkTheme
	custom.Accent = "#123456"
	if got := Or(&custom, false); got.Accent != "#123456" {
		t.Fatalf("expected provided theme to win, got %+v", got)
	}
}

func TestStyleRendersEveryVariable(t *testing.T) {
	style := Style(models.DefaultDarkTheme)
	for _, v := range Variables(models.DefaultDarkTheme) {
		if !strings.Contains(style, v.Name+":"+v.Value+";") {
			t.Fatalf("expected %s in style %q", v.Name, style)
		}
	}
}

func TestStyleDropsUnsafeValues(t *testing.T) {
	theme := models.DefaultLightTheme
	theme.Accent = "red;background:url(javascript:alert(1))"
	theme.Border = ""

	style := Style(theme)
	if strings.Contains(style, "--accent") || strings.Contains(style, "javascript") {
		t.Fatalf("expected unsafe accent to be dropped, got %q", style)
	}
	if strings.Contains(style, "--border") {
		t.Fatalf("expected empty border to be dropped, got %q", style)
	}
	if !strings.Contains(style, "--shadow:") {
		t.Fatalf("expected rgba shadow to be kept, got %q", style)
	}
}
