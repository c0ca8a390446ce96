package theme

import (
	"sort"
	"strings"

	"nexus/models"
)

// Option represents a selectable theme exposed to the UI.
type Option struct {
	Value string
	Label string
}

// Variable is a single CSS custom property derived from a theme colour.
type Variable struct {
	Name  string
	Value string
}

var builtinOptions = []Option{
	{Value: string(models.ThemeModeSystem), Label: "System"},
	{Value: string(models.ThemeModeLight), Label: "Light"},
	{Value: string(models.ThemeModeDark), Label: "Dark"},
	{Value: string(models.ThemeModeCustom), Label: "Custom"},
}

// Options lists the built-in modes followed by the catalog themes sorted by label.
func Options(catalog map[string]models.Theme) []Option {
	options := make([]Option, 0, len(builtinOptions)+len(catalog))
	options = append(options, builtinOptions...)

	presets := make([]Option, 0, len(catalog))
	for name := range catalog {
		presets = append(presets, Option{Value: name, Label: Label(name)})
	}
	sort.Slice(presets, func(i, j int) bool {
		return presets[i].Label < presets[j].Label
	})
	return append(options, presets...)
}

// Label turns a catalog key such as "solarized-light" into "Solarized Light".
func Label(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}

// Or returns t, or the built-in light or dark palette when t is nil.
func Or(t *models.Theme, dark bool) models.Theme {
	if t != nil {
		return *t
	}
	if dark {
		return models.DefaultDarkTheme
	}
	return models.DefaultLightTheme
}

// Variables maps every theme colour to its CSS custom property.
func Variables(t models.Theme) []Variable {
	return []Variable{
		{Name: "--accent", Value: t.Accent},
		{Name: "--background", Value: t.Background},
		{Name: "--surface", Value: t.Surface},
		{Name: "--text-primary", Value: t.TextPrimary},
		{Name: "--text-secondary", Value: t.TextSecondary},
		{Name: "--text-accent", Value: t.TextAccent},
		{Name: "--border", Value: t.Border},
		{Name: "--hover", Value: t.Hover},
		{Name: "--shadow", Value: t.Shadow},
		{Name: "--error", Value: t.Error},
	}
}

// Style renders the theme as an inline style declaration list. Values
// containing characters outside plain colour syntax are dropped.
func Style(t models.Theme) string {
	var b strings.Builder
	for _, v := range Variables(t) {
		if !safeValue(v.Value) {
			continue
		}
		b.WriteString(v.Name)
		b.WriteByte(':')
		b.WriteString(v.Value)
		b.WriteByte(';')
	}
	return b.String()
}

func safeValue(value string) bool {
	if strings.TrimSpace(value) == "" {
		return false
	}
	for _, r := range value {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case strings.ContainsRune("#(),.% -", r):
		default:
			return false
		}
	}
	return true
}
