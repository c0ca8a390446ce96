package models

// Theme is the colour palette applied to the dashboard shell.
type Theme struct {
	Accent        string `json:"accent" yaml:"accent"`
	Background    string `json:"background" yaml:"background"`
	Surface       string `json:"surface" yaml:"surface"`
	TextPrimary   string `json:"textPrimary" yaml:"textPrimary"`
	TextSecondary string `json:"textSecondary" yaml:"textSecondary"`
	TextAccent    string `json:"textAccent" yaml:"textAccent"`
	Border        string `json:"border" yaml:"border"`
	Hover         string `json:"hover" yaml:"hover"`
	Shadow        string `json:"shadow" yaml:"shadow"`
	Error         string `json:"error" yaml:"error"`
}

// ThemeKeys lists the JSON keys every theme must carry.
var ThemeKeys = []string{
	"accent", "background", "surface",
	"textPrimary", "textSecondary", "textAccent",
	"border", "hover", "shadow", "error",
}

// DefaultLightTheme is the built-in palette used for the light mode.
var DefaultLightTheme = Theme{
	Accent:        "#007AFF",
	Background:    "#FFFFFF",
	Surface:       "#F5F5F5",
	TextPrimary:   "#000000",
	TextSecondary: "#666666",
	TextAccent:    "#FFFFFF",
	Border:        "#E0E0E0",
	Hover:         "#F0F0F0",
	Shadow:        "rgba(0, 0, 0, 0.1)",
	Error:         "#FF3B30",
}

// DefaultDarkTheme is the built-in palette used for the dark mode.
var DefaultDarkTheme = Theme{
	Accent:        "#0A84FF",
	Background:    "#000000",
	Surface:       "#1C1C1E",
	TextPrimary:   "#FFFFFF",
	TextSecondary: "#8E8E93",
	TextAccent:    "#FFFFFF",
	Border:        "#38383A",
	Hover:         "#2C2C2E",
	Shadow:        "rgba(0, 0, 0, 0.3)",
	Error:         "#FF453A",
}

func (t Theme) fields() []string {
	return []string{
		t.Accent, t.Background, t.Surface,
		t.TextPrimary, t.TextSecondary, t.TextAccent,
		t.Border, t.Hover, t.Shadow, t.Error,
	}
}

// ValidateTheme reports whether candidate is structurally a Theme: a non-nil
// object carrying every key in ThemeKeys with a non-empty string value.
func ValidateTheme(candidate any) bool {
	switch v := candidate.(type) {
	case Theme:
		return allNonEmpty(v.fields())
	case *Theme:
		return v != nil && allNonEmpty(v.fields())
	default:
		return hasStringKeys(candidate, ThemeKeys)
	}
}
