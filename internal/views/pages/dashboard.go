package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"nexus/internal/views/components"
	"nexus/internal/views/layout"
	"nexus/internal/views/theme"
	"nexus/models"
)

const title = "Nexus"

// DashboardData is everything the dashboard page needs to render.
type DashboardData struct {
	Settings   models.Settings
	Theme      models.Theme
	Background *models.BackgroundImage
	Themes     map[string]models.Theme
}

// SelectedTheme is the picker value matching the stored theme mode.
func (d DashboardData) SelectedTheme() string {
	if d.Settings.Theme.Theme == models.ThemeModePreset {
		return d.Settings.Theme.PresetTheme
	}
	return string(d.Settings.Theme.Theme)
}

// Dashboard renders the full document.
func Dashboard(data DashboardData) templ.Component {
	return layout.Layout(title, data.Theme, DashboardPartial(data))
}

// DashboardPartial renders the widget container only, for HTMX swaps.
func DashboardPartial(data DashboardData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		open := `<div class="` + layout.ContainerClass(data.Settings.General.Layout) + `"` + backgroundStyle(data.Background) + `>`
		if _, err := io.WriteString(w, open); err != nil {
			return err
		}

		integrations := data.Settings.Integrations
		widgets := []templ.Component{
			components.SearchForm(data.Settings.Search),
			components.Clock(data.Settings.DateTime),
			components.ThemePicker(theme.Options(data.Themes), data.SelectedTheme()),
			components.IntegrationCard("Spotify", integrations.Spotify.Enabled, spotifyDetail(integrations.Spotify)),
			components.IntegrationCard("GitHub", integrations.GitHub.Enabled, fmt.Sprintf("Latest %d events", integrations.GitHub.FeedItems)),
			components.IntegrationCard("WakaTime", integrations.WakaTime.Enabled, "Coding time this "+integrations.WakaTime.DefaultTimeframe),
			components.Credit(data.Background, data.Settings.Background.ShowCredit),
		}
		for _, widget := range widgets {
			if err := widget.Render(ctx, w); err != nil {
				return err
			}
		}

		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

func spotifyDetail(spotify models.SpotifySettings) string {
	if spotify.ShowControls {
		return "Now playing with controls"
	}
	return "Now playing"
}

func backgroundStyle(image *models.BackgroundImage) string {
	if image == nil || image.Src == "" {
		return ""
	}
	return ` style="background-image:url('` + templ.EscapeString(image.Src) + `');background-size:cover"`
}
