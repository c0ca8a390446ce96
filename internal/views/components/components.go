package components

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"nexus/internal/views/theme"
	"nexus/models"
)

var engineURLs = map[models.SearchEngine]string{
	models.SearchEngineGoogle:     "https://www.google.com/search?q=%s",
	models.SearchEngineBing:       "https://www.bing.com/search?q=%s",
	models.SearchEngineDuckDuckGo: "https://duckduckgo.com/?q=%s",
	models.SearchEngineYahoo:      "https://search.yahoo.com/search?p=%s",
	models.SearchEngineBaidu:      "https://www.baidu.com/s?wd=%s",
	models.SearchEngineYandex:     "https://yandex.com/search/?text=%s",
}

// SearchURL returns the query URL template of the selected engine. Unknown
// or missing custom engines fall back to Google.
func SearchURL(search models.SearchSettings) string {
	if search.DefaultEngine == models.SearchEngineCustom {
		if engine, ok := search.CustomEngines[search.SelectedCustomEngine]; ok && engine.URL != "" {
			return engine.URL
		}
	}
	if url, ok := engineURLs[search.DefaultEngine]; ok {
		return url
	}
	return engineURLs[models.SearchEngineGoogle]
}

func linkState(value, selected string) string {
	if value == selected {
		return "active"
	}
	return "inactive"
}

func write(w io.Writer, parts ...string) error {
	for _, part := range parts {
		if _, err := io.WriteString(w, part); err != nil {
			return err
		}
	}
	return nil
}

// SearchForm renders the search box for the configured engine.
func SearchForm(search models.SearchSettings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w,
			`<form class="card search" data-engine="`, templ.EscapeString(string(search.DefaultEngine)),
			`" data-url="`, templ.EscapeString(SearchURL(search)), `" onsubmit="`,
			`event.preventDefault();window.location=this.dataset.url.replace('%s',encodeURIComponent(this.q.value))">`,
			`<input type="search" name="q" placeholder="Search" autocomplete="off"></form>`,
		)
	})
}

// Clock renders the date and time widget. The page script formats the time
// from the data attributes.
func Clock(datetime models.DateTimeSettings) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		return write(w,
			`<section class="card clock"><time data-format="`, templ.EscapeString(string(datetime.Format)),
			`" data-timezone="`, templ.EscapeString(datetime.Timezone),
			`" data-seconds="`, strconv.FormatBool(datetime.ShowSeconds), `"></time></section>`,
		)
	})
}

// Credit renders the attribution of the background image when enabled.
func Credit(image *models.BackgroundImage, show bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if image == nil || !show {
			return nil
		}
		return write(w,
			`<footer class="credit muted" data-image="`, templ.EscapeString(image.ID), `">`,
			templ.EscapeString(image.Name), ` · `, templ.EscapeString(image.Credit), `</footer>`,
		)
	})
}

// ThemePicker renders the theme selection buttons, posting the chosen mode
// through HTMX.
func ThemePicker(options []theme.Option, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := write(w, `<nav class="card theme-picker">`); err != nil {
			return err
		}
		for _, option := range options {
			payload := fmt.Sprintf(`{"theme":%q}`, option.Value)
			if err := write(w,
				`<button type="button" data-state="`, linkState(option.Value, selected),
				`" hx-put="/api/settings/theme" hx-ext="json-enc" hx-vals='`, templ.EscapeString(payload),
				`' hx-target="#dashboard-root" hx-swap="none">`, templ.EscapeString(option.Label), `</button>`,
			); err != nil {
				return err
			}
		}
		return write(w, `</nav>`)
	})
}

// IntegrationCard renders the placeholder card of an enabled integration.
func IntegrationCard(name string, enabled bool, detail string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if !enabled {
			return nil
		}
		slug := strings.ToLower(strings.ReplaceAll(name, " ", "-"))
		return write(w,
			`<section class="card integration" data-integration="`, templ.EscapeString(slug), `">`,
			`<h2 class="accent">`, templ.EscapeString(name), `</h2>`,
			`<p class="muted">`, templ.EscapeString(detail), `</p></section>`,
		)
	})
}
