package layout

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"nexus/internal/views/theme"
	"nexus/models"
)

const baseStyles = `body{margin:0;min-height:100vh;font-family:system-ui,sans-serif;background:var(--background);color:var(--text-primary)}
.dashboard{display:grid;gap:1rem;padding:1.5rem;grid-template-columns:repeat(auto-fit,minmax(16rem,1fr))}
.dashboard.list{grid-template-columns:1fr;max-width:48rem;margin:0 auto}
.card{background:var(--surface);border:1px solid var(--border);border-radius:.75rem;padding:1rem;box-shadow:0 4px 12px var(--shadow)}
.card:hover{background:var(--hover)}
.muted{color:var(--text-secondary)}
.accent{color:var(--accent)}
[data-state="active"]{color:var(--text-accent);background:var(--accent)}
.error{color:var(--error)}`

// Layout renders the document shell with the theme applied as CSS custom
// properties on the root element.
func Layout(title string, colors models.Theme, content templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html lang="en" style="`+templ.EscapeString(theme.Style(colors))+`">`); err != nil {
			return err
		}
		head := `<head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1">` +
			`<meta http-equiv="Accept-CH" content="Sec-CH-Prefers-Color-Scheme">` +
			`<title>` + templ.EscapeString(title) + `</title>` +
			`<script src="https://unpkg.com/htmx.org@1.9.12" defer></script>` +
			`<style>` + baseStyles + `</style></head>`
		if _, err := io.WriteString(w, head); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<body><div id="dashboard-root">`); err != nil {
			return err
		}
		if content != nil {
			if err := content.Render(ctx, w); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`+colorSchemeScript+`</body></html>`)
		return err
	})
}

// colorSchemeScript reports the browser colour scheme so the system theme
// mode can follow it.
const colorSchemeScript = `<script>(function(){var q=window.matchMedia("(prefers-color-scheme: dark)");` +
	`function send(){fetch("/api/color-scheme",{method:"POST",headers:{"Content-Type":"application/json"},body:JSON.stringify({prefersDark:q.matches})})}` +
	`q.addEventListener("change",send);send();})();</script>`

// ContainerClass returns the class list of the widget container for a layout.
func ContainerClass(layout models.Layout) string {
	if layout == models.LayoutList {
		return "dashboard list"
	}
	return "dashboard grid"
}
