package handlers

import (
	"net/http"

	templpkg "github.com/a-h/templ"

	"nexus/internal/views/pages"
)

// Home renders the dashboard. HTMX requests receive only the widget
// container.
func Home(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}

	data := dashboardData(r, s)

	var component templpkg.Component
	if isHTMX(r) {
		component = pages.DashboardPartial(data)
	} else {
		component = pages.Dashboard(data)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Vary", "HX-Request, Sec-CH-Prefers-Color-Scheme")
	if err := component.Render(r.Context(), w); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
