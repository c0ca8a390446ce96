package handlers

import (
	"context"
	"net/http"
	"strings"

	applog "nexus/internal/log"
	"nexus/models"
)

const (
	sessionColorSchemeKey = "preferences:color-scheme"
	colorSchemeHeader     = "Sec-CH-Prefers-Color-Scheme"
)

type colorSchemeContextKey struct{}

// SchemeDetector answers the system theme mode for a request. The scheme
// reported through the session or the client hint header wins over
// PreferDark.
type SchemeDetector struct {
	PreferDark bool
}

func (d SchemeDetector) PrefersDark(ctx context.Context) bool {
	if dark, ok := ctx.Value(colorSchemeContextKey{}).(bool); ok {
		return dark
	}
	return d.PreferDark
}

func withColorScheme(ctx context.Context, dark bool) context.Context {
	return context.WithValue(ctx, colorSchemeContextKey{}, dark)
}

func parseScheme(value string) (dark bool, ok bool) {
	switch strings.ToLower(strings.Trim(strings.TrimSpace(value), `"`)) {
	case "dark":
		return true, true
	case "light":
		return false, true
	default:
		return false, false
	}
}

// ColorSchemeHints records the browser colour scheme in the request context.
// The session value takes precedence over the client hint header. It must
// run inside the session middleware.
func ColorSchemeHints(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Add("Accept-CH", colorSchemeHeader)

		if sessionManager != nil {
			if dark, ok := parseScheme(sessionManager.GetString(r.Context(), sessionColorSchemeKey)); ok {
				next.ServeHTTP(w, r.WithContext(withColorScheme(r.Context(), dark)))
				return
			}
		}
		if dark, ok := parseScheme(r.Header.Get(colorSchemeHeader)); ok {
			next.ServeHTTP(w, r.WithContext(withColorScheme(r.Context(), dark)))
			return
		}
		next.ServeHTTP(w, r)
	})
}

type colorSchemeRequest struct {
	PrefersDark bool `json:"prefersDark"`
}

type colorSchemeResponse struct {
	PrefersDark bool          `json:"prefersDark"`
	Theme       *models.Theme `json:"theme"`
}

// UpdateColorScheme stores the colour scheme reported by the browser in the
// session so the system theme mode follows it.
func UpdateColorScheme(w http.ResponseWriter, r *http.Request) {
	if sessionManager == nil {
		applog.Debug(r.Context(), "color scheme update without session manager")
		writeError(w, r, errStoreUnavailable)
		return
	}

	var req colorSchemeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}

	scheme := "light"
	if req.PrefersDark {
		scheme = "dark"
	}
	sessionManager.Put(r.Context(), sessionColorSchemeKey, scheme)
	applog.Debug(r.Context(), "color scheme recorded", "scheme", scheme)

	ctx := withColorScheme(r.Context(), req.PrefersDark)
	resp := colorSchemeResponse{PrefersDark: req.PrefersDark}
	if store != nil {
		resp.Theme = store.CurrentTheme(ctx)
	}
	writeJSON(w, r, http.StatusOK, resp)
}
