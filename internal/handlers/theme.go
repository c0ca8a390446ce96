package handlers

import (
	"net/http"

	"nexus/models"
)

type themeRequest struct {
	Theme       models.ThemeMode `json:"theme"`
	PresetTheme string           `json:"presetTheme"`
	CustomTheme *models.Theme    `json:"customTheme"`
}

type themeResponse struct {
	Settings models.ThemeSettings `json:"settings"`
	Current  *models.Theme        `json:"current"`
}

// UpdateTheme switches the theme mode.
func UpdateTheme(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}

	var req themeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.SetTheme(r.Context(), req.Theme, req.PresetTheme, req.CustomTheme); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, themeResponse{
		Settings: s.Settings().Theme,
		Current:  s.CurrentTheme(r.Context()),
	})
}

// CurrentTheme returns the resolved theme. An unresolvable theme answers 404
// with a null body.
func CurrentTheme(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	current := s.CurrentTheme(r.Context())
	if current == nil {
		writeJSON(w, r, http.StatusNotFound, nil)
		return
	}
	w.Header().Set("Vary", colorSchemeHeader)
	writeJSON(w, r, http.StatusOK, current)
}

// ListThemes returns the cached theme catalog.
func ListThemes(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	writeJSON(w, r, http.StatusOK, s.Themes())
}

// ReloadThemes re-fetches the theme catalog and returns it.
func ReloadThemes(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	s.ReloadThemes(r.Context())
	writeJSON(w, r, http.StatusOK, s.Themes())
}
