package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nexus/models"
)

type generalRequest struct {
	Layout models.Layout `json:"layout"`
}

func UpdateGeneral(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req generalRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.SetLayout(r.Context(), req.Layout); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

func UpdateDateTime(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req models.DateTimeSettings
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.SetDateTime(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

type searchRequest struct {
	DefaultEngine        models.SearchEngine `json:"defaultEngine"`
	SelectedCustomEngine string              `json:"selectedCustomEngine"`
}

func UpdateSearch(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req searchRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.SetSearchEngine(r.Context(), req.DefaultEngine, req.SelectedCustomEngine); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

// PutSearchEngine adds or replaces the custom engine named by the path.
func PutSearchEngine(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var engine models.CustomEngine
	if err := decodeJSON(w, r, &engine); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.PutCustomEngine(r.Context(), chi.URLParam(r, "key"), engine); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

func DeleteSearchEngine(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	if err := s.RemoveCustomEngine(r.Context(), chi.URLParam(r, "key")); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

func UpdateIntegrations(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req models.IntegrationSettings
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.SetIntegrations(r.Context(), req); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}
