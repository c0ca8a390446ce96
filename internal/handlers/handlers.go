package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/alexedwards/scs/v2"

	applog "nexus/internal/log"
	"nexus/internal/settings"
)

const maxBodyBytes = 1 << 20

var (
	sessionManager *scs.SessionManager
	store          *settings.Store
	colorScheme    SchemeDetector
)

// Configure installs the shared dependencies used by the HTTP handlers.
// preferDark is the colour scheme assumed when a browser has not reported one.
func Configure(sm *scs.SessionManager, s *settings.Store, preferDark bool) {
	sessionManager = sm
	store = s
	colorScheme = SchemeDetector{PreferDark: preferDark}
}

var errStoreUnavailable = errors.New("settings not available")

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(value); err != nil {
		applog.Error(r.Context(), "failed to encode response", "path", r.URL.Path, "error", err)
	}
}

// writeError maps store errors to status codes.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "status", status, "error", err)
	} else {
		applog.Debug(r.Context(), "request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	writeJSON(w, r, status, errorResponse{Error: err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, errStoreUnavailable), errors.Is(err, settings.ErrCatalogNotReady):
		return http.StatusServiceUnavailable
	case errors.Is(err, settings.ErrImageNotFound), errors.Is(err, settings.ErrEngineNotFound):
		return http.StatusNotFound
	case errors.Is(err, settings.ErrInvalidSettings),
		errors.Is(err, settings.ErrInvalidThemeMode),
		errors.Is(err, settings.ErrInvalidTheme),
		errors.Is(err, settings.ErrInvalidImage),
		errors.Is(err, settings.ErrInvalidValue),
		errors.Is(err, errBadRequest):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

var errBadRequest = errors.New("bad request")

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return body, nil
}

func decodeJSON(w http.ResponseWriter, r *http.Request, target any) error {
	body, err := readBody(w, r)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("%w: invalid json: %v", errBadRequest, err)
	}
	return nil
}

// requireStore writes a 503 and returns nil when no store is configured.
func requireStore(w http.ResponseWriter, r *http.Request) *settings.Store {
	if store == nil {
		writeError(w, r, errStoreUnavailable)
		return nil
	}
	return store
}
