package handlers

import (
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/blake2b"

	applog "nexus/internal/log"
)

// etag derives a strong validator from the encoded settings document.
func etag(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func etagMatches(header, tag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimSpace(candidate)
		candidate = strings.TrimPrefix(candidate, "W/")
		if candidate == "*" || candidate == tag {
			return true
		}
	}
	return false
}

// respondSettings writes the live settings with their ETag.
func respondSettings(w http.ResponseWriter, r *http.Request) {
	body, err := json.Marshal(store.Settings())
	if err != nil {
		writeError(w, r, err)
		return
	}

	tag := etag(body)
	w.Header().Set("ETag", tag)
	w.Header().Set("Cache-Control", "no-cache")
	if r.Method == http.MethodGet {
		if match := r.Header.Get("If-None-Match"); match != "" && etagMatches(match, tag) {
			w.WriteHeader(http.StatusNotModified)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(append(body, '\n')); err != nil {
		applog.Error(r.Context(), "failed to write settings response", "error", err)
	}
}

// GetSettings returns the live settings document.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	if requireStore(w, r) == nil {
		return
	}
	respondSettings(w, r)
}

// ReplaceSettings installs a whole settings document, merged over the
// defaults.
func ReplaceSettings(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.Replace(r.Context(), body); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

// ResetSettings restores the default settings.
func ResetSettings(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	s.ResetSettings(r.Context())
	respondSettings(w, r)
}
