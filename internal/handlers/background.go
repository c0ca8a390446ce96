package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	applog "nexus/internal/log"
	"nexus/models"
)

type imagesResponse struct {
	Loaded bool                              `json:"loaded"`
	Images map[string]models.BackgroundImage `json:"images"`
}

// ListImages returns the cached background image catalog.
func ListImages(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	images, loaded := s.Images()
	writeJSON(w, r, http.StatusOK, imagesResponse{Loaded: loaded, Images: images})
}

// CurrentBackground returns the effective background image, or null when
// none applies.
func CurrentBackground(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	image, err := s.CurrentImage()
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, image)
}

type selectImageRequest struct {
	Src string `json:"src"`
}

// SelectImage picks a catalog image by its source.
func SelectImage(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req selectImageRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(req.Src) == "" {
		writeError(w, r, fmt.Errorf("%w: src is required", errBadRequest))
		return
	}
	if err := s.SetCurrentImage(r.Context(), req.Src); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

// SetCustomImage stores a user-supplied background image. A blank id is
// replaced with a fresh ULID.
func SetCustomImage(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var image models.BackgroundImage
	if err := decodeJSON(w, r, &image); err != nil {
		writeError(w, r, err)
		return
	}
	if strings.TrimSpace(image.ID) == "" {
		image.ID = ulid.Make().String()
		applog.Debug(r.Context(), "assigned custom image id", "id", image.ID)
	}
	if err := s.SetCustomImage(r.Context(), image); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}

type backgroundRequest struct {
	Type       models.BackgroundType `json:"type"`
	ShowCredit *bool                 `json:"showCredit"`
}

// UpdateBackground changes the background type and credit visibility.
func UpdateBackground(w http.ResponseWriter, r *http.Request) {
	s := requireStore(w, r)
	if s == nil {
		return
	}
	var req backgroundRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Type == "" && req.ShowCredit == nil {
		writeError(w, r, fmt.Errorf("%w: type or showCredit is required", errBadRequest))
		return
	}
	if err := s.UpdateBackground(r.Context(), req.Type, req.ShowCredit); err != nil {
		writeError(w, r, err)
		return
	}
	respondSettings(w, r)
}
