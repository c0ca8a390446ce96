package handlers

import (
	"net/http"
	"time"

	applog "nexus/internal/log"
)

type healthResponse struct {
	Status   string          `json:"status"`
	Time     time.Time       `json:"time"`
	Catalogs *catalogsHealth `json:"catalogs,omitempty"`
}

type catalogsHealth struct {
	Themes       int  `json:"themes"`
	Images       int  `json:"images"`
	ImagesLoaded bool `json:"imagesLoaded"`
}

// Health is a readiness handler suitable for infrastructure probes. With a
// store configured it also reports the size of the loaded catalogs.
func Health(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "health check requested", "method", r.Method)
	resp := healthResponse{
		Status: "ok",
		Time:   time.Now().UTC(),
	}
	if store != nil {
		images, loaded := store.Images()
		resp.Catalogs = &catalogsHealth{
			Themes:       len(store.Themes()),
			Images:       len(images),
			ImagesLoaded: loaded,
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}
