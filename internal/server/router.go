package server

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"nexus/internal/handlers"
	applog "nexus/internal/log"
)

func newRouter(assets fs.FS) *chi.Mux {
	router := chi.NewRouter()
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(requestLogger)
	router.Use(chimiddleware.Compress(5))

	applog.Debug(context.Background(), "registering http routes")
	router.Get("/healthz", handlers.Health)
	router.Get("/", handlers.Home)

	router.Route("/api", func(r chi.Router) {
		r.Get("/settings", handlers.GetSettings)
		r.Put("/settings", handlers.ReplaceSettings)
		r.Post("/settings/reset", handlers.ResetSettings)
		r.Put("/settings/theme", handlers.UpdateTheme)
		r.Put("/settings/background", handlers.UpdateBackground)
		r.Put("/settings/background/image", handlers.SelectImage)
		r.Put("/settings/background/custom", handlers.SetCustomImage)
		r.Put("/settings/general", handlers.UpdateGeneral)
		r.Put("/settings/datetime", handlers.UpdateDateTime)
		r.Put("/settings/search", handlers.UpdateSearch)
		r.Put("/settings/search/engines/{key}", handlers.PutSearchEngine)
		r.Delete("/settings/search/engines/{key}", handlers.DeleteSearchEngine)
		r.Put("/settings/integrations", handlers.UpdateIntegrations)

		r.Get("/theme", handlers.CurrentTheme)
		r.Get("/themes", handlers.ListThemes)
		r.Post("/themes/reload", handlers.ReloadThemes)
		r.Get("/images", handlers.ListImages)
		r.Get("/background", handlers.CurrentBackground)
		r.Post("/color-scheme", handlers.UpdateColorScheme)
	})
	applog.Debug(context.Background(), "route registered", "path", "/api")

	if assets != nil {
		router.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(assets))))
		applog.Debug(context.Background(), "route registered", "path", "/assets/", "static", true)
	}
	return router
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		applog.Debug(r.Context(), "request served",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).String(),
		)
	})
}
