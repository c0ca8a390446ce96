package handlers

import (
	"errors"
	"net/http"

	applog "nexus/internal/log"
	"nexus/internal/settings"
	"nexus/internal/views/pages"
	"nexus/internal/views/theme"
)

func dashboardData(r *http.Request, s *settings.Store) pages.DashboardData {
	ctx := r.Context()
	current := s.CurrentTheme(ctx)
	if current == nil {
		current = s.AppliedTheme()
	}

	background, err := s.CurrentImage()
	if err != nil && !errors.Is(err, settings.ErrCatalogNotReady) {
		applog.Warn(ctx, "background image unavailable", "error", err)
	}

	return pages.DashboardData{
		Settings:   s.Settings(),
		Theme:      theme.Or(current, colorScheme.PrefersDark(ctx)),
		Background: background,
		Themes:     s.Themes(),
	}
}
