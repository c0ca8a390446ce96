package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"nexus/models"
)

func sampleData() DashboardData {
	settings := models.DefaultSettings()
	settings.Integrations.GitHub.Enabled = true
	return DashboardData{
		Settings:   settings,
		Theme:      models.DefaultLightTheme,
		Background: &models.BackgroundImage{ID: "lake", Name: "Lake", Src: "/img/lake.jpg", Credit: "Photo by A"},
		Themes:     map[string]models.Theme{"nord": models.DefaultDarkTheme},
	}
}

func TestDashboardRendersDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := Dashboard(sampleData()).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render dashboard: %v", err)
	}
	out := buf.String()
	for _, token := range []string{"<!DOCTYPE html>", "<title>Nexus</title>", "Latest 10 events", "Photo by A", "/img/lake.jpg", "Nord"} {
		if !strings.Contains(out, token) {
			t.Fatalf("expected dashboard to contain %q: %s", token, out)
		}
	}
	if strings.Contains(out, `data-integration="spotify"`) {
		t.Fatalf("expected disabled integrations to be hidden: %s", out)
	}
}

func TestDashboardPartialOmitsShell(t *testing.T) {
	data := sampleData()
	data.Settings.General.Layout = models.LayoutList
	data.Background = nil

	var buf bytes.Buffer
	if err := DashboardPartial(data).Render(context.Background(), &buf); err != nil {
		t.Fatalf("render partial: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<html") {
		t.Fatalf("expected partial without document shell: %s", out)
	}
	if !strings.Contains(out, `class="dashboard list"`) {
		t.Fatalf("expected list layout class: %s", out)
	}
	if strings.Contains(out, "background-image") {
		t.Fatalf("expected no background without an image: %s", out)
	}
}

func TestSelectedTheme(t *testing.T) {
	data := sampleData()
	if got := data.SelectedTheme(); got != "system" {
		t.Fatalf("expected system mode, got %q", got)
	}
	data.Settings.Theme = models.ThemeSettings{Theme: models.ThemeModePreset, PresetTheme: "nord"}
	if got := data.SelectedTheme(); got != "nord" {
		t.Fatalf("expected preset name, got %q", got)
	}
}
