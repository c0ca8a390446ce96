package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFirstNonEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []string
		want   string
	}{
		{"all empty", []string{"", "   "}, ""},
		{"first non empty", []string{"foo", "bar"}, "foo"},
		{"skips whitespace", []string{"   ", "bar"}, "bar"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := firstNonEmpty(tt.values...); got != tt.want {
				t.Fatalf("firstNonEmpty(%v) = %q, want %q", tt.values, got, tt.want)
			}
		})
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"SERVER_ADDR", "ADDR", "DATABASE_URL", "DB_URL", "NEXUS_SERVER_ADDR", "NEXUS_DATABASE_URL"} {
		t.Setenv(key, "")
	}
}

func TestLoadUsesEnvironment(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("NEXUS_DATABASE_MAX_IDLE_CONNS", "10")
	t.Setenv("NEXUS_DATABASE_CONN_MAX_LIFETIME", "2h")
	t.Setenv("NEXUS_STORAGE_KEY", "custom-key")
	t.Setenv("NEXUS_CATALOG_THEMES", "https://cdn.example.com/themes.json")
	t.Setenv("NEXUS_CATALOG_TIMEOUT", "3s")
	t.Setenv("NEXUS_THEME_PREFER_DARK", "true")
	t.Setenv("NEXUS_LOGGING_LEVEL", "debug")
	t.Setenv("NEXUS_SESSION_LIFETIME", "45m")
	t.Setenv("NEXUS_SESSION_COOKIE_NAME", "custom_session")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, ":8080")
	}
	if cfg.Database.URL != "postgres://example" {
		t.Fatalf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Database.MaxIdleConns != 10 {
		t.Fatalf("Database.MaxIdleConns = %d", cfg.Database.MaxIdleConns)
	}
	if cfg.Database.ConnMaxLifetime != 2*time.Hour {
		t.Fatalf("Database.ConnMaxLifetime = %s", cfg.Database.ConnMaxLifetime)
	}
	if cfg.Storage.Driver != StorageDatabase {
		t.Fatalf("Storage.Driver = %q", cfg.Storage.Driver)
	}
	if cfg.Storage.Key != "custom-key" {
		t.Fatalf("Storage.Key = %q", cfg.Storage.Key)
	}
	if cfg.Catalog.Themes != "https://cdn.example.com/themes.json" {
		t.Fatalf("Catalog.Themes = %q", cfg.Catalog.Themes)
	}
	if cfg.Catalog.Images != "images.json" {
		t.Fatalf("Catalog.Images = %q", cfg.Catalog.Images)
	}
	if cfg.Catalog.Timeout != 3*time.Second {
		t.Fatalf("Catalog.Timeout = %s", cfg.Catalog.Timeout)
	}
	if !cfg.Theme.PreferDark {
		t.Fatal("Theme.PreferDark = false, want true")
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Logging.Level = %q", cfg.Logging.Level)
	}
	if cfg.Session.Lifetime != 45*time.Minute {
		t.Fatalf("Session.Lifetime = %s", cfg.Session.Lifetime)
	}
	if cfg.Session.CookieName != "custom_session" {
		t.Fatalf("Session.CookieName = %q", cfg.Session.CookieName)
	}
}

func TestLoadPrefersServerAddr(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("SERVER_ADDR", "127.0.0.1:9000")
	t.Setenv("ADDR", ":7000")
	t.Setenv("NEXUS_STORAGE_DRIVER", "memory")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" {
		t.Fatalf("Server.Addr = %q, want %q", cfg.Server.Addr, "127.0.0.1:9000")
	}
}

func TestLoadReadsFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "nexus.yaml")
	content := "storage:\n  driver: file\n  path: " + filepath.Join(dir, "settings.json") + "\ncatalog:\n  refresh: \"@every 1h\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Driver != StorageFile {
		t.Fatalf("Storage.Driver = %q", cfg.Storage.Driver)
	}
	if cfg.Catalog.Refresh != "@every 1h" {
		t.Fatalf("Catalog.Refresh = %q", cfg.Catalog.Refresh)
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	base := Config{
		Server:  ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{Driver: StorageMemory, Key: "nexus-settings"},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"memory ok", func(*Config) {}, false},
		{"empty addr", func(c *Config) { c.Server.Addr = " " }, true},
		{"empty key", func(c *Config) { c.Storage.Key = "" }, true},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }, true},
		{"file without path", func(c *Config) { c.Storage.Driver = StorageFile }, true},
		{"database without url", func(c *Config) { c.Storage.Driver = StorageDatabase }, true},
		{"database with mock", func(c *Config) {
			c.Storage.Driver = StorageDatabase
			c.Database.UseMock = true
		}, false},
		{"negative timeout", func(c *Config) { c.Catalog.Timeout = -time.Second }, true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %t", err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd() error = %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir() error = %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Errorf("restore working directory: %v", err)
		}
	})
}
