package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Storage drivers understood by the settings persistence layer.
const (
	StorageDatabase = "database"
	StorageFile     = "file"
	StorageMemory   = "memory"
	StorageNone     = "none"
)

// Config captures the runtime configuration for the application.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Theme    ThemeConfig    `mapstructure:"theme"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Session  SessionConfig  `mapstructure:"session"`
}

// ServerConfig configures the HTTP server runtime behavior.
type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

// DatabaseConfig contains the database connection settings.
type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	UseMock         bool          `mapstructure:"use_mock"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

// StorageConfig selects the durable medium that holds the settings document.
type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	Key    string `mapstructure:"key"`
}

// CatalogConfig points at the theme and background image catalogs. Locations
// without an http(s) scheme are read from the embedded assets.
type CatalogConfig struct {
	Themes  string        `mapstructure:"themes"`
	Images  string        `mapstructure:"images"`
	Timeout time.Duration `mapstructure:"timeout"`
	Refresh string        `mapstructure:"refresh"`
}

// ThemeConfig holds the fallback used by the "system" theme mode when the
// browser has not reported a colour scheme.
type ThemeConfig struct {
	PreferDark bool `mapstructure:"prefer_dark"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SessionConfig controls the browser session cookie.
type SessionConfig struct {
	Lifetime     time.Duration `mapstructure:"lifetime"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieDomain string        `mapstructure:"cookie_domain"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

// SetDefaults registers every configuration key with its default value.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.url", "")
	v.SetDefault("database.use_mock", false)
	v.SetDefault("database.max_idle_conns", 2)
	v.SetDefault("database.max_open_conns", 4)
	v.SetDefault("database.conn_max_lifetime", time.Hour)
	v.SetDefault("database.conn_max_idle_time", 15*time.Minute)

	v.SetDefault("storage.driver", StorageDatabase)
	v.SetDefault("storage.path", "")
	v.SetDefault("storage.key", "nexus-settings")

	v.SetDefault("catalog.themes", "themes.json")
	v.SetDefault("catalog.images", "images.json")
	v.SetDefault("catalog.timeout", 10*time.Second)
	v.SetDefault("catalog.refresh", "")

	v.SetDefault("theme.prefer_dark", false)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("session.lifetime", 30*24*time.Hour)
	v.SetDefault("session.cookie_name", "nexus_session")
	v.SetDefault("session.cookie_domain", "")
	v.SetDefault("session.cookie_secure", false)
}

// Load builds a Config from defaults, an optional YAML file and the
// environment. Environment variables use the NEXUS_ prefix with underscores
// for nesting (NEXUS_STORAGE_DRIVER); SERVER_ADDR, ADDR, DATABASE_URL and
// DB_URL are honoured as aliases.
func Load(path string) (Config, error) {
	v := viper.New()
	SetDefaults(v)

	if strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("nexus")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/nexus")
	}

	v.SetEnvPrefix("NEXUS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.addr", "NEXUS_SERVER_ADDR", "SERVER_ADDR", "ADDR")
	_ = v.BindEnv("database.url", "NEXUS_DATABASE_URL", "DATABASE_URL", "DB_URL")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}

	cfg.Server.Addr = firstNonEmpty(cfg.Server.Addr, ":8080")
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for values the application cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Server.Addr) == "" {
		return fmt.Errorf("server address must not be empty")
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key must not be empty")
	}

	switch c.Storage.Driver {
	case StorageDatabase:
		if strings.TrimSpace(c.Database.URL) == "" && !c.Database.UseMock {
			return fmt.Errorf("database storage requires database.url or database.use_mock")
		}
	case StorageFile:
		if strings.TrimSpace(c.Storage.Path) == "" {
			return fmt.Errorf("file storage requires storage.path")
		}
	case StorageMemory, StorageNone:
	default:
		return fmt.Errorf("unknown storage driver: %s", c.Storage.Driver)
	}

	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("catalog timeout must not be negative")
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
