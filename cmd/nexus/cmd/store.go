package cmd

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"nexus/internal/assets"
	"nexus/internal/catalog"
	"nexus/internal/config"
	"nexus/internal/db"
	"nexus/internal/db/mock"
	"nexus/internal/handlers"
	applog "nexus/internal/log"
	"nexus/internal/settings"
	"nexus/internal/storage"
)

var (
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
)

// openMedium builds the storage medium selected by storage.driver. The
// returned close function releases any database handle.
func openMedium(ctx context.Context, cfg config.Config) (storage.Medium, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageDatabase:
		var (
			database *gorm.DB
			err      error
		)
		if cfg.Database.UseMock {
			applog.Info(ctx, "using mock database")
			database, err = newMockDatabaseFunc(ctx)
		} else {
			database, err = configureDatabase(cfg.Database)
		}
		if err != nil {
			return nil, noop, fmt.Errorf("configure database: %w", err)
		}
		return storage.NewGormMedium(database), func() { closeDatabase(ctx, database) }, nil
	case config.StorageFile:
		return storage.NewFileMedium(cfg.Storage.Path), noop, nil
	case config.StorageMemory:
		return storage.NewMemoryMedium(), noop, nil
	case config.StorageNone:
		applog.Warn(ctx, "settings storage disabled, changes will not persist")
		return nil, noop, nil
	default:
		return nil, noop, fmt.Errorf("unknown storage driver: %s", cfg.Storage.Driver)
	}
}

func closeDatabase(ctx context.Context, database *gorm.DB) {
	if database == nil {
		return
	}
	sqlDB, err := database.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		applog.Warn(ctx, "failed to close database", "error", err)
	}
}

// openStore wires storage, catalogs and the colour scheme fallback into a
// settings store.
func openStore(ctx context.Context, cfg config.Config) (*settings.Store, func(), error) {
	medium, closeFn, err := openMedium(ctx, cfg)
	if err != nil {
		return nil, closeFn, err
	}

	loader := catalog.New(nil, assets.FS(), cfg.Catalog.Themes, cfg.Catalog.Images, cfg.Catalog.Timeout)
	store := settings.New(ctx, settings.Options{
		Persistence: settings.NewPersistence(medium, cfg.Storage.Key),
		Catalog:     loader,
		Detector:    handlers.SchemeDetector{PreferDark: cfg.Theme.PreferDark},
	})
	return store, closeFn, nil
}

// withStore loads the configuration, opens the store and runs fn.
func withStore(ctx context.Context, fn func(ctx context.Context, store *settings.Store) error) error {
	cfg, err := loadConfigFunc()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := setupLogging(cfg); err != nil {
		return err
	}

	store, closeFn, err := openStore(ctx, cfg)
	defer closeFn()
	if err != nil {
		return err
	}
	return fn(ctx, store)
}
