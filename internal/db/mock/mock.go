package mock

import (
	"context"
	"encoding/json"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	applog "nexus/internal/log"
	"nexus/models"
)

// SettingsKey is the record key the mock database seeds.
const SettingsKey = "nexus-settings"

// New returns an in-memory sqlite database seeded with a representative
// stored settings document.
func New(ctx context.Context) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database")

	db, err := gorm.Open(sqlite.Open("file:nexus-mock?mode=memory&cache=shared"), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		PrepareStmt:            true,
		SkipDefaultTransaction: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&models.Record{}); err != nil {
		return nil, err
	}

	if err := seed(ctx, db); err != nil {
		return nil, err
	}

	applog.Debug(ctx, "mock database ready")
	return db, nil
}

// Settings returns the document stored by the mock seed.
func Settings() models.Settings {
	settings := models.DefaultSettings()
	settings.General.Layout = models.LayoutList
	settings.Theme.Theme = models.ThemeModeDark
	settings.DateTime.Format = models.DateFormat12h
	settings.DateTime.ShowSeconds = true
	settings.Search.DefaultEngine = models.SearchEngineCustom
	settings.Search.SelectedCustomEngine = "wiki"
	settings.Search.CustomEngines = map[string]models.CustomEngine{
		"wiki": {Name: "Wikipedia", URL: "https://en.wikipedia.org/w/index.php?search=%s", Keyword: "!w"},
	}
	settings.Integrations.GitHub = models.GitHubSettings{Enabled: true, FeedItems: 5}
	return settings
}

func seed(ctx context.Context, db *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	var count int64
	if err := db.WithContext(ctx).Model(&models.Record{}).Where("key = ?", SettingsKey).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	payload, err := json.Marshal(Settings())
	if err != nil {
		return err
	}

	record := &models.Record{Key: SettingsKey, Value: string(payload)}
	if err := db.WithContext(ctx).Create(record).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded")
	return nil
}
