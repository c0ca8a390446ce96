package storage

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"nexus/models"
)

// GormMedium stores values in the settings_records table.
type GormMedium struct {
	db *gorm.DB
}

// NewGormMedium wraps a migrated database handle.
func NewGormMedium(db *gorm.DB) *GormMedium {
	return &GormMedium{db: db}
}

func (m *GormMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if m == nil || m.db == nil {
		return "", false, ErrUnavailable
	}

	var record models.Record
	err := m.db.WithContext(ctx).Where("key = ?", key).First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return record.Value, true, nil
}

func (m *GormMedium) Set(ctx context.Context, key, value string) error {
	if m == nil || m.db == nil {
		return ErrUnavailable
	}

	record := &models.Record{Key: key, Value: value}
	return m.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(record).Error
}

func (m *GormMedium) Delete(ctx context.Context, key string) error {
	if m == nil || m.db == nil {
		return ErrUnavailable
	}
	return m.db.WithContext(ctx).Unscoped().Where("key = ?", key).Delete(&models.Record{}).Error
}
