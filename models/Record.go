package models

import "gorm.io/gorm"

// Record is a single entry of the durable key/value table backing settings
// persistence.
type Record struct {
	gorm.Model
	Key   string `gorm:"uniqueIndex;size:128;not null"`
	Value string `gorm:"type:text;not null"`
}

// TableName keeps the table name stable regardless of naming strategy.
func (Record) TableName() string {
	return "settings_records"
}
