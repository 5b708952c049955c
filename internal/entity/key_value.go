package entity

import "time"

// KeyValue is a single persisted state entry.
type KeyValue struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time `gorm:"index"`
}
