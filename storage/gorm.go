package storage

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KVEntry is one collection value in the kv_entries table.
type KVEntry struct {
	ItemKey   string    `gorm:"column:item_key;primaryKey;size:191" json:"item_key"`
	Value     string    `gorm:"type:longtext;not null" json:"value"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (KVEntry) TableName() string {
	return "kv_entries"
}

// GormMedium keeps collections in a relational key/value table.
type GormMedium struct {
	DB *gorm.DB
}

// NewGormMedium migrates kv_entries before returning.
func NewGormMedium(db *gorm.DB) (*GormMedium, error) {
	if err := db.AutoMigrate(&KVEntry{}); err != nil {
		return nil, err
	}
	return &GormMedium{DB: db}, nil
}

func (m *GormMedium) GetItem(ctx context.Context, key string) (string, bool, error) {
	var entry KVEntry
	err := m.DB.WithContext(ctx).Where("item_key = ?", key).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Value, true, nil
}

// SetItem upserts in a single statement, so readers see the old or the new value.
func (m *GormMedium) SetItem(ctx context.Context, key string, value string) error {
	entry := KVEntry{ItemKey: key, Value: value}
	return m.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "item_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
}

func (m *GormMedium) RemoveItem(ctx context.Context, key string) error {
	return m.DB.WithContext(ctx).Where("item_key = ?", key).Delete(&KVEntry{}).Error
}
