package cache

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// cacheRecord is the persisted form of an Entry.
type cacheRecord struct {
	Key       string    `gorm:"column:cache_key;primaryKey;size:191"`
	Value     []byte    `gorm:"not null"`
	FetchedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for cacheRecord
func (cacheRecord) TableName() string {
	return "cache_entries"
}

// DBStore persists entries in the relational store so they survive restarts.
// Storage errors are logged and surface as misses.
type DBStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewDBStore migrates the cache table and returns a store on db.
func NewDBStore(db *gorm.DB, logger *zap.Logger) (*DBStore, error) {
	if err := db.AutoMigrate(&cacheRecord{}); err != nil {
		return nil, fmt.Errorf("migrate cache table: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DBStore{db: db, logger: logger}, nil
}

// Load implements Store.Load.
func (s *DBStore) Load(key string) (Entry, bool) {
	var rec cacheRecord
	err := s.db.Where("cache_key = ?", key).First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("cache-store-load-failed", zap.String("key", key), zap.Error(err))
		}
		return Entry{}, false
	}
	return Entry{Value: rec.Value, FetchedAt: rec.FetchedAt}, true
}

// Save implements Store.Save.
func (s *DBStore) Save(key string, e Entry) {
	rec := cacheRecord{Key: key, Value: e.Value, FetchedAt: e.FetchedAt}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
	if err != nil {
		s.logger.Warn("cache-store-save-failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete implements Store.Delete.
func (s *DBStore) Delete(key string) {
	err := s.db.Where("cache_key = ?", key).Delete(&cacheRecord{}).Error
	if err != nil {
		s.logger.Warn("cache-store-delete-failed", zap.String("key", key), zap.Error(err))
	}
}

// Clear implements Store.Clear.
func (s *DBStore) Clear() {
	err := s.db.Where("1 = 1").Delete(&cacheRecord{}).Error
	if err != nil {
		s.logger.Warn("cache-store-clear-failed", zap.Error(err))
	}
}

var _ Store = (*DBStore)(nil)
