package kvstore

import (
	"errors"
	"fmt"

	"github.com/kondzio-p/ftbd-blt/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormStore keeps entries in the kv_entries table.
type GormStore struct {
	db *gorm.DB
}

// OpenGorm wraps the shared sqlite connection, initializing it on first use.
func OpenGorm(databasePath string) (*GormStore, error) {
	if db.DB == nil {
		if err := db.Init(databasePath); err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
	}
	return NewGormStore(db.DB), nil
}

// NewGormStore wraps an already migrated connection.
func NewGormStore(gdb *gorm.DB) *GormStore {
	return &GormStore{db: gdb}
}

// Get returns the stored value for key.
func (s *GormStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	var entry db.KVEntry
	if err := s.db.Where("key = ?", key).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return entry.Value, nil
}

// Set creates or overwrites key.
func (s *GormStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}

	entry := db.KVEntry{Key: key, Value: value}
	if err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value":      value,
			"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			"deleted_at": nil,
		}),
	}).Create(&entry).Error; err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *GormStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := s.db.Unscoped().Where("key = ?", key).Delete(&db.KVEntry{}).Error; err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// Close releases the underlying sql.DB.
func (s *GormStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
