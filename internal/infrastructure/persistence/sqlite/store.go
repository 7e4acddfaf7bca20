// Package sqlite provides a durable lookup cache on SQLite, so food data
// survives restarts and repeat recipes avoid re-querying the USDA API.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nutrilabel/v1/internal/infrastructure/config"
	"github.com/nutrilabel/v1/internal/ports/outbound"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// CacheEntry is one cached lookup payload.
type CacheEntry struct {
	Key       string `gorm:"primaryKey;size:512"`
	Value     []byte `gorm:"not null"`
	ExpiresAt *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName overrides the default pluralization.
func (CacheEntry) TableName() string { return "lookup_cache" }

// Store is a SQLite-backed cache repository.
type Store struct {
	db     *gorm.DB
	logger *zap.Logger
}

// New opens (or creates) the SQLite database and migrates the schema.
func New(cfg *config.Config, logger *zap.Logger) (*Store, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormLogLevel(cfg.Database.LogLevel)),
	}

	db, err := gorm.Open(sqlite.Open(cfg.Database.Path), gormCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access sql.DB: %w", err)
	}
	// SQLite handles one writer at a time.
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)

	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(&CacheEntry{}); err != nil {
			return nil, fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	logger.Info("Opened SQLite lookup cache", zap.String("path", cfg.Database.Path))
	return &Store{db: db, logger: logger.Named("sqlite-store")}, nil
}

var _ outbound.CacheRepository = (*Store)(nil)

// Get returns the cached value, or nil when absent or expired. Expired rows
// are deleted on read.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	var entry CacheEntry
	err := s.db.WithContext(ctx).First(&entry, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if entry.ExpiresAt != nil && time.Now().After(*entry.ExpiresAt) {
		if err := s.db.WithContext(ctx).Delete(&CacheEntry{}, "key = ?", key).Error; err != nil {
			s.logger.Warn("Failed to delete expired cache entry", zap.String("key", key), zap.Error(err))
		}
		return nil, nil
	}
	return entry.Value, nil
}

// Set upserts a value. A zero ttl means no expiry.
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	entry := CacheEntry{Key: key, Value: value}
	if ttl > 0 {
		expires := time.Now().Add(ttl)
		entry.ExpiresAt = &expires
	}
	return s.db.WithContext(ctx).Save(&entry).Error
}

// Delete removes a key.
func (s *Store) Delete(ctx context.Context, key string) error {
	return s.db.WithContext(ctx).Delete(&CacheEntry{}, "key = ?", key).Error
}

// Cleanup deletes all expired rows and reports how many were removed.
func (s *Store) Cleanup(ctx context.Context) (int64, error) {
	res := s.db.WithContext(ctx).Delete(&CacheEntry{}, "expires_at IS NOT NULL AND expires_at < ?", time.Now())
	return res.RowsAffected, res.Error
}

// Stats reports cache size for operational visibility.
func (s *Store) Stats(ctx context.Context) (total int64, expired int64, err error) {
	if err = s.db.WithContext(ctx).Model(&CacheEntry{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	err = s.db.WithContext(ctx).Model(&CacheEntry{}).
		Where("expires_at IS NOT NULL AND expires_at < ?", time.Now()).
		Count(&expired).Error
	return total, expired, err
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func gormLogLevel(level string) gormlogger.LogLevel {
	switch level {
	case "silent":
		return gormlogger.Silent
	case "info":
		return gormlogger.Info
	case "warn":
		return gormlogger.Warn
	default:
		return gormlogger.Error
	}
}
