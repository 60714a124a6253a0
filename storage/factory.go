package storage

import (
	"context"
	"fmt"

	"github.com/mmdatafocus/sales_backend/config"
	"github.com/redis/go-redis/v9"
)

// Backend is an opened medium plus the shared clients other components
// (write locks, sequence counters) may need.
type Backend struct {
	Medium Medium
	Redis  *redis.Client

	closers []func() error
}

func (b *Backend) Close() error {
	var first error
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func needsRedis(cfg *config.StoreConfig) bool {
	return cfg.Driver == config.StorageDriverRedis ||
		cfg.Lock == config.LockRedis ||
		cfg.Sequence == config.SequenceRedis
}

// Open builds the medium named by cfg.Driver.
func Open(ctx context.Context, cfg *config.StoreConfig) (*Backend, error) {
	b := &Backend{}

	if needsRedis(cfg) {
		rdb, err := config.ConnectRedis(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		b.Redis = rdb
		b.closers = append(b.closers, rdb.Close)
	}

	switch cfg.Driver {
	case config.StorageDriverMemory:
		b.Medium = NewMemoryMedium()
	case config.StorageDriverFile:
		m, err := NewFileMedium(cfg.FileDir)
		if err != nil {
			b.Close()
			return nil, err
		}
		b.Medium = m
	case config.StorageDriverRedis:
		b.Medium = NewRedisMedium(b.Redis, cfg.RedisKeyPrefix)
	case config.StorageDriverMySQL:
		db, err := config.OpenDatabase(ctx, cfg)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("open database: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, sqlDB.Close)
		}
		m, err := NewGormMedium(db)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("migrate kv_entries: %w", err)
		}
		b.Medium = m
	case config.StorageDriverGCS:
		if cfg.GCSBucket == "" {
			b.Close()
			return nil, fmt.Errorf("GCS_BUCKET is required")
		}
		client, err := config.NewGCSClient(ctx, cfg)
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("gcs client: %w", err)
		}
		b.closers = append(b.closers, client.Close)
		b.Medium = NewGCSMedium(client, cfg.GCSBucket, cfg.GCSPrefix)
	default:
		b.Close()
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
	return b, nil
}
