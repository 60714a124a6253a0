package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisMedium maps keys onto plain Redis strings under Prefix, with no expiry.
type RedisMedium struct {
	Client *redis.Client
	Prefix string
}

func NewRedisMedium(client *redis.Client, prefix string) *RedisMedium {
	return &RedisMedium{Client: client, Prefix: prefix}
}

func (m *RedisMedium) GetItem(ctx context.Context, key string) (string, bool, error) {
	val, err := m.Client.Get(ctx, m.Prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func (m *RedisMedium) SetItem(ctx context.Context, key string, value string) error {
	return m.Client.Set(ctx, m.Prefix+key, value, 0).Err()
}

func (m *RedisMedium) RemoveItem(ctx context.Context, key string) error {
	return m.Client.Del(ctx, m.Prefix+key).Err()
}
