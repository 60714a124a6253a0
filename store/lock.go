package store

import (
	"context"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/mmdatafocus/sales_backend/config"
)

// Locker serializes read-modify-write cycles on one collection key.
type Locker interface {
	Lock(ctx context.Context, key string) (unlock func(), err error)
}

// LocalLocker holds one mutex per collection key.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: map[string]*sync.Mutex{}}
}

func (l *LocalLocker) Lock(_ context.Context, key string) (func(), error) {
	l.mu.Lock()
	km := l.locks[key]
	if km == nil {
		km = &sync.Mutex{}
		l.locks[key] = km
	}
	l.mu.Unlock()

	km.Lock()
	return km.Unlock, nil
}

type NoopLocker struct{}

func (NoopLocker) Lock(context.Context, string) (func(), error) {
	return func() {}, nil
}

// RedisLocker takes a redislock lease per collection so writers in other
// processes sharing the same Redis medium wait their turn.
type RedisLocker struct {
	Client *redislock.Client
	TTL    time.Duration
	Prefix string
}

func NewRedisLocker(client *redislock.Client) *RedisLocker {
	return &RedisLocker{Client: client, TTL: 5 * time.Second, Prefix: "lock:"}
}

func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lock, err := l.Client.Obtain(ctx, l.Prefix+key, l.TTL, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(25*time.Millisecond), 200),
	})
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil && err != redislock.ErrLockNotHeld {
			config.LogError(config.GetLogger(), "store", "RedisLocker.Lock", "release", key, err)
		}
	}, nil
}
