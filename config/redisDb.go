package config

import (
	"context"
	"log"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const redisConnectAttempts = 5

// ConnectRedis opens a client for cfg and pings it, retrying with backoff.
func ConnectRedis(ctx context.Context, cfg *StoreConfig) (*redis.Client, error) {
	var attempt int
	for {
		attempt++
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			PoolSize: 10,
		})
		err := rdb.Ping(ctx).Err()
		if err == nil {
			log.Printf("connected to redis (attempt=%d addr=%s)", attempt, cfg.RedisAddress)
			return rdb, nil
		}
		_ = rdb.Close()
		if attempt >= redisConnectAttempts {
			return nil, err
		}

		sleep := time.Second * time.Duration(1<<min(attempt, 5))
		log.Printf("failed to connect redis (attempt=%d addr=%s): %v; retrying in %s", attempt, cfg.RedisAddress, err, sleep)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}
}

func NewRedisLock(rdb *redis.Client) *redislock.Client {
	return redislock.New(rdb)
}
