package models

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/mmdatafocus/sales_backend/config"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/redis/go-redis/v9"
)

// Sequencer hands out business-number sequences. existing is the collection
// as stored at the moment of the add, read under the collection lock.
type Sequencer interface {
	Next(ctx context.Context, cfg CollectionConfig, existing []store.Record) (int64, error)
}

// CollectionSequencer continues from the highest sequence already in the
// collection, looking at both sequenceNo and the number field's suffix.
type CollectionSequencer struct{}

func (CollectionSequencer) Next(_ context.Context, cfg CollectionConfig, existing []store.Record) (int64, error) {
	return maxSequence(cfg, existing) + 1, nil
}

func maxSequence(cfg CollectionConfig, records []store.Record) int64 {
	var max int64
	for _, r := range records {
		if n, ok := sequenceOf(r.Fields[FieldSequenceNo]); ok && n > max {
			max = n
		}
		if cfg.NumberField == "" {
			continue
		}
		number, ok := r.String(cfg.NumberField)
		if !ok || !strings.HasPrefix(number, cfg.IDPrefix+"-") {
			continue
		}
		if n, err := strconv.ParseInt(strings.TrimPrefix(number, cfg.IDPrefix+"-"), 10, 64); err == nil && n > max {
			max = n
		}
	}
	return max
}

func sequenceOf(v any) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		n, err := t.Int64()
		return n, err == nil
	case int64:
		return t, true
	case int:
		return int64(t), true
	case float64:
		return int64(t), true
	case string:
		n, err := strconv.ParseInt(t, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// RedisSequencer keeps a counter per collection at <Prefix><key>_seq. A
// fresh counter is seeded from the collection.
type RedisSequencer struct {
	Client *redis.Client
	Prefix string
}

func (r RedisSequencer) Next(ctx context.Context, cfg CollectionConfig, existing []store.Record) (int64, error) {
	counterKey := r.Prefix + strings.ToLower(cfg.Key) + "_seq"
	seqNo, err := r.Client.Incr(ctx, counterKey).Result()
	if err != nil {
		return 0, err
	}
	if seqNo == 1 {
		if max := maxSequence(cfg, existing); max > 0 {
			seqNo = max + 1
			if err := r.Client.Set(ctx, counterKey, seqNo, 0).Err(); err != nil {
				config.LogError(config.GetLogger(), "models", "RedisSequencer.Next", "seed counter", counterKey, err)
				return 0, err
			}
		}
	}
	return seqNo, nil
}
