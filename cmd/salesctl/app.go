package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/mmdatafocus/sales_backend/config"
	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/models/reports"
	"github.com/mmdatafocus/sales_backend/storage"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/mmdatafocus/sales_backend/utils"
	"github.com/urfave/cli/v2"
)

type app struct {
	cfg     *config.StoreConfig
	backend *storage.Backend
	store   *store.RecordStore
	svcs    *models.Services
}

func buildApp(ctx context.Context, cfg *config.StoreConfig) (*app, error) {
	backend, err := storage.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var locker store.Locker
	switch cfg.Lock {
	case config.LockRedis:
		rl := store.NewRedisLocker(config.NewRedisLock(backend.Redis))
		rl.Prefix = cfg.RedisKeyPrefix + rl.Prefix
		locker = rl
	case config.LockNone:
		locker = store.NoopLocker{}
	default:
		locker = store.NewLocalLocker()
	}
	rs := store.NewRecordStore(backend.Medium, store.WithLocker(locker), store.WithLocation(cfg.AnalyticsLocation))

	var opts []models.ServiceOption
	if cfg.Sequence == config.SequenceRedis {
		opts = append(opts, models.WithSequencer(models.RedisSequencer{Client: backend.Redis, Prefix: cfg.RedisKeyPrefix}))
	}

	return &app{cfg: cfg, backend: backend, store: rs, svcs: models.NewServices(rs, opts...)}, nil
}

func (a *app) Close() error {
	return a.backend.Close()
}

func (a *app) engine() *reports.Engine {
	return reports.NewEngine(a.svcs, a.cfg.AnalyticsLocation)
}

func (a *app) service(key string) (*models.Service, error) {
	svc, ok := a.svcs.ByKey(key)
	if !ok {
		return nil, fmt.Errorf("unknown collection %q (one of: %s)", key, strings.Join(a.svcs.Keys(), ", "))
	}
	return svc, nil
}

// withApp opens the store for the duration of one command.
func withApp(fn func(ctx context.Context, c *cli.Context, a *app) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		ctx := utils.SetUsernameInContext(c.Context, c.String("user"))
		ctx = utils.SetCorrelationIdInContext(ctx, uuid.NewString())
		a, err := buildApp(ctx, config.LoadStoreConfig())
		if err != nil {
			return err
		}
		defer a.Close()
		return fn(ctx, c, a)
	}
}

var fieldJSON = jsoniter.Config{UseNumber: true}.Froze()

// parseFields turns repeated key=value flags into record fields. Values that
// parse as JSON keep their type; anything else is stored as text.
func parseFields(pairs []string) (store.Fields, error) {
	fields := store.Fields{}
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("field %q: want key=value", pair)
		}
		var parsed any
		if err := fieldJSON.UnmarshalFromString(v, &parsed); err == nil {
			fields[k] = parsed
		} else {
			fields[k] = v
		}
	}
	return fields, nil
}
