// Package store is the record store: named collections of records kept as
// one serialized value per collection key in a storage medium.
//
// Reads never fail from the caller's point of view. A missing, corrupt or
// unreachable collection reads as empty. A failed write is logged and
// returned, and the previously persisted value stays authoritative.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mmdatafocus/sales_backend/config"
	"github.com/mmdatafocus/sales_backend/storage"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

var tracer = otel.Tracer("github.com/mmdatafocus/sales_backend/store")

// ErrUnavailable is returned by writes when the current collection could not
// be read, so writing would clobber data we never saw.
var ErrUnavailable = errors.New("collection unavailable")

const maxIDAttempts = 8

type loadState int

const (
	loadMissing loadState = iota
	loadOK
	loadCorrupt
	loadUnavailable
)

func (s loadState) String() string {
	switch s {
	case loadMissing:
		return "missing"
	case loadOK:
		return "ok"
	case loadCorrupt:
		return "corrupt"
	case loadUnavailable:
		return "unavailable"
	}
	return "unknown"
}

type loadResult struct {
	records []Record
	state   loadState
	err     error
}

type RecordStore struct {
	medium storage.Medium
	locker Locker
	ids    IDGenerator
	now    func() time.Time
	loc    *time.Location
	logger logrus.FieldLogger
}

type Option func(*RecordStore)

func WithLocker(l Locker) Option {
	return func(s *RecordStore) { s.locker = l }
}

func WithIDGenerator(g IDGenerator) Option {
	return func(s *RecordStore) { s.ids = g }
}

func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// WithLocation sets the zone for stored timestamps that carry none, such as
// a date-only createdAt. The default is UTC.
func WithLocation(loc *time.Location) Option {
	return func(s *RecordStore) {
		if loc != nil {
			s.loc = loc
		}
	}
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *RecordStore) { s.logger = l }
}

func NewRecordStore(medium storage.Medium, opts ...Option) *RecordStore {
	s := &RecordStore{
		medium: medium,
		locker: NewLocalLocker(),
		ids:    UUIDv7Generator{},
		now:    time.Now,
		loc:    time.UTC,
		logger: config.GetLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the store's clock, shared with the collection services that stamp timestamps.
func (s *RecordStore) Now() time.Time {
	return s.now().UTC()
}

func (s *RecordStore) load(ctx context.Context, key string) loadResult {
	raw, ok, err := s.medium.GetItem(ctx, key)
	if err != nil {
		config.LogError(s.logger, "store", "load", "medium read failed", key, err)
		return loadResult{records: []Record{}, state: loadUnavailable, err: err}
	}
	if !ok {
		return loadResult{records: []Record{}, state: loadMissing}
	}
	records, err := decodeCollection(raw, s.loc)
	if err != nil {
		config.LogWarn(s.logger, "store", "load", key, map[string]any{"bytes": len(raw), "error": err.Error()},
			"corrupt collection, treating as empty")
		return loadResult{records: []Record{}, state: loadCorrupt, err: err}
	}
	return loadResult{records: records, state: loadOK}
}

func (s *RecordStore) persist(ctx context.Context, key string, records []Record) error {
	raw, err := encodeCollection(records)
	if err != nil {
		config.LogError(s.logger, "store", "persist", "serialize", key, err)
		return fmt.Errorf("serialize %s: %w", key, err)
	}
	if err := s.medium.SetItem(ctx, key, raw); err != nil {
		config.LogError(s.logger, "store", "persist", "medium write failed", key, err)
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

func startSpan(ctx context.Context, name string, key string) (context.Context, trace.Span) {
	return tracer.Start(ctx, name, trace.WithAttributes(attribute.String("collection", key)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

// GetCollection returns the records at key in insertion order.
func (s *RecordStore) GetCollection(ctx context.Context, key string) []Record {
	ctx, span := startSpan(ctx, "RecordStore.GetCollection", key)
	res := s.load(ctx, key)
	span.SetAttributes(attribute.String("load.state", res.state.String()), attribute.Int("records", len(res.records)))
	endSpan(span, res.err)
	return res.records
}

// SetCollection replaces everything stored at key.
func (s *RecordStore) SetCollection(ctx context.Context, key string, records []Record) (err error) {
	ctx, span := startSpan(ctx, "RecordStore.SetCollection", key)
	defer func() { endSpan(span, err) }()

	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	defer unlock()
	return s.persist(ctx, key, records)
}

// mutate runs fn over the current collection under the key lock. fn returns
// the new collection, or nil to skip the write.
func (s *RecordStore) mutate(ctx context.Context, key string, fn func([]Record) ([]Record, error)) error {
	unlock, err := s.locker.Lock(ctx, key)
	if err != nil {
		return fmt.Errorf("lock %s: %w", key, err)
	}
	defer unlock()

	res := s.load(ctx, key)
	if res.state == loadUnavailable {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, key, res.err)
	}
	if res.state == loadCorrupt {
		config.LogWarn(s.logger, "store", "mutate", key, nil, "next write replaces corrupt collection")
	}

	next, err := fn(res.records)
	if err != nil || next == nil {
		return err
	}
	return s.persist(ctx, key, next)
}

func (s *RecordStore) freshID(records []Record) (string, error) {
	taken := make(map[string]struct{}, len(records))
	for _, r := range records {
		taken[r.ID] = struct{}{}
	}
	for i := 0; i < maxIDAttempts; i++ {
		id, err := s.ids.NewID()
		if err != nil {
			return "", err
		}
		if _, dup := taken[id]; id != "" && !dup {
			return id, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique id after %d attempts", maxIDAttempts)
}

// normalize passes fields through the codec so the record handed back to the
// caller holds the same value types a later GetCollection returns.
func (s *RecordStore) normalize(key string, funcName string, fields Fields) (Fields, error) {
	out, err := FieldsOf(fields)
	if err != nil {
		config.LogError(s.logger, "store", funcName, "serialize", key, err)
		return nil, fmt.Errorf("serialize %s: %w", key, err)
	}
	return out, nil
}

// AddRecord assigns a fresh id, appends rec and persists the collection.
// Zero timestamps are stamped with the store clock.
func (s *RecordStore) AddRecord(ctx context.Context, key string, rec Record) (*Record, error) {
	return s.AddRecordFunc(ctx, key, func([]Record) (Record, error) { return rec, nil })
}

// AddRecordFunc is AddRecord with the new record built by build, which runs
// under the collection lock and sees the records currently stored.
func (s *RecordStore) AddRecordFunc(ctx context.Context, key string, build func(existing []Record) (Record, error)) (added *Record, err error) {
	ctx, span := startSpan(ctx, "RecordStore.AddRecord", key)
	defer func() { endSpan(span, err) }()

	err = s.mutate(ctx, key, func(records []Record) ([]Record, error) {
		rec, err := build(records)
		if err != nil {
			return nil, err
		}
		id, err := s.freshID(records)
		if err != nil {
			return nil, err
		}
		r := rec.Clone()
		for k := range r.Fields {
			if isReserved(k) {
				delete(r.Fields, k)
			}
		}
		if r.Fields, err = s.normalize(key, "AddRecord", r.Fields); err != nil {
			return nil, err
		}
		r.ID = id
		if r.CreatedAt.IsZero() {
			r.CreatedAt = s.Now()
		}
		if r.UpdatedAt.Before(r.CreatedAt) {
			r.UpdatedAt = r.CreatedAt
		}

		next := make([]Record, 0, len(records)+1)
		next = append(next, records...)
		next = append(next, r)
		added = &r
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("record.id", added.ID))
	return added, nil
}

// UpdateRecord shallow-merges patch onto the record with id. It returns a nil
// record and a nil error when id is not in the collection.
func (s *RecordStore) UpdateRecord(ctx context.Context, key string, id string, patch Fields) (updated *Record, err error) {
	ctx, span := startSpan(ctx, "RecordStore.UpdateRecord", key)
	span.SetAttributes(attribute.String("record.id", id))
	defer func() { endSpan(span, err) }()

	err = s.mutate(ctx, key, func(records []Record) ([]Record, error) {
		for i, r := range records {
			if r.ID != id {
				continue
			}
			merged := r.mergeIn(patch, s.loc)
			fields, err := s.normalize(key, "UpdateRecord", merged.Fields)
			if err != nil {
				return nil, err
			}
			merged.Fields = fields
			next := make([]Record, len(records))
			copy(next, records)
			next[i] = merged
			updated = &merged
			return next, nil
		}
		return nil, nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// DeleteRecord removes the record with id and reports whether it existed.
func (s *RecordStore) DeleteRecord(ctx context.Context, key string, id string) (removed bool, err error) {
	ctx, span := startSpan(ctx, "RecordStore.DeleteRecord", key)
	span.SetAttributes(attribute.String("record.id", id))
	defer func() { endSpan(span, err) }()

	err = s.mutate(ctx, key, func(records []Record) ([]Record, error) {
		next := make([]Record, 0, len(records))
		for _, r := range records {
			if r.ID == id {
				removed = true
				continue
			}
			next = append(next, r)
		}
		if !removed {
			return nil, nil
		}
		return next, nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
