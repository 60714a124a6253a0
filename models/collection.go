package models

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmdatafocus/sales_backend/query"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/mmdatafocus/sales_backend/utils"
)

const (
	FieldSequenceNo = "sequenceNo"
	FieldCreatedBy  = "createdBy"
	FieldUpdatedBy  = "updatedBy"
	FieldStatus     = "status"

	DefaultPageLimit    = 10
	maxSequenceAttempts = 20
)

// CollectionConfig is everything that differs between entity collections.
type CollectionConfig struct {
	Key          string
	IDPrefix     string
	NumberField  string
	SearchFields []string
	StatusField  string
}

func (c CollectionConfig) statusField() string {
	if c.StatusField == "" {
		return FieldStatus
	}
	return c.StatusField
}

// FormatNumber renders the business number, e.g. SO-000042.
func (c CollectionConfig) FormatNumber(seq int64) string {
	return fmt.Sprintf("%s-%06d", c.IDPrefix, seq)
}

// Service is the collection service shared by every entity. It holds no
// records itself; every call reads through the record store.
type Service struct {
	cfg   CollectionConfig
	store *store.RecordStore
	seq   Sequencer
}

type ServiceOption func(*Service)

func WithSequencer(seq Sequencer) ServiceOption {
	return func(s *Service) { s.seq = seq }
}

func NewService(rs *store.RecordStore, cfg CollectionConfig, opts ...ServiceOption) *Service {
	s := &Service{cfg: cfg, store: rs, seq: CollectionSequencer{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Config() CollectionConfig {
	return s.cfg
}

func (s *Service) Key() string {
	return s.cfg.Key
}

func numbersInUse(cfg CollectionConfig, records []store.Record) map[string]bool {
	taken := make(map[string]bool, len(records))
	if cfg.NumberField == "" {
		return taken
	}
	for _, r := range records {
		if n, ok := r.String(cfg.NumberField); ok {
			taken[n] = true
		}
	}
	return taken
}

// Add stamps timestamps, the actor and the next business number, then stores data.
func (s *Service) Add(ctx context.Context, data store.Fields) (*store.Record, error) {
	now := s.store.Now()
	return s.store.AddRecordFunc(ctx, s.cfg.Key, func(existing []store.Record) (store.Record, error) {
		rec := store.Record{CreatedAt: now, UpdatedAt: now, Fields: store.Fields{}}
		for k, v := range data {
			rec.Fields[k] = v
		}

		if s.cfg.NumberField != "" {
			taken := numbersInUse(s.cfg, existing)
			seqNo, err := s.seq.Next(ctx, s.cfg, existing)
			for attempt := 1; err == nil && taken[s.cfg.FormatNumber(seqNo)]; attempt++ {
				if attempt >= maxSequenceAttempts {
					return rec, fmt.Errorf("%s: no free business number after %d attempts", s.cfg.Key, attempt)
				}
				seqNo, err = s.seq.Next(ctx, s.cfg, existing)
			}
			if err != nil {
				return rec, fmt.Errorf("%s: next sequence: %w", s.cfg.Key, err)
			}
			rec.Fields[s.cfg.NumberField] = s.cfg.FormatNumber(seqNo)
			rec.Fields[FieldSequenceNo] = seqNo
		}

		if actor, ok := utils.GetUsernameFromContext(ctx); ok && actor != "" {
			rec.Fields[FieldCreatedBy] = actor
			rec.Fields[FieldUpdatedBy] = actor
		}
		return rec, nil
	})
}

// Update stamps updatedAt and merges patch. The actor is stamped into
// updatedBy only when patch changes something; an empty patch moves
// updatedAt alone. A nil record with a nil error means id is not in the
// collection.
func (s *Service) Update(ctx context.Context, id string, patch store.Fields) (*store.Record, error) {
	stamped := make(store.Fields, len(patch)+2)
	for k, v := range patch {
		stamped[k] = v
	}
	stamped[store.FieldUpdatedAt] = s.store.Now()
	if actor, ok := utils.GetUsernameFromContext(ctx); ok && actor != "" && len(patch) > 0 {
		stamped[FieldUpdatedBy] = actor
	}
	return s.store.UpdateRecord(ctx, s.cfg.Key, id, stamped)
}

func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	return s.store.DeleteRecord(ctx, s.cfg.Key, id)
}

// Search filters by term over the collection's search fields and by status
// ("all" or empty for any), then returns one page.
func (s *Service) Search(ctx context.Context, term string, status string, page int, limit int) query.Page {
	records := s.store.GetCollection(ctx, s.cfg.Key)
	filtered := query.Filter(records, term, s.cfg.SearchFields, map[string]string{
		s.cfg.statusField(): strings.TrimSpace(status),
	})
	return query.Paginate(filtered, page, limit)
}

// GetAll returns the whole collection, unfiltered. Dashboards use it;
// screens should page through Search instead.
func (s *Service) GetAll(ctx context.Context) []store.Record {
	return s.store.GetCollection(ctx, s.cfg.Key)
}

// Get returns the record with id, or nil.
func (s *Service) Get(ctx context.Context, id string) *store.Record {
	for _, r := range s.store.GetCollection(ctx, s.cfg.Key) {
		if r.ID == id {
			rec := r
			return &rec
		}
	}
	return nil
}
