package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/mmdatafocus/sales_backend/storage"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

type failingMedium struct {
	storage.Medium
	readErr  error
	writeErr error
}

func (m failingMedium) GetItem(ctx context.Context, key string) (string, bool, error) {
	if m.readErr != nil {
		return "", false, m.readErr
	}
	return m.Medium.GetItem(ctx, key)
}

func (m failingMedium) SetItem(ctx context.Context, key string, value string) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	return m.Medium.SetItem(ctx, key, value)
}

func newTestStore(t *testing.T, medium storage.Medium, opts ...Option) (*RecordStore, *test.Hook) {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	opts = append([]Option{WithLogger(logger)}, opts...)
	return NewRecordStore(medium, opts...), hook
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestAddRecord_AssignsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, storage.NewMemoryMedium())

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		rec, err := s.AddRecord(ctx, "customers", Record{Fields: Fields{"name": fmt.Sprintf("c%d", i)}})
		if err != nil {
			t.Fatalf("AddRecord: %v", err)
		}
		if rec.ID == "" {
			t.Fatalf("expected non-empty id")
		}
		if seen[rec.ID] {
			t.Fatalf("duplicate id %s", rec.ID)
		}
		seen[rec.ID] = true
	}
	if got := len(s.GetCollection(ctx, "customers")); got != 200 {
		t.Fatalf("expected 200 records, got %d", got)
	}
}

func TestAddRecord_RegeneratesCollidingID(t *testing.T) {
	ctx := context.Background()
	ids := []string{"dup", "dup", "fresh"}
	gen := IDGeneratorFunc(func() (string, error) {
		id := ids[0]
		ids = ids[1:]
		return id, nil
	})
	s, _ := newTestStore(t, storage.NewMemoryMedium(), WithIDGenerator(gen))

	first, err := s.AddRecord(ctx, "quotations", Record{})
	if err != nil || first.ID != "dup" {
		t.Fatalf("expected first id dup, got %+v err=%v", first, err)
	}
	second, err := s.AddRecord(ctx, "quotations", Record{})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if second.ID != "fresh" {
		t.Fatalf("expected regenerated id fresh, got %s", second.ID)
	}
}

func TestAddRecord_GivesUpWhenGeneratorKeepsColliding(t *testing.T) {
	ctx := context.Background()
	gen := IDGeneratorFunc(func() (string, error) { return "same", nil })
	s, _ := newTestStore(t, storage.NewMemoryMedium(), WithIDGenerator(gen))

	if _, err := s.AddRecord(ctx, "k", Record{}); err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if _, err := s.AddRecord(ctx, "k", Record{}); err == nil {
		t.Fatalf("expected error after exhausting id attempts")
	}
	if got := len(s.GetCollection(ctx, "k")); got != 1 {
		t.Fatalf("expected collection untouched, got %d records", got)
	}
}

func TestAddRecord_StampsAndOverridesReservedFields(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, storage.NewMemoryMedium(), WithClock(fixedClock(now)))

	rec, err := s.AddRecord(ctx, "customers", Record{ID: "caller-id", Fields: Fields{"id": "x", "name": "Acme"}})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if rec.ID == "caller-id" || rec.ID == "x" {
		t.Fatalf("expected a generated id, got %s", rec.ID)
	}
	if _, ok := rec.Fields["id"]; ok {
		t.Fatalf("reserved key leaked into fields")
	}
	if !rec.CreatedAt.Equal(now) || !rec.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps %s, got %s / %s", now, rec.CreatedAt, rec.UpdatedAt)
	}
}

func TestSetCollection_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, storage.NewMemoryMedium())
	created := time.Date(2024, 1, 2, 3, 4, 5, 600, time.UTC)

	in := []Record{
		{ID: "b", CreatedAt: created, UpdatedAt: created, Fields: Fields{"name": "Beta", "status": "Draft"}},
		{ID: "a", CreatedAt: created, UpdatedAt: created.Add(time.Hour), Fields: Fields{"name": "Alpha", "tags": []any{"x"}}},
	}
	if err := s.SetCollection(ctx, "enquiries", in); err != nil {
		t.Fatalf("SetCollection: %v", err)
	}
	out := s.GetCollection(ctx, "enquiries")

	want, _ := encodeCollection(in)
	got, _ := encodeCollection(out)
	if want != got {
		t.Fatalf("round trip mismatch:\nwant %s\ngot  %s", want, got)
	}
	if out[0].ID != "b" || out[1].ID != "a" {
		t.Fatalf("order not preserved: %s, %s", out[0].ID, out[1].ID)
	}
	if !out[1].UpdatedAt.Equal(created.Add(time.Hour)) {
		t.Fatalf("updatedAt lost precision: %s", out[1].UpdatedAt)
	}
}

func TestUpdateRecord_MergesShallowly(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, storage.NewMemoryMedium(), WithClock(fixedClock(now)))

	rec, _ := s.AddRecord(ctx, "salesOrders", Record{Fields: Fields{"status": "Draft", "total": 10}})
	later := now.Add(time.Minute)
	updated, err := s.UpdateRecord(ctx, "salesOrders", rec.ID, Fields{
		"status":    "Confirmed",
		"createdAt": "1999-01-01T00:00:00Z",
		"id":        "hijack",
		"updatedAt": later,
	})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if updated.ID != rec.ID {
		t.Fatalf("id changed to %s", updated.ID)
	}
	if !updated.CreatedAt.Equal(now) {
		t.Fatalf("createdAt changed to %s", updated.CreatedAt)
	}
	if !updated.UpdatedAt.Equal(later) {
		t.Fatalf("expected updatedAt %s, got %s", later, updated.UpdatedAt)
	}
	stored := s.GetCollection(ctx, "salesOrders")[0]
	if status, _ := stored.String("status"); status != "Confirmed" {
		t.Fatalf("expected Confirmed, got %s", status)
	}
	if total, _ := stored.String("total"); total != "10" {
		t.Fatalf("expected untouched total 10, got %s", total)
	}
}

func TestUpdateRecord_UpdatedAtNeverBeforeCreatedAt(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, storage.NewMemoryMedium(), WithClock(fixedClock(now)))

	rec, _ := s.AddRecord(ctx, "k", Record{})
	updated, err := s.UpdateRecord(ctx, "k", rec.ID, Fields{"updatedAt": now.Add(-time.Hour)})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if updated.UpdatedAt.Before(updated.CreatedAt) {
		t.Fatalf("updatedAt %s before createdAt %s", updated.UpdatedAt, updated.CreatedAt)
	}
}

func TestUpdateRecord_EmptyPatchLeavesFields(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, storage.NewMemoryMedium())

	rec, _ := s.AddRecord(ctx, "k", Record{Fields: Fields{"name": "Acme", "city": "Yangon"}})
	updated, err := s.UpdateRecord(ctx, "k", rec.ID, Fields{})
	if err != nil {
		t.Fatalf("UpdateRecord: %v", err)
	}
	if len(updated.Fields) != 2 || updated.Fields["name"] != "Acme" || updated.Fields["city"] != "Yangon" {
		t.Fatalf("fields changed: %+v", updated.Fields)
	}
}

func TestUpdateRecord_NotFound(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, _ := newTestStore(t, medium)
	s.AddRecord(ctx, "k", Record{})
	before, _, _ := medium.GetItem(ctx, "k")

	updated, err := s.UpdateRecord(ctx, "k", "missing", Fields{"name": "x"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil record for missing id")
	}
	after, _, _ := medium.GetItem(ctx, "k")
	if before != after {
		t.Fatalf("collection changed on not-found update")
	}
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, _ := newTestStore(t, medium)

	a, _ := s.AddRecord(ctx, "returns", Record{Fields: Fields{"n": "a"}})
	b, _ := s.AddRecord(ctx, "returns", Record{Fields: Fields{"n": "b"}})
	before, _, _ := medium.GetItem(ctx, "returns")

	removed, err := s.DeleteRecord(ctx, "returns", "nope")
	if err != nil || removed {
		t.Fatalf("expected false,nil for missing id, got %v,%v", removed, err)
	}
	after, _, _ := medium.GetItem(ctx, "returns")
	if before != after {
		t.Fatalf("collection changed on missing delete")
	}

	removed, err = s.DeleteRecord(ctx, "returns", a.ID)
	if err != nil || !removed {
		t.Fatalf("expected removal, got %v,%v", removed, err)
	}
	left := s.GetCollection(ctx, "returns")
	if len(left) != 1 || left[0].ID != b.ID {
		t.Fatalf("unexpected remaining records: %+v", left)
	}
}

func TestGetCollection_MissingVersusCorrupt(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, hook := newTestStore(t, medium)

	if got := s.GetCollection(ctx, "customers"); len(got) != 0 || got == nil {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("missing collection should not log, got %d entries", len(hook.AllEntries()))
	}

	medium.SetItem(ctx, "customers", "{not json")
	if got := s.GetCollection(ctx, "customers"); len(got) != 0 {
		t.Fatalf("expected empty collection for corrupt data, got %d", len(got))
	}
	entry := hook.LastEntry()
	if entry == nil || entry.Level != logrus.WarnLevel {
		t.Fatalf("expected a warn entry for corrupt data, got %+v", entry)
	}
}

func TestAddRecord_ReplacesCorruptCollection(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, _ := newTestStore(t, medium)
	medium.SetItem(ctx, "customers", `{"oops":1}`)

	if _, err := s.AddRecord(ctx, "customers", Record{Fields: Fields{"name": "Acme"}}); err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if got := len(s.GetCollection(ctx, "customers")); got != 1 {
		t.Fatalf("expected 1 record, got %d", got)
	}
}

func TestWriteFailure_KeepsLastGoodState(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMediumWithQuota(400)
	s, hook := newTestStore(t, medium)

	if _, err := s.AddRecord(ctx, "k", Record{Fields: Fields{"name": "small"}}); err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	before, _, _ := medium.GetItem(ctx, "k")

	big := make([]byte, 1000)
	for i := range big {
		big[i] = 'x'
	}
	rec, err := s.AddRecord(ctx, "k", Record{Fields: Fields{"blob": string(big)}})
	if !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if rec != nil {
		t.Fatalf("expected nil record on failed write")
	}
	after, _, _ := medium.GetItem(ctx, "k")
	if before != after {
		t.Fatalf("persisted state changed after failed write")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected error log, got %+v", entry)
	}
}

func TestSetCollection_SerializationFailure(t *testing.T) {
	ctx := context.Background()
	medium := storage.NewMemoryMedium()
	s, _ := newTestStore(t, medium)

	good := []Record{{ID: "1", Fields: Fields{"total": 1}}}
	if err := s.SetCollection(ctx, "k", good); err != nil {
		t.Fatalf("SetCollection: %v", err)
	}
	bad := []Record{{ID: "2", Fields: Fields{"total": math.NaN()}}}
	if err := s.SetCollection(ctx, "k", bad); err == nil {
		t.Fatalf("expected serialization error")
	}
	got := s.GetCollection(ctx, "k")
	if len(got) != 1 || got[0].ID != "1" {
		t.Fatalf("expected prior collection, got %+v", got)
	}
}

func TestAddAndUpdate_ReturnCodecShapedFields(t *testing.T) {
	ctx := context.Background()
	s, hook := newTestStore(t, storage.NewMemoryMedium())

	added, err := s.AddRecord(ctx, "k", Record{Fields: Fields{"qty": 3, "price": 1.25}})
	if err != nil {
		t.Fatalf("AddRecord: %v", err)
	}
	if added.Fields["qty"] != json.Number("3") || added.Fields["price"] != json.Number("1.25") {
		t.Fatalf("added fields = %#v", added.Fields)
	}
	stored := s.GetCollection(ctx, "k")[0]
	if stored.Fields["qty"] != added.Fields["qty"] {
		t.Fatalf("stored %#v, returned %#v", stored.Fields["qty"], added.Fields["qty"])
	}

	updated, err := s.UpdateRecord(ctx, "k", added.ID, Fields{"qty": int64(4)})
	if err != nil || updated == nil {
		t.Fatalf("UpdateRecord: %v %v", updated, err)
	}
	if updated.Fields["qty"] != json.Number("4") {
		t.Fatalf("updated qty = %#v", updated.Fields["qty"])
	}

	if _, err := s.AddRecord(ctx, "k", Record{Fields: Fields{"total": math.NaN()}}); err == nil {
		t.Fatalf("expected serialization error")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Fatalf("expected an error log, got %+v", entry)
	}
	if got := len(s.GetCollection(ctx, "k")); got != 1 {
		t.Fatalf("collection has %d records, want 1", got)
	}
}

func TestWrites_RefuseWhenMediumUnreadable(t *testing.T) {
	ctx := context.Background()
	inner := storage.NewMemoryMedium()
	s, _ := newTestStore(t, failingMedium{Medium: inner, readErr: errors.New("connection refused")})

	if got := s.GetCollection(ctx, "k"); len(got) != 0 {
		t.Fatalf("expected empty read")
	}
	_, err := s.AddRecord(ctx, "k", Record{})
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if _, ok, _ := inner.GetItem(ctx, "k"); ok {
		t.Fatalf("nothing should have been written")
	}
}

func TestAddRecord_ConcurrentWritersDoNotLoseRecords(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, storage.NewMemoryMedium())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := s.AddRecord(ctx, "k", Record{Fields: Fields{"i": i}}); err != nil {
				t.Errorf("AddRecord: %v", err)
			}
		}(i)
	}
	wg.Wait()

	if got := len(s.GetCollection(ctx, "k")); got != 50 {
		t.Fatalf("expected 50 records, got %d", got)
	}
}
