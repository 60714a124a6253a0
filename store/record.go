package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

const (
	FieldID        = "id"
	FieldCreatedAt = "createdAt"
	FieldUpdatedAt = "updatedAt"
)

// Fields is the entity-specific, free-form part of a record.
type Fields map[string]any

// Record is the base shape every collection entry shares. On the medium it
// is a flat JSON object: id, createdAt and updatedAt next to the fields.
type Record struct {
	ID        string
	CreatedAt time.Time
	UpdatedAt time.Time
	Fields    Fields
}

func isReserved(field string) bool {
	return field == FieldID || field == FieldCreatedAt || field == FieldUpdatedAt
}

// Clone copies the record and its top-level fields map. Nested values are shared.
func (r Record) Clone() Record {
	out := r
	out.Fields = make(Fields, len(r.Fields))
	for k, v := range r.Fields {
		out.Fields[k] = v
	}
	return out
}

// Get returns a field value, including the id and timestamp pseudo-fields.
func (r Record) Get(field string) (any, bool) {
	switch field {
	case FieldID:
		return r.ID, true
	case FieldCreatedAt:
		return formatTime(r.CreatedAt), true
	case FieldUpdatedAt:
		return formatTime(r.UpdatedAt), true
	}
	v, ok := r.Fields[field]
	return v, ok
}

// String returns the field as text when it is a scalar. Missing, nil and
// composite values report ok=false.
func (r Record) String(field string) (string, bool) {
	v, ok := r.Get(field)
	if !ok {
		return "", false
	}
	return ScalarText(v)
}

// ScalarText renders strings, numbers and bools as text.
func ScalarText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		return t, true
	case json.Number:
		return t.String(), true
	case bool:
		return strconv.FormatBool(t), true
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t), true
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32), true
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64), true
	case fmt.Stringer:
		return t.String(), true
	}
	return "", false
}

// Merge shallow-merges patch onto a copy of r. id and createdAt cannot be
// patched; a patched updatedAt never goes below createdAt.
func (r Record) Merge(patch Fields) Record {
	return r.mergeIn(patch, time.UTC)
}

func (r Record) mergeIn(patch Fields, loc *time.Location) Record {
	out := r.Clone()
	for k, v := range patch {
		switch k {
		case FieldID, FieldCreatedAt:
			continue
		case FieldUpdatedAt:
			if t, ok := ParseTimeIn(v, loc); ok {
				out.UpdatedAt = t
			}
			continue
		}
		out.Fields[k] = v
	}
	if out.UpdatedAt.Before(out.CreatedAt) {
		out.UpdatedAt = out.CreatedAt
	}
	return out
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// ParseTime accepts time.Time values and ISO-8601 strings. Strings without
// a zone are read as UTC.
func ParseTime(v any) (time.Time, bool) {
	return ParseTimeIn(v, time.UTC)
}

// ParseTimeIn is ParseTime with zoneless strings read as wall time in loc.
func ParseTimeIn(v any, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.UTC
	}
	switch t := v.(type) {
	case time.Time:
		return t, !t.IsZero()
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, !t.IsZero()
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"} {
			if parsed, err := time.ParseInLocation(layout, t, loc); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

func (r Record) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+3)
	for k, v := range r.Fields {
		if isReserved(k) {
			continue
		}
		flat[k] = v
	}
	flat[FieldID] = r.ID
	flat[FieldCreatedAt] = formatTime(r.CreatedAt)
	flat[FieldUpdatedAt] = formatTime(r.UpdatedAt)
	return codec.Marshal(flat)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := codec.Unmarshal(data, &flat); err != nil {
		return err
	}
	rec, err := recordFromFlat(flat, time.UTC)
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// recordFromFlat splits a stored object into the reserved fields and the
// rest. Zoneless timestamps are read in loc.
func recordFromFlat(flat map[string]any, loc *time.Location) (Record, error) {
	if flat == nil {
		return Record{}, fmt.Errorf("record is not an object")
	}

	r := Record{Fields: make(Fields, len(flat))}
	for k, v := range flat {
		switch k {
		case FieldID:
			r.ID, _ = ScalarText(v)
		case FieldCreatedAt:
			r.CreatedAt, _ = ParseTimeIn(v, loc)
		case FieldUpdatedAt:
			r.UpdatedAt, _ = ParseTimeIn(v, loc)
		default:
			r.Fields[k] = v
		}
	}
	return r, nil
}
