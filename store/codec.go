package store

import (
	"time"

	jsoniter "github.com/json-iterator/go"
)

// codec matches encoding/json output but keeps numbers as json.Number, so
// money values survive a load/save cycle without float rounding.
var codec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

func encodeCollection(records []Record) (string, error) {
	if records == nil {
		records = []Record{}
	}
	return codec.MarshalToString(records)
}

// decodeCollection reads a stored array. Timestamps written without a zone
// are taken as wall time in loc.
func decodeCollection(raw string, loc *time.Location) ([]Record, error) {
	var flats []map[string]any
	if err := codec.UnmarshalFromString(raw, &flats); err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(flats))
	for _, flat := range flats {
		r, err := recordFromFlat(flat, loc)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, nil
}

// FieldsOf converts a struct (or map) into record fields through its JSON
// form, so stored values look exactly like they will after a reload.
func FieldsOf(v any) (Fields, error) {
	raw, err := codec.Marshal(v)
	if err != nil {
		return nil, err
	}
	var fields Fields
	if err := codec.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = Fields{}
	}
	return fields, nil
}
