package models

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
)

// Base carries the identity every typed record view shares.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Base) setBase(v Base) { *b = v }

type baseSetter interface {
	setBase(Base)
}

var (
	decimalType = reflect.TypeOf(decimal.Decimal{})
	timeType    = reflect.TypeOf(time.Time{})
)

func decimalHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != decimalType {
		return data, nil
	}
	if d, ok := ToDecimal(data); ok {
		return d, nil
	}
	return decimal.Zero, nil
}

func timeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}
	if t, ok := store.ParseTime(data); ok {
		return t, nil
	}
	return time.Time{}, nil
}

func numberHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	n, ok := data.(json.Number)
	if !ok {
		return data, nil
	}
	switch to.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
	case reflect.Float32, reflect.Float64:
		if f, err := n.Float64(); err == nil {
			return f, nil
		}
	case reflect.String:
		return n.String(), nil
	}
	return data, nil
}

// Decode maps a stored record onto a typed view such as SalesOrder.
// Loosely typed values (numbers as text, ISO timestamps) are coerced.
// Status fields go through their UnmarshalText, so an unknown status fails.
func Decode[T any, PT interface {
	*T
	baseSetter
}](r store.Record) (*T, error) {
	var out T
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(
			decimalHook,
			timeHook,
			numberHook,
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           &out,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(map[string]any(r.Fields)); err != nil {
		return nil, err
	}
	PT(&out).setBase(Base{ID: r.ID, CreatedAt: r.CreatedAt, UpdatedAt: r.UpdatedAt})
	return &out, nil
}

// DecodeAll decodes every record, skipping the ones that do not fit T.
func DecodeAll[T any, PT interface {
	*T
	baseSetter
}](records []store.Record) []*T {
	out := make([]*T, 0, len(records))
	for _, r := range records {
		v, err := Decode[T, PT](r)
		if err != nil {
			continue
		}
		out = append(out, v)
	}
	return out
}
