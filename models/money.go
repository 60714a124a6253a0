package models

import (
	"encoding/json"
	"strings"

	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
)

const (
	FieldTotal       = "total"
	FieldTotalAmount = "totalAmount"
	FieldItems       = "items"
)

// ToDecimal reads a loosely typed money value. Text may carry thousands
// separators. Anything unreadable reports ok=false.
func ToDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case decimal.Decimal:
		return t, true
	case *decimal.Decimal:
		if t == nil {
			return decimal.Zero, false
		}
		return *t, true
	case json.Number:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case string:
		s := strings.ReplaceAll(strings.TrimSpace(t), ",", "")
		if s == "" {
			return decimal.Zero, false
		}
		d, err := decimal.NewFromString(s)
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case float32:
		return decimal.NewFromFloat32(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	case int64:
		return decimal.NewFromInt(t), true
	case int32:
		return decimal.NewFromInt32(t), true
	}
	return decimal.Zero, false
}

// FieldDecimal returns the first field among names holding a non-zero
// amount, else zero.
func FieldDecimal(fields store.Fields, names ...string) decimal.Decimal {
	for _, name := range names {
		if d, ok := ToDecimal(fields[name]); ok && !d.IsZero() {
			return d
		}
	}
	return decimal.Zero
}

// RecordTotal reads a document's amount from total, falling back to
// totalAmount. Producers disagree on the name, so both are honoured.
func RecordTotal(r store.Record) decimal.Decimal {
	return FieldDecimal(r.Fields, FieldTotal, FieldTotalAmount)
}

// LineItems returns the object entries of the record's items list.
// Non-object entries are skipped.
func LineItems(r store.Record) []store.Fields {
	raw, ok := r.Fields[FieldItems].([]any)
	if !ok {
		return nil
	}
	items := make([]store.Fields, 0, len(raw))
	for _, it := range raw {
		switch m := it.(type) {
		case map[string]any:
			items = append(items, store.Fields(m))
		case store.Fields:
			items = append(items, m)
		}
	}
	return items
}

// LineItemAmount is the item's own total, or quantity × rate.
func LineItemAmount(item store.Fields) decimal.Decimal {
	if d := FieldDecimal(item, FieldTotal, FieldTotalAmount, "amount"); !d.IsZero() {
		return d
	}
	qty, ok := ToDecimal(item["quantity"])
	if !ok {
		return decimal.Zero
	}
	return qty.Mul(FieldDecimal(item, "rate", "unitPrice"))
}
