// Package query searches, filters and paginates record sequences in memory.
// Nothing here touches storage, and nothing here reorders records.
package query

import (
	"strings"

	"github.com/mmdatafocus/sales_backend/store"
)

// FilterAll is the filter value meaning "no constraint on this field".
const FilterAll = "all"

func unconstrained(value string) bool {
	v := strings.TrimSpace(value)
	return v == "" || strings.EqualFold(v, FilterAll)
}

// Filter keeps records that contain term (case-insensitive) in at least one
// of searchFields and whose fieldFilters values match exactly. An empty term
// matches everything. The term is used as given, surrounding spaces included.
func Filter(records []store.Record, term string, searchFields []string, fieldFilters map[string]string) []store.Record {
	needle := strings.ToLower(term)

	active := make(map[string]string, len(fieldFilters))
	for field, want := range fieldFilters {
		if !unconstrained(want) {
			active[field] = want
		}
	}

	out := make([]store.Record, 0, len(records))
	for _, r := range records {
		if needle != "" && !matchesSearch(r, needle, searchFields) {
			continue
		}
		if !matchesFilters(r, active) {
			continue
		}
		out = append(out, r)
	}
	return out
}

func matchesSearch(r store.Record, needle string, fields []string) bool {
	for _, f := range fields {
		v, ok := r.String(f)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), needle) {
			return true
		}
	}
	return false
}

func matchesFilters(r store.Record, filters map[string]string) bool {
	for field, want := range filters {
		v, ok := r.String(field)
		if !ok || v != want {
			return false
		}
	}
	return true
}
