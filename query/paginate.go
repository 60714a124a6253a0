package query

import (
	"github.com/mmdatafocus/sales_backend/store"
)

type PageMeta struct {
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

type Page struct {
	Data []store.Record `json:"data"`
	Meta PageMeta       `json:"meta"`
}

// Paginate slices one 1-indexed page out of records. page and limit below 1
// are clamped to 1 and the clamped values are what Meta reports. A page past
// the end has no data but still carries the real totals.
func Paginate(records []store.Record, page int, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 1
	}

	total := len(records)
	totalPages := total / limit
	if total%limit != 0 {
		totalPages++
	}

	data := []store.Record{}
	if page <= totalPages {
		// page <= totalPages keeps start below total, so nothing overflows.
		start := (page - 1) * limit
		end := total
		if limit < total-start {
			end = start + limit
		}
		data = records[start:end:end]
	}

	return Page{
		Data: data,
		Meta: PageMeta{
			Total:      total,
			Page:       page,
			Limit:      limit,
			TotalPages: totalPages,
		},
	}
}
