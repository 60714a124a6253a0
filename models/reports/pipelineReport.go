package reports

import (
	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/store"
)

type StatusCount struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Pipeline struct {
	Enquiries  []StatusCount `json:"enquiries"`
	Quotations []StatusCount `json:"quotations"`
	Orders     []StatusCount `json:"orders"`
}

// countStatuses counts records per expected status, in the order given.
// Statuses outside expected are ignored.
func countStatuses[S ~string](records []store.Record, expected []S) []StatusCount {
	out := make([]StatusCount, len(expected))
	index := make(map[string]int, len(expected))
	for i, s := range expected {
		out[i] = StatusCount{Status: string(s)}
		index[string(s)] = i
	}
	for _, r := range records {
		status, ok := r.Fields[models.FieldStatus].(string)
		if !ok {
			continue
		}
		if i, ok := index[status]; ok {
			out[i].Count++
		}
	}
	return out
}

func (s *snapshot) pipeline() Pipeline {
	return Pipeline{
		Enquiries:  countStatuses(s.enquiries, models.EnquiryStatuses),
		Quotations: countStatuses(s.quotations, models.QuotationStatuses),
		Orders:     countStatuses(s.orders, models.SalesOrderStatuses),
	}
}
