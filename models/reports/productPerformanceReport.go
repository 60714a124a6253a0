package reports

import (
	"sort"
	"strings"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
)

const (
	GeneralServices = "General Services"
	topProducts     = 6
)

type ProductPerformance struct {
	Name       string          `json:"name"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orders"`
}

func bucketName(item store.Fields) string {
	for _, field := range []string{"category", "description", "name"} {
		if s, ok := item[field].(string); ok && strings.TrimSpace(s) != "" {
			return strings.TrimSpace(s)
		}
	}
	return GeneralServices
}

func (s *snapshot) productPerformance() []ProductPerformance {
	var buckets []*ProductPerformance
	byName := map[string]int{}
	lastOrder := map[string]int{}

	add := func(orderIdx int, name string, amount decimal.Decimal) {
		i, ok := byName[name]
		if !ok {
			i = len(buckets)
			byName[name] = i
			buckets = append(buckets, &ProductPerformance{Name: name, Revenue: decimal.Zero})
			lastOrder[name] = -1
		}
		b := buckets[i]
		b.Revenue = b.Revenue.Add(amount)
		if lastOrder[name] != orderIdx {
			b.OrderCount++
			lastOrder[name] = orderIdx
		}
	}

	for idx, r := range s.orders {
		items := models.LineItems(r)
		if len(items) == 0 {
			add(idx, GeneralServices, models.RecordTotal(r))
			continue
		}
		for _, item := range items {
			add(idx, bucketName(item), models.LineItemAmount(item))
		}
	}

	sort.SliceStable(buckets, func(a, b int) bool {
		return buckets[a].Revenue.GreaterThan(buckets[b].Revenue)
	})
	if len(buckets) > topProducts {
		buckets = buckets[:topProducts]
	}
	out := make([]ProductPerformance, len(buckets))
	for i, b := range buckets {
		out[i] = *b
	}
	return out
}
