package reports

import (
	"time"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
)

const (
	trendMonths = 12
	trendWeeks  = 8
)

// targetFactor produces the display-only comparison line on revenue charts.
var targetFactor = decimal.NewFromFloat(1.1)

type MonthlyRevenue struct {
	Month      string          `json:"month"`
	Revenue    decimal.Decimal `json:"revenue"`
	OrderCount int             `json:"orders"`
	Target     decimal.Decimal `json:"target"`
}

type WeeklyActivity struct {
	Week       string    `json:"week"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"`
	Customers  int       `json:"customers"`
	Enquiries  int       `json:"enquiries"`
	Quotations int       `json:"quotations"`
	Orders     int       `json:"orders"`
}

func monthIndex(t time.Time) int {
	return t.Year()*12 + int(t.Month()) - 1
}

func (s *snapshot) monthlyRevenue() []MonthlyRevenue {
	first := time.Date(s.now.Year(), s.now.Month()-(trendMonths-1), 1, 0, 0, 0, 0, s.loc)
	base := monthIndex(first)

	months := make([]MonthlyRevenue, trendMonths)
	for i := range months {
		m := first.AddDate(0, i, 0)
		months[i] = MonthlyRevenue{Month: m.Format("Jan 2006"), Revenue: decimal.Zero}
	}

	for _, r := range s.orders {
		if r.CreatedAt.IsZero() {
			continue
		}
		i := monthIndex(r.CreatedAt.In(s.loc)) - base
		if i < 0 || i >= trendMonths {
			continue
		}
		months[i].Revenue = months[i].Revenue.Add(models.RecordTotal(r))
		months[i].OrderCount++
	}

	for i := range months {
		months[i].Target = decimal.Max(months[i].Revenue, months[i].Revenue.Mul(targetFactor).Round(2))
	}
	return months
}

func countBetween(records []store.Record, start, end time.Time) int {
	n := 0
	for _, r := range records {
		if !r.CreatedAt.Before(start) && r.CreatedAt.Before(end) {
			n++
		}
	}
	return n
}

// weeklyTrend reports 8 half-open 7-day windows, the last ending at the end
// of today.
func (s *snapshot) weeklyTrend() []WeeklyActivity {
	endOfToday := time.Date(s.now.Year(), s.now.Month(), s.now.Day()+1, 0, 0, 0, 0, s.loc)

	weeks := make([]WeeklyActivity, trendWeeks)
	for i := range weeks {
		end := endOfToday.AddDate(0, 0, -7*(trendWeeks-1-i))
		start := end.AddDate(0, 0, -7)
		weeks[i] = WeeklyActivity{
			Week:       start.Format("Jan 2"),
			Start:      start,
			End:        end,
			Customers:  countBetween(s.customers, start, end),
			Enquiries:  countBetween(s.enquiries, start, end),
			Quotations: countBetween(s.quotations, start, end),
			Orders:     countBetween(s.orders, start, end),
		}
	}
	return weeks
}
