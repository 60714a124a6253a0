package reports

import (
	"math"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
)

const (
	StageEnquiries  = "Enquiries"
	StageQuotations = "Quotations"
	StageOrders     = "Orders"
	StageInvoices   = "Invoices"
)

type FunnelStage struct {
	Stage      string          `json:"stage"`
	Count      int             `json:"count"`
	Value      decimal.Decimal `json:"value"`
	Percentage int             `json:"percentage"`
}

type KPIs struct {
	TotalRevenue      decimal.Decimal `json:"totalRevenue"`
	TotalOrders       int             `json:"totalOrders"`
	AverageOrderValue decimal.Decimal `json:"averageOrderValue"`
	ConversionRate    int             `json:"conversionRate"`
	WinRate           int             `json:"winRate"`
	TotalCustomers    int             `json:"totalCustomers"`
	TotalEnquiries    int             `json:"totalEnquiries"`
	TotalQuotations   int             `json:"totalQuotations"`
	TotalInvoiced     decimal.Decimal `json:"totalInvoiced"`
}

// percentage is part/whole × 100 rounded half away from zero, 0 when whole is 0.
func percentage(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) * 100 / float64(whole)))
}

func sumTotals(records []store.Record) decimal.Decimal {
	sum := decimal.Zero
	for _, r := range records {
		sum = sum.Add(models.RecordTotal(r))
	}
	return sum
}

func (s *snapshot) conversionFunnel() []FunnelStage {
	stages := []FunnelStage{
		{Stage: StageEnquiries, Count: len(s.enquiries), Value: sumTotals(s.enquiries)},
		{Stage: StageQuotations, Count: len(s.quotations), Value: sumTotals(s.quotations)},
		{Stage: StageOrders, Count: len(s.orders), Value: sumTotals(s.orders)},
		{Stage: StageInvoices, Count: len(s.invoices), Value: sumTotals(s.invoices)},
	}
	stages[0].Percentage = 100
	for i := 1; i < len(stages); i++ {
		stages[i].Percentage = percentage(stages[i].Count, stages[i-1].Count)
	}
	return stages
}

func (s *snapshot) kpis() KPIs {
	revenue := sumTotals(s.orders)
	k := KPIs{
		TotalRevenue:      revenue,
		TotalOrders:       len(s.orders),
		AverageOrderValue: decimal.Zero,
		ConversionRate:    percentage(len(s.orders), len(s.enquiries)),
		WinRate:           percentage(len(s.orders), len(s.quotations)),
		TotalCustomers:    len(s.customers),
		TotalEnquiries:    len(s.enquiries),
		TotalQuotations:   len(s.quotations),
		TotalInvoiced:     sumTotals(s.invoices),
	}
	if k.TotalOrders > 0 {
		k.AverageOrderValue = revenue.Div(decimal.NewFromInt(int64(k.TotalOrders))).Round(2)
	}
	return k
}
