package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/storage"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus/hooks/test"
)

type staticSource []store.Record

func (s staticSource) GetAll(context.Context) []store.Record {
	return s
}

var yangon = time.FixedZone("MMT", 6*3600+1800)

func testNow() time.Time {
	return time.Date(2026, 10, 14, 12, 0, 0, 0, yangon)
}

func newTestEngine(src Sources) *Engine {
	logger, _ := test.NewNullLogger()
	return &Engine{Sources: src, Location: yangon, Now: testNow, Logger: logger}
}

func rec(id string, created time.Time, fields store.Fields) store.Record {
	if fields == nil {
		fields = store.Fields{}
	}
	return store.Record{ID: id, CreatedAt: created.UTC(), UpdatedAt: created.UTC(), Fields: fields}
}

func many(n int, fields func(i int) store.Fields) staticSource {
	out := make(staticSource, n)
	for i := range out {
		var f store.Fields
		if fields != nil {
			f = fields(i)
		}
		out[i] = rec(fmt.Sprintf("r%d", i), testNow(), f)
	}
	return out
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestMonthlyRevenue_LastThreeMonths(t *testing.T) {
	orders := staticSource{
		rec("a", time.Date(2026, 8, 10, 9, 0, 0, 0, yangon), store.Fields{"total": json.Number("100")}),
		rec("b", time.Date(2026, 9, 3, 9, 0, 0, 0, yangon), store.Fields{"totalAmount": "200"}),
		rec("c", time.Date(2026, 10, 1, 9, 0, 0, 0, yangon), store.Fields{"total": json.Number("300")}),
		rec("old", time.Date(2025, 10, 31, 9, 0, 0, 0, yangon), store.Fields{"total": json.Number("999")}),
	}
	months := newTestEngine(Sources{SalesOrders: orders}).MonthlyRevenue(context.Background())

	if len(months) != 12 {
		t.Fatalf("got %d months", len(months))
	}
	if months[0].Month != "Nov 2025" || months[11].Month != "Oct 2026" {
		t.Fatalf("labels = %s .. %s", months[0].Month, months[11].Month)
	}
	want := []string{"100", "200", "300"}
	for i, w := range want {
		m := months[9+i]
		if !m.Revenue.Equal(dec(w)) || m.OrderCount != 1 {
			t.Fatalf("%s: revenue %s orders %d, want %s", m.Month, m.Revenue, m.OrderCount, w)
		}
	}
	for _, m := range months {
		if m.Target.LessThan(m.Revenue) {
			t.Fatalf("%s: target %s < revenue %s", m.Month, m.Target, m.Revenue)
		}
	}
	if !months[9].Target.Equal(dec("110")) {
		t.Fatalf("target = %s", months[9].Target)
	}
	for _, m := range months[:9] {
		if !m.Revenue.IsZero() || m.OrderCount != 0 {
			t.Fatalf("%s should be empty: %+v", m.Month, m)
		}
	}
}

func TestMonthlyRevenue_BucketsByLocalMonth(t *testing.T) {
	// 20:00 UTC on Sep 30 is already Oct 1 in Yangon.
	orders := staticSource{
		rec("edge", time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC), store.Fields{"total": json.Number("50")}),
		rec("garbage", time.Date(2026, 10, 2, 0, 0, 0, 0, yangon), store.Fields{"total": "n/a"}),
	}
	months := newTestEngine(Sources{SalesOrders: orders}).MonthlyRevenue(context.Background())

	oct := months[11]
	if !oct.Revenue.Equal(dec("50")) || oct.OrderCount != 2 {
		t.Fatalf("Oct = %+v", oct)
	}
	if !months[10].Revenue.IsZero() {
		t.Fatalf("Sep = %+v", months[10])
	}
}

func TestWeeklyTrend_HalfOpenWindows(t *testing.T) {
	lastStart := time.Date(2026, 10, 8, 0, 0, 0, 0, yangon)
	customers := staticSource{
		rec("today", time.Date(2026, 10, 14, 8, 0, 0, 0, yangon), nil),
		rec("start", lastStart, nil),
		rec("before", lastStart.Add(-time.Minute), nil),
		rec("tomorrow", time.Date(2026, 10, 15, 0, 0, 0, 0, yangon), nil),
		rec("ancient", time.Date(2026, 1, 1, 0, 0, 0, 0, yangon), nil),
	}
	orders := staticSource{rec("o", time.Date(2026, 8, 20, 10, 0, 0, 0, yangon), nil)}

	weeks := newTestEngine(Sources{Customers: customers, SalesOrders: orders}).WeeklyTrend(context.Background())
	if len(weeks) != 8 {
		t.Fatalf("got %d weeks", len(weeks))
	}
	last := weeks[7]
	if !last.Start.Equal(lastStart) || last.Week != "Oct 8" {
		t.Fatalf("last window = %s %v", last.Week, last.Start)
	}
	if last.Customers != 2 {
		t.Fatalf("last window customers = %d, want 2", last.Customers)
	}
	if weeks[6].Customers != 1 {
		t.Fatalf("previous window customers = %d, want 1", weeks[6].Customers)
	}
	if !weeks[0].Start.Equal(time.Date(2026, 8, 20, 0, 0, 0, 0, yangon)) || weeks[0].Orders != 1 {
		t.Fatalf("first window = %+v", weeks[0])
	}
	for i := 1; i < len(weeks); i++ {
		if !weeks[i].Start.Equal(weeks[i-1].End) {
			t.Fatalf("windows %d and %d are not contiguous", i-1, i)
		}
	}
}

func TestConversionFunnel(t *testing.T) {
	src := Sources{
		Enquiries:   many(10, nil),
		Quotations:  many(4, func(int) store.Fields { return store.Fields{"total": "250"} }),
		SalesOrders: many(2, func(int) store.Fields { return store.Fields{"total": json.Number("400")} }),
	}
	stages := newTestEngine(src).ConversionFunnel(context.Background())

	want := []struct {
		stage string
		count int
		pct   int
		value string
	}{
		{StageEnquiries, 10, 100, "0"},
		{StageQuotations, 4, 40, "1000"},
		{StageOrders, 2, 50, "800"},
		{StageInvoices, 0, 0, "0"},
	}
	if len(stages) != len(want) {
		t.Fatalf("got %d stages", len(stages))
	}
	for i, w := range want {
		s := stages[i]
		if s.Stage != w.stage || s.Count != w.count || s.Percentage != w.pct || !s.Value.Equal(dec(w.value)) {
			t.Fatalf("stage %d = %+v, want %+v", i, s, w)
		}
	}
}

func TestConversionFunnel_ZeroPreviousStage(t *testing.T) {
	src := Sources{Quotations: many(3, nil), SalesOrders: many(3, nil), Invoices: many(1, nil)}
	stages := newTestEngine(src).ConversionFunnel(context.Background())

	if stages[0].Percentage != 100 {
		t.Fatalf("first stage = %d", stages[0].Percentage)
	}
	if stages[1].Percentage != 0 {
		t.Fatalf("quotations after zero enquiries = %d", stages[1].Percentage)
	}
	if stages[2].Percentage != 100 || stages[3].Percentage != 33 {
		t.Fatalf("later stages = %d / %d", stages[2].Percentage, stages[3].Percentage)
	}
}

func TestKPIs(t *testing.T) {
	empty := newTestEngine(Sources{}).KPIs(context.Background())
	if !empty.AverageOrderValue.IsZero() || empty.ConversionRate != 0 || empty.WinRate != 0 || !empty.TotalRevenue.IsZero() {
		t.Fatalf("empty KPIs = %+v", empty)
	}

	totals := []string{"100", "100", "100.01"}
	src := Sources{
		Customers:   many(5, nil),
		Enquiries:   many(7, nil),
		Quotations:  many(4, nil),
		SalesOrders: many(3, func(i int) store.Fields { return store.Fields{"total": totals[i]} }),
		Invoices:    many(1, func(int) store.Fields { return store.Fields{"totalAmount": json.Number("80")} }),
	}
	k := newTestEngine(src).KPIs(context.Background())
	if !k.TotalRevenue.Equal(dec("300.01")) || k.TotalOrders != 3 {
		t.Fatalf("revenue = %s orders = %d", k.TotalRevenue, k.TotalOrders)
	}
	if !k.AverageOrderValue.Equal(dec("100")) {
		t.Fatalf("AOV = %s", k.AverageOrderValue)
	}
	if k.ConversionRate != 43 || k.WinRate != 75 {
		t.Fatalf("rates = %d / %d", k.ConversionRate, k.WinRate)
	}
	if k.TotalCustomers != 5 || !k.TotalInvoiced.Equal(dec("80")) {
		t.Fatalf("KPIs = %+v", k)
	}
}

func TestProductPerformance_BucketsAndFallback(t *testing.T) {
	orders := staticSource{
		rec("o1", testNow(), store.Fields{"items": []any{
			map[string]any{"category": "Cement", "total": json.Number("500")},
			map[string]any{"description": "Steel bars", "quantity": json.Number("2"), "rate": json.Number("100")},
			map[string]any{"category": "Cement", "total": "100"},
		}}),
		rec("o2", testNow(), store.Fields{"total": json.Number("300")}),
		rec("o3", testNow(), store.Fields{"items": []any{
			map[string]any{"name": "Paint", "quantity": json.Number("1"), "unitPrice": "50"},
			map[string]any{"category": "Cement", "total": json.Number("100")},
		}}),
	}
	got := newTestEngine(Sources{SalesOrders: orders}).ProductPerformance(context.Background())

	want := []struct {
		name    string
		revenue string
		orders  int
	}{
		{"Cement", "700", 2},
		{GeneralServices, "300", 1},
		{"Steel bars", "200", 1},
		{"Paint", "50", 1},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d buckets: %+v", len(got), got)
	}
	for i, w := range want {
		if got[i].Name != w.name || !got[i].Revenue.Equal(dec(w.revenue)) || got[i].OrderCount != w.orders {
			t.Fatalf("bucket %d = %+v, want %+v", i, got[i], w)
		}
	}
}

func TestProductPerformance_TopSixKeepsTieOrder(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G", "H"}
	orders := many(len(names), func(i int) store.Fields {
		return store.Fields{"items": []any{map[string]any{"name": names[i], "total": json.Number("10")}}}
	})
	got := newTestEngine(Sources{SalesOrders: orders}).ProductPerformance(context.Background())

	if len(got) != 6 {
		t.Fatalf("got %d buckets", len(got))
	}
	for i, b := range got {
		if b.Name != names[i] {
			t.Fatalf("bucket %d = %s, want %s", i, b.Name, names[i])
		}
	}
}

func TestPipeline_CountsExpectedStatusesOnly(t *testing.T) {
	statuses := []any{"New", "New", "Lost", "Archived", nil, 7}
	enquiries := many(len(statuses), func(i int) store.Fields { return store.Fields{"status": statuses[i]} })
	orders := many(2, func(int) store.Fields { return store.Fields{"status": "Partially Invoiced"} })

	p := newTestEngine(Sources{Enquiries: enquiries, SalesOrders: orders}).Pipeline(context.Background())

	wantEnq := []StatusCount{{"New", 2}, {"Contacted", 0}, {"Qualified", 0}, {"Converted", 0}, {"Lost", 1}}
	if len(p.Enquiries) != len(wantEnq) {
		t.Fatalf("enquiries = %+v", p.Enquiries)
	}
	for i, w := range wantEnq {
		if p.Enquiries[i] != w {
			t.Fatalf("enquiries[%d] = %+v, want %+v", i, p.Enquiries[i], w)
		}
	}
	if len(p.Quotations) != 5 {
		t.Fatalf("quotations = %+v", p.Quotations)
	}
	for _, c := range p.Quotations {
		if c.Count != 0 {
			t.Fatalf("quotations = %+v", p.Quotations)
		}
	}
	if p.Orders[2] != (StatusCount{"Partially Invoiced", 2}) {
		t.Fatalf("orders = %+v", p.Orders)
	}
}

func TestDashboard_ReadsThroughServices(t *testing.T) {
	ctx := context.Background()
	logger, _ := test.NewNullLogger()
	rs := store.NewRecordStore(storage.NewMemoryMedium(), store.WithLogger(logger), store.WithClock(testNow))
	svcs := models.NewServices(rs)

	if _, err := svcs.CreateEnquiry(ctx, &models.NewEnquiry{CustomerName: "a", Subject: "b"}); err != nil {
		t.Fatalf("CreateEnquiry: %v", err)
	}
	if _, err := svcs.CreateSalesOrder(ctx, &models.NewSalesOrder{
		CustomerName: "a",
		Items:        []models.LineItem{{Name: "Cement", Category: "Building", Quantity: dec("2"), Rate: dec("75")}},
	}); err != nil {
		t.Fatalf("CreateSalesOrder: %v", err)
	}

	engine := NewEngine(svcs, yangon)
	engine.Now = testNow
	engine.Logger = logger

	d := engine.Dashboard(ctx)
	if d.KPIs.TotalOrders != 1 || !d.KPIs.TotalRevenue.Equal(dec("150")) || d.KPIs.ConversionRate != 100 {
		t.Fatalf("KPIs = %+v", d.KPIs)
	}
	if !d.MonthlyRevenue[11].Revenue.Equal(dec("150")) {
		t.Fatalf("current month = %+v", d.MonthlyRevenue[11])
	}
	if d.WeeklyTrend[7].Orders != 1 || d.WeeklyTrend[7].Enquiries != 1 {
		t.Fatalf("this week = %+v", d.WeeklyTrend[7])
	}
	if len(d.ProductPerformance) != 1 || d.ProductPerformance[0].Name != "Building" {
		t.Fatalf("products = %+v", d.ProductPerformance)
	}
	if d.Pipeline.Orders[0] != (StatusCount{"Draft", 1}) || d.Pipeline.Enquiries[0] != (StatusCount{"New", 1}) {
		t.Fatalf("pipeline = %+v", d.Pipeline)
	}
	if !d.GeneratedAt.Equal(testNow()) {
		t.Fatalf("generatedAt = %v", d.GeneratedAt)
	}
}
