// Package reports derives dashboard aggregates by scanning whole
// collections. Nothing is cached or stored; every call recomputes from
// what the record store holds at that moment.
package reports

import (
	"context"
	"time"

	"github.com/mmdatafocus/sales_backend/config"
	"github.com/mmdatafocus/sales_backend/models"
	"github.com/mmdatafocus/sales_backend/store"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("github.com/mmdatafocus/sales_backend/models/reports")

// Source is anything that can hand over a full collection.
// *models.Service satisfies it.
type Source interface {
	GetAll(ctx context.Context) []store.Record
}

type Sources struct {
	Customers   Source
	Enquiries   Source
	Quotations  Source
	SalesOrders Source
	Invoices    Source
}

func SourcesFrom(svcs *models.Services) Sources {
	return Sources{
		Customers:   svcs.Customers,
		Enquiries:   svcs.Enquiries,
		Quotations:  svcs.Quotations,
		SalesOrders: svcs.SalesOrders,
		Invoices:    svcs.Invoices,
	}
}

// Engine computes analytics. Month and day boundaries are taken in
// Location; a nil Location means UTC and a nil Now means time.Now.
type Engine struct {
	Sources  Sources
	Location *time.Location
	Now      func() time.Time
	Logger   logrus.FieldLogger
}

func NewEngine(svcs *models.Services, loc *time.Location) *Engine {
	return &Engine{Sources: SourcesFrom(svcs), Location: loc}
}

func (e *Engine) location() *time.Location {
	if e.Location == nil {
		return time.UTC
	}
	return e.Location
}

func (e *Engine) now() time.Time {
	if e.Now == nil {
		return time.Now().In(e.location())
	}
	return e.Now().In(e.location())
}

func (e *Engine) logger() logrus.FieldLogger {
	if e.Logger == nil {
		return config.GetLogger()
	}
	return e.Logger
}

// snapshot is one read of every source, so a dashboard is computed over a
// single consistent view.
type snapshot struct {
	now        time.Time
	loc        *time.Location
	customers  []store.Record
	enquiries  []store.Record
	quotations []store.Record
	orders     []store.Record
	invoices   []store.Record
}

func collect(ctx context.Context, src Source) []store.Record {
	if src == nil {
		return nil
	}
	return src.GetAll(ctx)
}

func (e *Engine) read(ctx context.Context, name string) (*snapshot, func()) {
	started := time.Now()
	ctx, span := tracer.Start(ctx, "reports."+name)
	snap := &snapshot{
		now:        e.now(),
		loc:        e.location(),
		customers:  collect(ctx, e.Sources.Customers),
		enquiries:  collect(ctx, e.Sources.Enquiries),
		quotations: collect(ctx, e.Sources.Quotations),
		orders:     collect(ctx, e.Sources.SalesOrders),
		invoices:   collect(ctx, e.Sources.Invoices),
	}
	return snap, func() {
		span.End()
		logSlowReport(ctx, e.logger(), name, started, map[string]any{"orders": len(snap.orders)})
	}
}

func (e *Engine) MonthlyRevenue(ctx context.Context) []MonthlyRevenue {
	snap, done := e.read(ctx, "MonthlyRevenue")
	defer done()
	return snap.monthlyRevenue()
}

func (e *Engine) WeeklyTrend(ctx context.Context) []WeeklyActivity {
	snap, done := e.read(ctx, "WeeklyTrend")
	defer done()
	return snap.weeklyTrend()
}

func (e *Engine) ConversionFunnel(ctx context.Context) []FunnelStage {
	snap, done := e.read(ctx, "ConversionFunnel")
	defer done()
	return snap.conversionFunnel()
}

func (e *Engine) ProductPerformance(ctx context.Context) []ProductPerformance {
	snap, done := e.read(ctx, "ProductPerformance")
	defer done()
	return snap.productPerformance()
}

func (e *Engine) KPIs(ctx context.Context) KPIs {
	snap, done := e.read(ctx, "KPIs")
	defer done()
	return snap.kpis()
}

func (e *Engine) Pipeline(ctx context.Context) Pipeline {
	snap, done := e.read(ctx, "Pipeline")
	defer done()
	return snap.pipeline()
}

type Dashboard struct {
	GeneratedAt        time.Time            `json:"generatedAt"`
	KPIs               KPIs                 `json:"kpis"`
	MonthlyRevenue     []MonthlyRevenue     `json:"monthlyRevenue"`
	WeeklyTrend        []WeeklyActivity     `json:"weeklyTrend"`
	ConversionFunnel   []FunnelStage        `json:"conversionFunnel"`
	ProductPerformance []ProductPerformance `json:"productPerformance"`
	Pipeline           Pipeline             `json:"pipeline"`
}

// Dashboard computes every aggregate from one read of the collections.
func (e *Engine) Dashboard(ctx context.Context) Dashboard {
	snap, done := e.read(ctx, "Dashboard")
	defer done()
	return Dashboard{
		GeneratedAt:        snap.now,
		KPIs:               snap.kpis(),
		MonthlyRevenue:     snap.monthlyRevenue(),
		WeeklyTrend:        snap.weeklyTrend(),
		ConversionFunnel:   snap.conversionFunnel(),
		ProductPerformance: snap.productPerformance(),
		Pipeline:           snap.pipeline(),
	}
}
