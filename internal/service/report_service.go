package service

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/cache"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/report"
)

const (
	summaryCacheKey = "reports:summary"
	summaryCacheTTL = 5 * time.Second
)

// ReportService serves the dashboard aggregates. All numbers come from pure
// functions over ledger snapshots (package report); this layer only adds the
// snapshot reads and a short-TTL summary cache. Reports run fully
// concurrently with sales — a report may reflect pre- or post-sale state,
// never a torn one, because snapshots are taken per ledger copy.
type ReportService interface {
	Summary(ctx context.Context) (*dto.SummaryResponse, error)
	LowStock() *dto.LowStockResponse
	Debtors() *dto.DebtorListResponse
	DailySeries() *dto.DailySeriesResponse
}

type reportService struct {
	inventory InventoryService
	sales     SaleService
	cashflow  CashFlowService
	cache     cache.SummaryCache
	threshold int
}

func NewReportService(
	inventory InventoryService,
	sales SaleService,
	cashflow CashFlowService,
	summaryCache cache.SummaryCache,
	lowStockThreshold int,
) ReportService {
	if summaryCache == nil {
		summaryCache = cache.NoopSummaryCache{}
	}
	return &reportService{
		inventory: inventory,
		sales:     sales,
		cashflow:  cashflow,
		cache:     summaryCache,
		threshold: lowStockThreshold,
	}
}

func (s *reportService) Summary(ctx context.Context) (*dto.SummaryResponse, error) {
	if cached, ok, err := s.cache.Get(ctx, summaryCacheKey); err == nil && ok {
		return cached, nil
	} else if err != nil {
		// Cache trouble degrades to a fresh computation.
		log.Warn().Err(err).Msg("summary cache read failed")
	}

	sum := report.BuildSummary(s.inventory.ListProducts(), s.sales.ListSales(), s.cashflow.ListEntries())
	resp := &dto.SummaryResponse{
		Revenue:       sum.Revenue,
		Profit:        sum.Profit,
		CashBalance:   sum.CashBalance,
		SalesCount:    sum.SalesCount,
		UnitsInStock:  sum.UnitsInStock,
		AverageTicket: sum.AverageTicket,
		MarginPct:     sum.MarginPct,
	}
	if err := s.cache.Set(ctx, summaryCacheKey, resp, summaryCacheTTL); err != nil {
		log.Warn().Err(err).Msg("summary cache write failed")
	}
	return resp, nil
}

func (s *reportService) LowStock() *dto.LowStockResponse {
	low := report.LowStock(s.inventory.ListProducts(), s.threshold)
	items := make([]dto.LowStockItem, 0, len(low))
	for _, p := range low {
		items = append(items, dto.LowStockItem{Name: p.Name, Quantity: p.Quantity})
	}
	return &dto.LowStockResponse{Threshold: s.threshold, Data: items}
}

func (s *reportService) Debtors() *dto.DebtorListResponse {
	debtors := report.Debtors(s.sales.ListSales())
	resp := &dto.DebtorListResponse{
		Data:      make([]dto.DebtorResponse, 0, len(debtors)),
		TotalOwed: decimal.Zero,
	}
	for _, d := range debtors {
		resp.Data = append(resp.Data, dto.DebtorResponse{Customer: d.Customer, Owed: d.Owed, Sales: d.Sales})
		resp.TotalOwed = resp.TotalOwed.Add(d.Owed)
	}
	return resp
}

func (s *reportService) DailySeries() *dto.DailySeriesResponse {
	series := report.DailySeries(s.sales.ListSales(), time.Local)
	resp := &dto.DailySeriesResponse{Data: make([]dto.DailyPoint, 0, len(series))}
	for _, p := range series {
		resp.Data = append(resp.Data, dto.DailyPoint{Date: p.Date, Total: p.Total, Sales: p.Sales})
	}
	return resp
}
