package dto

import "github.com/shopspring/decimal"

// SummaryResponse carries the dashboard headline numbers. All ratios report
// zero (never an error) when the ledgers are empty.
type SummaryResponse struct {
	Revenue       decimal.Decimal `json:"revenue"`
	Profit        decimal.Decimal `json:"profit"`
	CashBalance   decimal.Decimal `json:"cash_balance"`
	SalesCount    int             `json:"sales_count"`
	UnitsInStock  int             `json:"units_in_stock"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
	MarginPct     decimal.Decimal `json:"margin_pct"`
}

type LowStockItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type LowStockResponse struct {
	Threshold int            `json:"threshold"`
	Data      []LowStockItem `json:"data"`
}

type DebtorResponse struct {
	Customer string          `json:"customer"`
	Owed     decimal.Decimal `json:"owed"`
	Sales    int             `json:"sales"`
}

type DebtorListResponse struct {
	Data      []DebtorResponse `json:"data"`
	TotalOwed decimal.Decimal  `json:"total_owed"`
}

type DailyPoint struct {
	Date  string          `json:"date"` // YYYY-MM-DD, operator-local
	Total decimal.Decimal `json:"total"`
	Sales int             `json:"sales"`
}

type DailySeriesResponse struct {
	Data []DailyPoint `json:"data"`
}
