// Package report computes the read-side aggregates of the dashboards. Every
// function is pure over ledger snapshots: no mutation, safe to run
// concurrently with sales, and empty ledgers yield zero values, never errors.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

var hundred = decimal.NewFromInt(100)

// Summary holds the headline numbers of the dashboard.
type Summary struct {
	Revenue       decimal.Decimal
	Profit        decimal.Decimal
	CashBalance   decimal.Decimal
	SalesCount    int
	UnitsInStock  int
	AverageTicket decimal.Decimal
	MarginPct     decimal.Decimal
}

// BuildSummary aggregates both ledgers and the catalog. Revenue and profit
// include credit sales; the cash balance does not, because credit sales never
// produce a cash flow entry.
func BuildSummary(products []model.Product, sales []model.SaleRecord, cash []model.CashFlowEntry) Summary {
	var sum Summary
	sum.Revenue = decimal.Zero
	sum.Profit = decimal.Zero
	sum.CashBalance = decimal.Zero
	sum.AverageTicket = decimal.Zero
	sum.MarginPct = decimal.Zero

	for _, v := range sales {
		sum.Revenue = sum.Revenue.Add(v.Total)
		sum.Profit = sum.Profit.Add(v.Profit)
	}
	sum.SalesCount = len(sales)

	for _, e := range cash {
		if e.Kind == model.FlowOutflow {
			sum.CashBalance = sum.CashBalance.Sub(e.Amount)
		} else {
			sum.CashBalance = sum.CashBalance.Add(e.Amount)
		}
	}

	for _, p := range products {
		sum.UnitsInStock += p.Quantity
	}

	// Ratios guard divide-by-zero: empty ledgers report 0, never fail.
	if sum.SalesCount > 0 {
		sum.AverageTicket = sum.Revenue.Div(decimal.NewFromInt(int64(sum.SalesCount))).Round(2)
	}
	if !sum.Revenue.IsZero() {
		sum.MarginPct = sum.Profit.Div(sum.Revenue).Mul(hundred).Round(2)
	}
	return sum
}

// LowStock returns the products under threshold, in catalog order.
func LowStock(products []model.Product, threshold int) []model.Product {
	var out []model.Product
	for _, p := range products {
		if p.Quantity < threshold {
			out = append(out, p)
		}
	}
	return out
}

// Debtor is one customer's outstanding credit total.
type Debtor struct {
	Customer string
	Owed     decimal.Decimal
	Sales    int
}

// Debtors groups credit sales by customer, descending by amount owed (name
// ascending on ties so the order is stable).
func Debtors(sales []model.SaleRecord) []Debtor {
	totals := make(map[string]*Debtor)
	for _, v := range sales {
		if v.PaymentMethod != model.PaymentCredit {
			continue
		}
		d, ok := totals[v.Customer]
		if !ok {
			d = &Debtor{Customer: v.Customer, Owed: decimal.Zero}
			totals[v.Customer] = d
		}
		d.Owed = d.Owed.Add(v.Total)
		d.Sales++
	}

	out := make([]Debtor, 0, len(totals))
	for _, d := range totals {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Owed.Equal(out[j].Owed) {
			return out[i].Owed.GreaterThan(out[j].Owed)
		}
		return out[i].Customer < out[j].Customer
	})
	return out
}

// DailyPoint is one day's sales total, in the operator's local calendar.
type DailyPoint struct {
	Date  string // YYYY-MM-DD
	Total decimal.Decimal
	Sales int
}

// DailySeries buckets sales by local calendar date, in date order.
func DailySeries(sales []model.SaleRecord, loc *time.Location) []DailyPoint {
	if loc == nil {
		loc = time.Local
	}
	totals := make(map[string]*DailyPoint)
	for _, v := range sales {
		day := v.CreatedAt.In(loc).Format("2006-01-02")
		p, ok := totals[day]
		if !ok {
			p = &DailyPoint{Date: day, Total: decimal.Zero}
			totals[day] = p
		}
		p.Total = p.Total.Add(v.Total)
		p.Sales++
	}

	out := make([]DailyPoint, 0, len(totals))
	for _, p := range totals {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
