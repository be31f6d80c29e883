// Package ledger holds the persistence boundary of the engine: a snapshot
// Store over the three logical tables (Inventory, Sales, CashFlow) plus the
// append-only in-memory books built on top of it. The backing medium — sqlite
// file, CSV directory, plain memory — is a Store implementation detail the
// services never see.
package ledger

import (
	"context"
	"errors"
	"fmt"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// Sentinel errors shared by the store, the inventory manager and the
// transaction engine. Handlers map them to HTTP statuses with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPersistence       = errors.New("persistence failure")
	// ErrTransactionAborted means a sale was rolled back after the stock
	// decrement because a ledger append could not be made durable.
	ErrTransactionAborted = errors.New("transaction aborted")
)

// Store is the durable persistence contract. Reads return the current full
// snapshot (empty, never an error, on first use); writes are full-replace and
// must be durable before returning.
type Store interface {
	ReadInventory(ctx context.Context) ([]model.Product, error)
	WriteInventory(ctx context.Context, rows []model.Product) error

	ReadSales(ctx context.Context) ([]model.SaleRecord, error)
	WriteSales(ctx context.Context, rows []model.SaleRecord) error

	ReadCashFlow(ctx context.Context) ([]model.CashFlowEntry, error)
	WriteCashFlow(ctx context.Context, rows []model.CashFlowEntry) error
}

// validateInventory rejects rows that violate the catalog invariants before
// they reach any backing medium.
func validateInventory(rows []model.Product) error {
	for _, p := range rows {
		if p.Name == "" {
			return fmt.Errorf("%w: product name is required", ErrInvalidInput)
		}
		if p.Quantity < 0 {
			return fmt.Errorf("%w: negative quantity for %s", ErrInvalidInput, p.Name)
		}
		if p.UnitPrice.IsNegative() || p.UnitCost.IsNegative() {
			return fmt.Errorf("%w: negative price or cost for %s", ErrInvalidInput, p.Name)
		}
	}
	return nil
}
