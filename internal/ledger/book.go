package ledger

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// SalesBook is the append-only in-memory view over the Sales table.
// Every Append persists the full table through the Store before reporting
// success; a failed write un-appends so the in-memory view never claims a row
// the store does not hold. The engine serializes writers; the book's own lock
// only protects Snapshot readers running concurrently with a sale.
type SalesBook struct {
	mu    sync.RWMutex
	store Store
	rows  []model.SaleRecord
}

// NewSalesBook loads the current snapshot from the store.
func NewSalesBook(ctx context.Context, store Store) (*SalesBook, error) {
	rows, err := store.ReadSales(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sales ledger: %w", err)
	}
	return &SalesBook{store: store, rows: rows}, nil
}

func (b *SalesBook) Append(ctx context.Context, rec model.SaleRecord) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, rec)
	if err := b.store.WriteSales(ctx, b.rows); err != nil {
		b.rows = b.rows[:len(b.rows)-1]
		return err
	}
	return nil
}

// Remove drops a row by id and persists. It exists only for the engine's
// compensation path, where a half-committed sale has to be withdrawn; it is
// not a general ledger mutation.
func (b *SalesBook) Remove(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := -1
	for i := range b.rows {
		if b.rows[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil
	}
	rest := append(append([]model.SaleRecord(nil), b.rows[:idx]...), b.rows[idx+1:]...)
	if err := b.store.WriteSales(ctx, rest); err != nil {
		return err
	}
	b.rows = rest
	return nil
}

func (b *SalesBook) Snapshot() []model.SaleRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.SaleRecord(nil), b.rows...)
}

// FindByIdempotencyKey returns the sale recorded under key, if any.
func (b *SalesBook) FindByIdempotencyKey(key string) (*model.SaleRecord, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for i := range b.rows {
		if b.rows[i].IdempotencyKey != nil && *b.rows[i].IdempotencyKey == key {
			rec := b.rows[i]
			return &rec, true
		}
	}
	return nil, false
}

// CashBook is the append-only in-memory view over the CashFlow table, with
// the same write-through contract as SalesBook.
type CashBook struct {
	mu    sync.RWMutex
	store Store
	rows  []model.CashFlowEntry
}

func NewCashBook(ctx context.Context, store Store) (*CashBook, error) {
	rows, err := store.ReadCashFlow(ctx)
	if err != nil {
		return nil, fmt.Errorf("load cashflow ledger: %w", err)
	}
	return &CashBook{store: store, rows: rows}, nil
}

func (b *CashBook) Append(ctx context.Context, entry model.CashFlowEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.rows = append(b.rows, entry)
	if err := b.store.WriteCashFlow(ctx, b.rows); err != nil {
		b.rows = b.rows[:len(b.rows)-1]
		return err
	}
	return nil
}

func (b *CashBook) Snapshot() []model.CashFlowEntry {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]model.CashFlowEntry(nil), b.rows...)
}
