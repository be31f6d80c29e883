package ledger

import (
	"context"
	"sync"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// MemoryStore keeps all three tables in process memory. It backs unit tests
// and STORE_DRIVER=memory (throwaway demo runs); durability obviously ends
// with the process.
type MemoryStore struct {
	mu        sync.RWMutex
	inventory []model.Product
	sales     []model.SaleRecord
	cashflow  []model.CashFlowEntry
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (s *MemoryStore) ReadInventory(_ context.Context) ([]model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.inventory...), nil
}

func (s *MemoryStore) WriteInventory(_ context.Context, rows []model.Product) error {
	if err := validateInventory(rows); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inventory = append([]model.Product(nil), rows...)
	return nil
}

func (s *MemoryStore) ReadSales(_ context.Context) ([]model.SaleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.SaleRecord(nil), s.sales...), nil
}

func (s *MemoryStore) WriteSales(_ context.Context, rows []model.SaleRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sales = append([]model.SaleRecord(nil), rows...)
	return nil
}

func (s *MemoryStore) ReadCashFlow(_ context.Context) ([]model.CashFlowEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.CashFlowEntry(nil), s.cashflow...), nil
}

func (s *MemoryStore) WriteCashFlow(_ context.Context, rows []model.CashFlowEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cashflow = append([]model.CashFlowEntry(nil), rows...)
	return nil
}

var _ Store = (*MemoryStore)(nil)
