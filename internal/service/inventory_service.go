package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// InventoryService owns the product catalog: per-product quantity, price and
// cost. TryDecrement is the decrement gate — the single point where stock
// consistency is enforced — and every successful mutation is persisted
// through the ledger store before the call returns (write-through).
type InventoryService interface {
	GetProduct(name string) (model.Product, error)
	ListProducts() []model.Product
	TryDecrement(ctx context.Context, name string, qty int) (remaining int, err error)
	// Restock reverses a decrement; used by the sale engine's compensation
	// path and never exposed over HTTP.
	Restock(ctx context.Context, name string, qty int) error
	ReplaceCatalog(ctx context.Context, items []model.Product) error
	LowStockProducts(threshold int) []model.Product
}

type inventoryService struct {
	mu    sync.RWMutex
	store ledger.Store
	items []model.Product // catalog order
	index map[string]int  // name → position in items
}

// NewInventoryService loads the catalog from the store, seeding the default
// catalog on first run (empty store).
func NewInventoryService(ctx context.Context, store ledger.Store) (InventoryService, error) {
	rows, err := store.ReadInventory(ctx)
	if err != nil {
		return nil, fmt.Errorf("load inventory: %w", err)
	}
	s := &inventoryService{store: store}
	if len(rows) == 0 {
		rows = defaultCatalog()
		if err := store.WriteInventory(ctx, rows); err != nil {
			return nil, fmt.Errorf("seed inventory: %w", err)
		}
		log.Info().Int("products", len(rows)).Msg("seeded default catalog")
	}
	s.reindex(rows)
	return s, nil
}

// defaultCatalog mirrors the shop's original two-product stock sheet.
func defaultCatalog() []model.Product {
	now := time.Now()
	return []model.Product{
		{Name: "Camisa Oversized", Quantity: 100, UnitPrice: decimal.NewFromInt(80), UnitCost: decimal.Zero, Position: 0, UpdatedAt: now},
		{Name: "Camisa Suedine", Quantity: 50, UnitPrice: decimal.NewFromInt(110), UnitCost: decimal.Zero, Position: 1, UpdatedAt: now},
	}
}

func (s *inventoryService) reindex(rows []model.Product) {
	s.items = rows
	s.index = make(map[string]int, len(rows))
	for i := range rows {
		s.items[i].Position = i
		s.index[rows[i].Name] = i
	}
}

func (s *inventoryService) GetProduct(name string) (model.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[name]
	if !ok {
		return model.Product{}, fmt.Errorf("%w: product %q", ledger.ErrNotFound, name)
	}
	return s.items[i], nil
}

func (s *inventoryService) ListProducts() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Product(nil), s.items...)
}

// TryDecrement atomically checks and subtracts stock, persisting the whole
// catalog before returning success. On any failure the in-memory quantity is
// left exactly as it was.
func (s *inventoryService) TryDecrement(ctx context.Context, name string, qty int) (int, error) {
	if qty < 1 {
		return 0, fmt.Errorf("%w: quantity must be >= 1", ledger.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: product %q", ledger.ErrNotFound, name)
	}
	if s.items[i].Quantity < qty {
		return s.items[i].Quantity, fmt.Errorf("%w: %s has %d, want %d",
			ledger.ErrInsufficientStock, name, s.items[i].Quantity, qty)
	}

	s.items[i].Quantity -= qty
	s.items[i].UpdatedAt = time.Now()
	if err := s.store.WriteInventory(ctx, s.items); err != nil {
		s.items[i].Quantity += qty
		return s.items[i].Quantity, err
	}
	return s.items[i].Quantity, nil
}

func (s *inventoryService) Restock(ctx context.Context, name string, qty int) error {
	if qty < 1 {
		return fmt.Errorf("%w: quantity must be >= 1", ledger.ErrInvalidInput)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[name]
	if !ok {
		return fmt.Errorf("%w: product %q", ledger.ErrNotFound, name)
	}
	s.items[i].Quantity += qty
	s.items[i].UpdatedAt = time.Now()
	if err := s.store.WriteInventory(ctx, s.items); err != nil {
		s.items[i].Quantity -= qty
		return err
	}
	return nil
}

// ReplaceCatalog is the administrative bulk overwrite. It bypasses the
// decrement gate but still rejects negative quantities and prices.
func (s *inventoryService) ReplaceCatalog(ctx context.Context, items []model.Product) error {
	seen := make(map[string]bool, len(items))
	for _, p := range items {
		if p.Name == "" {
			return fmt.Errorf("%w: product name is required", ledger.ErrInvalidInput)
		}
		if seen[p.Name] {
			return fmt.Errorf("%w: duplicate product %s", ledger.ErrInvalidInput, p.Name)
		}
		seen[p.Name] = true
		if p.Quantity < 0 {
			return fmt.Errorf("%w: negative quantity for %s", ledger.ErrInvalidInput, p.Name)
		}
		if p.UnitPrice.IsNegative() || p.UnitCost.IsNegative() {
			return fmt.Errorf("%w: negative price or cost for %s", ledger.ErrInvalidInput, p.Name)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows := make([]model.Product, len(items))
	copy(rows, items)
	now := time.Now()
	for i := range rows {
		rows[i].Position = i
		rows[i].UpdatedAt = now
	}
	if err := s.store.WriteInventory(ctx, rows); err != nil {
		return err
	}
	s.reindex(rows)
	return nil
}

func (s *inventoryService) LowStockProducts(threshold int) []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []model.Product
	for _, p := range s.items {
		if p.Quantity < threshold {
			out = append(out, p)
		}
	}
	return out
}
