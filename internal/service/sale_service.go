package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/cache"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/worker"
)

// SaleService is the transaction engine: it runs a sale as one logical
// operation spanning the inventory decrement, the sales ledger append and the
// conditional cash flow append, and it enforces the cross-entity invariants
// (stock never negative, at most one auto cash entry per sale, credit sales
// never in cash flow).
type SaleService interface {
	RecordSale(ctx context.Context, operator string, req dto.RecordSaleRequest) (*dto.SaleResponse, error)
	ListSales() []model.SaleRecord
}

type saleService struct {
	// mu serializes the check-then-act region (decrement + both appends).
	// One register, small catalog: a single engine-level lock is enough; no
	// stale read of quantity can pass the gate while a sale is in flight.
	mu sync.Mutex

	inventory  InventoryService
	sales      *ledger.SalesBook
	cash       *ledger.CashBook
	dispatcher *worker.Dispatcher // nil = alerts disabled
	// summaryCache is invalidated after every committed sale so the summary
	// endpoint never serves a full TTL of stale numbers.
	summaryCache cache.SummaryCache

	lowStockThreshold int
}

func NewSaleService(
	inventory InventoryService,
	sales *ledger.SalesBook,
	cash *ledger.CashBook,
	dispatcher *worker.Dispatcher,
	summaryCache cache.SummaryCache,
	lowStockThreshold int,
) SaleService {
	if summaryCache == nil {
		summaryCache = cache.NoopSummaryCache{}
	}
	return &saleService{
		inventory:         inventory,
		sales:             sales,
		cash:              cash,
		dispatcher:        dispatcher,
		summaryCache:      summaryCache,
		lowStockThreshold: lowStockThreshold,
	}
}

// ── RecordSale ───────────────────────────────────────────────────────────────
// One logical transaction:
//  1. validate request
//  2. resolve product, compute total/profit from prices as of now
//  3. decrement stock (the consistency gate — aborts with no ledger writes)
//  4. append the sale row
//  5. append one cash inflow unless the sale is on credit
//
// Store writes already carry bounded retries (ledger.RetryStore). If step 4
// or 5 still fails after step 3 succeeded, the engine compensates — restock,
// withdraw the half-committed sale row — and reports ErrTransactionAborted.
// Inventory is never left decremented without a durable matching sale.

func (s *saleService) RecordSale(ctx context.Context, operator string, req dto.RecordSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSaleRequest(operator, req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Replayed request: return the original result, touch nothing.
	if req.IdempotencyKey != nil {
		if prev, ok := s.sales.FindByIdempotencyKey(*req.IdempotencyKey); ok {
			p, err := s.inventory.GetProduct(prev.Product)
			remaining := 0
			if err == nil {
				remaining = p.Quantity
			}
			return saleToResponse(prev, remaining), nil
		}
	}

	p, err := s.inventory.GetProduct(req.Product)
	if err != nil {
		return nil, err
	}

	qty := decimal.NewFromInt(int64(req.Quantity))
	total := qty.Mul(p.UnitPrice).Sub(req.Discount)
	if total.IsNegative() {
		// Observed register behavior: any discount is accepted, the final
		// total is clamped at zero.
		total = decimal.Zero
	}
	profit := total.Sub(qty.Mul(p.UnitCost))

	remaining, err := s.inventory.TryDecrement(ctx, req.Product, req.Quantity)
	if err != nil {
		return nil, err
	}

	rec := model.SaleRecord{
		ID:             uuid.New(),
		CreatedAt:      time.Now(),
		Operator:       operator,
		Customer:       strings.TrimSpace(req.Customer),
		Product:        p.Name,
		Model:          req.Model,
		Size:           req.Size,
		Quantity:       req.Quantity,
		Discount:       req.Discount,
		Total:          total,
		Profit:         profit,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: req.IdempotencyKey,
	}

	if err := s.sales.Append(ctx, rec); err != nil {
		return nil, s.abort(ctx, rec, err, false)
	}

	if req.PaymentMethod != model.PaymentCredit {
		entry := model.CashFlowEntry{
			ID:          uuid.New(),
			Date:        rec.CreatedAt,
			Operator:    operator,
			Kind:        model.FlowInflow,
			Description: fmt.Sprintf("sale %s — %s x%d", rec.ID, rec.Product, rec.Quantity),
			Amount:      total,
			Method:      req.PaymentMethod,
			SaleID:      &rec.ID,
		}
		if err := s.cash.Append(ctx, entry); err != nil {
			return nil, s.abort(ctx, rec, err, true)
		}
	}

	s.maybeAlertLowStock(ctx, p.Name, remaining)
	invalidateSummary(ctx, s.summaryCache)

	return saleToResponse(&rec, remaining), nil
}

// invalidateSummary drops the cached summary after a write that changes the
// aggregates. Best effort: the ledgers are already durable.
func invalidateSummary(ctx context.Context, c cache.SummaryCache) {
	if err := c.Invalidate(ctx, summaryCacheKey); err != nil {
		log.Warn().Err(err).Msg("failed to invalidate summary cache")
	}
}

// abort rolls back a sale whose ledger appends could not be made durable:
// the stock decrement is reversed and, when the sale row itself was already
// committed, it is withdrawn. A compensation failure leaves the stores
// inconsistent — that is logged loudly and surfaced, never swallowed.
func (s *saleService) abort(ctx context.Context, rec model.SaleRecord, cause error, saleCommitted bool) error {
	var fatal []error
	if saleCommitted {
		if err := s.sales.Remove(ctx, rec.ID); err != nil {
			fatal = append(fatal, fmt.Errorf("withdraw sale row: %w", err))
		}
	}
	if err := s.inventory.Restock(ctx, rec.Product, rec.Quantity); err != nil {
		fatal = append(fatal, fmt.Errorf("restore stock: %w", err))
	}

	if len(fatal) > 0 {
		log.Error().
			Str("sale_id", rec.ID.String()).
			Str("product", rec.Product).
			Int("quantity", rec.Quantity).
			AnErr("cause", cause).
			Errs("compensation", fatal).
			Msg("sale rollback incomplete — ledgers may be inconsistent")
		return fmt.Errorf("%w: rollback incomplete after %v", ledger.ErrTransactionAborted, cause)
	}

	log.Warn().
		Str("sale_id", rec.ID.String()).
		Str("product", rec.Product).
		Err(cause).
		Msg("sale rolled back cleanly")
	return fmt.Errorf("%w: %v", ledger.ErrTransactionAborted, cause)
}

// maybeAlertLowStock dispatches a restock alert when a sale drops a product
// under the threshold. Best effort: a queue failure never affects the sale.
func (s *saleService) maybeAlertLowStock(ctx context.Context, product string, remaining int) {
	if s.dispatcher == nil || remaining >= s.lowStockThreshold {
		return
	}
	if err := s.dispatcher.EnqueueLowStock(ctx, worker.LowStockAlert{
		Product:   product,
		Remaining: remaining,
		Threshold: s.lowStockThreshold,
	}); err != nil {
		log.Warn().Str("product", product).Err(err).Msg("failed to enqueue low-stock alert")
	}
}

func (s *saleService) ListSales() []model.SaleRecord { return s.sales.Snapshot() }

func validateSaleRequest(operator string, req dto.RecordSaleRequest) error {
	switch {
	case strings.TrimSpace(operator) == "":
		return fmt.Errorf("%w: operator identity is required", ledger.ErrInvalidInput)
	case strings.TrimSpace(req.Product) == "":
		return fmt.Errorf("%w: product is required", ledger.ErrInvalidInput)
	case req.Quantity < 1:
		return fmt.Errorf("%w: quantity must be >= 1", ledger.ErrInvalidInput)
	case req.Discount.IsNegative():
		return fmt.Errorf("%w: discount must not be negative", ledger.ErrInvalidInput)
	case !model.ValidPaymentMethod(req.PaymentMethod):
		return fmt.Errorf("%w: unknown payment method %q", ledger.ErrInvalidInput, req.PaymentMethod)
	case req.PaymentMethod == model.PaymentCredit && strings.TrimSpace(req.Customer) == "":
		return fmt.Errorf("%w: customer is required for credit sales", ledger.ErrInvalidInput)
	}
	return nil
}

func saleToResponse(v *model.SaleRecord, remaining int) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             v.ID.String(),
		Product:        v.Product,
		Model:          v.Model,
		Size:           v.Size,
		Quantity:       v.Quantity,
		Discount:       v.Discount,
		Total:          v.Total,
		Profit:         v.Profit,
		PaymentMethod:  v.PaymentMethod,
		Customer:       v.Customer,
		Operator:       v.Operator,
		RemainingStock: remaining,
		CreatedAt:      v.CreatedAt.Format(time.RFC3339),
	}
}
