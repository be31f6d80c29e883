package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/cache"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// CashFlowService records manual cash movements (expenses, out-of-band
// receipts). Entries are immutable — there is no update or delete; a mistake
// is corrected with a new entry of the opposite kind. Sale inflows are
// appended by the sale engine, never through this service.
type CashFlowService interface {
	RecordEntry(ctx context.Context, operator string, req dto.ManualEntryRequest) (*dto.CashFlowEntryResponse, error)
	ListEntries() []model.CashFlowEntry
}

type cashFlowService struct {
	cash         *ledger.CashBook
	summaryCache cache.SummaryCache
}

func NewCashFlowService(cash *ledger.CashBook, summaryCache cache.SummaryCache) CashFlowService {
	if summaryCache == nil {
		summaryCache = cache.NoopSummaryCache{}
	}
	return &cashFlowService{cash: cash, summaryCache: summaryCache}
}

func (s *cashFlowService) RecordEntry(ctx context.Context, operator string, req dto.ManualEntryRequest) (*dto.CashFlowEntryResponse, error) {
	switch {
	case strings.TrimSpace(operator) == "":
		return nil, fmt.Errorf("%w: operator identity is required", ledger.ErrInvalidInput)
	case !model.ValidFlowKind(req.Kind):
		return nil, fmt.Errorf("%w: unknown cash flow kind %q", ledger.ErrInvalidInput, req.Kind)
	case strings.TrimSpace(req.Description) == "":
		return nil, fmt.Errorf("%w: description is required", ledger.ErrInvalidInput)
	case !req.Amount.IsPositive():
		return nil, fmt.Errorf("%w: amount must be positive", ledger.ErrInvalidInput)
	}

	entry := model.CashFlowEntry{
		ID:          uuid.New(),
		Date:        time.Now(),
		Operator:    operator,
		Kind:        req.Kind,
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Method:      req.Method,
	}
	if err := s.cash.Append(ctx, entry); err != nil {
		return nil, err
	}
	invalidateSummary(ctx, s.summaryCache)
	resp := entryToResponse(entry)
	return &resp, nil
}

func (s *cashFlowService) ListEntries() []model.CashFlowEntry { return s.cash.Snapshot() }

func entryToResponse(e model.CashFlowEntry) dto.CashFlowEntryResponse {
	var saleID *string
	if e.SaleID != nil {
		s := e.SaleID.String()
		saleID = &s
	}
	return dto.CashFlowEntryResponse{
		ID:          e.ID.String(),
		Date:        e.Date.Format(time.RFC3339),
		Operator:    e.Operator,
		Kind:        e.Kind,
		Description: e.Description,
		Amount:      e.Amount,
		Method:      e.Method,
		SaleID:      saleID,
	}
}
