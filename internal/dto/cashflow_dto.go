package dto

import "github.com/shopspring/decimal"

// ManualEntryRequest records an out-of-band cash movement (expense, manual
// receipt). Sale inflows are never created through this path.
type ManualEntryRequest struct {
	Kind        string          `json:"kind"        validate:"required,oneof=inflow outflow"`
	Description string          `json:"description" validate:"required,min=3"`
	Amount      decimal.Decimal `json:"amount"      validate:"required"`
	Method      string          `json:"method"`
}

type CashFlowEntryResponse struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Operator    string          `json:"operator"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method"`
	SaleID      *string         `json:"sale_id,omitempty"`
}

type CashFlowListResponse struct {
	Data    []CashFlowEntryResponse `json:"data"`
	Balance decimal.Decimal         `json:"balance"`
}
