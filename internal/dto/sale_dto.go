package dto

import "github.com/shopspring/decimal"

// RecordSaleRequest is the body of POST /v1/sales. Operator identity comes
// from the JWT, never from the body.
type RecordSaleRequest struct {
	Product       string          `json:"product"  validate:"required"`
	Model         string          `json:"model"`
	Size          string          `json:"size"`
	Quantity      int             `json:"quantity" validate:"required,min=1"`
	// Discount is an absolute amount; the total is floored at zero when it
	// exceeds quantity × unit price (observed register behavior, kept as-is).
	Discount      decimal.Decimal `json:"discount"       validate:"min=0"`
	PaymentMethod string          `json:"payment_method" validate:"required,oneof=pix credit_card debit_card cash credit"`
	// Customer is required when payment_method is credit — that name keys the
	// debtor ledger. Enforced in the service, not here.
	Customer string `json:"customer"`
	// IdempotencyKey lets a client retry a request without double-selling.
	IdempotencyKey *string `json:"idempotency_key" validate:"omitempty,min=8,max=128"`
}

type SaleResponse struct {
	ID             string          `json:"id"`
	Product        string          `json:"product"`
	Model          string          `json:"model"`
	Size           string          `json:"size"`
	Quantity       int             `json:"quantity"`
	Discount       decimal.Decimal `json:"discount"`
	Total          decimal.Decimal `json:"total"`
	Profit         decimal.Decimal `json:"profit"`
	PaymentMethod  string          `json:"payment_method"`
	Customer       string          `json:"customer"`
	Operator       string          `json:"operator"`
	RemainingStock int             `json:"remaining_stock"`
	CreatedAt      string          `json:"created_at"`
}

type SaleListResponse struct {
	Data  []SaleResponse `json:"data"`
	Total int            `json:"total"`
}
