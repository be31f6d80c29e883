package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment methods accepted at the register.
// PaymentCredit ("fiado") is the only method excluded from cash flow — the
// amount is tracked as a receivable in the debtor view instead.
const (
	PaymentPix        = "pix"
	PaymentCreditCard = "credit_card"
	PaymentDebitCard  = "debit_card"
	PaymentCash       = "cash"
	PaymentCredit     = "credit"
)

// ValidPaymentMethod reports whether m is one of the accepted methods.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentPix, PaymentCreditCard, PaymentDebitCard, PaymentCash, PaymentCredit:
		return true
	}
	return false
}

// SaleRecord is an immutable row of the sales ledger. Rows are only ever
// appended by the transaction engine; price and cost are captured as of sale
// time so later catalog edits never change history.
type SaleRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	Operator  string    `gorm:"not null" json:"operator"`
	// Customer is a free-text label; required only for credit sales, where it
	// keys the debtor view.
	Customer      string          `json:"customer"`
	Product       string          `gorm:"index;not null" json:"product"`
	Model         string          `json:"model"`
	Size          string          `json:"size"`
	Quantity      int             `gorm:"not null" json:"quantity"`
	Discount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discount"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Profit        decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"profit"`
	PaymentMethod string          `gorm:"type:varchar(20);not null" json:"payment_method"`
	// IdempotencyKey is set when the client supplied one; a replayed key
	// returns this row instead of recording a second sale.
	IdempotencyKey *string `gorm:"uniqueIndex" json:"idempotency_key,omitempty"`
}
