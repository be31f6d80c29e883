package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Cash flow entry kinds. Entries are NEVER modified or deleted — corrections
// are recorded as new entries of the opposite kind.
const (
	FlowInflow  = "inflow"
	FlowOutflow = "outflow"
)

// ValidFlowKind reports whether k is a known cash flow kind.
func ValidFlowKind(k string) bool { return k == FlowInflow || k == FlowOutflow }

// CashFlowEntry is an immutable row of the cash ledger. One inflow entry is
// generated automatically per non-credit sale; manual entries record expenses
// and out-of-band receipts.
type CashFlowEntry struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Date        time.Time       `gorm:"index" json:"date"`
	Operator    string          `gorm:"not null" json:"operator"`
	Kind        string          `gorm:"type:varchar(10);not null" json:"kind"`
	Description string          `gorm:"not null" json:"description"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Method      string          `gorm:"type:varchar(20)" json:"method"`
	// SaleID links auto-generated entries to the originating sale.
	SaleID *uuid.UUID `gorm:"type:uuid" json:"sale_id,omitempty"`
}
