package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one row of the mutable inventory catalog. The name is the
// identity: there is exactly one row per product and the engine references
// products by name, never by surrogate id.
// Quantity never goes negative — TryDecrement is the only mutation path
// besides the administrative bulk overwrite.
type Product struct {
	Name     string          `gorm:"primaryKey" json:"name"`
	Quantity int             `gorm:"not null;default:0" json:"quantity"`
	// UnitPrice/UnitCost are the catalog values captured onto each sale at
	// sale time; changing them never rewrites historical sales.
	UnitPrice decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"unit_price"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"unit_cost"`
	// Position preserves catalog order across full-snapshot round trips.
	Position  int       `gorm:"not null;default:0" json:"-"`
	UpdatedAt time.Time `json:"updated_at"`
}
