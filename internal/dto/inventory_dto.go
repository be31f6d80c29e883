package dto

import "github.com/shopspring/decimal"

type ProductResponse struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

type InventoryResponse struct {
	Data []ProductResponse `json:"data"`
}

type CatalogItem struct {
	Name      string          `json:"name"       validate:"required"`
	Quantity  int             `json:"quantity"   validate:"min=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"min=0"`
	UnitCost  decimal.Decimal `json:"unit_cost"  validate:"min=0"`
}

// ReplaceCatalogRequest is the administrative bulk overwrite used by the
// inventory editing screen. It replaces the whole catalog in one shot.
type ReplaceCatalogRequest struct {
	Items []CatalogItem `json:"items" validate:"required,min=1,dive"`
}
