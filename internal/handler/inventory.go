package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

type InventoryHandler struct{ svc service.InventoryService }

func NewInventoryHandler(svc service.InventoryService) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// ListCatalog returns the catalog in its stable order.
func (h *InventoryHandler) ListCatalog(c *gin.Context) {
	products := h.svc.ListProducts()
	data := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		data = append(data, dto.ProductResponse{
			Name:      p.Name,
			Quantity:  p.Quantity,
			UnitPrice: p.UnitPrice,
			UnitCost:  p.UnitCost,
		})
	}
	c.JSON(http.StatusOK, dto.InventoryResponse{Data: data})
}

// ReplaceCatalog is the administrative bulk overwrite from the inventory
// editing screen. It replaces the whole table; negative quantities are
// rejected before anything is written.
func (h *InventoryHandler) ReplaceCatalog(c *gin.Context) {
	var req dto.ReplaceCatalogRequest
	if !bindAndValidate(c, &req) {
		return
	}

	items := make([]model.Product, 0, len(req.Items))
	for _, it := range req.Items {
		items = append(items, model.Product{
			Name:      it.Name,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			UnitCost:  it.UnitCost,
		})
	}
	if err := h.svc.ReplaceCatalog(c.Request.Context(), items); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
