package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/middleware"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

type SalesHandler struct{ svc service.SaleService }

func NewSalesHandler(svc service.SaleService) *SalesHandler { return &SalesHandler{svc: svc} }

// RecordSale runs the whole sale transaction: stock decrement, sales ledger
// append, conditional cash inflow. 409 means insufficient stock and nothing
// was written.
func (h *SalesHandler) RecordSale(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operator := middleware.GetOperator(c)

	resp, err := h.svc.RecordSale(c.Request.Context(), operator, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListSales returns the full sales ledger snapshot, oldest first. The export
// surface consumes these rows unchanged.
func (h *SalesHandler) ListSales(c *gin.Context) {
	rows := h.svc.ListSales()
	data := make([]dto.SaleResponse, 0, len(rows))
	for _, v := range rows {
		data = append(data, dto.SaleResponse{
			ID:            v.ID.String(),
			Product:       v.Product,
			Model:         v.Model,
			Size:          v.Size,
			Quantity:      v.Quantity,
			Discount:      v.Discount,
			Total:         v.Total,
			Profit:        v.Profit,
			PaymentMethod: v.PaymentMethod,
			Customer:      v.Customer,
			Operator:      v.Operator,
			CreatedAt:     v.CreatedAt.Format(time.RFC3339),
		})
	}
	c.JSON(http.StatusOK, dto.SaleListResponse{Data: data, Total: len(data)})
}
