package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/middleware"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

type CashFlowHandler struct{ svc service.CashFlowService }

func NewCashFlowHandler(svc service.CashFlowService) *CashFlowHandler {
	return &CashFlowHandler{svc: svc}
}

// RecordEntry appends a manual inflow/outflow. Sale inflows never come
// through here — the sale engine writes those itself.
func (h *CashFlowHandler) RecordEntry(c *gin.Context) {
	var req dto.ManualEntryRequest
	if !bindAndValidate(c, &req) {
		return
	}
	operator := middleware.GetOperator(c)

	resp, err := h.svc.RecordEntry(c.Request.Context(), operator, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListEntries returns the cash ledger with the running balance.
func (h *CashFlowHandler) ListEntries(c *gin.Context) {
	rows := h.svc.ListEntries()
	data := make([]dto.CashFlowEntryResponse, 0, len(rows))
	balance := decimal.Zero
	for _, e := range rows {
		if e.Kind == model.FlowOutflow {
			balance = balance.Sub(e.Amount)
		} else {
			balance = balance.Add(e.Amount)
		}
		var saleID *string
		if e.SaleID != nil {
			s := e.SaleID.String()
			saleID = &s
		}
		data = append(data, dto.CashFlowEntryResponse{
			ID:          e.ID.String(),
			Date:        e.Date.Format(time.RFC3339),
			Operator:    e.Operator,
			Kind:        e.Kind,
			Description: e.Description,
			Amount:      e.Amount,
			Method:      e.Method,
			SaleID:      saleID,
		})
	}
	c.JSON(http.StatusOK, dto.CashFlowListResponse{Data: data, Balance: balance})
}
