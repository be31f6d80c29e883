package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	resp, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *ReportsHandler) LowStock(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.LowStock())
}

func (h *ReportsHandler) Debtors(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.Debtors())
}

func (h *ReportsHandler) DailySeries(c *gin.Context) {
	c.JSON(http.StatusOK, h.svc.DailySeries())
}
