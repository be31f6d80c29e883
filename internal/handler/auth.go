package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/apierror"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

type AuthHandler struct{ svc service.AuthService }

func NewAuthHandler(svc service.AuthService) *AuthHandler { return &AuthHandler{svc: svc} }

// Login exchanges a register access code for a session token. Unknown codes
// always answer 401 with the same message — no oracle for valid codes.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Login(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("invalid access code"))
		return
	}
	c.JSON(http.StatusOK, resp)
}
