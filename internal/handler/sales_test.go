package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/config"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/dto"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/middleware"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
)

const testSecret = "test-secret"

// ── Fixture ───────────────────────────────────────────────────────────────────

type apiFixture struct {
	router *gin.Engine
	token  string
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	store := ledger.NewMemoryStore()
	require.NoError(t, store.WriteInventory(ctx, []model.Product{
		{Name: "Camisa Oversized", Quantity: 10, UnitPrice: decimal.NewFromInt(80), UnitCost: decimal.NewFromInt(40), UpdatedAt: time.Now()},
	}))

	inventorySvc, err := service.NewInventoryService(ctx, store)
	require.NoError(t, err)
	salesBook, err := ledger.NewSalesBook(ctx, store)
	require.NoError(t, err)
	cashBook, err := ledger.NewCashBook(ctx, store)
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:          testSecret,
		JWTExpirationHours: 1,
		AccessCodes:        "0802:Pedro Reino",
	}
	authSvc := service.NewAuthService(cfg)
	saleSvc := service.NewSaleService(inventorySvc, salesBook, cashBook, nil, nil, 5)
	cashflowSvc := service.NewCashFlowService(cashBook, nil)

	authH := NewAuthHandler(authSvc)
	salesH := NewSalesHandler(saleSvc)
	cashflowH := NewCashFlowHandler(cashflowSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.POST("/v1/auth/login", authH.Login)
	v1 := r.Group("/v1", middleware.JWTAuth(testSecret))
	{
		v1.POST("/sales", salesH.RecordSale)
		v1.GET("/sales", salesH.ListSales)
		v1.POST("/cashflow", cashflowH.RecordEntry)
		v1.GET("/cashflow", cashflowH.ListEntries)
	}

	login, err := authSvc.Login(ctx, dto.LoginRequest{AccessCode: "0802"})
	require.NoError(t, err)

	return &apiFixture{router: r, token: login.AccessToken}
}

func (f *apiFixture) do(t *testing.T, method, path string, body interface{}, authed bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func saleBody(qty int, method string) map[string]interface{} {
	return map[string]interface{}{
		"product":        "Camisa Oversized",
		"quantity":       qty,
		"payment_method": method,
	}
}

// ── Auth ──────────────────────────────────────────────────────────────────────

func TestLoginEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"access_code": "0802"}, false)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pedro Reino", resp.Operator)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestLoginEndpoint_WrongCode(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/auth/login", map[string]string{"access_code": "9999"}, false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid access code")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/sales", saleBody(1, "pix"), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/v1/sales", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

// ── Sales ─────────────────────────────────────────────────────────────────────

func TestRecordSaleEndpoint(t *testing.T) {
	f := newAPIFixture(t)

	body := saleBody(3, "pix")
	body["discount"] = 10
	w := f.do(t, http.MethodPost, "/v1/sales", body, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp dto.SaleResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Pedro Reino", resp.Operator)
	assert.Equal(t, 7, resp.RemainingStock)
	assert.Equal(t, "230", resp.Total.String())

	// The sale inflow landed in the cash ledger.
	w = f.do(t, http.MethodGet, "/v1/cashflow", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var flows dto.CashFlowListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flows))
	require.Len(t, flows.Data, 1)
	assert.Equal(t, "230", flows.Balance.String())
}

func TestRecordSaleEndpoint_InsufficientStock(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/sales", saleBody(20, "pix"), true)
	assert.Equal(t, http.StatusConflict, w.Code)

	// Nothing was written.
	w = f.do(t, http.MethodGet, "/v1/sales", nil, true)
	var list dto.SaleListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Equal(t, 0, list.Total)
}

func TestRecordSaleEndpoint_Validation(t *testing.T) {
	f := newAPIFixture(t)

	// Unknown payment method is caught by the oneof tag.
	w := f.do(t, http.MethodPost, "/v1/sales", saleBody(1, "check"), true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Credit without customer is caught by the engine.
	w = f.do(t, http.MethodPost, "/v1/sales", saleBody(1, "credit"), true)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// Unknown product.
	body := saleBody(1, "pix")
	body["product"] = "Bermuda"
	w = f.do(t, http.MethodPost, "/v1/sales", body, true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

// ── Cash flow ─────────────────────────────────────────────────────────────────

func TestCashFlowEndpoints(t *testing.T) {
	f := newAPIFixture(t)

	w := f.do(t, http.MethodPost, "/v1/cashflow", map[string]interface{}{
		"kind":        "outflow",
		"description": "compra de embalagens",
		"amount":      45,
	}, true)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = f.do(t, http.MethodGet, "/v1/cashflow", nil, true)
	require.Equal(t, http.StatusOK, w.Code)
	var flows dto.CashFlowListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &flows))
	require.Len(t, flows.Data, 1)
	assert.Equal(t, "Pedro Reino", flows.Data[0].Operator)
	assert.Equal(t, "-45", flows.Balance.String())
}
