package ledger

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

func newTestCSVStore(t *testing.T) *CSVStore {
	t.Helper()
	s, err := NewCSVStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestCSVStore_EmptyOnFirstUse(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	inv, err := s.ReadInventory(ctx)
	require.NoError(t, err)
	assert.Empty(t, inv)

	sales, err := s.ReadSales(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)

	flows, err := s.ReadCashFlow(ctx)
	require.NoError(t, err)
	assert.Empty(t, flows)
}

func TestCSVStore_InventoryRoundTrip(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	in := []model.Product{
		{Name: "Camisa Oversized", Quantity: 100, UnitPrice: decimal.NewFromInt(80), UnitCost: decimal.NewFromInt(40)},
		{Name: "Camisa Suedine", Quantity: 50, UnitPrice: decimal.RequireFromString("110.50"), UnitCost: decimal.Zero},
	}
	require.NoError(t, s.WriteInventory(ctx, in))

	out, err := s.ReadInventory(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Camisa Oversized", out[0].Name)
	assert.Equal(t, 100, out[0].Quantity)
	assert.True(t, out[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, out[1].UnitPrice.Equal(decimal.RequireFromString("110.50")))
	// Catalog order survives the round trip.
	assert.Equal(t, 0, out[0].Position)
	assert.Equal(t, 1, out[1].Position)
}

func TestCSVStore_SalesRoundTrip(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	key := "retry-0001-aaaa"
	saleID := uuid.New()
	in := []model.SaleRecord{{
		ID:             saleID,
		CreatedAt:      time.Date(2026, 8, 30, 14, 30, 0, 0, time.UTC),
		Operator:       "Pedro Reino",
		Customer:       "Maria",
		Product:        "Camisa Oversized",
		Model:          "preta",
		Size:           "G",
		Quantity:       3,
		Discount:       decimal.NewFromInt(10),
		Total:          decimal.NewFromInt(230),
		Profit:         decimal.NewFromInt(110),
		PaymentMethod:  model.PaymentPix,
		IdempotencyKey: &key,
	}}
	require.NoError(t, s.WriteSales(ctx, in))

	out, err := s.ReadSales(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, saleID, out[0].ID)
	assert.Equal(t, "Pedro Reino", out[0].Operator)
	assert.Equal(t, 3, out[0].Quantity)
	assert.True(t, out[0].Total.Equal(decimal.NewFromInt(230)))
	require.NotNil(t, out[0].IdempotencyKey)
	assert.Equal(t, key, *out[0].IdempotencyKey)
	assert.True(t, out[0].CreatedAt.Equal(in[0].CreatedAt))
}

func TestCSVStore_ReadsLegacyPortugueseHeaders(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSVStore(dir)
	require.NoError(t, err)

	// A sales sheet as the original register wrote it: Portuguese headers,
	// day-first dates, Brazilian number formatting, no id/cost/payment
	// columns.
	legacy := "Data,Vendedor,Cliente,Produto,Modelo,Tamanho,Quantidade,Desconto,Valor Total\n" +
		"02/01/2026 15:04,Pedro Reino,Maria,Camisa Oversized,preta,G,3,10,\"1.230,50\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales.csv"), []byte(legacy), 0o644))

	out, err := s.ReadSales(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)

	v := out[0]
	assert.Equal(t, "Camisa Oversized", v.Product)
	assert.Equal(t, "Pedro Reino", v.Operator)
	assert.Equal(t, "Maria", v.Customer)
	assert.Equal(t, 3, v.Quantity)
	assert.True(t, v.Total.Equal(decimal.RequireFromString("1230.50")), "total = %s", v.Total)
	assert.Equal(t, 2026, v.CreatedAt.Year())
	assert.Equal(t, time.January, v.CreatedAt.Month())
	assert.Equal(t, 2, v.CreatedAt.Day())

	// Defaulting for columns legacy sheets never had.
	assert.NotEqual(t, uuid.Nil, v.ID)
	assert.Equal(t, model.PaymentCash, v.PaymentMethod)
	assert.True(t, v.Profit.Equal(v.Total), "profit defaults to total when absent")
}

func TestCSVStore_ReadsLegacyInventoryHeaders(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSVStore(dir)
	require.NoError(t, err)

	legacy := "Produto,Quantidade,Preço Unitário\n" +
		"Camisa Oversized,100,80\n" +
		"Camisa Suedine,50,\"110,00\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.csv"), []byte(legacy), 0o644))

	out, err := s.ReadInventory(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 100, out[0].Quantity)
	assert.True(t, out[0].UnitPrice.Equal(decimal.NewFromInt(80)))
	assert.True(t, out[0].UnitCost.IsZero(), "missing cost column defaults to 0")
	assert.True(t, out[1].UnitPrice.Equal(decimal.NewFromInt(110)))
}

func TestCSVStore_RejectsNegativeQuantity(t *testing.T) {
	dir := t.TempDir()
	s, err := NewCSVStore(dir)
	require.NoError(t, err)

	bad := "name,quantity,unit_price\nCamisa Oversized,-3,80\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "inventory.csv"), []byte(bad), 0o644))

	_, err = s.ReadInventory(context.Background())
	assert.ErrorIs(t, err, ErrInvalidInput)

	err = s.WriteInventory(context.Background(), []model.Product{
		{Name: "Camisa Oversized", Quantity: -1, UnitPrice: decimal.NewFromInt(80)},
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCSVStore_CashFlowRoundTrip(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	saleID := uuid.New()
	in := []model.CashFlowEntry{
		{
			ID:          uuid.New(),
			Date:        time.Date(2026, 8, 30, 9, 0, 0, 0, time.UTC),
			Operator:    "Pedro Reino",
			Kind:        model.FlowInflow,
			Description: "sale " + saleID.String(),
			Amount:      decimal.NewFromInt(230),
			Method:      model.PaymentPix,
			SaleID:      &saleID,
		},
		{
			ID:          uuid.New(),
			Date:        time.Date(2026, 8, 30, 18, 0, 0, 0, time.UTC),
			Operator:    "Lucas Saboia",
			Kind:        model.FlowOutflow,
			Description: "compra de embalagens",
			Amount:      decimal.RequireFromString("45.90"),
		},
	}
	require.NoError(t, s.WriteCashFlow(ctx, in))

	out, err := s.ReadCashFlow(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, model.FlowInflow, out[0].Kind)
	require.NotNil(t, out[0].SaleID)
	assert.Equal(t, saleID, *out[0].SaleID)
	assert.Nil(t, out[1].SaleID)
	assert.True(t, out[1].Amount.Equal(decimal.RequireFromString("45.90")))
}

func TestCSVStore_SalesSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	s1, err := NewCSVStore(dir)
	require.NoError(t, err)
	book, err := NewSalesBook(ctx, s1)
	require.NoError(t, err)

	rec := model.SaleRecord{
		ID:            uuid.New(),
		CreatedAt:     time.Now(),
		Operator:      "Pedro Reino",
		Product:       "Camisa Oversized",
		Quantity:      2,
		Discount:      decimal.Zero,
		Total:         decimal.NewFromInt(160),
		Profit:        decimal.NewFromInt(80),
		PaymentMethod: model.PaymentPix,
	}
	require.NoError(t, book.Append(ctx, rec))

	// A fresh store and book over the same directory see the row.
	s2, err := NewCSVStore(dir)
	require.NoError(t, err)
	reloaded, err := NewSalesBook(ctx, s2)
	require.NoError(t, err)

	rows := reloaded.Snapshot()
	require.Len(t, rows, 1)
	assert.Equal(t, rec.ID, rows[0].ID)
	assert.Equal(t, "Camisa Oversized", rows[0].Product)
	assert.True(t, rows[0].Total.Equal(decimal.NewFromInt(160)))
}

func TestCSVStore_WriteReplacesSnapshot(t *testing.T) {
	s := newTestCSVStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteInventory(ctx, []model.Product{
		{Name: "Camisa Oversized", Quantity: 100, UnitPrice: decimal.NewFromInt(80)},
	}))
	require.NoError(t, s.WriteInventory(ctx, []model.Product{
		{Name: "Camisa Polo", Quantity: 30, UnitPrice: decimal.NewFromInt(95)},
	}))

	out, err := s.ReadInventory(ctx)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Camisa Polo", out[0].Name)
}
