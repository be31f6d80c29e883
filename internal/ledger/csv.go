package ledger

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// CSVStore persists each table as one CSV file under a data directory, the
// same medium the original spreadsheet-backed deployments used. Reads are
// header-mapped and tolerate the older column sets still found in the field:
// Portuguese headers, missing cost/profit/payment columns, day-first dates.
// Writes always emit the canonical schema, atomically (temp file + rename).
type CSVStore struct {
	dir string
}

func NewCSVStore(dir string) (*CSVStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", ErrPersistence, err)
	}
	return &CSVStore{dir: dir}, nil
}

const (
	fileInventory = "inventory.csv"
	fileSales     = "sales.csv"
	fileCashFlow  = "cashflow.csv"
)

// header aliases, lowercased: canonical name -> accepted legacy names.
var columnAliases = map[string][]string{
	"name":           {"name", "produto", "product"},
	"quantity":       {"quantity", "quantidade", "qtd"},
	"unit_price":     {"unit_price", "preço unitário", "preco unitario", "price"},
	"unit_cost":      {"unit_cost", "custo", "cost"},
	"id":             {"id"},
	"created_at":     {"created_at", "data", "date"},
	"operator":       {"operator", "vendedor"},
	"customer":       {"customer", "cliente"},
	"model":          {"model", "modelo"},
	"size":           {"size", "tamanho"},
	"discount":       {"discount", "desconto"},
	"total":          {"total", "valor total"},
	"profit":         {"profit", "lucro"},
	"payment_method": {"payment_method", "pagamento", "forma de pagamento"},
	"idempotency_key": {"idempotency_key"},
	"kind":           {"kind", "tipo"},
	"description":    {"description", "descricao", "descrição"},
	"amount":         {"amount", "valor"},
	"method":         {"method", "metodo", "método"},
	"sale_id":        {"sale_id"},
}

// row provides name-based access to one CSV record via the header map.
type row struct {
	cols map[string]int
	rec  []string
}

func (r row) str(name string) string {
	i, ok := r.cols[name]
	if !ok || i >= len(r.rec) {
		return ""
	}
	return strings.TrimSpace(r.rec[i])
}

func (r row) intVal(name string) int {
	n, err := strconv.Atoi(r.str(name))
	if err != nil {
		return 0
	}
	return n
}

// dec returns the decimal value of a column, zero when absent or malformed.
// Older revisions wrote Brazilian "1.234,50" formatting; normalize first.
func (r row) dec(name string) decimal.Decimal {
	s := r.str(name)
	if s == "" {
		return decimal.Zero
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"02/01/2006 15:04", // day-first, the original register format
	"2006-01-02 15:04:05",
	"02/01/2006",
	"2006-01-02",
}

func (r row) timeVal(name string) time.Time {
	s := r.str(name)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}

func headerMap(header []string) map[string]int {
	byAlias := make(map[string]string)
	for canonical, aliases := range columnAliases {
		for _, a := range aliases {
			byAlias[a] = canonical
		}
	}
	cols := make(map[string]int)
	for i, h := range header {
		if canonical, ok := byAlias[strings.ToLower(strings.TrimSpace(h))]; ok {
			cols[canonical] = i
		}
	}
	return cols
}

func (s *CSVStore) readFile(name string) ([]row, error) {
	f, err := os.Open(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil, nil // first use: empty snapshot
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrPersistence, name, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrPersistence, name, err)
	}
	if len(records) < 2 {
		return nil, nil
	}
	cols := headerMap(records[0])
	rows := make([]row, 0, len(records)-1)
	for _, rec := range records[1:] {
		rows = append(rows, row{cols: cols, rec: rec})
	}
	return rows, nil
}

func (s *CSVStore) writeFile(name string, header []string, records [][]string) error {
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", ErrPersistence, name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(header); err == nil {
		err = w.WriteAll(records)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrPersistence, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: sync %s: %v", ErrPersistence, name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrPersistence, name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrPersistence, name, err)
	}
	return nil
}

// ── Inventory ────────────────────────────────────────────────────────────────

func (s *CSVStore) ReadInventory(_ context.Context) ([]model.Product, error) {
	rows, err := s.readFile(fileInventory)
	if err != nil {
		return nil, err
	}
	out := make([]model.Product, 0, len(rows))
	for i, r := range rows {
		name := r.str("name")
		if name == "" {
			continue
		}
		qty := r.intVal("quantity")
		if qty < 0 {
			return nil, fmt.Errorf("%w: negative quantity for %s in %s", ErrInvalidInput, name, fileInventory)
		}
		out = append(out, model.Product{
			Name:      name,
			Quantity:  qty,
			UnitPrice: r.dec("unit_price"),
			UnitCost:  r.dec("unit_cost"), // missing column defaults to 0
			Position:  i,
		})
	}
	return out, nil
}

func (s *CSVStore) WriteInventory(_ context.Context, rows []model.Product) error {
	if err := validateInventory(rows); err != nil {
		return err
	}
	records := make([][]string, 0, len(rows))
	for _, p := range rows {
		records = append(records, []string{
			p.Name,
			strconv.Itoa(p.Quantity),
			p.UnitPrice.String(),
			p.UnitCost.String(),
		})
	}
	return s.writeFile(fileInventory, []string{"name", "quantity", "unit_price", "unit_cost"}, records)
}

// ── Sales ────────────────────────────────────────────────────────────────────

func (s *CSVStore) ReadSales(_ context.Context) ([]model.SaleRecord, error) {
	rows, err := s.readFile(fileSales)
	if err != nil {
		return nil, err
	}
	out := make([]model.SaleRecord, 0, len(rows))
	for _, r := range rows {
		rec := model.SaleRecord{
			CreatedAt:     r.timeVal("created_at"),
			Operator:      r.str("operator"),
			Customer:      r.str("customer"),
			// "product"/"produto" headers canonicalize to "name".
			Product:       r.str("name"),
			Model:         r.str("model"),
			Size:          r.str("size"),
			Quantity:      r.intVal("quantity"),
			Discount:      r.dec("discount"),
			Total:         r.dec("total"),
			Profit:        r.dec("profit"),
			PaymentMethod: r.str("payment_method"),
		}
		if rec.Product == "" {
			continue
		}
		// Defaulting rules for rows written by older revisions.
		if id, err := uuid.Parse(r.str("id")); err == nil {
			rec.ID = id
		} else {
			rec.ID = uuid.New()
		}
		if rec.PaymentMethod == "" {
			rec.PaymentMethod = model.PaymentCash
		}
		if r.str("profit") == "" {
			// No cost column in old rows either, so cost defaults to 0.
			rec.Profit = rec.Total
		}
		if key := r.str("idempotency_key"); key != "" {
			rec.IdempotencyKey = &key
		}
		out = append(out, rec)
	}
	return out, nil
}

func (s *CSVStore) WriteSales(_ context.Context, rows []model.SaleRecord) error {
	records := make([][]string, 0, len(rows))
	for _, v := range rows {
		key := ""
		if v.IdempotencyKey != nil {
			key = *v.IdempotencyKey
		}
		records = append(records, []string{
			v.ID.String(),
			v.CreatedAt.Format(time.RFC3339),
			v.Operator, v.Customer, v.Product, v.Model, v.Size,
			strconv.Itoa(v.Quantity),
			v.Discount.String(), v.Total.String(), v.Profit.String(),
			v.PaymentMethod, key,
		})
	}
	header := []string{
		"id", "created_at", "operator", "customer", "product", "model", "size",
		"quantity", "discount", "total", "profit", "payment_method", "idempotency_key",
	}
	return s.writeFile(fileSales, header, records)
}

// ── CashFlow ─────────────────────────────────────────────────────────────────

func (s *CSVStore) ReadCashFlow(_ context.Context) ([]model.CashFlowEntry, error) {
	rows, err := s.readFile(fileCashFlow)
	if err != nil {
		return nil, err
	}
	out := make([]model.CashFlowEntry, 0, len(rows))
	for _, r := range rows {
		e := model.CashFlowEntry{
			Date:        r.timeVal("created_at"),
			Operator:    r.str("operator"),
			Kind:        r.str("kind"),
			Description: r.str("description"),
			Amount:      r.dec("amount"),
			Method:      r.str("method"),
		}
		if e.Description == "" && e.Amount.IsZero() {
			continue
		}
		if id, err := uuid.Parse(r.str("id")); err == nil {
			e.ID = id
		} else {
			e.ID = uuid.New()
		}
		if !model.ValidFlowKind(e.Kind) {
			e.Kind = model.FlowInflow
		}
		if sid, err := uuid.Parse(r.str("sale_id")); err == nil {
			e.SaleID = &sid
		}
		out = append(out, e)
	}
	return out, nil
}

func (s *CSVStore) WriteCashFlow(_ context.Context, rows []model.CashFlowEntry) error {
	records := make([][]string, 0, len(rows))
	for _, e := range rows {
		saleID := ""
		if e.SaleID != nil {
			saleID = e.SaleID.String()
		}
		records = append(records, []string{
			e.ID.String(),
			e.Date.Format(time.RFC3339),
			e.Operator, e.Kind, e.Description,
			e.Amount.String(), e.Method, saleID,
		})
	}
	header := []string{"id", "date", "operator", "kind", "description", "amount", "method", "sale_id"}
	return s.writeFile(fileCashFlow, header, records)
}

var _ Store = (*CSVStore)(nil)
