package ledger

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// RetryStore wraps a Store with bounded retries on persistence failures.
// Transient I/O errors (a busy sqlite file, a flaky network share holding the
// CSV directory) get a bounded number of attempts with a short backoff; after
// that the failure propagates to the caller. Validation errors are never
// retried — the input will not get better.
type RetryStore struct {
	inner    Store
	attempts int
	backoff  time.Duration
}

// NewRetryStore builds the wrapper. attempts < 1 is coerced to 1 (no retry).
func NewRetryStore(inner Store, attempts int, backoff time.Duration) *RetryStore {
	if attempts < 1 {
		attempts = 1
	}
	return &RetryStore{inner: inner, attempts: attempts, backoff: backoff}
}

func (s *RetryStore) do(ctx context.Context, op string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.attempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrPersistence) {
			return err
		}
		if attempt < s.attempts {
			log.Warn().Str("op", op).Int("attempt", attempt).Err(err).Msg("store call failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.backoff * time.Duration(attempt)):
			}
		}
	}
	log.Error().Str("op", op).Int("attempts", s.attempts).Err(err).Msg("store call failed permanently")
	return err
}

func (s *RetryStore) ReadInventory(ctx context.Context) ([]model.Product, error) {
	var rows []model.Product
	err := s.do(ctx, "read_inventory", func() (e error) {
		rows, e = s.inner.ReadInventory(ctx)
		return
	})
	return rows, err
}

func (s *RetryStore) WriteInventory(ctx context.Context, rows []model.Product) error {
	return s.do(ctx, "write_inventory", func() error { return s.inner.WriteInventory(ctx, rows) })
}

func (s *RetryStore) ReadSales(ctx context.Context) ([]model.SaleRecord, error) {
	var rows []model.SaleRecord
	err := s.do(ctx, "read_sales", func() (e error) {
		rows, e = s.inner.ReadSales(ctx)
		return
	})
	return rows, err
}

func (s *RetryStore) WriteSales(ctx context.Context, rows []model.SaleRecord) error {
	return s.do(ctx, "write_sales", func() error { return s.inner.WriteSales(ctx, rows) })
}

func (s *RetryStore) ReadCashFlow(ctx context.Context) ([]model.CashFlowEntry, error) {
	var rows []model.CashFlowEntry
	err := s.do(ctx, "read_cashflow", func() (e error) {
		rows, e = s.inner.ReadCashFlow(ctx)
		return
	})
	return rows, err
}

func (s *RetryStore) WriteCashFlow(ctx context.Context, rows []model.CashFlowEntry) error {
	return s.do(ctx, "write_cashflow", func() error { return s.inner.WriteCashFlow(ctx, rows) })
}

var _ Store = (*RetryStore)(nil)
