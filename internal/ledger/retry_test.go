package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// countingStore fails the first failures writes with the given error, then
// delegates to a MemoryStore.
type countingStore struct {
	*MemoryStore
	failures int
	failWith error
	calls    int
}

func (s *countingStore) WriteInventory(ctx context.Context, rows []model.Product) error {
	s.calls++
	if s.calls <= s.failures {
		return s.failWith
	}
	return s.MemoryStore.WriteInventory(ctx, rows)
}

func TestRetryStore_RetriesTransientFailures(t *testing.T) {
	inner := &countingStore{
		MemoryStore: NewMemoryStore(),
		failures:    2,
		failWith:    fmt.Errorf("%w: disk full", ErrPersistence),
	}
	s := NewRetryStore(inner, 3, time.Millisecond)

	err := s.WriteInventory(context.Background(), []model.Product{
		{Name: "Camisa Oversized", Quantity: 10, UnitPrice: decimal.NewFromInt(80)},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, inner.calls)

	rows, err := s.ReadInventory(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestRetryStore_GivesUpAfterBudget(t *testing.T) {
	inner := &countingStore{
		MemoryStore: NewMemoryStore(),
		failures:    10,
		failWith:    fmt.Errorf("%w: disk full", ErrPersistence),
	}
	s := NewRetryStore(inner, 3, time.Millisecond)

	err := s.WriteInventory(context.Background(), nil)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 3, inner.calls)
}

func TestRetryStore_DoesNotRetryValidationErrors(t *testing.T) {
	inner := &countingStore{
		MemoryStore: NewMemoryStore(),
		failures:    10,
		failWith:    fmt.Errorf("%w: negative quantity", ErrInvalidInput),
	}
	s := NewRetryStore(inner, 3, time.Millisecond)

	err := s.WriteInventory(context.Background(), nil)
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, 1, inner.calls)
}

func TestRetryStore_StopsOnCancelledContext(t *testing.T) {
	inner := &countingStore{
		MemoryStore: NewMemoryStore(),
		failures:    10,
		failWith:    fmt.Errorf("%w: disk full", ErrPersistence),
	}
	s := NewRetryStore(inner, 5, 50*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.WriteInventory(ctx, nil)
	assert.True(t, errors.Is(err, context.Canceled) || errors.Is(err, ErrPersistence))
	assert.Less(t, inner.calls, 5)
}

func TestRetryStore_CoercesAttemptsToOne(t *testing.T) {
	inner := &countingStore{
		MemoryStore: NewMemoryStore(),
		failures:    10,
		failWith:    fmt.Errorf("%w: disk full", ErrPersistence),
	}
	s := NewRetryStore(inner, 0, time.Millisecond)

	err := s.WriteInventory(context.Background(), nil)
	require.ErrorIs(t, err, ErrPersistence)
	assert.Equal(t, 1, inner.calls)
}
