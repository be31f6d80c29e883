package ledger

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// GormStore persists the three tables in an embedded sqlite database.
// Full-replace writes run as a single transaction (delete-all + batch insert)
// so a snapshot is either fully replaced or untouched.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore { return &GormStore{db: db} }

func (s *GormStore) ReadInventory(ctx context.Context) ([]model.Product, error) {
	return readRows[model.Product](ctx, s.db, "position ASC")
}

func (s *GormStore) WriteInventory(ctx context.Context, rows []model.Product) error {
	if err := validateInventory(rows); err != nil {
		return err
	}
	return replaceRows(ctx, s.db, rows)
}

func (s *GormStore) ReadSales(ctx context.Context) ([]model.SaleRecord, error) {
	return readRows[model.SaleRecord](ctx, s.db, "created_at ASC")
}

func (s *GormStore) WriteSales(ctx context.Context, rows []model.SaleRecord) error {
	return replaceRows(ctx, s.db, rows)
}

func (s *GormStore) ReadCashFlow(ctx context.Context) ([]model.CashFlowEntry, error) {
	return readRows[model.CashFlowEntry](ctx, s.db, "date ASC")
}

func (s *GormStore) WriteCashFlow(ctx context.Context, rows []model.CashFlowEntry) error {
	return replaceRows(ctx, s.db, rows)
}

func readRows[T any](ctx context.Context, db *gorm.DB, order string) ([]T, error) {
	var rows []T
	if err := db.WithContext(ctx).Order(order).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return rows, nil
}

func replaceRows[T any](ctx context.Context, db *gorm.DB, rows []T) error {
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var zero T
		if err := tx.Where("1 = 1").Delete(&zero).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 200).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

var _ Store = (*GormStore)(nil)
