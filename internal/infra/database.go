package infra

import (
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/model"
)

// NewDatabase opens (creating if needed) the embedded sqlite database backing
// the ledger store and migrates the three tables. One register, one file —
// no server database to operate.
func NewDatabase(path string) (*gorm.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	// Snapshot writes are serialized by the engine; a single connection keeps
	// sqlite's locking out of the picture.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&model.Product{},
		&model.SaleRecord{},
		&model.CashFlowEntry{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}
