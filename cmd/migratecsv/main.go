// cmd/migratecsv/main.go — Imports the legacy CSV ledgers into sqlite.
// Uso: go run ./cmd/migratecsv -csv ./data -db ./data/urrovendas.db
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/infra"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
)

func main() {
	csvDir := flag.String("csv", "./data", "directory holding inventory.csv, sales.csv and cashflow.csv")
	dbPath := flag.String("db", "./data/urrovendas.db", "destination sqlite database")
	flag.Parse()

	src, err := ledger.NewCSVStore(*csvDir)
	if err != nil {
		log.Fatalf("open csv store: %v", err)
	}

	db, err := infra.NewDatabase(*dbPath)
	if err != nil {
		log.Fatalf("open sqlite: %v", err)
	}
	dst := ledger.NewGormStore(db)

	ctx := context.Background()

	inv, err := src.ReadInventory(ctx)
	if err != nil {
		log.Fatalf("read inventory: %v", err)
	}
	if err := dst.WriteInventory(ctx, inv); err != nil {
		log.Fatalf("write inventory: %v", err)
	}

	sales, err := src.ReadSales(ctx)
	if err != nil {
		log.Fatalf("read sales: %v", err)
	}
	if err := dst.WriteSales(ctx, sales); err != nil {
		log.Fatalf("write sales: %v", err)
	}

	flows, err := src.ReadCashFlow(ctx)
	if err != nil {
		log.Fatalf("read cash flow: %v", err)
	}
	if err := dst.WriteCashFlow(ctx, flows); err != nil {
		log.Fatalf("write cash flow: %v", err)
	}

	fmt.Printf("migrated %d products, %d sales, %d cash flow entries to %s\n",
		len(inv), len(sales), len(flows), *dbPath)
}
