package router

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pedrobenicio2014-boop/UrroVendas/internal/cache"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/config"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/handler"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/infra"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/ledger"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/middleware"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/service"
	"github.com/pedrobenicio2014-boop/UrroVendas/internal/worker"
)

// New wires all dependencies and returns a configured Gin engine plus the
// resources the caller owns (db may be nil for the csv/memory drivers, rdb
// nil when redis is disabled).
// Dependency graph: Handler ← Service ← Books/Inventory ← Store
func New(ctx context.Context, cfg *config.Config) (*gin.Engine, *gorm.DB, *redis.Client, error) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// ── Ledger store ─────────────────────────────────────────────────────────
	var (
		store ledger.Store
		db    *gorm.DB
		err   error
	)
	switch cfg.StoreDriver {
	case "sqlite":
		db, err = infra.NewDatabase(cfg.DatabasePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open database: %w", err)
		}
		store = ledger.NewGormStore(db)
	case "csv":
		store, err = ledger.NewCSVStore(cfg.DataDir)
		if err != nil {
			return nil, nil, nil, err
		}
	default: // memory — validated by config
		store = ledger.NewMemoryStore()
	}
	store = ledger.NewRetryStore(store, cfg.RetryAttempts, 50*time.Millisecond)

	// ── Optional redis: report cache + alert worker ──────────────────────────
	var (
		rdb          *redis.Client
		summaryCache cache.SummaryCache = cache.NoopSummaryCache{}
		dispatcher   *worker.Dispatcher
	)
	if cfg.RedisURL != "" {
		rdb, err = infra.NewRedis(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		summaryCache = cache.NewRedisSummaryCache(rdb)
		dispatcher = worker.NewDispatcher(rdb)
	}

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc, err := service.NewInventoryService(ctx, store)
	if err != nil {
		return nil, nil, nil, err
	}
	salesBook, err := ledger.NewSalesBook(ctx, store)
	if err != nil {
		return nil, nil, nil, err
	}
	cashBook, err := ledger.NewCashBook(ctx, store)
	if err != nil {
		return nil, nil, nil, err
	}

	authSvc := service.NewAuthService(cfg)
	saleSvc := service.NewSaleService(inventorySvc, salesBook, cashBook, dispatcher, summaryCache, cfg.LowStockThreshold)
	cashflowSvc := service.NewCashFlowService(cashBook, summaryCache)
	reportSvc := service.NewReportService(inventorySvc, saleSvc, cashflowSvc, summaryCache, cfg.LowStockThreshold)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	salesH := handler.NewSalesHandler(saleSvc)
	inventoryH := handler.NewInventoryHandler(inventorySvc)
	cashflowH := handler.NewCashFlowHandler(cashflowSvc)
	reportsH := handler.NewReportsHandler(reportSvc)

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute))

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))
	r.POST("/v1/auth/login", middleware.LoginRateLimiter(), authH.Login)

	v1 := r.Group("/v1", middleware.JWTAuth(cfg.JWTSecret))
	{
		v1.POST("/sales", salesH.RecordSale)
		v1.GET("/sales", salesH.ListSales)

		v1.GET("/inventory", inventoryH.ListCatalog)
		v1.PUT("/inventory", inventoryH.ReplaceCatalog)

		v1.POST("/cashflow", cashflowH.RecordEntry)
		v1.GET("/cashflow", cashflowH.ListEntries)

		reports := v1.Group("/reports")
		{
			reports.GET("/summary", reportsH.Summary)
			reports.GET("/low-stock", reportsH.LowStock)
			reports.GET("/debtors", reportsH.Debtors)
			reports.GET("/daily", reportsH.DailySeries)
		}
	}

	return r, db, rdb, nil
}
