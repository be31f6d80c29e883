// Package worker carries the async side of the register: low-stock restock
// alerts. Alerts are advisory — queueing and processing failures never affect
// a sale, and the engine's invariants never depend on this package.
package worker

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	QueueLowStock = "jobs:low_stock"
	// alertHistoryKey keeps the most recent alerts for the dashboard.
	alertHistoryKey = "alerts:low_stock:recent"
	alertHistoryMax = 50
)

// LowStockAlert is enqueued by the sale engine when a sale drops a product
// under the restock threshold.
type LowStockAlert struct {
	Product   string    `json:"product"`
	Remaining int       `json:"remaining"`
	Threshold int       `json:"threshold"`
	At        time.Time `json:"at"`
}

// Dispatcher enqueues async jobs into redis lists; the worker pool dequeues
// them via BRPOP. A nil *Dispatcher disables dispatching (no redis configured).
type Dispatcher struct {
	rdb *redis.Client
}

func NewDispatcher(rdb *redis.Client) *Dispatcher { return &Dispatcher{rdb: rdb} }

// EnqueueLowStock pushes a restock alert job.
func (d *Dispatcher) EnqueueLowStock(ctx context.Context, alert LowStockAlert) error {
	if alert.At.IsZero() {
		alert.At = time.Now()
	}
	encoded, err := json.Marshal(alert)
	if err != nil {
		return err
	}
	return d.rdb.LPush(ctx, QueueLowStock, encoded).Err()
}

// StartWorkerPool launches numWorkers goroutines consuming the alert queue.
// Each goroutine blocks on BRPOP — zero CPU when idle.
func StartWorkerPool(ctx context.Context, rdb *redis.Client, numWorkers int) {
	if numWorkers < 1 {
		numWorkers = 1
	}
	for i := 0; i < numWorkers; i++ {
		go runWorker(ctx, rdb, i)
	}
	log.Info().Msgf("alert worker pool started with %d workers", numWorkers)
}

func runWorker(ctx context.Context, rdb *redis.Client, id int) {
	for {
		select {
		case <-ctx.Done():
			log.Info().Msgf("alert worker %d shutting down", id)
			return
		default:
			// Blocking pop — waits up to 5s then loops to check ctx
			result, err := rdb.BRPop(ctx, 5*time.Second, QueueLowStock).Result()
			if err != nil {
				continue // timeout or context cancelled
			}
			if len(result) < 2 {
				continue
			}
			processAlert(ctx, rdb, result[1])
		}
	}
}

func processAlert(ctx context.Context, rdb *redis.Client, raw string) {
	var alert LowStockAlert
	if err := json.Unmarshal([]byte(raw), &alert); err != nil {
		log.Error().Err(err).Msg("failed to unmarshal low-stock alert")
		return
	}

	log.Warn().
		Str("product", alert.Product).
		Int("remaining", alert.Remaining).
		Int("threshold", alert.Threshold).
		Msg("low stock — restock needed")

	// Keep a capped history so the dashboard can show recent alerts.
	pipe := rdb.Pipeline()
	pipe.LPush(ctx, alertHistoryKey, raw)
	pipe.LTrim(ctx, alertHistoryKey, 0, alertHistoryMax-1)
	if _, err := pipe.Exec(ctx); err != nil {
		log.Warn().Err(err).Msg("failed to record alert history")
	}
}
