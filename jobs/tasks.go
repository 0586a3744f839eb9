// Package jobs runs scheduled background maintenance over the books.
package jobs

import (
	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskLedgerIntegrity re-validates every persisted journal entry.
	TaskLedgerIntegrity = "ledger:integrity"
	// TaskStockScan reports products at or below minimum stock.
	TaskStockScan = "inventory:low_stock"
)

// NewLedgerIntegrityTask constructs the integrity scan task.
func NewLedgerIntegrityTask() *asynq.Task {
	return asynq.NewTask(TaskLedgerIntegrity, nil)
}

// NewStockScanTask constructs the low-stock scan task.
func NewStockScanTask() *asynq.Task {
	return asynq.NewTask(TaskStockScan, nil)
}
