package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/contaflow-erp/contaflow/internal/app"
	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/notify"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
	"github.com/contaflow-erp/contaflow/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)
	notifier := notify.NewLogger(logger)

	store, err := kv.NewRedis(ctx, cfg.RedisAddr, cfg.KVPrefix)
	if err != nil {
		logger.Error("open kv store", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	journal := ledger.NewJournalStore(store, notifier)
	validator := ledger.NewValidator(notifier)
	inventoryService := inventory.NewService(store, notifier)

	integrity := jobs.NewIntegrityChecker(journal, validator, notifier, logger)
	stockScan := jobs.NewStockScanner(inventoryService, notifier, logger)

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskLedgerIntegrity, Handler: integrity.Handle},
			{Type: jobs.TaskStockScan, Handler: stockScan.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: cfg.IntegrityScanCron, Task: jobs.NewLedgerIntegrityTask()},
			{Spec: cfg.StockScanCron, Task: jobs.NewStockScanTask()},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started",
		slog.String("integrity_cron", cfg.IntegrityScanCron),
		slog.String("stock_cron", cfg.StockScanCron))
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}
