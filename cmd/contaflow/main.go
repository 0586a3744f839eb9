package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/contaflow-erp/contaflow/internal/app"
	"github.com/contaflow-erp/contaflow/internal/backup"
	"github.com/contaflow-erp/contaflow/internal/fiscal"
	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	ledgerhttp "github.com/contaflow-erp/contaflow/internal/ledger/http"
	ledgerreports "github.com/contaflow-erp/contaflow/internal/ledger/reports"
	"github.com/contaflow-erp/contaflow/internal/notify"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
	reportshttp "github.com/contaflow-erp/contaflow/internal/reports/http"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping server startup")
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

	store, cleanup, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("open kv store", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	journal := ledger.NewJournalStore(store, notifier)
	validator := ledger.NewValidator(notifier)
	inventoryService := inventory.NewService(store, notifier)
	generator := ledger.NewGenerator(journal, validator,
		inventory.NewLedgerAdapter(inventoryService), ledger.NewSequence(), notifier)
	reportsService := ledgerreports.NewService(journal, notifier)
	backupManager := backup.NewManager(store)

	fiscalClient := fiscal.NewClient(logger, cfg.FiscalBaseURL, cfg.FiscalAPIKey, cfg.FiscalNIT)
	if err := fiscalClient.VerifyConnection(ctx); err != nil {
		logger.Warn("fiscal endpoint unreachable", slog.Any("error", err))
	}

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		LedgerHandler:    ledgerhttp.NewHandler(logger, generator),
		ReportsHandler:   reportshttp.NewHandler(logger, reportsService),
		InventoryHandler: inventory.NewHandler(logger, inventoryService),
		BackupHandler:    backup.NewHandler(logger, backupManager),
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", cfg.AppAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}

// openStore selects the kv backend from configuration.
func openStore(ctx context.Context, cfg *app.Config) (kv.Store, func(), error) {
	switch cfg.KVBackend {
	case "redis":
		store, err := kv.NewRedis(ctx, cfg.RedisAddr, cfg.KVPrefix)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil
	case "postgres":
		store, err := kv.NewPostgres(ctx, cfg.PGDSN)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	case "memory":
		return kv.NewMemory(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown KV_BACKEND %q", cfg.KVBackend)
	}
}
