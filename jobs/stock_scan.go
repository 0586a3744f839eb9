package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/notify"
)

// StockScanner sweeps the catalog for products at or below minimum stock.
type StockScanner struct {
	inventory *inventory.Service
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewStockScanner constructs the low-stock sweep.
func NewStockScanner(inv *inventory.Service, notifier notify.Notifier, logger *slog.Logger) *StockScanner {
	return &StockScanner{inventory: inv, notifier: notifier, logger: logger}
}

// Handle processes TaskStockScan tasks.
func (s *StockScanner) Handle(ctx context.Context, _ *asynq.Task) error {
	products, err := s.inventory.Products(ctx)
	if err != nil {
		return err
	}
	low := 0
	for _, product := range products {
		if product.Stock > product.MinStock {
			continue
		}
		low++
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Event{
				Severity: notify.SeverityWarning,
				Code:     "inventory.low_stock",
				Message:  "product at or below minimum stock",
				Meta: map[string]any{
					"product": product.ID,
					"stock":   product.Stock,
					"minimum": product.MinStock,
				},
			})
		}
	}
	s.logger.Info("stock scan finished",
		slog.Int("products", len(products)),
		slog.Int("low", low))
	return nil
}
