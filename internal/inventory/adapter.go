package inventory

import (
	"context"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// LedgerAdapter exposes the inventory service through the generator's
// stock port.
type LedgerAdapter struct {
	service *Service
}

// NewLedgerAdapter wraps a Service for the ledger generator.
func NewLedgerAdapter(service *Service) *LedgerAdapter {
	return &LedgerAdapter{service: service}
}

// Adjust applies a stock movement for an inventory-affecting entry.
func (a *LedgerAdapter) Adjust(ctx context.Context, productID string, qty float64, movement ledger.MovementType) error {
	direction := DirectionEntry
	if movement == ledger.MovementExit {
		direction = DirectionExit
	}
	return a.service.AdjustStock(ctx, productID, qty, direction)
}

// Find looks up catalog data for the cancellation cascade.
func (a *LedgerAdapter) Find(ctx context.Context, productID string) (ledger.ProductInfo, error) {
	product, err := a.service.FindProduct(ctx, productID)
	if err != nil {
		return ledger.ProductInfo{}, err
	}
	return ledger.ProductInfo{
		ID:       product.ID,
		Name:     product.Name,
		UnitCost: product.UnitCost,
		Stock:    product.Stock,
	}, nil
}
