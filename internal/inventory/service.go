package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/contaflow-erp/contaflow/internal/notify"
	"github.com/contaflow-erp/contaflow/internal/platform/kv"
)

// Collection keys used against the kv contract.
const (
	// ProductsKey holds the product collection.
	ProductsKey = "inventory:products"
	// ProductsQuarantineKey receives the raw payload when the product
	// collection fails to parse.
	ProductsQuarantineKey = "inventory:products:quarantine"
)

// Service coordinates catalog reads and stock adjustments. A single mutex
// serializes writers over the collection's read-modify-write cycle.
type Service struct {
	mu       sync.Mutex
	store    kv.Store
	notifier notify.Notifier
	now      func() time.Time
}

// NewService builds a Service. The notifier may be nil.
func NewService(store kv.Store, notifier notify.Notifier) *Service {
	return &Service{store: store, notifier: notifier, now: time.Now}
}

// WithNow overrides the clock, for tests.
func (s *Service) WithNow(now func() time.Time) {
	if now != nil {
		s.now = now
	}
}

// Products lists the catalog.
func (s *Service) Products(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// FindProduct looks up one catalog record.
func (s *Service) FindProduct(ctx context.Context, id string) (Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.load(ctx)
	if err != nil {
		return Product{}, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, nil
		}
	}
	return Product{}, ErrProductNotFound
}

// SaveProduct inserts or replaces a catalog record.
func (s *Service) SaveProduct(ctx context.Context, product Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	products, err := s.load(ctx)
	if err != nil {
		return err
	}
	product.UpdatedAt = s.now().UTC()
	replaced := false
	for i, p := range products {
		if p.ID == product.ID {
			products[i] = product
			replaced = true
			break
		}
	}
	if !replaced {
		products = append(products, product)
	}
	return s.save(ctx, products)
}

// AdjustStock applies a stock movement. An exit that would drive the
// quantity negative fails with ErrInsufficientStock before anything is
// written; crossing the minimum-stock threshold emits a low-stock warning.
func (s *Service) AdjustStock(ctx context.Context, productID string, qty float64, direction Direction) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	products, err := s.load(ctx)
	if err != nil {
		return err
	}
	idx := -1
	for i, p := range products {
		if p.ID == productID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ErrProductNotFound
	}

	product := products[idx]
	newStock := product.Stock + qty
	if direction == DirectionExit {
		newStock = product.Stock - qty
	}
	if newStock < 0 {
		return fmt.Errorf("%w: %s has %.2f units", ErrInsufficientStock, product.Name, product.Stock)
	}

	product.Stock = newStock
	product.UpdatedAt = s.now().UTC()
	products[idx] = product
	if err := s.save(ctx, products); err != nil {
		return err
	}

	if newStock <= product.MinStock && newStock > 0 && s.notifier != nil {
		s.notifier.Notify(ctx, notify.Event{
			Severity: notify.SeverityWarning,
			Code:     "inventory.low_stock",
			Message:  "product stock at or below minimum",
			Meta: map[string]any{
				"product": product.Name,
				"stock":   newStock,
				"minimum": product.MinStock,
			},
		})
	}
	return nil
}

func (s *Service) load(ctx context.Context) ([]Product, error) {
	data, err := s.store.Get(ctx, ProductsKey)
	if errors.Is(err, kv.ErrNotFound) {
		return []Product{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("inventory: read products: %w", err)
	}
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		if qerr := s.store.Set(ctx, ProductsQuarantineKey, data); qerr != nil {
			return nil, fmt.Errorf("inventory: quarantine products: %w", qerr)
		}
		if s.notifier != nil {
			s.notifier.Notify(ctx, notify.Event{
				Severity: notify.SeverityError,
				Code:     "inventory.products_malformed",
				Message:  "product collection failed to parse, raw payload quarantined",
				Meta:     map[string]any{"bytes": len(data)},
			})
		}
		return []Product{}, nil
	}
	return products, nil
}

func (s *Service) save(ctx context.Context, products []Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("inventory: encode products: %w", err)
	}
	return s.store.Set(ctx, ProductsKey, data)
}
