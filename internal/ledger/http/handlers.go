// Package ledgerhttp exposes the entry generator as a JSON API.
package ledgerhttp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/contaflow-erp/contaflow/internal/inventory"
	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/platform/httpx"
)

// Handler wires business event endpoints to the generator.
type Handler struct {
	logger    *slog.Logger
	generator *ledger.Generator
	validate  *validator.Validate
}

// NewHandler constructs the ledger event handler.
func NewHandler(logger *slog.Logger, generator *ledger.Generator) *Handler {
	return &Handler{
		logger:    logger,
		generator: generator,
		validate:  validator.New(),
	}
}

// MountRoutes registers event endpoints on the router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/sales", h.CreateSale)
	r.Post("/purchases", h.CreatePurchase)
	r.Post("/purchase-payments", h.CreatePurchasePayment)
	r.Post("/invoice-payments", h.CreateInvoicePayment)
	r.Post("/inventory-movements", h.CreateInventoryMovement)
	r.Post("/invoice-cancellations", h.CancelInvoice)
}

type invoiceItemRequest struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity" validate:"gt=0"`
}

type invoiceRequest struct {
	Number   string               `json:"number" validate:"required"`
	Subtotal float64              `json:"subtotal" validate:"gte=0"`
	Tax      float64              `json:"tax" validate:"gte=0"`
	Total    float64              `json:"total" validate:"gte=0"`
	Items    []invoiceItemRequest `json:"items" validate:"dive"`
}

type purchaseRequest struct {
	Number   string  `json:"number" validate:"required"`
	Subtotal float64 `json:"subtotal" validate:"gte=0"`
	Tax      float64 `json:"tax" validate:"gte=0"`
	Total    float64 `json:"total" validate:"gte=0"`
}

type movementRequest struct {
	Type      string  `json:"type" validate:"required,oneof=ENTRY EXIT"`
	ProductID string  `json:"product_id"`
	Product   string  `json:"product" validate:"required"`
	Quantity  float64 `json:"quantity" validate:"gte=0"`
	Value     float64 `json:"value" validate:"gt=0"`
	Reason    string  `json:"reason"`
	Document  string  `json:"document"`
}

func (r invoiceRequest) toInvoice() ledger.Invoice {
	items := make([]ledger.InvoiceItem, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, ledger.InvoiceItem{
			ProductID:   item.ProductID,
			Description: item.Description,
			Quantity:    item.Quantity,
		})
	}
	return ledger.Invoice{Number: r.Number, Subtotal: r.Subtotal, Tax: r.Tax, Total: r.Total, Items: items}
}

func (r purchaseRequest) toPurchase() ledger.Purchase {
	return ledger.Purchase{Number: r.Number, Subtotal: r.Subtotal, Tax: r.Tax, Total: r.Total}
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := httpx.DecodeJSON(r, target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Malformed Body", err.Error())
		return false
	}
	if err := h.validate.Struct(target); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
		return false
	}
	return true
}

// CreateSale posts the revenue entry for an issued invoice.
func (h *Handler) CreateSale(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.generator.RecordSale(r.Context(), req.toInvoice())
	if err != nil {
		h.respondDomainError(w, r, "record sale", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// CreatePurchase posts the entry for a supplier purchase.
func (h *Handler) CreatePurchase(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.generator.RecordPurchase(r.Context(), req.toPurchase())
	if err != nil {
		h.respondDomainError(w, r, "record purchase", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// CreatePurchasePayment settles a supplier purchase.
func (h *Handler) CreatePurchasePayment(w http.ResponseWriter, r *http.Request) {
	var req purchaseRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.generator.RecordPurchasePayment(r.Context(), req.toPurchase())
	if err != nil {
		h.respondDomainError(w, r, "record purchase payment", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// CreateInvoicePayment collects a customer invoice.
func (h *Handler) CreateInvoicePayment(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.generator.RecordInvoicePayment(r.Context(), req.toInvoice())
	if err != nil {
		h.respondDomainError(w, r, "record invoice payment", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

// CreateInventoryMovement posts a stock entry or exit.
func (h *Handler) CreateInventoryMovement(w http.ResponseWriter, r *http.Request) {
	var req movementRequest
	if !h.decode(w, r, &req) {
		return
	}
	entry, err := h.generator.RecordInventoryMovement(r.Context(), ledger.InventoryMovement{
		Type:      ledger.MovementType(req.Type),
		ProductID: req.ProductID,
		Product:   req.Product,
		Quantity:  req.Quantity,
		Value:     req.Value,
		Reason:    req.Reason,
		Document:  req.Document,
	})
	if err != nil {
		h.respondDomainError(w, r, "record inventory movement", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

type cancellationResponse struct {
	Entries []ledger.JournalEntry `json:"entries"`
	Partial bool                  `json:"partial"`
}

// CancelInvoice runs the cancellation cascade. A partial cascade still
// returns the persisted entries; the flag and the entry count are the
// caller's health signal.
func (h *Handler) CancelInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if !h.decode(w, r, &req) {
		return
	}
	entries, err := h.generator.CancelInvoice(r.Context(), req.toInvoice())
	if errors.Is(err, ledger.ErrPartialCascade) {
		httpx.JSON(w, http.StatusCreated, cancellationResponse{Entries: entries, Partial: true})
		return
	}
	if err != nil {
		h.respondDomainError(w, r, "cancel invoice", err)
		return
	}
	httpx.JSON(w, http.StatusCreated, cancellationResponse{Entries: entries})
}

func (h *Handler) respondDomainError(w http.ResponseWriter, r *http.Request, action string, err error) {
	switch {
	case errors.Is(err, ledger.ErrImbalanced), errors.Is(err, ledger.ErrTooFewLines), errors.Is(err, ledger.ErrUnknownMovement):
		httpx.Problem(w, http.StatusUnprocessableEntity, "Entry Rejected", err.Error())
	case errors.Is(err, inventory.ErrInsufficientStock):
		httpx.Problem(w, http.StatusConflict, "Insufficient Stock", err.Error())
	case errors.Is(err, inventory.ErrProductNotFound):
		httpx.Problem(w, http.StatusNotFound, "Product Not Found", err.Error())
	case errors.Is(err, inventory.ErrInvalidQuantity):
		httpx.Problem(w, http.StatusBadRequest, "Validation Failed", err.Error())
	default:
		h.logger.Error(action, slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
	}
}
