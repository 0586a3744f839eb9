package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/contaflow-erp/contaflow/internal/notify"
)

// Journal is the persistence port the generator appends through.
type Journal interface {
	Append(ctx context.Context, entry JournalEntry) error
}

// ProductInfo is the slice of catalog data the cancellation cascade needs
// to price compensating cost entries.
type ProductInfo struct {
	ID       string
	Name     string
	UnitCost float64
	Stock    float64
}

// StockPort abstracts the inventory collaborator. Adjust failures (e.g.
// insufficient stock) abort the triggering entry before persistence.
type StockPort interface {
	Adjust(ctx context.Context, productID string, qty float64, movement MovementType) error
	Find(ctx context.Context, productID string) (ProductInfo, error)
}

// Generator maps business events to balanced journal entries. Each entry
// is validated and persisted independently; a multi-entry cascade is a
// saga of separately committed steps, not an atomic unit.
type Generator struct {
	journal   Journal
	validator *Validator
	stock     StockPort
	seq       *Sequence
	notifier  notify.Notifier
	now       func() time.Time
}

// NewGenerator builds a Generator. The stock port may be nil when no
// inventory-affecting events are generated.
func NewGenerator(journal Journal, validator *Validator, stock StockPort, seq *Sequence, notifier notify.Notifier) *Generator {
	if seq == nil {
		seq = NewSequence()
	}
	return &Generator{
		journal:   journal,
		validator: validator,
		stock:     stock,
		seq:       seq,
		notifier:  notifier,
		now:       time.Now,
	}
}

// WithNow overrides the clock, for tests.
func (g *Generator) WithNow(now func() time.Time) {
	if now != nil {
		g.now = now
	}
}

// today returns the current calendar date at day granularity.
func (g *Generator) today() time.Time {
	y, m, d := g.now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// persist validates the candidate and appends it when accepted.
func (g *Generator) persist(ctx context.Context, entry JournalEntry) error {
	if err := g.validator.Validate(ctx, entry); err != nil {
		return err
	}
	return g.journal.Append(ctx, entry)
}

// RecordInventoryMovement posts the accounting entry for a stock movement
// and adjusts the product's quantity. A movement with the sale
// cancellation reason credits cost of goods sold instead of accounts
// payable, compensating the cost recognized when the cancelled sale
// shipped.
func (g *Generator) RecordInventoryMovement(ctx context.Context, mv InventoryMovement) (JournalEntry, error) {
	var lines []AccountLine
	var concept string
	switch mv.Type {
	case MovementEntry:
		lines = append(lines, AccountLine{Code: AccountInventory, Name: AccountName(AccountInventory), Debit: mv.Value})
		if mv.Reason == ReasonSaleCancellation {
			lines = append(lines, AccountLine{Code: AccountCostOfGoods, Name: AccountName(AccountCostOfGoods), Credit: mv.Value})
		} else {
			lines = append(lines, AccountLine{Code: AccountPayables, Name: AccountName(AccountPayables), Credit: mv.Value})
		}
		concept = fmt.Sprintf("Entrada de inventario - %s", mv.Product)
	case MovementExit:
		lines = append(lines,
			AccountLine{Code: AccountCostOfGoods, Name: AccountName(AccountCostOfGoods), Debit: mv.Value},
			AccountLine{Code: AccountInventory, Name: AccountName(AccountInventory), Credit: mv.Value},
		)
		concept = fmt.Sprintf("Salida de inventario - %s", mv.Product)
	default:
		return JournalEntry{}, ErrUnknownMovement
	}

	if mv.ProductID != "" && g.stock != nil {
		if err := g.stock.Adjust(ctx, mv.ProductID, mv.Quantity, mv.Type); err != nil {
			return JournalEntry{}, err
		}
	}

	entry := NewEntry(g.seq.Number(PrefixInventory), g.today(), concept, mv.Document, lines)
	if err := g.persist(ctx, entry); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// RecordSale posts the revenue entry for an issued invoice: receivables
// for the tax-inclusive total against revenue and VAT payable.
func (g *Generator) RecordSale(ctx context.Context, invoice Invoice) (JournalEntry, error) {
	lines := []AccountLine{
		{Code: AccountReceivables, Name: AccountName(AccountReceivables), Debit: invoice.Total},
		{Code: AccountSalesRevenue, Name: AccountName(AccountSalesRevenue), Credit: invoice.Subtotal},
		{Code: AccountVATPayable, Name: AccountName(AccountVATPayable), Credit: invoice.Tax},
	}
	entry := NewEntry(
		g.seq.Number(PrefixSale),
		g.today(),
		fmt.Sprintf("Venta según factura %s", invoice.Number),
		invoice.Number,
		lines,
	)
	if err := g.persist(ctx, entry); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// RecordPurchase posts the entry for a supplier purchase: inventory plus
// fiscal VAT credit against accounts payable.
func (g *Generator) RecordPurchase(ctx context.Context, purchase Purchase) (JournalEntry, error) {
	lines := []AccountLine{
		{Code: AccountInventory, Name: AccountName(AccountInventory), Debit: purchase.Subtotal},
		{Code: AccountVATCredit, Name: AccountName(AccountVATCredit), Debit: purchase.Tax},
		{Code: AccountPayables, Name: AccountName(AccountPayables), Credit: purchase.Total},
	}
	entry := NewEntry(
		g.seq.Number(PrefixPurchase),
		g.today(),
		fmt.Sprintf("Compra según factura %s", purchase.Number),
		purchase.Number,
		lines,
	)
	if err := g.persist(ctx, entry); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// RecordPurchasePayment settles a supplier purchase from cash.
func (g *Generator) RecordPurchasePayment(ctx context.Context, purchase Purchase) (JournalEntry, error) {
	lines := []AccountLine{
		{Code: AccountPayables, Name: AccountName(AccountPayables), Debit: purchase.Total},
		{Code: AccountCash, Name: AccountName(AccountCash), Credit: purchase.Total},
	}
	entry := NewEntry(
		g.seq.Number(PrefixPurchasePayment),
		g.today(),
		fmt.Sprintf("Pago de compra N° %s", purchase.Number),
		purchase.Number,
		lines,
	)
	if err := g.persist(ctx, entry); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// RecordInvoicePayment collects a customer invoice into cash.
func (g *Generator) RecordInvoicePayment(ctx context.Context, invoice Invoice) (JournalEntry, error) {
	lines := []AccountLine{
		{Code: AccountCash, Name: AccountName(AccountCash), Debit: invoice.Total},
		{Code: AccountReceivables, Name: AccountName(AccountReceivables), Credit: invoice.Total},
	}
	entry := NewEntry(
		g.seq.Number(PrefixInvoicePayment),
		g.today(),
		fmt.Sprintf("Pago de factura N° %s", invoice.Number),
		invoice.Number,
		lines,
	)
	if err := g.persist(ctx, entry); err != nil {
		return JournalEntry{}, err
	}
	return entry, nil
}

// CancelInvoice reverses a sale in two stages. First it persists the sale
// reversal (revenue and VAT debited, receivables credited); when that
// fails nothing is generated. Then, for every invoice item with a known
// positive unit cost, it posts a compensating cost entry through
// RecordInventoryMovement, which also restores the stock. A failed cost
// reversal stops the cascade and returns the entries persisted so far
// together with ErrPartialCascade; the sale reversal is never rolled back,
// so callers should compare the result count against the item count.
func (g *Generator) CancelInvoice(ctx context.Context, invoice Invoice) ([]JournalEntry, error) {
	reversal := NewEntry(
		g.seq.Number(PrefixCancellation),
		g.today(),
		fmt.Sprintf("Anulación de venta, factura N° %s", invoice.Number),
		invoice.Number,
		[]AccountLine{
			{Code: AccountSalesRevenue, Name: AccountName(AccountSalesRevenue), Debit: invoice.Subtotal},
			{Code: AccountVATPayable, Name: AccountName(AccountVATPayable), Debit: invoice.Tax},
			{Code: AccountReceivables, Name: AccountName(AccountReceivables), Credit: invoice.Total},
		},
	)
	if err := g.persist(ctx, reversal); err != nil {
		return nil, err
	}

	generated := []JournalEntry{reversal}
	for _, item := range invoice.Items {
		if g.stock == nil {
			break
		}
		product, err := g.stock.Find(ctx, item.ProductID)
		if err != nil {
			g.notify(ctx, notify.SeverityWarning, "ledger.cancellation_item_skipped",
				"cost reversal skipped, product not in catalog", map[string]any{
					"invoice": invoice.Number,
					"product": item.ProductID,
				})
			continue
		}
		if product.UnitCost <= 0 {
			continue
		}
		movement := InventoryMovement{
			Type:      MovementEntry,
			ProductID: item.ProductID,
			Product:   item.Description,
			Quantity:  item.Quantity,
			Value:     item.Quantity * product.UnitCost,
			Reason:    ReasonSaleCancellation,
			Document:  fmt.Sprintf("Factura Anulada N° %s", invoice.Number),
		}
		costEntry, err := g.RecordInventoryMovement(ctx, movement)
		if err != nil {
			g.notify(ctx, notify.SeverityError, "ledger.cancellation_partial",
				"cost reversal failed after sale reversal persisted", map[string]any{
					"invoice": invoice.Number,
					"product": item.ProductID,
					"cause":   err.Error(),
				})
			return generated, ErrPartialCascade
		}
		generated = append(generated, costEntry)
	}
	return generated, nil
}

func (g *Generator) notify(ctx context.Context, severity notify.Severity, code, message string, meta map[string]any) {
	if g.notifier == nil {
		return
	}
	g.notifier.Notify(ctx, notify.Event{Severity: severity, Code: code, Message: message, Meta: meta})
}
