// Package ledger implements the double-entry bookkeeping core: journal
// entries, the balance validator, the append-only journal store, and the
// generators that translate business events into balanced entries.
package ledger

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// BalanceEpsilon absorbs float rounding when comparing debit and credit
// totals. Entries differing by more than this are rejected.
const BalanceEpsilon = 0.01

// EntryStatus enumerates journal entry lifecycle values.
type EntryStatus string

const (
	// EntryStatusRegistered marks entries that participate in reports.
	EntryStatusRegistered EntryStatus = "REGISTERED"
	// EntryStatusVoid marks entries excluded from every derivation.
	// Corrections are posted as compensating entries, so no generator
	// emits this status today.
	EntryStatusVoid EntryStatus = "VOID"
)

// AccountLine is one posting side of a journal entry.
type AccountLine struct {
	Code   string  `json:"code"`
	Name   string  `json:"name"`
	Debit  float64 `json:"debit"`
	Credit float64 `json:"credit"`
}

// JournalEntry is an immutable accounting record. Totals mirror the line
// sums for display; validation always recomputes from Lines.
type JournalEntry struct {
	ID          uuid.UUID     `json:"id"`
	Number      string        `json:"number"`
	Date        time.Time     `json:"date"`
	Concept     string        `json:"concept"`
	Reference   string        `json:"reference"`
	TotalDebit  float64       `json:"total_debit"`
	TotalCredit float64       `json:"total_credit"`
	Status      EntryStatus   `json:"status"`
	Lines       []AccountLine `json:"lines"`
}

// NewEntry assembles a registered entry, recomputing the totals from the
// lines so the mirrors can never drift from their source of truth.
func NewEntry(number string, date time.Time, concept, reference string, lines []AccountLine) JournalEntry {
	var debit, credit float64
	for _, line := range lines {
		debit += line.Debit
		credit += line.Credit
	}
	return JournalEntry{
		ID:          uuid.New(),
		Number:      number,
		Date:        date,
		Concept:     concept,
		Reference:   reference,
		TotalDebit:  debit,
		TotalCredit: credit,
		Status:      EntryStatusRegistered,
		Lines:       lines,
	}
}

// SumLines recomputes debit and credit totals from the entry lines.
func (e JournalEntry) SumLines() (debit, credit float64) {
	for _, line := range e.Lines {
		debit += line.Debit
		credit += line.Credit
	}
	return debit, credit
}

// MovementType enumerates inventory movement directions.
type MovementType string

const (
	// MovementEntry increases stock.
	MovementEntry MovementType = "ENTRY"
	// MovementExit decreases stock.
	MovementExit MovementType = "EXIT"
)

// ReasonSaleCancellation marks compensating inventory entries generated by
// an invoice cancellation; they credit cost of goods sold instead of
// accounts payable.
const ReasonSaleCancellation = "Anulación Venta"

// InventoryMovement is the inventory collaborator's event shape, consumed
// by the generator.
type InventoryMovement struct {
	Type      MovementType `json:"type"`
	ProductID string       `json:"product_id"`
	Product   string       `json:"product"`
	Quantity  float64      `json:"quantity"`
	Value     float64      `json:"value"`
	Reason    string       `json:"reason"`
	Document  string       `json:"document"`
}

// InvoiceItem is one line of a sales invoice.
type InvoiceItem struct {
	ProductID   string  `json:"product_id"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
}

// Invoice carries the fields of a sales document the generator needs.
type Invoice struct {
	Number   string        `json:"number"`
	Subtotal float64       `json:"subtotal"`
	Tax      float64       `json:"tax"`
	Total    float64       `json:"total"`
	Items    []InvoiceItem `json:"items"`
}

// Purchase carries the fields of a purchase document the generator needs.
type Purchase struct {
	Number   string  `json:"number"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

var (
	// ErrImbalanced indicates debit != credit beyond the epsilon.
	ErrImbalanced = errors.New("ledger: entry debits and credits must balance")
	// ErrTooFewLines indicates less than two lines.
	ErrTooFewLines = errors.New("ledger: entry requires at least two lines")
	// ErrPartialCascade indicates a cancellation persisted its sale
	// reversal but one or more cost reversals failed. The already
	// persisted entries are returned alongside this error and are never
	// rolled back.
	ErrPartialCascade = errors.New("ledger: cancellation cascade completed partially")
	// ErrUnknownMovement indicates an unsupported movement type.
	ErrUnknownMovement = errors.New("ledger: unknown inventory movement type")
)
