package ledger

import (
	"context"
	"math"

	"github.com/contaflow-erp/contaflow/internal/notify"
)

// Validator enforces the debit=credit invariant before an entry may be
// persisted. Rejections emit an operator diagnostic; they are not fatal to
// the caller unless it chooses so.
type Validator struct {
	notifier notify.Notifier
}

// NewValidator builds a Validator. The notifier may be nil.
func NewValidator(notifier notify.Notifier) *Validator {
	return &Validator{notifier: notifier}
}

// Validate recomputes both totals from the entry lines and accepts the
// entry when they agree within BalanceEpsilon. The stored TotalDebit and
// TotalCredit mirrors are never consulted.
func (v *Validator) Validate(ctx context.Context, entry JournalEntry) error {
	if len(entry.Lines) < 2 {
		v.reject(ctx, entry, ErrTooFewLines, 0, 0)
		return ErrTooFewLines
	}
	debit, credit := entry.SumLines()
	if math.Abs(debit-credit) > BalanceEpsilon {
		v.reject(ctx, entry, ErrImbalanced, debit, credit)
		return ErrImbalanced
	}
	return nil
}

func (v *Validator) reject(ctx context.Context, entry JournalEntry, cause error, debit, credit float64) {
	if v.notifier == nil {
		return
	}
	v.notifier.Notify(ctx, notify.Event{
		Severity: notify.SeverityError,
		Code:     "ledger.entry_rejected",
		Message:  "journal entry rejected",
		Meta: map[string]any{
			"number": entry.Number,
			"cause":  cause.Error(),
			"debit":  debit,
			"credit": credit,
		},
	})
}
