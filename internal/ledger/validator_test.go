package ledger

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/contaflow-erp/contaflow/internal/notify"
)

// recordingNotifier captures every event for assertions.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notify.Event) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) codes() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	codes := make([]string, 0, len(n.events))
	for _, e := range n.events {
		codes = append(codes, e.Code)
	}
	return codes
}

func testEntry(lines []AccountLine) JournalEntry {
	return NewEntry("AST-1", time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC), "Asiento de prueba", "", lines)
}

func TestValidateAcceptsBalancedEntry(t *testing.T) {
	v := NewValidator(nil)
	entry := testEntry([]AccountLine{
		{Code: AccountCash, Debit: 113},
		{Code: AccountSalesRevenue, Credit: 100},
		{Code: AccountVATPayable, Credit: 13},
	})
	require.NoError(t, v.Validate(context.Background(), entry))
}

func TestValidateAcceptsDifferenceWithinEpsilon(t *testing.T) {
	v := NewValidator(nil)
	entry := testEntry([]AccountLine{
		{Code: AccountCash, Debit: 100.009},
		{Code: AccountSalesRevenue, Credit: 100},
	})
	require.NoError(t, v.Validate(context.Background(), entry))
}

func TestValidateAcceptsFloatRounding(t *testing.T) {
	v := NewValidator(nil)
	entry := testEntry([]AccountLine{
		{Code: AccountCash, Debit: 0.1},
		{Code: AccountCash, Debit: 0.2},
		{Code: AccountSalesRevenue, Credit: 0.3},
	})
	require.NoError(t, v.Validate(context.Background(), entry))
}

func TestValidateRejectsDifferenceBeyondEpsilon(t *testing.T) {
	notifier := &recordingNotifier{}
	v := NewValidator(notifier)
	entry := testEntry([]AccountLine{
		{Code: AccountCash, Debit: 100.02},
		{Code: AccountSalesRevenue, Credit: 100},
	})
	err := v.Validate(context.Background(), entry)
	require.ErrorIs(t, err, ErrImbalanced)
	require.Contains(t, notifier.codes(), "ledger.entry_rejected")
}

func TestValidateRejectsSingleLine(t *testing.T) {
	notifier := &recordingNotifier{}
	v := NewValidator(notifier)
	entry := testEntry([]AccountLine{{Code: AccountCash, Debit: 100}})
	err := v.Validate(context.Background(), entry)
	require.ErrorIs(t, err, ErrTooFewLines)
	require.Contains(t, notifier.codes(), "ledger.entry_rejected")
}

func TestValidateIgnoresStoredTotals(t *testing.T) {
	v := NewValidator(nil)
	entry := testEntry([]AccountLine{
		{Code: AccountCash, Debit: 50},
		{Code: AccountSalesRevenue, Credit: 50},
	})
	// Drifted mirrors must not matter; only the lines count.
	entry.TotalDebit = 999
	entry.TotalCredit = 0
	require.NoError(t, v.Validate(context.Background(), entry))
}
