package reports

import (
	"context"
	"time"

	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/notify"
)

// JournalReader is the read side of the journal store.
type JournalReader interface {
	List(ctx context.Context) ([]ledger.JournalEntry, error)
}

// Service derives reports from a journal snapshot taken at call time.
type Service struct {
	journal  JournalReader
	notifier notify.Notifier
}

// NewService builds a report Service.
func NewService(journal JournalReader, notifier notify.Notifier) *Service {
	return &Service{journal: journal, notifier: notifier}
}

// Journal returns the raw journal, newest entry first.
func (s *Service) Journal(ctx context.Context) ([]ledger.JournalEntry, error) {
	return s.journal.List(ctx)
}

// Ledger rebuilds the general ledger.
func (s *Service) Ledger(ctx context.Context) (map[string]LedgerAccount, error) {
	entries, err := s.journal.List(ctx)
	if err != nil {
		return nil, err
	}
	return BuildLedger(entries), nil
}

// TrialBalance rebuilds the trial balance.
func (s *Service) TrialBalance(ctx context.Context) (TrialBalance, error) {
	accounts, err := s.Ledger(ctx)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(accounts), nil
}

// BalanceSheet rebuilds the balance sheet. A closing identity failure is
// surfaced as a loud integrity warning, since only corrupted upstream data
// can produce it.
func (s *Service) BalanceSheet(ctx context.Context) (BalanceSheet, error) {
	tb, err := s.TrialBalance(ctx)
	if err != nil {
		return BalanceSheet{}, err
	}
	bs := BuildBalanceSheet(tb)
	if !bs.EquationBalanced && s.notifier != nil {
		s.notifier.Notify(ctx, notify.Event{
			Severity: notify.SeverityError,
			Code:     "reports.equation_broken",
			Message:  "balance sheet equation does not close",
			Meta: map[string]any{
				"assets":                 bs.Assets.Total,
				"liabilities_and_equity": bs.TotalLiabilitiesAndEquity,
			},
		})
	}
	return bs, nil
}

// IncomeStatement rebuilds the income statement.
func (s *Service) IncomeStatement(ctx context.Context) (IncomeStatement, error) {
	tb, err := s.TrialBalance(ctx)
	if err != nil {
		return IncomeStatement{}, err
	}
	return BuildIncomeStatement(tb), nil
}

// VATDeclaration rebuilds the VAT declaration for an inclusive date range.
func (s *Service) VATDeclaration(ctx context.Context, from, to time.Time) (VATDeclaration, error) {
	entries, err := s.journal.List(ctx)
	if err != nil {
		return VATDeclaration{}, err
	}
	return BuildVATDeclaration(entries, from, to), nil
}
