package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/contaflow-erp/contaflow/internal/ledger"
	"github.com/contaflow-erp/contaflow/internal/ledger/reports"
	"github.com/contaflow-erp/contaflow/internal/notify"
)

// JournalReader is the slice of the journal store the integrity scan needs.
type JournalReader interface {
	List(ctx context.Context) ([]ledger.JournalEntry, error)
}

// IntegrityChecker re-runs entry validation over the whole journal and
// verifies the closing identity. It only reports; nothing is mutated.
type IntegrityChecker struct {
	journal   JournalReader
	validator *ledger.Validator
	notifier  notify.Notifier
	logger    *slog.Logger
}

// NewIntegrityChecker constructs the scan over the given journal.
func NewIntegrityChecker(journal JournalReader, validator *ledger.Validator, notifier notify.Notifier, logger *slog.Logger) *IntegrityChecker {
	return &IntegrityChecker{
		journal:   journal,
		validator: validator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Handle processes TaskLedgerIntegrity tasks.
func (c *IntegrityChecker) Handle(ctx context.Context, _ *asynq.Task) error {
	entries, err := c.journal.List(ctx)
	if err != nil {
		return err
	}
	invalid := 0
	for _, entry := range entries {
		if entry.Status != ledger.EntryStatusRegistered {
			continue
		}
		if err := c.validator.Validate(ctx, entry); err != nil {
			invalid++
			c.logger.Error("journal entry failed integrity check",
				slog.String("number", entry.Number),
				slog.Any("error", err))
		}
	}

	bs := reports.BuildBalanceSheet(reports.BuildTrialBalance(reports.BuildLedger(entries)))
	if !bs.EquationBalanced && c.notifier != nil {
		c.notifier.Notify(ctx, notify.Event{
			Severity: notify.SeverityError,
			Code:     "jobs.equation_broken",
			Message:  "accounting equation does not close",
			Meta: map[string]any{
				"assets":                 bs.Assets.Total,
				"liabilities_and_equity": bs.TotalLiabilitiesAndEquity,
			},
		})
	}

	c.logger.Info("ledger integrity scan finished",
		slog.Int("entries", len(entries)),
		slog.Int("invalid", invalid),
		slog.Bool("equation_balanced", bs.EquationBalanced))
	return nil
}
