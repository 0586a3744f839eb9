package reports

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

func sectionAccount(t *testing.T, section BalanceSheetSection, code string) BalanceSheetAccount {
	t.Helper()
	for _, account := range section.Accounts {
		if account.Code == code {
			return account
		}
	}
	t.Fatalf("section has no account %s", code)
	return BalanceSheetAccount{}
}

func TestBalanceSheetClosesWithSyntheticProfit(t *testing.T) {
	// Sale of 100+13: receivables 113 against revenue and VAT payable.
	entries := []ledger.JournalEntry{saleEntry("VTA-1", day(10), 100, 13)}

	bs := BuildBalanceSheet(BuildTrialBalance(BuildLedger(entries)))
	require.InDelta(t, 113, bs.Assets.Total, 1e-9)
	require.InDelta(t, 13, bs.Liabilities.Total, 1e-9)

	profit := sectionAccount(t, bs.Equity, ledger.AccountPeriodProfit)
	require.InDelta(t, 100, profit.Balance, 1e-9)
	require.InDelta(t, 113, bs.TotalLiabilitiesAndEquity, 1e-9)
	require.True(t, bs.EquationBalanced)
}

func TestBalanceSheetNetsExpensesIntoProfit(t *testing.T) {
	entries := []ledger.JournalEntry{
		movementEntryOut("AST-1", day(12), 30),
		saleEntry("VTA-1", day(10), 100, 13),
	}

	bs := BuildBalanceSheet(BuildTrialBalance(BuildLedger(entries)))
	profit := sectionAccount(t, bs.Equity, ledger.AccountPeriodProfit)
	require.InDelta(t, 70, profit.Balance, 1e-9)
	require.True(t, bs.EquationBalanced)
}

func TestBalanceSheetOmitsNegligibleProfitLine(t *testing.T) {
	// Entry and exit of the same value cancel, leaving no period result.
	entries := []ledger.JournalEntry{
		movementEntryOut("AST-2", day(11), 50),
		movementEntryIn("AST-1", day(10), 50),
	}

	bs := BuildBalanceSheet(BuildTrialBalance(BuildLedger(entries)))
	for _, account := range bs.Equity.Accounts {
		require.NotEqual(t, ledger.AccountPeriodProfit, account.Code)
	}
	require.True(t, bs.EquationBalanced)
}

func TestBalanceSheetShowsLossAsNegativeEquity(t *testing.T) {
	// Cost with no revenue: exit of 40.
	entries := []ledger.JournalEntry{movementEntryOut("AST-1", day(10), 40)}

	bs := BuildBalanceSheet(BuildTrialBalance(BuildLedger(entries)))
	profit := sectionAccount(t, bs.Equity, ledger.AccountPeriodProfit)
	require.InDelta(t, -40, profit.Balance, 1e-9)
	require.True(t, bs.EquationBalanced)
}
