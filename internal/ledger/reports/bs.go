package reports

import (
	"math"
	"sort"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// BalanceSheetAccount is one classified account balance. Liability and
// equity balances are shown positive when credit-heavy.
type BalanceSheetAccount struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// BalanceSheetSection groups accounts of one nature.
type BalanceSheetSection struct {
	Accounts []BalanceSheetAccount `json:"accounts"`
	Total    float64               `json:"total"`
}

// BalanceSheet is the classified statement of financial position.
// EquationBalanced reports the closing identity; a false value indicates
// upstream data corruption, not an expected business outcome.
type BalanceSheet struct {
	Assets                    BalanceSheetSection `json:"assets"`
	Liabilities               BalanceSheetSection `json:"liabilities"`
	Equity                    BalanceSheetSection `json:"equity"`
	TotalLiabilitiesAndEquity float64             `json:"total_liabilities_and_equity"`
	EquationBalanced          bool                `json:"equation_balanced"`
}

// BuildBalanceSheet classifies trial balance rows by account nature.
// Revenue and expense accounts stay off the sheet; their net, the period
// profit, enters equity as the synthetic 3211 line when its magnitude
// exceeds the epsilon, which keeps the accounting equation closed without
// a zero-valued equity line.
func BuildBalanceSheet(tb TrialBalance) BalanceSheet {
	bs := BalanceSheet{}
	var revenueTotal, expenseTotal float64

	for _, row := range tb.Rows {
		net := row.Debtor - row.Creditor
		switch ledger.Classify(row.Code) {
		case ledger.NatureAsset:
			bs.Assets.Accounts = append(bs.Assets.Accounts, BalanceSheetAccount{Code: row.Code, Name: row.Name, Balance: net})
			bs.Assets.Total += net
		case ledger.NatureLiability:
			bs.Liabilities.Accounts = append(bs.Liabilities.Accounts, BalanceSheetAccount{Code: row.Code, Name: row.Name, Balance: -net})
			bs.Liabilities.Total -= net
		case ledger.NatureEquity:
			bs.Equity.Accounts = append(bs.Equity.Accounts, BalanceSheetAccount{Code: row.Code, Name: row.Name, Balance: -net})
			bs.Equity.Total -= net
		case ledger.NatureRevenue:
			revenueTotal -= net
		case ledger.NatureExpense:
			expenseTotal += net
		}
	}

	if profit := revenueTotal - expenseTotal; math.Abs(profit) > ledger.BalanceEpsilon {
		bs.Equity.Accounts = append(bs.Equity.Accounts, BalanceSheetAccount{
			Code:    ledger.AccountPeriodProfit,
			Name:    ledger.AccountName(ledger.AccountPeriodProfit),
			Balance: profit,
		})
		bs.Equity.Total += profit
	}

	sortSection(&bs.Assets)
	sortSection(&bs.Liabilities)
	sortSection(&bs.Equity)

	bs.TotalLiabilitiesAndEquity = bs.Liabilities.Total + bs.Equity.Total
	bs.EquationBalanced = math.Abs(bs.Assets.Total-bs.TotalLiabilitiesAndEquity) < ledger.BalanceEpsilon
	return bs
}

func sortSection(section *BalanceSheetSection) {
	sort.Slice(section.Accounts, func(i, j int) bool {
		return section.Accounts[i].Code < section.Accounts[j].Code
	})
}
