package reports

import (
	"sort"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// IncomeStatementAccount summarises one revenue or expense account.
type IncomeStatementAccount struct {
	Code    string  `json:"code"`
	Name    string  `json:"name"`
	Balance float64 `json:"balance"`
}

// IncomeStatementSection groups accounts by nature.
type IncomeStatementSection struct {
	Accounts []IncomeStatementAccount `json:"accounts"`
	Total    float64                  `json:"total"`
}

// IncomeStatement is the period result report.
type IncomeStatement struct {
	Revenue   IncomeStatementSection `json:"revenue"`
	Expenses  IncomeStatementSection `json:"expenses"`
	NetIncome float64                `json:"net_income"`
}

// BuildIncomeStatement folds trial balance rows into revenue (creditor
// balances) and expenses (debtor balances).
func BuildIncomeStatement(tb TrialBalance) IncomeStatement {
	is := IncomeStatement{}
	for _, row := range tb.Rows {
		net := row.Debtor - row.Creditor
		switch ledger.Classify(row.Code) {
		case ledger.NatureRevenue:
			is.Revenue.Accounts = append(is.Revenue.Accounts, IncomeStatementAccount{Code: row.Code, Name: row.Name, Balance: -net})
			is.Revenue.Total -= net
		case ledger.NatureExpense:
			is.Expenses.Accounts = append(is.Expenses.Accounts, IncomeStatementAccount{Code: row.Code, Name: row.Name, Balance: net})
			is.Expenses.Total += net
		}
	}

	sort.Slice(is.Revenue.Accounts, func(i, j int) bool { return is.Revenue.Accounts[i].Code < is.Revenue.Accounts[j].Code })
	sort.Slice(is.Expenses.Accounts, func(i, j int) bool { return is.Expenses.Accounts[i].Code < is.Expenses.Accounts[j].Code })

	is.NetIncome = is.Revenue.Total - is.Expenses.Total
	return is
}
