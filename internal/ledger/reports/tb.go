package reports

import "sort"

// TrialBalanceRow summarises one account: debit/credit sums plus the net
// balance split by direction. Exactly one of Debtor and Creditor is
// non-zero per row.
type TrialBalanceRow struct {
	Code      string  `json:"code"`
	Name      string  `json:"name"`
	SumDebit  float64 `json:"sum_debit"`
	SumCredit float64 `json:"sum_credit"`
	Debtor    float64 `json:"debtor"`
	Creditor  float64 `json:"creditor"`
}

// TrialBalanceTotals aggregates every row. A journal composed solely of
// balanced entries satisfies SumDebit == SumCredit and Debtor == Creditor.
type TrialBalanceTotals struct {
	SumDebit  float64 `json:"sum_debit"`
	SumCredit float64 `json:"sum_credit"`
	Debtor    float64 `json:"debtor"`
	Creditor  float64 `json:"creditor"`
}

// TrialBalance is the full report.
type TrialBalance struct {
	Rows   []TrialBalanceRow  `json:"rows"`
	Totals TrialBalanceTotals `json:"totals"`
}

// BuildTrialBalance converts the ledger into trial balance rows sorted
// ascending by account code.
func BuildTrialBalance(accounts map[string]LedgerAccount) TrialBalance {
	codes := make([]string, 0, len(accounts))
	for code := range accounts {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	tb := TrialBalance{}
	for _, code := range codes {
		account := accounts[code]
		row := TrialBalanceRow{
			Code:      account.Code,
			Name:      account.Name,
			SumDebit:  account.TotalDebit,
			SumCredit: account.TotalCredit,
		}
		if net := account.TotalDebit - account.TotalCredit; net > 0 {
			row.Debtor = net
		} else {
			row.Creditor = -net
		}
		tb.Rows = append(tb.Rows, row)
		tb.Totals.SumDebit += row.SumDebit
		tb.Totals.SumCredit += row.SumCredit
		tb.Totals.Debtor += row.Debtor
		tb.Totals.Creditor += row.Creditor
	}
	return tb
}
