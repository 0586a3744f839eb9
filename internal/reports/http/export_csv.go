package reportshttp

import (
	"bufio"
	"encoding/csv"
	"io"
	"strconv"

	"github.com/contaflow-erp/contaflow/internal/ledger/reports"
)

const csvBufferSize = 32 * 1024

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// writeTrialBalanceCSV streams the trial balance rows plus a totals row.
func writeTrialBalanceCSV(w io.Writer, tb reports.TrialBalance) error {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true

	header := []string{"code", "name", "sum_debit", "sum_credit", "debtor", "creditor"}
	if err := writer.Write(header); err != nil {
		return err
	}
	for _, row := range tb.Rows {
		record := []string{
			row.Code,
			row.Name,
			formatAmount(row.SumDebit),
			formatAmount(row.SumCredit),
			formatAmount(row.Debtor),
			formatAmount(row.Creditor),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}
	totals := []string{
		"",
		"TOTALES",
		formatAmount(tb.Totals.SumDebit),
		formatAmount(tb.Totals.SumCredit),
		formatAmount(tb.Totals.Debtor),
		formatAmount(tb.Totals.Creditor),
	}
	if err := writer.Write(totals); err != nil {
		return err
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return err
	}
	return buf.Flush()
}
