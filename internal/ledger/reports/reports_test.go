package reports

import (
	"time"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// Shared fixtures. Builders receive entries newest-first, the journal
// store's list order.

func day(d int) time.Time {
	return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC)
}

func saleEntry(number string, date time.Time, subtotal, tax float64) ledger.JournalEntry {
	return ledger.NewEntry(number, date, "Venta según factura "+number, number, []ledger.AccountLine{
		{Code: ledger.AccountReceivables, Name: ledger.AccountName(ledger.AccountReceivables), Debit: subtotal + tax},
		{Code: ledger.AccountSalesRevenue, Name: ledger.AccountName(ledger.AccountSalesRevenue), Credit: subtotal},
		{Code: ledger.AccountVATPayable, Name: ledger.AccountName(ledger.AccountVATPayable), Credit: tax},
	})
}

func purchaseEntry(number string, date time.Time, subtotal, tax float64) ledger.JournalEntry {
	return ledger.NewEntry(number, date, "Compra según factura "+number, number, []ledger.AccountLine{
		{Code: ledger.AccountInventory, Name: ledger.AccountName(ledger.AccountInventory), Debit: subtotal},
		{Code: ledger.AccountVATCredit, Name: ledger.AccountName(ledger.AccountVATCredit), Debit: tax},
		{Code: ledger.AccountPayables, Name: ledger.AccountName(ledger.AccountPayables), Credit: subtotal + tax},
	})
}

func movementEntryIn(number string, date time.Time, value float64) ledger.JournalEntry {
	return ledger.NewEntry(number, date, "Entrada de inventario", "", []ledger.AccountLine{
		{Code: ledger.AccountInventory, Name: ledger.AccountName(ledger.AccountInventory), Debit: value},
		{Code: ledger.AccountPayables, Name: ledger.AccountName(ledger.AccountPayables), Credit: value},
	})
}

func movementEntryOut(number string, date time.Time, value float64) ledger.JournalEntry {
	return ledger.NewEntry(number, date, "Salida de inventario", "", []ledger.AccountLine{
		{Code: ledger.AccountCostOfGoods, Name: ledger.AccountName(ledger.AccountCostOfGoods), Debit: value},
		{Code: ledger.AccountInventory, Name: ledger.AccountName(ledger.AccountInventory), Credit: value},
	})
}

func cancellationEntry(number string, date time.Time, subtotal, tax float64) ledger.JournalEntry {
	return ledger.NewEntry(number, date, "Anulación de venta", number, []ledger.AccountLine{
		{Code: ledger.AccountSalesRevenue, Name: ledger.AccountName(ledger.AccountSalesRevenue), Debit: subtotal},
		{Code: ledger.AccountVATPayable, Name: ledger.AccountName(ledger.AccountVATPayable), Debit: tax},
		{Code: ledger.AccountReceivables, Name: ledger.AccountName(ledger.AccountReceivables), Credit: subtotal + tax},
	})
}
