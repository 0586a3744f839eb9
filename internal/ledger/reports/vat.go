package reports

import (
	"strings"
	"time"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// VATSide carries taxable base and tax for one side of the declaration.
type VATSide struct {
	TaxableBase float64 `json:"taxable_base"`
	Tax         float64 `json:"tax"`
}

// VATBalance is the net position against the tax authority. Exactly one of
// the two fields is non-zero.
type VATBalance struct {
	OwedToAuthority float64 `json:"owed_to_authority"`
	TaxpayerCredit  float64 `json:"taxpayer_credit"`
}

// VATDeclaration reconciles tax collected on sales against tax credited on
// purchases over a period.
type VATDeclaration struct {
	From      string     `json:"from"`
	To        string     `json:"to"`
	Sales     VATSide    `json:"sales"`
	Purchases VATSide    `json:"purchases"`
	Balance   VATBalance `json:"balance"`
}

// BuildVATDeclaration scans registered entries inside [from, to] (day
// granularity, inclusive on both ends). A line only counts when its
// counterpart account co-occurs in the same entry: sales tax requires a
// revenue credit next to the VAT payable credit, and cancellation
// reversals (the same pair on the debit side) subtract. Purchase credit is
// any VAT-credit debit, with the base taken from co-occurring inventory or
// expense debits.
func BuildVATDeclaration(entries []ledger.JournalEntry, from, to time.Time) VATDeclaration {
	decl := VATDeclaration{
		From: from.Format("2006-01-02"),
		To:   to.Format("2006-01-02"),
	}
	start := startOfDay(from)
	end := startOfDay(to).Add(24*time.Hour - time.Nanosecond)

	for _, entry := range entries {
		if entry.Status != ledger.EntryStatusRegistered {
			continue
		}
		if entry.Date.Before(start) || entry.Date.After(end) {
			continue
		}

		if revenue, ok := findLine(entry, isRevenueCredit); ok {
			if vat, ok := findLine(entry, isVATPayableCredit); ok {
				decl.Sales.TaxableBase += revenue.Credit
				decl.Sales.Tax += vat.Credit
			}
		}
		if revenue, ok := findLine(entry, isRevenueDebit); ok {
			if vat, ok := findLine(entry, isVATPayableDebit); ok {
				decl.Sales.TaxableBase -= revenue.Debit
				decl.Sales.Tax -= vat.Debit
			}
		}
		if vat, ok := findLine(entry, isVATCreditDebit); ok {
			decl.Purchases.Tax += vat.Debit
			for _, line := range entry.Lines {
				if line.Debit > 0 && (line.Code == ledger.AccountInventory || strings.HasPrefix(line.Code, "5")) {
					decl.Purchases.TaxableBase += line.Debit
				}
			}
		}
	}

	if diff := decl.Sales.Tax - decl.Purchases.Tax; diff > 0 {
		decl.Balance.OwedToAuthority = diff
	} else {
		decl.Balance.TaxpayerCredit = -diff
	}
	return decl
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func findLine(entry ledger.JournalEntry, match func(ledger.AccountLine) bool) (ledger.AccountLine, bool) {
	for _, line := range entry.Lines {
		if match(line) {
			return line, true
		}
	}
	return ledger.AccountLine{}, false
}

func isRevenueCredit(l ledger.AccountLine) bool {
	return strings.HasPrefix(l.Code, "4") && l.Credit > 0
}

func isRevenueDebit(l ledger.AccountLine) bool {
	return strings.HasPrefix(l.Code, "4") && l.Debit > 0
}

func isVATPayableCredit(l ledger.AccountLine) bool {
	return l.Code == ledger.AccountVATPayable && l.Credit > 0
}

func isVATPayableDebit(l ledger.AccountLine) bool {
	return l.Code == ledger.AccountVATPayable && l.Debit > 0
}

func isVATCreditDebit(l ledger.AccountLine) bool {
	return l.Code == ledger.AccountVATCredit && l.Debit > 0
}
