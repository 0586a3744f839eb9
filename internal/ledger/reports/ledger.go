// Package reports derives financial statements from the journal. Every
// builder is a pure fold over a journal snapshot; nothing here writes, and
// calling a builder twice on the same journal yields identical results.
package reports

import (
	"sort"

	"github.com/contaflow-erp/contaflow/internal/ledger"
)

// Posting is one ledger movement inside an account.
type Posting struct {
	Date      string  `json:"date"`
	Concept   string  `json:"concept"`
	Reference string  `json:"reference"`
	Debit     float64 `json:"debit"`
	Credit    float64 `json:"credit"`
}

// LedgerAccount aggregates every posting of one account.
type LedgerAccount struct {
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Postings    []Posting `json:"postings"`
	TotalDebit  float64   `json:"total_debit"`
	TotalCredit float64   `json:"total_credit"`
}

// BuildLedger folds the journal into per-account ledgers. The journal
// store lists newest first, so the fold un-reverses to chronological order
// before accumulating; postings are then sorted ascending by date with the
// fold order as the stable tiebreak for same-day entries.
func BuildLedger(entries []ledger.JournalEntry) map[string]LedgerAccount {
	accounts := make(map[string]LedgerAccount)

	for i := len(entries) - 1; i >= 0; i-- {
		entry := entries[i]
		if entry.Status != ledger.EntryStatusRegistered {
			continue
		}
		for _, line := range entry.Lines {
			account, ok := accounts[line.Code]
			if !ok {
				account = LedgerAccount{Code: line.Code, Name: line.Name}
			}
			account.Postings = append(account.Postings, Posting{
				Date:      entry.Date.Format("2006-01-02"),
				Concept:   entry.Concept,
				Reference: entry.Reference,
				Debit:     line.Debit,
				Credit:    line.Credit,
			})
			account.TotalDebit += line.Debit
			account.TotalCredit += line.Credit
			accounts[line.Code] = account
		}
	}

	for code, account := range accounts {
		sort.SliceStable(account.Postings, func(i, j int) bool {
			return account.Postings[i].Date < account.Postings[j].Date
		})
		accounts[code] = account
	}
	return accounts
}
