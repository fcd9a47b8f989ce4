// Package ledger projects the journal onto single accounts and builds
// trial balance and general ledger reports from those projections.
//
// Every account type uses the same sign convention: debits add to the
// running balance and credits subtract from it.
package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/journal"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// Row is one journal line as seen from its account, with the balance after it.
type Row struct {
	EntryID     string
	Date        time.Time
	Reference   string
	Description string
	Type        model.LineType
	Amount      decimal.Decimal
	Balance     decimal.Decimal
}

// Summary totals a set of rows. Balance is TotalDebit - TotalCredit.
type Summary struct {
	TotalDebit       decimal.Decimal
	TotalCredit      decimal.Decimal
	Balance          decimal.Decimal
	TransactionCount int
}

// Projection is the full, unfiltered ledger of one account.
type Projection struct {
	AccountID string
	Rows      []Row
	Summary   Summary
}

// AccountLookup resolves account ids against the chart.
type AccountLookup interface {
	Get(id string) (model.Account, bool)
}

// Project builds the ledger of accountID from entries. Rows are ordered by date;
// lines on the same date keep journal order.
func Project(entries []model.JournalEntry, accountID string) Projection {
	lines := journal.LinesForAccount(entries, accountID)
	slices.SortStableFunc(lines, func(a, b journal.AccountLine) int {
		return a.Date.Compare(b.Date)
	})

	rows := make([]Row, 0, len(lines))
	balance := decimal.Zero
	for _, al := range lines {
		balance = balance.Add(al.Line.Signed())
		rows = append(rows, Row{
			EntryID:     al.EntryID,
			Date:        al.Date,
			Reference:   al.Reference,
			Description: al.Description,
			Type:        al.Line.Type,
			Amount:      al.Line.Amount,
			Balance:     balance,
		})
	}

	return Projection{
		AccountID: accountID,
		Rows:      rows,
		Summary:   Summarize(rows),
	}
}

// ProjectAccount is Project guarded by the chart: an unknown account yields
// an empty projection, not an error.
func ProjectAccount(chart AccountLookup, entries []model.JournalEntry, accountID string) Projection {
	if _, ok := chart.Get(accountID); !ok {
		return Projection{AccountID: accountID, Summary: Summarize(nil)}
	}
	return Project(entries, accountID)
}

// Summarize totals rows by side.
func Summarize(rows []Row) Summary {
	s := Summary{TotalDebit: decimal.Zero, TotalCredit: decimal.Zero}
	for _, r := range rows {
		switch r.Type {
		case model.Debit:
			s.TotalDebit = s.TotalDebit.Add(r.Amount)
		case model.Credit:
			s.TotalCredit = s.TotalCredit.Add(r.Amount)
		}
	}
	s.Balance = s.TotalDebit.Sub(s.TotalCredit)
	s.TransactionCount = len(rows)
	return s
}
