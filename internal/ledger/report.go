package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// ReportOptions restrict a report to a date range. Accounts without activity
// in the range are left out unless IncludeEmpty is set.
type ReportOptions struct {
	From         time.Time
	To           time.Time
	IncludeEmpty bool
}

func (o ReportOptions) filter() Filter {
	return Filter{From: o.From, To: o.To}
}

// TrialBalanceLine is one account's totals in a trial balance.
type TrialBalanceLine struct {
	Account       model.Account
	Depth         int
	TotalDebit    decimal.Decimal
	TotalCredit   decimal.Decimal
	Net           decimal.Decimal
	DebitBalance  decimal.Decimal
	CreditBalance decimal.Decimal
}

// TrialBalanceReport lists accounts in chart order with grand totals.
type TrialBalanceReport struct {
	Lines              []TrialBalanceLine
	TotalDebit         decimal.Decimal
	TotalCredit        decimal.Decimal
	TotalDebitBalance  decimal.Decimal
	TotalCreditBalance decimal.Decimal
}

// Balanced reports whether the debit and credit balance columns agree.
func (r TrialBalanceReport) Balanced() bool {
	return r.TotalDebitBalance.Equal(r.TotalCreditBalance)
}

type sideTotals struct {
	debit, credit decimal.Decimal
	count         int
}

// TrialBalance sums every account's lines within the range. A positive net lands
// in the debit balance column, a negative one in the credit column.
func TrialBalance(chart []accounts.FlatAccount, entries []model.JournalEntry, opts ReportOptions) TrialBalanceReport {
	f := opts.filter()
	totals := make(map[string]*sideTotals)
	for _, e := range entries {
		if !f.InRange(e.Date) {
			continue
		}
		for _, l := range e.Lines {
			t, ok := totals[l.AccountID]
			if !ok {
				t = &sideTotals{debit: decimal.Zero, credit: decimal.Zero}
				totals[l.AccountID] = t
			}
			switch l.Type {
			case model.Debit:
				t.debit = t.debit.Add(l.Amount)
			case model.Credit:
				t.credit = t.credit.Add(l.Amount)
			}
			t.count++
		}
	}

	r := TrialBalanceReport{
		TotalDebit:         decimal.Zero,
		TotalCredit:        decimal.Zero,
		TotalDebitBalance:  decimal.Zero,
		TotalCreditBalance: decimal.Zero,
	}
	for _, fa := range chart {
		t, ok := totals[fa.Account.ID]
		if !ok {
			if !opts.IncludeEmpty {
				continue
			}
			t = &sideTotals{debit: decimal.Zero, credit: decimal.Zero}
		}

		line := TrialBalanceLine{
			Account:       fa.Account,
			Depth:         fa.Depth,
			TotalDebit:    t.debit,
			TotalCredit:   t.credit,
			Net:           t.debit.Sub(t.credit),
			DebitBalance:  decimal.Zero,
			CreditBalance: decimal.Zero,
		}
		if line.Net.IsPositive() {
			line.DebitBalance = line.Net
		} else if line.Net.IsNegative() {
			line.CreditBalance = line.Net.Neg()
		}

		r.Lines = append(r.Lines, line)
		r.TotalDebit = r.TotalDebit.Add(line.TotalDebit)
		r.TotalCredit = r.TotalCredit.Add(line.TotalCredit)
		r.TotalDebitBalance = r.TotalDebitBalance.Add(line.DebitBalance)
		r.TotalCreditBalance = r.TotalCreditBalance.Add(line.CreditBalance)
	}
	return r
}

// AccountLedger is one account's section of the general ledger.
type AccountLedger struct {
	Account model.Account
	Depth   int
	View    View
}

// GeneralLedgerReport holds one section per account, in chart order.
type GeneralLedgerReport struct {
	Accounts []AccountLedger
}

// GeneralLedger projects every account in chart order and restricts the rows to
// the range. Running balances include activity before the range.
func GeneralLedger(chart []accounts.FlatAccount, entries []model.JournalEntry, opts ReportOptions) GeneralLedgerReport {
	f := opts.filter()
	var r GeneralLedgerReport
	for _, fa := range chart {
		v := ApplyView(Project(entries, fa.Account.ID), f)
		if len(v.Rows) == 0 && !opts.IncludeEmpty {
			continue
		}
		r.Accounts = append(r.Accounts, AccountLedger{Account: fa.Account, Depth: fa.Depth, View: v})
	}
	return r
}
