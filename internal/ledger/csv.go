package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

const dateFormat = "2006-01-02"

var (
	ledgerHeader        = []string{"date", "reference", "description", "debit", "credit", "balance"}
	generalLedgerHeader = append([]string{"account_code", "account_name"}, ledgerHeader...)
	trialBalanceHeader  = []string{"account_code", "account_name", "type", "debit", "credit", "debit_balance", "credit_balance"}
)

// WriteCSV writes ledger rows followed by a totals row.
func WriteCSV(w io.Writer, rows []Row, s Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ledgerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write(MarshalRow(r)); err != nil {
			return fmt.Errorf("writing row %s: %w", r.EntryID, err)
		}
	}
	if err := cw.Write(totalsRow(s)); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteGeneralLedgerCSV writes every section of r, each closed by its own totals row.
func WriteGeneralLedgerCSV(w io.Writer, r GeneralLedgerReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(generalLedgerHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, al := range r.Accounts {
		for _, row := range al.View.Rows {
			if err := cw.Write(append([]string{al.Account.Code, al.Account.Name}, MarshalRow(row)...)); err != nil {
				return fmt.Errorf("writing %s row %s: %w", al.Account.Code, row.EntryID, err)
			}
		}
		if err := cw.Write(append([]string{al.Account.Code, al.Account.Name}, totalsRow(al.View.Summary)...)); err != nil {
			return fmt.Errorf("writing %s totals: %w", al.Account.Code, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteTrialBalanceCSV writes one row per account and a grand total row.
func WriteTrialBalanceCSV(w io.Writer, r TrialBalanceReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trialBalanceHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, l := range r.Lines {
		rec := []string{
			l.Account.Code,
			l.Account.Name,
			string(l.Account.Type),
			l.TotalDebit.StringFixed(2),
			l.TotalCredit.StringFixed(2),
			l.DebitBalance.StringFixed(2),
			l.CreditBalance.StringFixed(2),
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing %s: %w", l.Account.Code, err)
		}
	}
	total := []string{
		"", "Total", "",
		r.TotalDebit.StringFixed(2),
		r.TotalCredit.StringFixed(2),
		r.TotalDebitBalance.StringFixed(2),
		r.TotalCreditBalance.StringFixed(2),
	}
	if err := cw.Write(total); err != nil {
		return fmt.Errorf("writing totals: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// MarshalRow converts a ledger row to CSV fields. The amount goes in the
// debit or credit column; the other stays blank.
func MarshalRow(r Row) []string {
	var debit, credit string
	if r.Type == model.Debit {
		debit = r.Amount.StringFixed(2)
	} else {
		credit = r.Amount.StringFixed(2)
	}
	return []string{
		r.Date.Format(dateFormat),
		r.Reference,
		r.Description,
		debit,
		credit,
		r.Balance.StringFixed(2),
	}
}

func totalsRow(s Summary) []string {
	return []string{
		"",
		"",
		"Total (" + strconv.Itoa(s.TransactionCount) + ")",
		s.TotalDebit.StringFixed(2),
		s.TotalCredit.StringFixed(2),
		s.Balance.StringFixed(2),
	}
}
