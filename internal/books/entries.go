package books

import (
	"context"

	"github.com/ledgerbook/ledgerbook/internal/auditlog"
	"github.com/ledgerbook/ledgerbook/internal/journal"
	"github.com/ledgerbook/ledgerbook/internal/ledger"
	"github.com/ledgerbook/ledgerbook/internal/model"
)

// RecordEntry validates and appends a journal entry. Unbalanced entries are rejected.
func (b *Books) RecordEntry(ctx context.Context, p journal.EntryParams) (model.JournalEntry, error) {
	e, err := b.journal.Record(p)
	if err != nil {
		return model.JournalEntry{}, err
	}
	b.entries = journal.Append(b.entries, e)

	debit, _ := e.Totals()
	details := e.Description + ": " + debit.StringFixed(2)
	if err := b.record(ctx, auditlog.ActionRecordEntry, details, e.ID, "journal: "+e.ID+" "+e.Description); err != nil {
		return e, err
	}
	return e, nil
}

// Ledger resolves ref (account id or code) and projects its ledger.
func (b *Books) Ledger(ref string) (model.Account, ledger.Projection, error) {
	acct, err := b.chart.Resolve(ref)
	if err != nil {
		return model.Account{}, ledger.Projection{}, err
	}
	return acct, ledger.ProjectAccount(b.chart, b.entries, acct.ID), nil
}

// TrialBalance builds the trial balance over the chart.
func (b *Books) TrialBalance(opts ledger.ReportOptions) ledger.TrialBalanceReport {
	return ledger.TrialBalance(b.chart.All(), b.entries, opts)
}

// GeneralLedger builds the general ledger over the chart.
func (b *Books) GeneralLedger(opts ledger.ReportOptions) ledger.GeneralLedgerReport {
	return ledger.GeneralLedger(b.chart.All(), b.entries, opts)
}

// Check validates the whole journal against the chart.
func (b *Books) Check() []journal.ValidationError {
	return journal.ValidateJournal(b.entries, b.chart)
}

// Orphans lists journal lines whose account is missing from the chart.
// Reports leave these lines out.
func (b *Books) Orphans() []journal.ValidationError {
	return journal.FindOrphans(b.entries, b.chart)
}
