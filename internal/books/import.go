package books

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/auditlog"
	"github.com/ledgerbook/ledgerbook/internal/importer"
	"github.com/ledgerbook/ledgerbook/internal/journal"
)

// ImportResult counts what an import changed. Failures do not stop the import.
type ImportResult struct {
	AccountsAdded   int
	AccountsSkipped int // already in the chart by id
	EntriesRecorded int
	Failures        []error
}

// Import merges a parsed batch into the books. Accounts keep their ids and
// hierarchy; entries get fresh ids and must pass the same checks as RecordEntry.
func (b *Books) Import(ctx context.Context, source string, batch importer.Batch) (ImportResult, error) {
	var res ImportResult

	next := accounts.NewService(b.chart.Roots())
	for _, fa := range accounts.Flatten(batch.Accounts) {
		if next.Exists(fa.Account.ID) {
			res.AccountsSkipped++
			continue
		}
		node := fa.Account
		node.Children = nil
		if parent, ok := next.Get(fa.ParentID); ok && parent.Type != node.Type {
			res.Failures = append(res.Failures, fmt.Errorf("account %s: %w: %s is %s, account is %s",
				node.Code, ErrParentTypeMismatch, parent.Code, parent.Type, node.Type))
			continue
		}
		if err := next.Insert(node, fa.ParentID); err != nil {
			res.Failures = append(res.Failures, fmt.Errorf("account %s: %w", node.Code, err))
			continue
		}
		res.AccountsAdded++
	}
	if res.AccountsAdded > 0 {
		if err := next.Save(b.root); err != nil {
			return res, err
		}
		b.chart = next
	}

	for _, e := range batch.Entries {
		rec, err := b.journal.Record(journal.EntryParams{
			Date:        e.Date,
			Reference:   e.Reference,
			Description: e.Description,
			Lines:       e.Lines,
		})
		if err != nil {
			res.Failures = append(res.Failures, fmt.Errorf("entry %s (%s): %w", e.Reference, e.Date.Format("2006-01-02"), err))
			continue
		}
		b.entries = journal.Append(b.entries, rec)
		res.EntriesRecorded++
	}

	b.log.Info("import finished",
		zap.String("source", source),
		zap.Int("accounts_added", res.AccountsAdded),
		zap.Int("accounts_skipped", res.AccountsSkipped),
		zap.Int("entries_recorded", res.EntriesRecorded),
		zap.Int("failures", len(res.Failures)),
	)

	if res.AccountsAdded == 0 && res.EntriesRecorded == 0 {
		return res, nil
	}
	details := fmt.Sprintf("%s: %d accounts, %d entries", source, res.AccountsAdded, res.EntriesRecorded)
	if err := b.record(ctx, auditlog.ActionImport, details, "", "import: "+source); err != nil {
		return res, err
	}
	return res, nil
}
