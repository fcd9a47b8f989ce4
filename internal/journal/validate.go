package journal

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// Invariants checked on journal entries.
const (
	InvBalanced      = 1 // sum(debits) == sum(credits)
	InvBothSides     = 2 // at least one debit and one credit line
	InvKnownAccount  = 3 // every line references an account in the chart
	InvPositive      = 4 // every amount is > 0
	InvTwoDecimals   = 5 // no more than 2 decimal places
	InvLineType      = 6 // line type is debit or credit
	InvUniqueEntryID = 7 // entry ids are unique across the journal
)

// ValidationError describes a single invariant violation.
type ValidationError struct {
	Invariant   int
	EntryID     string
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invariant %d [%s]: %s", e.Invariant, e.EntryID, e.Description)
}

// AccountChecker tests whether an account ID exists in the chart of accounts.
type AccountChecker interface {
	Exists(id string) bool
}

var hundred = decimal.NewFromInt(100)

// ValidateEntry checks one entry against every per-entry invariant.
func ValidateEntry(e model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError

	debit, credit := e.Totals()
	if !debit.Equal(credit) {
		errs = append(errs, ValidationError{
			Invariant:   InvBalanced,
			EntryID:     e.ID,
			Description: fmt.Sprintf("debits (%s) != credits (%s)", debit.StringFixed(2), credit.StringFixed(2)),
		})
	}

	var hasDebit, hasCredit bool
	for i, l := range e.Lines {
		switch l.Type {
		case model.Debit:
			hasDebit = true
		case model.Credit:
			hasCredit = true
		default:
			errs = append(errs, ValidationError{
				Invariant:   InvLineType,
				EntryID:     e.ID,
				Description: fmt.Sprintf("line %d has invalid type %q", i+1, l.Type),
			})
		}

		if !accounts.Exists(l.AccountID) {
			errs = append(errs, ValidationError{
				Invariant:   InvKnownAccount,
				EntryID:     e.ID,
				Description: fmt.Sprintf("line %d: unknown account %q", i+1, l.AccountID),
			})
		}

		if !l.Amount.IsPositive() {
			errs = append(errs, ValidationError{
				Invariant:   InvPositive,
				EntryID:     e.ID,
				Description: fmt.Sprintf("line %d: amount %s must be greater than zero", i+1, l.Amount),
			})
		} else if scaled := l.Amount.Mul(hundred); !scaled.Equal(scaled.Floor()) {
			errs = append(errs, ValidationError{
				Invariant:   InvTwoDecimals,
				EntryID:     e.ID,
				Description: fmt.Sprintf("line %d: amount %s has more than 2 decimal places", i+1, l.Amount),
			})
		}
	}

	if !hasDebit || !hasCredit {
		errs = append(errs, ValidationError{
			Invariant:   InvBothSides,
			EntryID:     e.ID,
			Description: "entry needs at least one debit and one credit line",
		})
	}

	return errs
}

// ValidateJournal checks every entry plus the journal-wide id uniqueness.
func ValidateJournal(entries []model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.ID] {
			errs = append(errs, ValidationError{
				Invariant:   InvUniqueEntryID,
				EntryID:     e.ID,
				Description: "duplicate entry id",
			})
		}
		seen[e.ID] = true
		errs = append(errs, ValidateEntry(e, accounts)...)
	}
	return errs
}

// FindOrphans reports lines that reference accounts missing from the chart.
// Projections silently skip such lines, so this is the only place they surface.
func FindOrphans(entries []model.JournalEntry, accounts AccountChecker) []ValidationError {
	var errs []ValidationError
	for _, e := range entries {
		for i, l := range e.Lines {
			if accounts.Exists(l.AccountID) {
				continue
			}
			errs = append(errs, ValidationError{
				Invariant:   InvKnownAccount,
				EntryID:     e.ID,
				Description: fmt.Sprintf("line %d: unknown account %q", i+1, l.AccountID),
			})
		}
	}
	return errs
}
