package journal

import (
	"slices"
	"time"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// AccountLine pairs a journal line with the entry fields a ledger row needs.
type AccountLine struct {
	EntryID     string
	Date        time.Time
	Reference   string
	Description string
	Line        model.JournalLine
}

// Append returns entries with e added at the end. The input slice is never
// written to, even when it has spare capacity. Balance is not checked here;
// Service.Record enforces it before anything is persisted.
func Append(entries []model.JournalEntry, e model.JournalEntry) []model.JournalEntry {
	return append(slices.Clip(entries), e)
}

// LinesForAccount flattens entries and keeps the lines posted to accountID,
// in entry order then line order.
func LinesForAccount(entries []model.JournalEntry, accountID string) []AccountLine {
	var out []AccountLine
	for _, e := range entries {
		for _, l := range e.Lines {
			if l.AccountID != accountID {
				continue
			}
			out = append(out, AccountLine{
				EntryID:     e.ID,
				Date:        e.Date,
				Reference:   e.Reference,
				Description: e.Description,
				Line:        l,
			})
		}
	}
	return out
}
