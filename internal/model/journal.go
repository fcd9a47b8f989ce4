package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineType is the side of a journal line.
type LineType string

const (
	Debit  LineType = "debit"
	Credit LineType = "credit"
)

// Valid reports whether t is debit or credit.
func (t LineType) Valid() bool {
	return t == Debit || t == Credit
}

// Opposite returns the other side.
func (t LineType) Opposite() LineType {
	if t == Debit {
		return Credit
	}
	return Debit
}

// JournalLine moves Amount on one account. Amount is never negative; the sign lives in Type.
type JournalLine struct {
	AccountID string          `validate:"required"`
	Type      LineType        `validate:"lineType"`
	Amount    decimal.Decimal // positivity is checked by journal.ValidateEntry
}

// Signed returns the amount as a debit-positive movement.
func (l JournalLine) Signed() decimal.Decimal {
	if l.Type == Credit {
		return l.Amount.Neg()
	}
	return l.Amount
}

// JournalEntry is one recorded financial event.
type JournalEntry struct {
	ID          string
	Date        time.Time
	Reference   string
	Description string
	Lines       []JournalLine
}

// Totals returns the debit and credit sums of the entry.
func (e JournalEntry) Totals() (debit, credit decimal.Decimal) {
	debit, credit = decimal.Zero, decimal.Zero
	for _, l := range e.Lines {
		switch l.Type {
		case Debit:
			debit = debit.Add(l.Amount)
		case Credit:
			credit = credit.Add(l.Amount)
		}
	}
	return debit, credit
}

// Balanced reports whether the entry's debits equal its credits.
func (e JournalEntry) Balanced() bool {
	d, c := e.Totals()
	return d.Equal(c)
}
