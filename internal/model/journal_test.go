package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLineSigned(t *testing.T) {
	tests := []struct {
		line JournalLine
		want string
	}{
		{JournalLine{Type: Debit, Amount: decimal.NewFromInt(100)}, "100"},
		{JournalLine{Type: Credit, Amount: decimal.NewFromInt(40)}, "-40"},
		{JournalLine{Type: Credit, Amount: decimal.Zero}, "0"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.line.Signed().String(), "Signed(%v)", tt.line)
	}
}

func TestEntryBalanced(t *testing.T) {
	e := JournalEntry{Lines: []JournalLine{
		{AccountID: "1-1-1", Type: Debit, Amount: decimal.NewFromInt(500)},
		{AccountID: "equity_opening", Type: Credit, Amount: decimal.NewFromInt(500)},
	}}
	assert.True(t, e.Balanced())

	e.Lines = append(e.Lines, JournalLine{AccountID: "1-1-2", Type: Debit, Amount: decimal.NewFromInt(1)})
	assert.False(t, e.Balanced())

	d, c := e.Totals()
	assert.Equal(t, "501", d.String())
	assert.Equal(t, "500", c.String())
}

func TestTypesValid(t *testing.T) {
	for _, at := range AccountTypes {
		assert.True(t, at.Valid(), "%s", at)
	}
	assert.False(t, AccountType("drawing").Valid())
	assert.True(t, Debit.Valid())
	assert.False(t, LineType("both").Valid())
	assert.Equal(t, Credit, Debit.Opposite())
	assert.Equal(t, Debit, Credit.Opposite())
}
