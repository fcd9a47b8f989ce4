package journal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

// mockAccounts implements AccountChecker for testing.
type mockAccounts struct {
	ids map[string]bool
}

func (m *mockAccounts) Exists(id string) bool {
	return m.ids[id]
}

func newMockAccounts(ids ...string) *mockAccounts {
	m := &mockAccounts{ids: make(map[string]bool)}
	for _, id := range ids {
		m.ids[id] = true
	}
	return m
}

var defaultAccounts = newMockAccounts("cash", "bank", "loan", "fares", "fuel")

func balancedEntry(id, debitAcct, creditAcct, amount string) model.JournalEntry {
	return model.JournalEntry{
		ID:          id,
		Date:        date(2025, 1, 15),
		Description: "test",
		Lines: []model.JournalLine{
			line(debitAcct, model.Debit, amount),
			line(creditAcct, model.Credit, amount),
		},
	}
}

func invariants(errs []ValidationError) []int {
	out := make([]int, len(errs))
	for i, e := range errs {
		out[i] = e.Invariant
	}
	return out
}

func TestValidate_Balanced(t *testing.T) {
	errs := ValidateEntry(balancedEntry("2025-01-001", "fuel", "cash", "100.00"), defaultAccounts)
	assert.Empty(t, errs)
}

func TestValidate_Unbalanced(t *testing.T) {
	e := balancedEntry("2025-01-001", "fuel", "cash", "100.00")
	e.Lines[1].Amount = dec("90.00")

	errs := ValidateEntry(e, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, InvBalanced, errs[0].Invariant)
	assert.Equal(t, "2025-01-001", errs[0].EntryID)
	assert.Contains(t, errs[0].Error(), "debits (100.00) != credits (90.00)")
}

func TestValidate_BothSides(t *testing.T) {
	e := model.JournalEntry{
		ID: "2025-01-001",
		Lines: []model.JournalLine{
			line("fuel", model.Debit, "10"),
			line("cash", model.Debit, "10"),
		},
	}
	errs := ValidateEntry(e, defaultAccounts)
	assert.Contains(t, invariants(errs), InvBothSides)
	assert.Contains(t, invariants(errs), InvBalanced)
}

func TestValidate_UnknownAccount(t *testing.T) {
	errs := ValidateEntry(balancedEntry("2025-01-001", "fuel", "ghost", "5.00"), defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, InvKnownAccount, errs[0].Invariant)
	assert.Contains(t, errs[0].Description, `"ghost"`)
}

func TestValidate_Positive(t *testing.T) {
	for _, amount := range []string{"0", "-5.00"} {
		errs := ValidateEntry(balancedEntry("2025-01-001", "fuel", "cash", amount), defaultAccounts)
		assert.Equal(t, []int{InvPositive, InvPositive}, invariants(errs), amount)
	}
}

func TestValidate_TooManyDecimals(t *testing.T) {
	errs := ValidateEntry(balancedEntry("2025-01-001", "fuel", "cash", "1.005"), defaultAccounts)
	assert.Equal(t, []int{InvTwoDecimals, InvTwoDecimals}, invariants(errs))

	assert.Empty(t, ValidateEntry(balancedEntry("2025-01-002", "fuel", "cash", "1.50"), defaultAccounts))
	assert.Empty(t, ValidateEntry(balancedEntry("2025-01-003", "fuel", "cash", "7"), defaultAccounts))
}

func TestValidate_LineType(t *testing.T) {
	e := balancedEntry("2025-01-001", "fuel", "cash", "1.00")
	e.Lines = append(e.Lines, model.JournalLine{AccountID: "cash", Type: "sideways", Amount: dec("1.00")})

	errs := ValidateEntry(e, defaultAccounts)
	assert.Equal(t, []int{InvLineType}, invariants(errs))
}

func TestValidate_MultiLineBalanced(t *testing.T) {
	e := model.JournalEntry{
		ID: "2025-01-001",
		Lines: []model.JournalLine{
			line("fuel", model.Debit, "60.00"),
			line("loan", model.Debit, "40.00"),
			line("cash", model.Credit, "75.00"),
			line("bank", model.Credit, "25.00"),
		},
	}
	assert.Empty(t, ValidateEntry(e, defaultAccounts))
}

func TestValidateJournal_DuplicateID(t *testing.T) {
	entries := []model.JournalEntry{
		balancedEntry("2025-01-001", "fuel", "cash", "1.00"),
		balancedEntry("2025-01-002", "fuel", "cash", "1.00"),
		balancedEntry("2025-01-001", "fares", "bank", "3.00"),
	}
	errs := ValidateJournal(entries, defaultAccounts)
	require.Len(t, errs, 1)
	assert.Equal(t, InvUniqueEntryID, errs[0].Invariant)
	assert.Equal(t, "2025-01-001", errs[0].EntryID)
}

func TestFindOrphans(t *testing.T) {
	entries := []model.JournalEntry{
		balancedEntry("2025-01-001", "fuel", "cash", "1.00"),
		balancedEntry("2025-01-002", "deleted", "cash", "2.00"),
	}
	orphans := FindOrphans(entries, defaultAccounts)
	require.Len(t, orphans, 1)
	assert.Equal(t, "2025-01-002", orphans[0].EntryID)
	assert.Contains(t, orphans[0].Description, "line 1")
}
