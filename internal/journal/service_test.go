package journal

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

func fuelPurchase(d time.Time, amount string) EntryParams {
	return EntryParams{
		Date:        d,
		Reference:   "R-1",
		Description: "Diesel",
		Lines: []model.JournalLine{
			line("fuel", model.Debit, amount),
			line("cash", model.Credit, amount),
		},
	}
}

func TestRecord_NewMonth(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts, zap.NewNop())

	e, err := svc.Record(fuelPurchase(date(2025, 1, 15), "4.00"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-001", e.ID)

	_, err = os.Stat(filepath.Join(dir, "journal", "2025", "01", "journal.csv"))
	require.NoError(t, err)

	entries, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].Lines, 2)
	assert.Equal(t, model.Debit, entries[0].Lines[0].Type)
	assert.True(t, entries[0].Lines[1].Amount.Equal(dec("4.00")))
}

func TestRecord_ExistingMonth(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)

	_, err := svc.Record(fuelPurchase(date(2025, 1, 10), "10.00"))
	require.NoError(t, err)
	e, err := svc.Record(fuelPurchase(date(2025, 1, 20), "20.00"))
	require.NoError(t, err)
	assert.Equal(t, "2025-01-002", e.ID)

	entries, err := svc.ReadMonth(2025, 1)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRecord_NormalizesDate(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)

	local := time.Date(2025, 3, 9, 23, 30, 0, 0, time.FixedZone("EET", 2*60*60))
	e, err := svc.Record(fuelPurchase(local, "1.00"))
	require.NoError(t, err)
	assert.Equal(t, date(2025, 3, 9), e.Date)
}

func TestRecord_Unbalanced(t *testing.T) {
	dir := t.TempDir()
	svc := NewService(dir, defaultAccounts, nil)

	p := fuelPurchase(date(2025, 1, 15), "100.00")
	p.Lines[1].Amount = dec("60.00")

	_, err := svc.Record(p)
	require.ErrorIs(t, err, ErrInvalidEntry)
	assert.Contains(t, err.Error(), "invariant 1")

	_, err = os.Stat(filepath.Join(dir, "journal", "2025", "01", "journal.csv"))
	assert.True(t, os.IsNotExist(err), "nothing written on failure")
}

func TestRecord_InvalidParams(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)

	tests := []struct {
		name   string
		params EntryParams
	}{
		{"no date", EntryParams{Description: "x", Lines: fuelPurchase(date(2025, 1, 1), "1").Lines}},
		{"no description", EntryParams{Date: date(2025, 1, 1), Lines: fuelPurchase(date(2025, 1, 1), "1").Lines}},
		{"one line", EntryParams{Date: date(2025, 1, 1), Description: "x", Lines: []model.JournalLine{line("cash", model.Debit, "1")}}},
		{"bad line type", EntryParams{Date: date(2025, 1, 1), Description: "x", Lines: []model.JournalLine{
			line("cash", model.Debit, "1"), line("fuel", "both", "1"),
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Record(tt.params)
			assert.ErrorIs(t, err, model.ErrInvalid)
		})
	}
}

func TestReadAll_ChronologicalFileOrder(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)

	for _, d := range []time.Time{date(2025, 2, 1), date(2024, 12, 31), date(2025, 1, 5), date(2025, 1, 2)} {
		_, err := svc.Record(fuelPurchase(d, "1.00"))
		require.NoError(t, err)
	}

	all, err := svc.ReadAll()
	require.NoError(t, err)
	ids := make([]string, len(all))
	for i, e := range all {
		ids[i] = e.ID
	}
	assert.Equal(t, []string{"2024-12-001", "2025-01-001", "2025-01-002", "2025-02-001"}, ids)
}

func TestReadAll_Empty(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)
	all, err := svc.ReadAll()
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestNextEntrySeq(t *testing.T) {
	svc := NewService(t.TempDir(), defaultAccounts, nil)

	seq, err := svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, seq)

	for range 3 {
		_, err := svc.Record(fuelPurchase(date(2025, 1, 15), "1.00"))
		require.NoError(t, err)
	}

	seq, err = svc.NextEntrySeq(2025, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, seq)
}

func TestStore_AppendAndLinesForAccount(t *testing.T) {
	var entries []model.JournalEntry
	entries = Append(entries, balancedEntry("e1", "fuel", "cash", "100.00"))
	unbalanced := balancedEntry("e2", "cash", "fares", "60.00")
	unbalanced.Lines[1].Amount = dec("10.00")
	entries = Append(entries, unbalanced)
	entries = Append(entries, balancedEntry("e3", "bank", "loan", "5.00"))
	require.Len(t, entries, 3, "append does not validate balance")

	got := LinesForAccount(entries, "cash")
	require.Len(t, got, 2)
	assert.Equal(t, "e1", got[0].EntryID)
	assert.Equal(t, model.Credit, got[0].Line.Type)
	assert.Equal(t, "e2", got[1].EntryID)
	assert.Equal(t, model.Debit, got[1].Line.Type)

	assert.Empty(t, LinesForAccount(entries, "nobody"))
}

func TestStore_AppendDoesNotShareBacking(t *testing.T) {
	base := make([]model.JournalEntry, 1, 4)
	base[0] = balancedEntry("e1", "fuel", "cash", "100.00")

	left := Append(base, balancedEntry("e2", "cash", "fares", "10.00"))
	right := Append(base, balancedEntry("e3", "bank", "loan", "5.00"))

	assert.Equal(t, "e2", left[1].ID, "later append on the same base must not overwrite")
	assert.Equal(t, "e3", right[1].ID)
	assert.Len(t, base, 1)
	assert.Equal(t, 4, cap(base))
}
