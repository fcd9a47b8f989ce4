package accounts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/ledgerbook/internal/model"
)

func TestNewService(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))

	assert.Equal(t, 44, svc.Len())
	assert.Len(t, svc.All(), 44)
	assert.Len(t, svc.Roots(), 5)
}

func TestGetExists(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))

	a, ok := svc.Get("1-1-1")
	assert.True(t, ok)
	assert.Equal(t, "Cash on Hand", a.Name)

	_, ok = svc.Get("9999")
	assert.False(t, ok)

	assert.True(t, svc.Exists("1-1-1"))
	assert.False(t, svc.Exists("9999"))

	parent, ok := svc.ParentOf("1-1-4-2")
	assert.True(t, ok)
	assert.Equal(t, "1-1-4", parent)
}

func TestResolve(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))

	byID, err := svc.Resolve("1-2-1")
	require.NoError(t, err)
	byCode, err := svc.Resolve("1210")
	require.NoError(t, err)
	assert.Equal(t, byID.ID, byCode.ID)

	_, err = svc.Resolve("nope")
	assert.ErrorIs(t, err, ErrAccountNotFound)
}

func TestByType(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))

	revenue := svc.ByType(model.AccountTypeRevenue)
	assert.Len(t, revenue, 4)
	for _, fa := range revenue {
		assert.Equal(t, model.AccountTypeRevenue, fa.Account.Type)
	}
}

func TestServiceInsert(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))

	err := svc.Insert(model.Account{ID: "acc_x", Code: "1125", Name: "Petty Cash", Type: model.AccountTypeAsset}, "1-1")
	require.NoError(t, err)
	assert.True(t, svc.Exists("acc_x"))
	assert.Equal(t, 45, svc.Len())

	parent, _ := svc.ParentOf("acc_x")
	assert.Equal(t, "1-1", parent)

	err = svc.Insert(model.Account{ID: "acc_y", Code: "1125", Type: model.AccountTypeAsset}, "")
	assert.ErrorIs(t, err, ErrDuplicateCode)
	assert.False(t, svc.Exists("acc_y"))
	assert.Equal(t, 45, svc.Len())
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestSaveRoundTrip(t *testing.T) {
	svc := NewService(DefaultChart("transport_company"))
	require.NoError(t, svc.Insert(model.Account{ID: "acc_x", Code: "1235", Name: "Trailers", Type: model.AccountTypeAsset}, "1-2"))

	dir := t.TempDir()
	err := svc.Save(dir)
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "accounts", "chart-of-accounts.csv.tmp"))
	assert.ErrorIs(t, err, os.ErrNotExist, "temp file must be renamed away")

	svc2, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, svc.Len(), svc2.Len())

	for _, orig := range svc.All() {
		got, ok := svc2.Get(orig.Account.ID)
		require.True(t, ok, "account %s should exist", orig.Account.ID)
		assert.Equal(t, orig.Account.Code, got.Code)
		assert.Equal(t, orig.Account.Type, got.Type)
	}
	parent, _ := svc2.ParentOf("acc_x")
	assert.Equal(t, "1-2", parent)
}
