package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ledgerbook/ledgerbook/internal/accounts"
	"github.com/ledgerbook/ledgerbook/internal/commands"
	"github.com/ledgerbook/ledgerbook/internal/importer"
)

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := commands.NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, errOut, err := run(t, args...)
	require.NoError(t, err, errOut)
	return out
}

func initBooks(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	mustRun(t, "init", dir, "--name", "Test Biz", "--currency", "USD", "--no-git")
	return dir
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := initBooks(t)

	for _, d := range []string{"accounts", "journal", "logs", "import", filepath.Join("import", "processed")} {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}

	f, err := os.Open(accounts.Path(dir))
	require.NoError(t, err)
	defer f.Close()
	roots, err := accounts.ReadAccounts(f)
	require.NoError(t, err)
	assert.Len(t, roots, 5, "one root per account type")
}

func TestInit_Config(t *testing.T) {
	dir := initBooks(t)

	data, err := os.ReadFile(filepath.Join(dir, "ledgerbook.yaml"))
	require.NoError(t, err)
	contents := string(data)
	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "entity_type: transport_company")
	assert.Contains(t, contents, "currency: USD")
	assert.Contains(t, contents, "opening_balance_account: equity_opening")
}

func TestInit_Errors(t *testing.T) {
	dir := t.TempDir()
	_, _, err := run(t, "init", dir)
	require.Error(t, err, "init without --name should fail")

	_, _, err = run(t, "init", dir, "--name", "X", "--currency", "DOLLARS", "--no-git")
	require.Error(t, err, "currency must be a 3-letter code")

	mustRun(t, "init", dir, "--name", "X", "--no-git")
	_, _, err = run(t, "init", dir, "--name", "X", "--no-git")
	assert.ErrorContains(t, err, "already initialized")
}

func TestInit_GitRepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir := t.TempDir()
	mustRun(t, "init", dir, "--name", "Test Biz")

	log := exec.Command("git", "log", "--format=%s|%an <%ae>", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Equal(t, "init: Initialize Test Biz|Ledgerbook <books@ledgerbook.local>\n", string(out))
}

func TestAccountAdd_OpeningBalance(t *testing.T) {
	dir := initBooks(t)

	out := mustRun(t, "account", "add", "--repo", dir,
		"--code", "1135", "--name", "Fleet Deposits", "--type", "asset",
		"--parent", "1100", "--opening-balance", "500", "--date", "2025-01-01")
	assert.Contains(t, out, "Added 1135 Fleet Deposits (asset)")
	assert.Contains(t, out, "Opening balance $500 against equity_opening")

	out = mustRun(t, "ledger", "1135", "--repo", dir)
	assert.Contains(t, out, "OB-1135")
	assert.Contains(t, out, "Opening Balance - Fleet Deposits")
	assert.Contains(t, out, "Total (1)")

	out = mustRun(t, "account", "list", "--repo", dir, "--type", "asset")
	assert.Contains(t, out, "    1135 Fleet Deposits")
	assert.NotContains(t, out, "Opening Balance Equity")
}

func TestAccountAdd_Errors(t *testing.T) {
	dir := initBooks(t)

	_, _, err := run(t, "account", "add", "--repo", dir, "--code", "1110", "--name", "Dup", "--type", "asset")
	assert.ErrorIs(t, err, accounts.ErrDuplicateCode)

	_, _, err = run(t, "account", "add", "--repo", dir, "--code", "6100", "--name", "X", "--type", "expense", "--parent", "1100")
	assert.ErrorContains(t, err, "different type")

	_, _, err = run(t, "account", "add", "--repo", dir, "--code", "6100", "--name", "X", "--type", "asset", "--opening-balance", "ten")
	assert.ErrorContains(t, err, "invalid opening balance")
}

func TestJournalAdd_TrialBalance(t *testing.T) {
	dir := initBooks(t)

	out := mustRun(t, "journal", "add", "--repo", dir, "--date", "2025-03-02",
		"--reference", "INV-7", "--description", "Route fares",
		"--line", "1110:debit:1500", "--line", "4100:credit:1500")
	assert.Equal(t, "Recorded 2025-03-001 Route fares ($1,500)\n", out)

	out = mustRun(t, "trial-balance", "--repo", dir)
	assert.Contains(t, out, "1110 Cash on Hand")
	assert.Contains(t, out, "4100 Transport Services Revenue")
	assert.Contains(t, out, "Balanced")

	out = mustRun(t, "trial-balance", "--repo", dir, "--csv")
	assert.True(t, strings.HasPrefix(out, "account_code,account_name,type,debit,credit,debit_balance,credit_balance\n"), out)

	out = mustRun(t, "trial-balance", "--repo", dir, "--from", "2025-04-01")
	assert.NotContains(t, out, "Cash on Hand")

	out = mustRun(t, "journal", "check", "--repo", dir)
	assert.Equal(t, "Journal OK: 1 entries\n", out)
}

func TestJournalAdd_Rejected(t *testing.T) {
	dir := initBooks(t)

	_, _, err := run(t, "journal", "add", "--repo", dir, "--date", "2025-03-02", "--description", "Short",
		"--line", "1110:debit:100", "--line", "4100:credit:90")
	assert.ErrorContains(t, err, "validation failed")

	_, _, err = run(t, "journal", "add", "--repo", dir, "--description", "Bad line", "--line", "1110-debit-100")
	assert.ErrorContains(t, err, "invalid line")

	_, _, err = run(t, "journal", "add", "--repo", dir, "--description", "Unknown", "--line", "9999:debit:1", "--line", "1110:credit:1")
	assert.ErrorIs(t, err, accounts.ErrAccountNotFound)

	_, err = os.Stat(filepath.Join(dir, "journal", "2025"))
	assert.True(t, os.IsNotExist(err), "nothing written")
}

func TestLedger_Filters(t *testing.T) {
	dir := initBooks(t)
	mustRun(t, "journal", "add", "--repo", dir, "--date", "2025-03-02", "--description", "Route fares",
		"--line", "1110:debit:1500", "--line", "4100:credit:1500")
	mustRun(t, "journal", "add", "--repo", dir, "--date", "2025-03-05", "--description", "Diesel",
		"--line", "5140:debit:400", "--line", "1110:credit:400")

	out := mustRun(t, "ledger", "1110", "--repo", dir, "--side", "credit")
	assert.Contains(t, out, "Diesel")
	assert.NotContains(t, out, "Route fares")
	assert.Contains(t, out, "Showing 1 of 2 transactions, account balance $1,100")

	out = mustRun(t, "ledger", "1110", "--repo", dir, "--search", "ROUTE", "--csv")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "date,reference,description,debit,credit,balance", lines[0])
	assert.Equal(t, "2025-03-02,,Route fares,1500.00,,1500.00", lines[1])

	_, _, err := run(t, "ledger", "1110", "--repo", dir, "--period", "month", "--from", "2025-01-01")
	assert.Error(t, err)

	_, _, err = run(t, "ledger", "1110", "--repo", dir, "--period", "fortnight")
	assert.ErrorContains(t, err, "unknown period")

	_, _, err = run(t, "ledger", "nope", "--repo", dir)
	assert.ErrorIs(t, err, accounts.ErrAccountNotFound)

	out = mustRun(t, "general-ledger", "--repo", dir)
	assert.Contains(t, out, "1110 Cash on Hand (asset)")
	assert.Contains(t, out, "5140 Fuel Expenses (expense)")
	assert.NotContains(t, out, "Vehicles")
}

const legacyExport = `{
  "chartOfAccounts": [
    {"id": "4", "code": "4000", "name": "Revenue", "type": "revenue", "children": [
      {"id": "acc_1731000000000", "code": "4400", "name": "Charter Revenue", "type": "revenue", "balance": 350.5}
    ]}
  ],
  "journalEntries": [
    {"id": "JE-1731000000001", "date": "2024-11-08", "reference": "", "description": "Charter trip",
     "lines": [{"account": "1-1-1", "type": "debit", "amount": 350.5}, {"account": "acc_1731000000000", "type": "credit", "amount": 350.5}]}
  ]
}`

func TestImport_ScansImportDir(t *testing.T) {
	dir := initBooks(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "import", "export.json"), []byte(legacyExport), 0o644))

	out := mustRun(t, "import", "--repo", dir)
	assert.Equal(t, "export.json: 1 accounts added, 1 already present, 1 entries recorded\n", out)

	_, err := os.Stat(filepath.Join(dir, "import", "processed", "export.json"))
	assert.NoError(t, err, "file moved to processed")

	out = mustRun(t, "ledger", "4400", "--repo", dir)
	assert.Contains(t, out, "Charter trip")

	out = mustRun(t, "import", "--repo", dir)
	assert.Equal(t, "No .json files in import/\n", out)
}

func TestImport_UnknownFormat(t *testing.T) {
	dir := initBooks(t)
	_, _, err := run(t, "import", "--repo", dir, "--format", "qif")
	assert.ErrorIs(t, err, importer.ErrUnknownFormat)
}
