package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tally-dev/tally/internal/appdir"
	"github.com/tally-dev/tally/internal/model"
	"github.com/tally-dev/tally/internal/session"
)

const chaseCSV = `Transaction Date,Post Date,Description,Category,Type,Amount,Memo
01/15/2024,01/16/2024,WHOLE FOODS MARKET,Groceries,Sale,-54.32,
01/18/2024,01/19/2024,AMAZON.COM*RT4G82XQ3,Shopping,Sale,-23.99,
01/31/2024,01/31/2024,Payment Thank You - Web,,Payment,500.00,
`

const ordersCSV = `date,total,items
01/12/2024,23.99,1x USB cable
`

func run(t *testing.T, args ...string) error {
	t.Helper()
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	return cmd.Execute()
}

func setupDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv(appdir.EnvOverride, dir)
	return dir
}

func writeFixture(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestInit(t *testing.T) {
	dir := setupDataDir(t)
	require.NoError(t, run(t, "init"))

	assert.FileExists(t, filepath.Join(dir, configFile))
	assert.FileExists(t, filepath.Join(dir, mappingsFile))

	// Running again leaves existing files alone.
	require.NoError(t, run(t, "init"))
}

func TestImport_AutoDetect(t *testing.T) {
	dir := setupDataDir(t)
	csv := writeFixture(t, "chase.csv", chaseCSV)

	require.NoError(t, run(t, "import", csv, "--source", "chase-jan"))

	txns, err := session.NewService(dir).ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "chase-jan", txns[0].Source)
	assert.Equal(t, model.CategoryUncategorized, txns[0].Category)
}

func TestImport_RequiresSource(t *testing.T) {
	setupDataDir(t)
	csv := writeFixture(t, "chase.csv", chaseCSV)
	require.Error(t, run(t, "import", csv))
}

func TestImport_UnknownFormat(t *testing.T) {
	setupDataDir(t)
	csv := writeFixture(t, "chase.csv", chaseCSV)
	err := run(t, "import", csv, "--source", "x", "--format", "Nonexistent Bank")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestImport_ReconcilesAgainstLoadedOrders(t *testing.T) {
	dir := setupDataDir(t)
	orders := writeFixture(t, "orders.csv", ordersCSV)
	csv := writeFixture(t, "chase.csv", chaseCSV)

	require.NoError(t, run(t, "amazon", orders))
	require.NoError(t, run(t, "import", csv, "--source", "chase-jan"))

	txns, err := session.NewService(dir).ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txns, 3)
	assert.Equal(t, "1x USB cable", txns[1].Description)
	assert.Equal(t, 1, txns[1].OrderID)

	// The match survives in the persisted order pool.
	_, consumed, err := session.NewService(dir).ReadOrders()
	require.NoError(t, err)
	assert.Equal(t, []int{1}, consumed)
}

func TestLearn_RecategorizesSession(t *testing.T) {
	dir := setupDataDir(t)
	csv := writeFixture(t, "chase.csv", chaseCSV)

	require.NoError(t, run(t, "import", csv, "--source", "chase-jan"))
	require.NoError(t, run(t, "learn", "whole foods market", "Groceries"))

	txns, err := session.NewService(dir).ReadTransactions()
	require.NoError(t, err)
	assert.Equal(t, "Groceries", txns[0].Category)

	// The mapping applies to future imports too.
	require.NoError(t, run(t, "learn", "Payment Thank You - Web", "Card Payment"))
	require.NoError(t, run(t, "import", csv, "--source", "chase-feb"))
	txns, err = session.NewService(dir).ReadTransactions()
	require.NoError(t, err)
	require.Len(t, txns, 6)
	assert.Equal(t, "Card Payment", txns[5].Category)
}

func TestExport_EmptySessionFails(t *testing.T) {
	setupDataDir(t)
	err := run(t, "export", "-o", filepath.Join(t.TempDir(), "out.xlsx"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no transactions")
}

func TestExportImportSummary(t *testing.T) {
	dir := setupDataDir(t)
	csv := writeFixture(t, "chase.csv", chaseCSV)
	out := filepath.Join(t.TempDir(), "out.xlsx")

	require.NoError(t, run(t, "import", csv, "--source", "chase-jan"))
	require.NoError(t, run(t, "export", "-o", out))
	assert.FileExists(t, out)

	require.NoError(t, run(t, "import-summary", out))
	txns, err := session.NewService(dir).ReadTransactions()
	require.NoError(t, err)
	assert.Len(t, txns, 6)
}

func TestCategories(t *testing.T) {
	setupDataDir(t)
	require.NoError(t, run(t, "categories", "add", "expense", "Pets"))
	require.NoError(t, run(t, "categories", "remove", "expense", "Pets"))
	require.NoError(t, run(t, "categories", "list"))
	require.Error(t, run(t, "categories", "add", "bogus", "X"))
}

func TestLog(t *testing.T) {
	setupDataDir(t)
	require.NoError(t, run(t, "log"))

	csv := writeFixture(t, "chase.csv", chaseCSV)
	require.NoError(t, run(t, "import", csv, "--source", "chase-jan"))
	require.NoError(t, run(t, "log"))
}
