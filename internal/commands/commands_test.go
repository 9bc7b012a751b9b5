package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/plbank/internal/config"
)

const testAccount = "Assets:PL:MBank:Checking"

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// workspace writes a default config and a copy of the sample export into a
// temp dir, returning the config path and the export path.
func workspace(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, config.FileName)
	require.NoError(t, config.Save(cfgPath, config.Default(testAccount)))

	data, err := os.ReadFile(filepath.Join("..", "..", "testdata", "mbank_history.csv"))
	require.NoError(t, err)
	export := filepath.Join(dir, "mbank_2024_01.csv")
	require.NoError(t, os.WriteFile(export, data, 0o644))

	return cfgPath, export
}

func TestInit(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "books")

	stdout, _, err := execute(t, "init", dir, "--account", testAccount)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote")

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	require.Len(t, cfg.Importers, 1)
	assert.Equal(t, testAccount, cfg.Importers[0].Account)
	assert.Equal(t, "PLN", cfg.Importers[0].Currency)
	assert.NoError(t, cfg.Validate())
}

func TestInitRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()

	_, _, err := execute(t, "init", dir, "--account", testAccount)
	require.NoError(t, err)

	_, _, err = execute(t, "init", dir, "--account", testAccount)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", dir, "--account", "Assets:PL:Other", "--force")
	require.NoError(t, err)
	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "Assets:PL:Other", cfg.Importers[0].Account)
}

func TestInitRequiresAccount(t *testing.T) {
	_, _, err := execute(t, "init", t.TempDir())
	require.Error(t, err)
}

func TestInitRejectsBadAccount(t *testing.T) {
	dir := t.TempDir()
	_, _, err := execute(t, "init", dir, "--account", "checking")
	require.Error(t, err)
	assert.NoFileExists(t, filepath.Join(dir, config.FileName))
}

func TestIdentify(t *testing.T) {
	cfgPath, export := workspace(t)
	other := filepath.Join(filepath.Dir(export), "statement.pdf")

	stdout, _, err := execute(t, "--config", cfgPath, "identify", export, other)
	require.NoError(t, err)
	assert.Equal(t, export+"\tmbank\n", stdout)
}

func TestFileAccount(t *testing.T) {
	cfgPath, export := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "file-account", export)
	require.NoError(t, err)
	assert.Equal(t, testAccount+"\n", stdout)

	_, _, err = execute(t, "--config", cfgPath, "file-account", "notes.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no importer")
}

func TestExtract(t *testing.T) {
	cfgPath, export := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "--log-level", "error", "extract", export)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, ";; "+export+"\n"))
	assert.Contains(t, stdout, ";; account: "+testAccount+"\n")
	assert.Contains(t, stdout, ";; transactions: 6\n")
	assert.Equal(t, 6, strings.Count(stdout, " * \"\" "))
	assert.Contains(t, stdout, `2024-01-05 * "" "Zakup"`)
	assert.Contains(t, stdout, `  location: "Starbucks"`)
	assert.Equal(t, 6, strings.Count(stdout, "  Expenses:FIXME"))
}

func TestExtractSkipsUnclaimedFiles(t *testing.T) {
	cfgPath, _ := workspace(t)

	stdout, stderr, err := execute(t, "--config", cfgPath, "extract", "notes.txt")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "no importer accepts file")
}

func TestExtractMissingConfig(t *testing.T) {
	_, _, err := execute(t, "--config", filepath.Join(t.TempDir(), "nope.yaml"), "extract", "mbank.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading config")
}

func TestExtractBadLogLevel(t *testing.T) {
	cfgPath, export := workspace(t)

	_, _, err := execute(t, "--config", cfgPath, "--log-level", "loud", "extract", export)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "log level")
}

func TestIdentify_Importer(t *testing.T) {
	cfgPath, export := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "identify", "--importer", "MBANK", export)
	require.NoError(t, err)
	assert.Equal(t, export+"\tmbank\n", stdout)

	_, _, err = execute(t, "--config", cfgPath, "identify", "--importer", "ing", export)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown importer "ing"`)
}

func TestExtract_Importer(t *testing.T) {
	cfgPath, export := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "--log-level", "error", "extract", "--importer", "mbank", export)
	require.NoError(t, err)
	assert.Contains(t, stdout, ";; transactions: 6\n")

	_, _, err = execute(t, "--config", cfgPath, "extract", "--importer", "ing", export)
	require.Error(t, err)
}

func TestExtract_Open(t *testing.T) {
	cfgPath, export := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "--log-level", "error", "extract", "--open", export)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout,
		"2024-01-05 open "+testAccount+"\n2024-01-05 open Expenses:FIXME\n\n;; "+export+"\n"), stdout)
}

func TestExtract_OpenWithoutTransactions(t *testing.T) {
	cfgPath, _ := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "--log-level", "error", "extract", "--open", "notes.txt")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestImporters(t *testing.T) {
	cfgPath, _ := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "importers")
	require.NoError(t, err)
	assert.Equal(t, "mbank\t"+testAccount+"\n", stdout)
}

func TestAccounts(t *testing.T) {
	cfgPath, _ := workspace(t)

	stdout, _, err := execute(t, "--config", cfgPath, "accounts")
	require.NoError(t, err)
	assert.Equal(t, testAccount+"\nExpenses:FIXME\n", stdout)

	stdout, _, err = execute(t, "--config", cfgPath, "accounts", "--type", "expenses")
	require.NoError(t, err)
	assert.Equal(t, "Expenses:FIXME\n", stdout)

	_, _, err = execute(t, "--config", cfgPath, "accounts", "--type", "Revenue")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown account type")
}
