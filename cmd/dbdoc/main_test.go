package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sqlscript"
)

type fixture struct {
	dir      string
	env      []string
	template string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()

	dbPath := filepath.Join(dir, "shop.db")
	db, err := sql.Open("sqlite", dbPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE users (id INTEGER PRIMARY KEY, name TEXT NOT NULL);
		CREATE TABLE orders (id INTEGER PRIMARY KEY, user_id INTEGER REFERENCES users(id));
	`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	f := excelize.NewFile()
	defer f.Close()
	require.NoError(t, f.SetSheetName("Sheet1", "Table List"))
	require.NoError(t, f.SetSheetRow("Table List", "A1", &[]any{"No", "Table Name", "Table Description"}))
	require.NoError(t, f.SetSheetRow("Table List", "A2", &[]any{"{TableNo}", "{TableName}", "{TableDescription}"}))
	_, err = f.NewSheet("Table Template")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Table Template", "A1", &[]any{"Table", "", "-"}))
	require.NoError(t, f.SetSheetRow("Table Template", "A2", &[]any{"No", "Column Name", "Type", "Column Description"}))
	require.NoError(t, f.SetSheetRow("Table Template", "A3", &[]any{"{No}", "{ColumnName}", "{Type}", "{ColumnDescription}"}))
	template := filepath.Join(dir, "template.xlsx")
	require.NoError(t, f.SaveAs(template))

	return fixture{
		dir: dir,
		env: []string{
			"XDG_CONFIG_HOME=" + filepath.Join(dir, "config"),
			"DBDOC_DRIVER=sqlite",
			"DBDOC_DSN=" + dbPath,
			"DBDOC_OUTPUT_DIR=" + filepath.Join(dir, "out"),
			"DBDOC_TEMPLATE=" + template,
		},
		template: template,
	}
}

func (fx fixture) run(t *testing.T, args ...string) (string, string, int) {
	t.Helper()
	var out, errOut bytes.Buffer
	code := Execute(append([]string{"--log-format", "json"}, args...), &out, &errOut, fx.env)
	return out.String(), errOut.String(), code
}

func TestVersion(t *testing.T) {
	out, _, code := newFixture(t).run(t, "version")
	assert.Equal(t, 0, code)
	assert.Equal(t, "dbdoc version dev (commit: none)\n", out)
}

func TestTablesAndRemember(t *testing.T) {
	fx := newFixture(t)

	out, stderr, code := fx.run(t, "tables")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "  orders\n  users\n", out)

	_, stderr, code = fx.run(t, "remember", "--tables", "users")
	require.Equal(t, 0, code, stderr)

	out, stderr, code = fx.run(t, "tables")
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, "  orders\n* users\n", out)

	saved, err := os.ReadFile(filepath.Join(fx.dir, "config", "dbdoc", "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(saved), `"env"`)
	assert.NotContains(t, string(saved), "shop.db")
}

func TestColumns(t *testing.T) {
	out, stderr, code := newFixture(t).run(t, "columns", "orders")
	require.Equal(t, 0, code, stderr)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "NO"))
	assert.Contains(t, lines[2], "users(id)")
}

func TestExportThenHarvest(t *testing.T) {
	fx := newFixture(t)
	exported := filepath.Join(fx.dir, "doc.xlsx")

	out, stderr, code := fx.run(t, "export", "--tables", "users,orders", "--output", exported)
	require.Equal(t, 0, code, stderr)
	assert.Equal(t, exported+"\n", out)

	f, err := excelize.OpenFile(exported)
	require.NoError(t, err)
	assert.Equal(t, []string{"Table List", "users", "orders"}, f.GetSheetList())
	require.NoError(t, f.SetCellValue("Table List", "C2", "People"))
	require.NoError(t, f.SetCellValue("orders", "D4", "Buyer"))
	require.NoError(t, f.Save())
	require.NoError(t, f.Close())

	out, stderr, code = fx.run(t, "harvest", exported, "--dry-run", "--format", "yaml")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, out, "table_name: users")
	assert.Contains(t, out, "description: Buyer")

	_, stderr, code = fx.run(t, "harvest", exported)
	require.Equal(t, 0, code, stderr)
	_, stderr, code = fx.run(t, "harvest", exported)
	require.Equal(t, 0, code, stderr)

	data, err := os.ReadFile(filepath.Join(fx.dir, "out", sqlscript.ColumnFile))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "exec sp_addextendedproperty"))

	_, stderr, code = fx.run(t, "harvest", exported, "--mode", "append")
	require.Equal(t, 0, code, stderr)
	data, err = os.ReadFile(filepath.Join(fx.dir, "out", sqlscript.ColumnFile))
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "exec sp_addextendedproperty"))
}

func TestHarvestRejectsUnknownMode(t *testing.T) {
	fx := newFixture(t)

	_, stderr, code := fx.run(t, "harvest", fx.template, "--mode", "overwrite")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid write mode: overwrite")
}

func TestInvalidLogLevel(t *testing.T) {
	_, stderr, code := newFixture(t).run(t, "--log-level", "loud", "version")
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "invalid log level")
}
