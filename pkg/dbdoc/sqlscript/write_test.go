package sqlscript

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriteBlockAppendCreatesThenAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), TableFile)

	require.NoError(t, WriteBlock(path, "A;B", ModeAppend))
	assert.Equal(t, "A;B", readFile(t, path))

	require.NoError(t, WriteBlock(path, "A;B", ModeAppend))
	assert.Equal(t, "A;BA;B", readFile(t, path))
}

func TestWriteBlockReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), TableFile)

	require.NoError(t, WriteBlock(path, "first", ModeReplace))
	require.NoError(t, WriteBlock(path, "second", ModeReplace))
	assert.Equal(t, "second", readFile(t, path))
}

func TestEmitTwiceDuplicatesStatements(t *testing.T) {
	dir := t.TempDir()
	pairs := []models.Pair{
		tablePair("Orders", "Stores customer orders"),
		tablePair("Users", "Registered users"),
		columnPair("Orders", "Id", "Key"),
	}
	tableBlock := Block(pairs, models.KindTable, MSSQL{})
	columnBlock := Block(pairs, models.KindColumn, MSSQL{})

	res, err := Emit(pairs, dir, ModeAppend, MSSQL{})
	require.NoError(t, err)
	assert.Equal(t, Result{
		TableFile:  filepath.Join(dir, TableFile),
		ColumnFile: filepath.Join(dir, ColumnFile),
		Tables:     2,
		Columns:    1,
	}, res)

	_, err = Emit(pairs, dir, ModeAppend, MSSQL{})
	require.NoError(t, err)

	assert.Equal(t, tableBlock+tableBlock, readFile(t, res.TableFile))
	assert.Equal(t, columnBlock+columnBlock, readFile(t, res.ColumnFile))
}

func TestEmitReplaceIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	pairs := []models.Pair{tablePair("Orders", "Stores customer orders")}

	for i := 0; i < 2; i++ {
		_, err := Emit(pairs, dir, ModeReplace, MSSQL{})
		require.NoError(t, err)
	}

	assert.Equal(t, Block(pairs, models.KindTable, MSSQL{}), readFile(t, filepath.Join(dir, TableFile)))
	assert.Equal(t, "", readFile(t, filepath.Join(dir, ColumnFile)))
}

func TestClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Clean(dir))

	_, err := Emit([]models.Pair{tablePair("T", "d")}, dir, ModeAppend, MSSQL{})
	require.NoError(t, err)
	require.NoError(t, Clean(dir))

	_, err = os.Stat(filepath.Join(dir, TableFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
	_, err = os.Stat(filepath.Join(dir, ColumnFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseWriteMode(t *testing.T) {
	m, err := ParseWriteMode("Replace")
	require.NoError(t, err)
	assert.Equal(t, ModeReplace, m)

	_, err = ParseWriteMode("overwrite")
	assert.Error(t, err)
}
