package workbook

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/parser"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sheet"
)

func writeFixture(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	require.NoError(t, f.SetSheetName("Sheet1", "Table List"))
	f.SetCellValue("Table List", "A1", "Table Name")
	f.SetCellValue("Table List", "B1", "Table Description")
	f.SetCellValue("Table List", "A2", "{TableName}")
	f.SetCellValue("Table List", "B2", "{TableDescription}")
	f.SetCellValue("Table List", "A3", "Users")
	f.SetCellValue("Table List", "A4", "footer")

	_, err := f.NewSheet("Table Template")
	require.NoError(t, err)
	f.SetCellValue("Table Template", "C1", "{Table}")
	f.SetCellValue("Table Template", "A3", "Column Name")
	require.NoError(t, f.SetDefinedName(&excelize.DefinedName{
		Name:     "_xlnm.Print_Area",
		RefersTo: "'Table Template'!$A$1:$K$20",
		Scope:    "Table Template",
	}))

	path := filepath.Join(t.TempDir(), "template.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestOpenLoadsEverySheet(t *testing.T) {
	doc, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer doc.Close()

	wb := doc.Workbook()
	assert.Equal(t, "template.xlsx", wb.Name)
	require.Len(t, wb.Sheets, 2)
	assert.Equal(t, "Table List", wb.Sheets[0].Name)
	assert.Equal(t, "Table Template", wb.Sheets[1].Name)
	assert.Equal(t, 3, wb.Sheets[0].LastRowNum())
}

func TestSaveAsReplaysEdits(t *testing.T) {
	doc, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer doc.Close()

	list := doc.Workbook().Sheet("Table List")
	require.NoError(t, sheet.SetFirstMatchHyperlinkInRow(list, 1, "{TableName}", "Orders", "Orders"))
	require.NoError(t, sheet.SetFirstMatchContentInRow(list, 1, "{TableDescription}", "Customer orders"))
	require.True(t, sheet.RemoveFirstMatchRow(list, "Users"))

	out := filepath.Join(t.TempDir(), "nested", "out.xlsx")
	require.NoError(t, doc.SaveAs(out))
	assert.Empty(t, list.RemovedRows)

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer f.Close()

	v, err := f.GetCellValue("Table List", "A2")
	require.NoError(t, err)
	assert.Equal(t, "Orders", v)

	v, err = f.GetCellValue("Table List", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Customer orders", v)

	ok, target, err := f.GetCellHyperLink("Table List", "A2")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "'Orders'!A1", target)

	v, err = f.GetCellValue("Table List", "A3")
	require.NoError(t, err)
	assert.Equal(t, "footer", v)
}

func TestCloneSheet(t *testing.T) {
	doc, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer doc.Close()

	clone, err := doc.CloneSheet("Table Template", "Orders")
	require.NoError(t, err)
	assert.Equal(t, "{Table}", clone.Cell(models.Coordinate{Col: 2, Row: 0}).String())
	assert.Same(t, clone, doc.Workbook().Sheet("Orders"))
	assert.Len(t, doc.Workbook().Sheets, 3)

	areas := parser.ExtractPrintAreas(doc.f)
	assert.Equal(t, []models.PrintArea{{R1: 1, C1: 1, R2: 20, C2: 11}}, areas["Orders"])

	_, err = doc.CloneSheet("Table Template", "Orders")
	assert.ErrorIs(t, err, ErrSheetExists)

	_, err = doc.CloneSheet("Missing", "Other")
	assert.ErrorIs(t, err, ErrSheetNotFound)

	_, err = doc.CloneSheet("Table Template", "A_really_long_table_name_over_31")
	assert.ErrorIs(t, err, ErrSheetName)
}

func TestDuplicateRowKeepsPendingEdits(t *testing.T) {
	doc, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer doc.Close()

	list := doc.Workbook().Sheet("Table List")
	require.NoError(t, sheet.SetFirstMatchContent(list, "Table Name", "Name"))

	list, err = doc.DuplicateRow("Table List", 1, 2)
	require.NoError(t, err)

	assert.Equal(t, 5, list.LastRowNum())
	for row := 1; row <= 3; row++ {
		assert.Equal(t, "{TableName}", list.Cell(models.Coordinate{Col: 0, Row: row}).String())
	}
	assert.Equal(t, "Users", list.Cell(models.Coordinate{Col: 0, Row: 4}).String())
	assert.Equal(t, "Name", list.Cell(models.Coordinate{Col: 0, Row: 0}).String())
}

func TestDeleteSheet(t *testing.T) {
	doc, err := Open(writeFixture(t))
	require.NoError(t, err)
	defer doc.Close()

	require.NoError(t, doc.DeleteSheet("Table Template"))
	assert.Nil(t, doc.Workbook().Sheet("Table Template"))
	assert.ErrorIs(t, doc.DeleteSheet("Table Template"), ErrSheetNotFound)
	require.NoError(t, doc.SetActiveSheet("Table List"))
}

func TestOpenCompressed(t *testing.T) {
	raw, err := os.ReadFile(writeFixture(t))
	require.NoError(t, err)

	compressors := map[string]func(*bytes.Buffer) error{
		"book.xlsx.gz": func(buf *bytes.Buffer) error {
			w := gzip.NewWriter(buf)
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
		"book.xlsx.zst": func(buf *bytes.Buffer) error {
			w, err := zstd.NewWriter(buf)
			if err != nil {
				return err
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
		"book.xlsx.xz": func(buf *bytes.Buffer) error {
			w, err := xz.NewWriter(buf)
			if err != nil {
				return err
			}
			if _, err := w.Write(raw); err != nil {
				return err
			}
			return w.Close()
		},
	}

	for name, compress := range compressors {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, compress(&buf))

			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

			doc, err := Open(path)
			require.NoError(t, err)
			defer doc.Close()

			assert.Equal(t, "book.xlsx", doc.Workbook().Name)
			assert.NotNil(t, doc.Workbook().Sheet("Table List"))
		})
	}
}

func TestDetectCompression(t *testing.T) {
	tests := []struct {
		path  string
		want  Compression
		plain string
	}{
		{"a.xlsx", CompressionNone, "a.xlsx"},
		{"a.xlsx.gz", CompressionGZ, "a.xlsx"},
		{"a.xlsx.BZ2", CompressionBZ2, "a.xlsx"},
		{"a.xlsx.xz", CompressionXZ, "a.xlsx"},
		{"a.xlsx.zst", CompressionZSTD, "a.xlsx"},
	}
	for _, tt := range tests {
		got, plain := DetectCompression(tt.path)
		assert.Equal(t, tt.want, got, tt.path)
		assert.Equal(t, tt.plain, plain, tt.path)
	}
}

func TestValidateSheetName(t *testing.T) {
	assert.NoError(t, ValidateSheetName("Orders"))
	assert.ErrorIs(t, ValidateSheetName(""), ErrSheetName)
	assert.ErrorIs(t, ValidateSheetName("a/b"), ErrSheetName)
	assert.ErrorIs(t, ValidateSheetName("'quoted'"), ErrSheetName)
}
