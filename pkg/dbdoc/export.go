package dbdoc

import (
	"fmt"
	"strconv"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/sheet"
)

// Template is what the exporter needs from an open template workbook:
// the in-memory model plus the structural operations of the file layer.
// *workbook.Document implements it.
type Template interface {
	Workbook() *models.Workbook
	CloneSheet(src, dst string) (*models.Sheet, error)
	DuplicateRow(sheetName string, row, n int) (*models.Sheet, error)
	DeleteSheet(name string) error
	SetActiveSheet(name string) error
}

// Export fills the template with one index row and one sheet per table.
//
// Index rows are the rows holding the {TableName} placeholder; per-table
// sheets are clones of the table template with one {ColumnName} row per
// column. Reserved rows are duplicated when the template has too few, and
// unused ones are removed. Every write is label-addressed, so placeholders
// may move freely within the template.
func Export(doc Template, tables []models.Table, opts Options) error {
	log := opts.logger()
	wb := doc.Workbook()
	indexName := opts.indexSheet()
	templateName := opts.tableTemplate()

	index := wb.Sheet(indexName)
	if index == nil {
		return NewSheetError(indexName, "template", ErrSheetNotFound)
	}
	if wb.Sheet(templateName) == nil {
		return NewSheetError(templateName, "template", ErrSheetNotFound)
	}

	index, err := reserveRows(doc, index, PlaceholderTableName, len(tables))
	if err != nil {
		return NewSheetError(indexName, "template", err)
	}

	for i, table := range tables {
		ts, err := doc.CloneSheet(templateName, table.Name)
		if err != nil {
			return NewSheetError(table.Name, "export", err)
		}
		if err := fillTableSheet(doc, ts, table, indexName, opts); err != nil {
			return NewSheetError(table.Name, "export", err)
		}
		if err := fillIndexRow(index, i, table); err != nil {
			return NewSheetError(indexName, "export", err)
		}
		log.Debug("table documented", "table", table.Name, "columns", len(table.Columns))
	}

	for sheet.RemoveFirstMatchRow(index, PlaceholderTableName) {
	}

	if !opts.KeepTemplate {
		if err := doc.DeleteSheet(templateName); err != nil {
			return NewSheetError(templateName, "template", err)
		}
	}
	if err := doc.SetActiveSheet(indexName); err != nil {
		return NewSheetError(indexName, "template", err)
	}

	return nil
}

// reserveRows makes sure at least n rows of s hold label by duplicating the
// first such row. A template without any reserved row is left alone.
func reserveRows(doc Template, s *models.Sheet, label string, n int) (*models.Sheet, error) {
	first, count := -1, 0
	for r, row := range s.Rows {
		if _, ok := sheet.FindCellInRow(row, label); ok {
			if first < 0 {
				first = r
			}
			count++
		}
	}
	if first < 0 || count >= n {
		return s, nil
	}
	return doc.DuplicateRow(s.Name, first, n-count)
}

func fillIndexRow(index *models.Sheet, i int, table models.Table) error {
	at, ok := sheet.FindCellInSheet(index, PlaceholderTableName)
	if !ok {
		return nil
	}

	if err := sheet.SetFirstMatchContentInRow(index, at.Row, PlaceholderTableNo, strconv.Itoa(i+1)); err != nil {
		return err
	}
	if err := sheet.SetFirstMatchHyperlinkInRow(index, at.Row, PlaceholderTableName, table.Name, table.Name); err != nil {
		return err
	}
	return sheet.SetFirstMatchContentInRow(index, at.Row, PlaceholderTableDescription, table.Description)
}

func fillTableSheet(doc Template, ts *models.Sheet, table models.Table, indexName string, opts Options) error {
	ts, err := reserveRows(doc, ts, PlaceholderColumnName, len(table.Columns))
	if err != nil {
		return err
	}

	if err := sheet.SetCellContent(ts, OwnerCell, table.Name); err != nil {
		return fmt.Errorf("owner cell: %w", err)
	}
	if err := sheet.SetFirstMatchContent(ts, PlaceholderTableDescription, table.Description); err != nil {
		return err
	}
	if at, ok := sheet.FindCellInSheet(ts, PlaceholderBackLink); ok {
		if err := sheet.SetCellHyperlink(ts, at, indexName, indexName); err != nil {
			return err
		}
	}

	for i, col := range table.Columns {
		at, ok := sheet.FindCellInSheet(ts, PlaceholderColumnName)
		if !ok {
			opts.logger().Debug("no reserved column row left", "table", table.Name, "column", col.Name)
			break
		}

		ordinal := col.Ordinal
		if ordinal == 0 {
			ordinal = i + 1
		}
		values := []struct{ label, value string }{
			{PlaceholderNo, strconv.Itoa(ordinal)},
			{PlaceholderColumnName, col.Name},
			{PlaceholderType, col.FullType},
			{PlaceholderNullable, opts.mark(col.Nullable)},
			{PlaceholderPK, opts.mark(col.IsPrimaryKey)},
			{PlaceholderFK, opts.mark(col.IsForeignKey)},
			{PlaceholderFKReference, col.FKReference},
			{PlaceholderIdentity, opts.mark(col.IsIdentity)},
			{PlaceholderDefault, col.Default},
			{PlaceholderColumnDescription, col.Description},
		}
		for _, v := range values {
			if err := sheet.SetFirstMatchContentInRow(ts, at.Row, v.label, v.value); err != nil {
				return err
			}
		}
	}

	for sheet.RemoveFirstMatchRow(ts, PlaceholderColumnName) {
	}

	return nil
}
