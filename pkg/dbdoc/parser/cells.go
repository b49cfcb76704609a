// Package parser reads xlsx sheets into the in-memory sheet container.
package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
	"github.com/xuri/excelize/v2"
)

// ExtractSheet reads one sheet into a models.Sheet.
// Cells with a value are kept with their stored kind and document hyperlink.
// Empty positions become cells only when they carry a style, which is how a
// template marks pre-shaped cells; all other positions stay absent. Styled
// blanks at the end of a row or in trailing rows are kept as well.
func ExtractSheet(f *excelize.File, sheetName string) (*models.Sheet, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	maxRow, maxCol, err := usedRange(f, sheetName, rows)
	if err != nil {
		return nil, err
	}

	s := &models.Sheet{Name: sheetName}
	for rowIdx := 0; rowIdx < maxRow; rowIdx++ {
		var values []string
		if rowIdx < len(rows) {
			values = rows[rowIdx]
		}

		row := &models.Row{}
		for colIdx := 0; colIdx < maxCol; colIdx++ {
			var value string
			if colIdx < len(values) {
				value = values[colIdx]
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}

			c, err := extractCell(f, sheetName, cellName, value)
			if err != nil {
				return nil, fmt.Errorf("cell %s: %w", cellName, err)
			}
			if c != nil {
				row.Put(colIdx, c)
			}
		}
		s.Rows = append(s.Rows, row)
	}

	return s, nil
}

// usedRange returns the row and column counts to scan. GetRows trims empty
// cells and rows at the end, so the bounds also take the recorded sheet
// dimension and every row element of the sheet into account.
func usedRange(f *excelize.File, sheetName string, rows [][]string) (int, int, error) {
	maxRow, maxCol := len(rows), 0
	for _, values := range rows {
		maxCol = max(maxCol, len(values))
	}

	dim, err := f.GetSheetDimension(sheetName)
	if err != nil {
		return 0, 0, err
	}
	if _, last, ok := strings.Cut(dim, ":"); ok {
		dim = last
	}
	if col, row, err := excelize.CellNameToCoordinates(dim); err == nil {
		maxCol = max(maxCol, col)
		maxRow = max(maxRow, row)
	}

	it, err := f.Rows(sheetName)
	if err != nil {
		return 0, 0, err
	}
	count := 0
	for it.Next() {
		count++
	}
	if err := it.Close(); err != nil {
		return 0, 0, err
	}
	maxRow = max(maxRow, count)

	return maxRow, maxCol, nil
}

func extractCell(f *excelize.File, sheetName, cellName, value string) (*models.Cell, error) {
	if value == "" {
		style, err := f.GetCellStyle(sheetName, cellName)
		if err != nil {
			return nil, err
		}
		if style == 0 {
			return nil, nil
		}
		return &models.Cell{Kind: models.CellBlank}, nil
	}

	kind, err := cellKind(f, sheetName, cellName)
	if err != nil {
		return nil, err
	}
	c := &models.Cell{Kind: kind, Value: value}

	hasLink, target, err := f.GetCellHyperLink(sheetName, cellName)
	if err != nil {
		return nil, err
	}
	if hasLink {
		if link, ok := ParseLinkAddress(target); ok {
			c.Link = &link
		}
	}

	return c, nil
}

func cellKind(f *excelize.File, sheetName, cellName string) (models.CellKind, error) {
	formula, err := f.GetCellFormula(sheetName, cellName)
	if err != nil {
		return models.CellBlank, err
	}
	if formula != "" {
		return models.CellFormula, nil
	}

	typ, err := f.GetCellType(sheetName, cellName)
	if err != nil {
		return models.CellBlank, err
	}

	switch typ {
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.CellString, nil
	case excelize.CellTypeBool:
		return models.CellBool, nil
	case excelize.CellTypeError:
		return models.CellError, nil
	default:
		// unset and "n" both mean numeric in OOXML
		return models.CellNumber, nil
	}
}
