// Package sheet implements label-addressed lookups and writes over the
// in-memory sheet container.
//
// Positions are never hard-coded: callers name a label (the trimmed string
// content of a template cell) and the package resolves it on every call.
// Lookups are first-match-wins in row-major order.
package sheet

import (
	"strings"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

// FindCellInSheet returns the coordinate of the first string cell whose
// trimmed value equals label. Non-string cells are skipped, never coerced.
func FindCellInSheet(s *models.Sheet, label string) (models.Coordinate, bool) {
	for rowIdx, row := range s.Rows {
		if row == nil {
			continue
		}
		if col, ok := FindCellInRow(row, label); ok {
			return models.Coordinate{Col: col, Row: rowIdx}, true
		}
	}
	return models.Coordinate{}, false
}

// FindCellInRow returns the column index of the first string cell in row
// whose trimmed value equals label.
func FindCellInRow(row *models.Row, label string) (int, bool) {
	if row == nil {
		return 0, false
	}
	for col, c := range row.Cells {
		if !c.IsString() {
			continue
		}
		if strings.TrimSpace(c.Value) == label {
			return col, true
		}
	}
	return 0, false
}
