package sheet

import (
	"errors"
	"fmt"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/models"
)

var (
	// ErrNoRow is returned when a write targets a row that does not exist.
	ErrNoRow = errors.New("row does not exist")
	// ErrNoCell is returned when a write targets a cell that does not exist.
	ErrNoCell = errors.New("cell does not exist")
)

// LinkTargetRef is the cell every document hyperlink points at.
const LinkTargetRef = "A1"

func existingCell(s *models.Sheet, at models.Coordinate) (*models.Cell, error) {
	row := s.Row(at.Row)
	if row == nil {
		return nil, fmt.Errorf("sheet %q %s: %w", s.Name, at, ErrNoRow)
	}
	c := row.Cell(at.Col)
	if c == nil {
		return nil, fmt.Errorf("sheet %q %s: %w", s.Name, at, ErrNoCell)
	}
	return c, nil
}

// SetCellContent overwrites the value of the existing cell at the coordinate.
// Cells are never created; a missing row or cell is an error.
func SetCellContent(s *models.Sheet, at models.Coordinate, text string) error {
	c, err := existingCell(s, at)
	if err != nil {
		return err
	}
	c.SetString(text)
	return nil
}

// SetCellHyperlink sets the cell text and links it to A1 of targetSheet.
func SetCellHyperlink(s *models.Sheet, at models.Coordinate, text, targetSheet string) error {
	c, err := existingCell(s, at)
	if err != nil {
		return err
	}
	c.SetLink(models.Link{Sheet: targetSheet, Ref: LinkTargetRef})
	c.SetString(text)
	return nil
}

// SetFirstMatchContent replaces the first cell labelled label with newText.
// It is a no-op when the label is absent.
func SetFirstMatchContent(s *models.Sheet, label, newText string) error {
	at, ok := FindCellInSheet(s, label)
	if !ok {
		return nil
	}
	return SetCellContent(s, at, newText)
}

// SetFirstMatchContentInRow is SetFirstMatchContent restricted to one row.
// It is a no-op when rowIndex is outside the used range or the label is absent.
func SetFirstMatchContentInRow(s *models.Sheet, rowIndex int, label, newText string) error {
	at, ok := findInRow(s, rowIndex, label)
	if !ok {
		return nil
	}
	return SetCellContent(s, at, newText)
}

// SetFirstMatchHyperlinkInRow resolves label within one row and sets a
// hyperlink to targetSheet there.
func SetFirstMatchHyperlinkInRow(s *models.Sheet, rowIndex int, label, newText, targetSheet string) error {
	at, ok := findInRow(s, rowIndex, label)
	if !ok {
		return nil
	}
	return SetCellHyperlink(s, at, newText, targetSheet)
}

// RemoveFirstMatchRow deletes the row holding the first cell labelled label.
// It reports whether a row was removed; an absent label is not an error.
func RemoveFirstMatchRow(s *models.Sheet, label string) bool {
	at, ok := FindCellInSheet(s, label)
	if !ok {
		return false
	}
	s.RemoveRow(at.Row)
	return true
}

func findInRow(s *models.Sheet, rowIndex int, label string) (models.Coordinate, bool) {
	if rowIndex < 0 || rowIndex > s.LastRowNum() {
		return models.Coordinate{}, false
	}
	col, ok := FindCellInRow(s.Row(rowIndex), label)
	if !ok {
		return models.Coordinate{}, false
	}
	return models.Coordinate{Col: col, Row: rowIndex}, true
}
