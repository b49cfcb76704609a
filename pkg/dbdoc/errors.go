package dbdoc

import (
	"errors"
	"fmt"

	"github.com/ukaji3/dbdoc-go/pkg/dbdoc/workbook"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrHeaderNotFound indicates a sheet lacks a required header label.
var ErrHeaderNotFound = errors.New("header not found")

// ErrOwnerNotFound indicates a column sheet has no owning table name in its
// fixed owner cell.
var ErrOwnerNotFound = errors.New("owning table name not found")

// ErrSheetNotFound indicates a required sheet is missing from the workbook.
var ErrSheetNotFound = workbook.ErrSheetNotFound

// SheetError represents an error while processing one sheet.
type SheetError struct {
	SheetName string
	Component string // "export", "harvest", "template"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("%s error in sheet %q: %v", e.Component, e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, component string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Component: component,
		Err:       err,
	}
}
