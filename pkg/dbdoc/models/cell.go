// Package models defines the in-memory workbook container and the schema
// read models used by the exporter and the harvester.
package models

import (
	"fmt"
	"strings"
)

// CellKind is the stored type of a cell value.
type CellKind int

const (
	// CellBlank is an existing cell without a value (typically a styled
	// placeholder in a template).
	CellBlank CellKind = iota
	// CellString is a shared or inline string.
	CellString
	// CellNumber is a numeric or date value.
	CellNumber
	// CellBool is a boolean value.
	CellBool
	// CellFormula is a formula cell; Value holds its cached result.
	CellFormula
	// CellError is an error value such as #N/A.
	CellError
)

func (k CellKind) String() string {
	switch k {
	case CellBlank:
		return "blank"
	case CellString:
		return "string"
	case CellNumber:
		return "number"
	case CellBool:
		return "bool"
	case CellFormula:
		return "formula"
	case CellError:
		return "error"
	default:
		return fmt.Sprintf("CellKind(%d)", int(k))
	}
}

// Link is a same-workbook navigation target.
type Link struct {
	// Sheet is the target sheet name.
	Sheet string `json:"sheet"`
	// Ref is the target cell reference (e.g. "A1").
	Ref string `json:"ref"`
}

// Address renders the link in the 'Sheet'!A1 form used by xlsx location links.
func (l Link) Address() string {
	return fmt.Sprintf("'%s'!%s", strings.ReplaceAll(l.Sheet, "'", "''"), l.Ref)
}

// Cell is a single existing cell.
type Cell struct {
	// Kind is the stored value type.
	Kind CellKind `json:"kind"`
	// Value is the formatted value text.
	Value string `json:"value"`
	// Link is the attached document hyperlink, if any.
	Link *Link `json:"link,omitempty"`
	// Dirty marks cells written since the last flush to the backing file.
	Dirty bool `json:"-"`
}

// SetString overwrites the cell with a string value.
func (c *Cell) SetString(v string) {
	c.Kind = CellString
	c.Value = v
	c.Dirty = true
}

// SetLink attaches a document hyperlink to the cell.
func (c *Cell) SetLink(l Link) {
	c.Link = &l
	c.Dirty = true
}

// IsString reports whether the cell holds a string value.
func (c *Cell) IsString() bool {
	return c != nil && c.Kind == CellString
}

// String renders the cell value as text. Absent cells render as "".
func (c *Cell) String() string {
	if c == nil {
		return ""
	}
	return c.Value
}

// Coordinate is a zero-based cell position within one sheet.
type Coordinate struct {
	// Col is the column index.
	Col int `json:"col"`
	// Row is the row index.
	Row int `json:"row"`
}

func (c Coordinate) String() string {
	return fmt.Sprintf("(col %d, row %d)", c.Col, c.Row)
}
